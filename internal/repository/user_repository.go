package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spec-kit/ticket-system/internal/auth"
	"github.com/spec-kit/ticket-system/internal/domain"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository is the read-only identity store.
type UserRepository interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type memoryUserRepository struct {
	users map[string]domain.User
}

// NewMemoryUserRepository hashes the seed passwords and returns an immutable store.
func NewMemoryUserRepository(seed []domain.SeedUser, bcryptCost int) (UserRepository, error) {
	users := make(map[string]domain.User, len(seed))
	for _, s := range seed {
		email := strings.TrimSpace(s.Email)
		if email == "" {
			return nil, errors.New("seed user without email")
		}
		if _, dup := users[email]; dup {
			return nil, fmt.Errorf("duplicate seed user %s", email)
		}
		hash, err := auth.HashPassword(s.Password, bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", email, err)
		}
		users[email] = domain.User{Email: email, Name: s.Name, Role: s.Role, PasswordHash: hash}
	}
	return &memoryUserRepository{users: users}, nil
}

func (r *memoryUserRepository) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}
