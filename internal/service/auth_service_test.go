package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/ticket-system/internal/auth"
	"github.com/spec-kit/ticket-system/internal/domain"
	"github.com/spec-kit/ticket-system/internal/repository"
	apperrors "github.com/spec-kit/ticket-system/pkg/util"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	users, err := repository.NewMemoryUserRepository(domain.DefaultUsers(), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(users, auth.NewTokenManager("test-secret", time.Hour, nil))
}

func TestLoginIssuesTokenForSeededUsers(t *testing.T) {
	svc := newAuthService(t)
	for _, seed := range domain.DefaultUsers() {
		user, token, exp, err := svc.Login(context.Background(), seed.Email, seed.Password)
		require.NoError(t, err)
		assert.Equal(t, seed.Email, user.Email)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, seed.Email, claims.Email)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthService(t)
	tests := []struct {
		name     string
		email    string
		password string
		status   int
	}{
		{"missing email", "", "admin123", http.StatusBadRequest},
		{"missing password", "admin@example.com", "", http.StatusBadRequest},
		{"unknown email", "ghost@example.com", "admin123", http.StatusUnauthorized},
		{"wrong password", "admin@example.com", "user123", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.Login(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, apperrors.IsStatus(err, tt.status))
		})
	}
}

func TestResolve(t *testing.T) {
	svc := newAuthService(t)
	user, err := svc.Resolve(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Caller().Role)

	_, err = svc.Resolve(context.Background(), "deleted@example.com")
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}
