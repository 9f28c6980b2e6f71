package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/spec-kit/ticket-system/internal/domain"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// TicketRepository encapsulates the ordered ticket collection.
type TicketRepository interface {
	// List returns every ticket in insertion order.
	List(ctx context.Context) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	// Create assigns the next id to ticket and appends it. Ids are never reused.
	Create(ctx context.Context, ticket *domain.Ticket) error
	// Update persists status, priority, assigned_to and updated_at.
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
}

type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
	lastID  int64
}

// NewMemoryTicketRepository builds an in-memory repository holding seed in the given order.
func NewMemoryTicketRepository(seed []domain.Ticket) TicketRepository {
	r := &memoryTicketRepository{tickets: make([]domain.Ticket, 0, len(seed))}
	for _, t := range seed {
		r.tickets = append(r.tickets, t)
		if t.ID > r.lastID {
			r.lastID = t.ID
		}
	}
	return r
}

func (r *memoryTicketRepository) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Ticket, len(r.tickets))
	copy(out, r.tickets)
	return out, nil
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	t := r.tickets[idx]
	return &t, nil
}

func (r *memoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	ticket.ID = r.lastID
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *memoryTicketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(ticket.ID)
	if idx < 0 {
		return ErrNotFound
	}
	stored := &r.tickets[idx]
	stored.Status = ticket.Status
	stored.Priority = ticket.Priority
	stored.AssignedTo = ticket.AssignedTo
	stored.UpdatedAt = ticket.UpdatedAt
	return nil
}

func (r *memoryTicketRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.tickets = append(r.tickets[:idx], r.tickets[idx+1:]...)
	return nil
}

func (r *memoryTicketRepository) indexOf(id int64) int {
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			return i
		}
	}
	return -1
}
