package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-system/internal/auth"
	"github.com/spec-kit/ticket-system/internal/domain"
	"github.com/spec-kit/ticket-system/internal/events"
	"github.com/spec-kit/ticket-system/internal/repository"
	apperrors "github.com/spec-kit/ticket-system/pkg/util"
)

// TicketService is the ticket registry. It enforces visibility and mutation rules.
type TicketService struct {
	// mu serializes every check-then-act sequence against the repository.
	mu              sync.Mutex
	tickets         repository.TicketRepository
	dispatcher      events.Dispatcher
	defaultAssignee string
	now             func() time.Time
	logger          *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo      repository.TicketRepository
	Dispatcher      events.Dispatcher
	DefaultAssignee string
	Clock           func() time.Time
	Logger          *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	s := &TicketService{
		tickets:         deps.TicketRepo,
		dispatcher:      deps.Dispatcher,
		defaultAssignee: deps.DefaultAssignee,
		now:             deps.Clock,
		logger:          deps.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.defaultAssignee == "" {
		s.defaultAssignee = "admin@example.com"
	}
	return s
}

// ListTickets returns the tickets visible to caller in insertion order.
func (s *TicketService) ListTickets(ctx context.Context, caller domain.Caller) ([]domain.Ticket, error) {
	s.mu.Lock()
	all, err := s.tickets.List(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if caller.IsAdmin() {
		return all, nil
	}
	visible := make([]domain.Ticket, 0, len(all))
	for i := range all {
		if auth.Authorize(caller, auth.ActionView, &all[i]) {
			visible = append(visible, all[i])
		}
	}
	return visible, nil
}

// CreateTicket opens a ticket owned by caller.
func (s *TicketService) CreateTicket(ctx context.Context, caller domain.Caller, input TicketCreateInput) (*domain.Ticket, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}
	if !auth.Authorize(caller, auth.ActionCreate, nil) {
		return nil, apperrors.NewForbidden("Not authorized")
	}

	now := s.timestamp()
	ticket := &domain.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		CreatedBy:   caller.Email,
		AssignedTo:  s.defaultAssignee,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	err := s.tickets.Create(ctx, ticket)
	s.mu.Unlock()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.NewTicketEvent(events.EventTicketCreated, caller.Email, *ticket, now))
	return ticket, nil
}

// UpdateTicket applies the status, priority and assigned_to fields present in patch.
// updated_at is refreshed even when the patch is empty.
func (s *TicketService) UpdateTicket(ctx context.Context, caller domain.Caller, id int64, patch domain.TicketPatch) (*domain.Ticket, error) {
	s.mu.Lock()
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return nil, mapRepoError(err)
	}
	if !auth.Authorize(caller, auth.ActionUpdate, ticket) {
		s.mu.Unlock()
		return nil, apperrors.NewForbidden("Not authorized")
	}
	changed := patch.Apply(ticket)
	ticket.UpdatedAt = s.timestamp()
	err = s.tickets.Update(ctx, ticket)
	s.mu.Unlock()
	if err != nil {
		return nil, mapRepoError(err)
	}

	event := events.NewTicketEvent(events.EventTicketUpdated, caller.Email, *ticket, ticket.UpdatedAt)
	event.Changed = changed
	s.publish(ctx, event)
	return ticket, nil
}

// DeleteTicket removes a ticket. Only admins may delete, regardless of ownership.
func (s *TicketService) DeleteTicket(ctx context.Context, caller domain.Caller, id int64) (*domain.Ticket, error) {
	s.mu.Lock()
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return nil, mapRepoError(err)
	}
	if !auth.Authorize(caller, auth.ActionDelete, ticket) {
		s.mu.Unlock()
		return nil, apperrors.NewForbidden("Not authorized")
	}
	err = s.tickets.Delete(ctx, id)
	s.mu.Unlock()
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.publish(ctx, events.NewTicketEvent(events.EventTicketDeleted, caller.Email, *ticket, s.timestamp()))
	return ticket, nil
}

func validateCreate(input TicketCreateInput) error {
	switch {
	case input.Title == "":
		return apperrors.NewValidationError("title is required", map[string]any{"field": "title"})
	case input.Description == "":
		return apperrors.NewValidationError("description is required", map[string]any{"field": "description"})
	case input.Priority == "":
		return apperrors.NewValidationError("priority is required", map[string]any{"field": "priority"})
	}
	return nil
}

func (s *TicketService) timestamp() time.Time {
	return s.now().Truncate(time.Second)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("ticket event handlers failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Ticket", nil)
	}
	return apperrors.NewInternalError(err)
}
