package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/ticket-system/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
)

// Event represents a ticket lifecycle change emitted by the registry.
type Event struct {
	ID        string        `json:"id"`
	Type      EventType     `json:"type"`
	TicketID  int64         `json:"ticket_id"`
	Actor     string        `json:"actor"`
	Timestamp time.Time     `json:"timestamp"`
	Ticket    TicketPayload `json:"ticket"`
	Changed   []string      `json:"changed,omitempty"`
}

// TicketPayload is the ticket snapshot carried by an event.
type TicketPayload struct {
	Title      string                `json:"title"`
	Status     domain.TicketStatus   `json:"status"`
	Priority   domain.TicketPriority `json:"priority"`
	CreatedBy  string                `json:"created_by"`
	AssignedTo string                `json:"assigned_to"`
}

// NewTicketEvent builds an event with a fresh id.
func NewTicketEvent(eventType EventType, actor string, ticket domain.Ticket, at time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticket.ID,
		Actor:     actor,
		Timestamp: at,
		Ticket: TicketPayload{
			Title:      ticket.Title,
			Status:     ticket.Status,
			Priority:   ticket.Priority,
			CreatedBy:  ticket.CreatedBy,
			AssignedTo: ticket.AssignedTo,
		},
	}
}
