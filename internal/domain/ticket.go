package domain

import "time"

// TicketStatus is an open set; any string is accepted on update.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority is an open set, typically high, medium or low.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Ticket is a unit of support work.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	CreatedBy   string
	AssignedTo  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TicketPatch carries the mutable fields of a ticket. Nil fields are left untouched.
type TicketPatch struct {
	Status     *TicketStatus
	Priority   *TicketPriority
	AssignedTo *string
}

// Apply copies the present patch fields onto t and returns the names of the fields it set.
func (p TicketPatch) Apply(t *Ticket) []string {
	changed := make([]string, 0, 3)
	if p.Status != nil {
		t.Status = *p.Status
		changed = append(changed, "status")
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
		changed = append(changed, "priority")
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
		changed = append(changed, "assigned_to")
	}
	return changed
}
