package auth

import "github.com/spec-kit/ticket-system/internal/domain"

// Action is an operation a caller attempts on tickets.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize decides whether caller may perform action on ticket.
// ticket may be nil for ActionCreate.
func Authorize(caller domain.Caller, action Action, ticket *domain.Ticket) bool {
	switch action {
	case ActionCreate:
		return caller.Email != ""
	case ActionView, ActionUpdate:
		if caller.IsAdmin() {
			return true
		}
		return ticket != nil && ticket.CreatedBy == caller.Email
	case ActionDelete:
		// ownership does not grant delete
		return caller.IsAdmin()
	default:
		return false
	}
}
