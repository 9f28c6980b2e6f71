package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticket-system/internal/domain"
)

func TestAuthorize(t *testing.T) {
	admin := domain.Caller{Email: "admin@example.com", Role: domain.RoleAdmin}
	owner := domain.Caller{Email: "user@example.com", Role: domain.RoleUser}
	stranger := domain.Caller{Email: "other@example.com", Role: domain.RoleUser}
	ticket := &domain.Ticket{ID: 1, CreatedBy: "user@example.com"}

	tests := []struct {
		name   string
		caller domain.Caller
		action Action
		ticket *domain.Ticket
		want   bool
	}{
		{"admin views any", admin, ActionView, ticket, true},
		{"owner views own", owner, ActionView, ticket, true},
		{"stranger cannot view", stranger, ActionView, ticket, false},
		{"anyone creates", stranger, ActionCreate, nil, true},
		{"anonymous cannot create", domain.Caller{}, ActionCreate, nil, false},
		{"admin updates any", admin, ActionUpdate, ticket, true},
		{"owner updates own", owner, ActionUpdate, ticket, true},
		{"stranger cannot update", stranger, ActionUpdate, ticket, false},
		{"admin deletes", admin, ActionDelete, ticket, true},
		{"owner cannot delete", owner, ActionDelete, ticket, false},
		{"stranger cannot delete", stranger, ActionDelete, ticket, false},
		{"nil ticket update denied", owner, ActionUpdate, nil, false},
		{"unknown action denied", admin, Action("archive"), ticket, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.caller, tt.action, tt.ticket))
		})
	}
}
