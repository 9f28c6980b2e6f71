package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-system/internal/domain"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.Actor)
		return errors.New("first failed")
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.Actor)
		return nil
	})
	d.Subscribe(EventTicketDeleted, func(_ context.Context, _ Event) error {
		t.Fatal("unexpected delivery")
		return nil
	})

	ticket := domain.Ticket{ID: 3, Title: "X", CreatedBy: "user@example.com"}
	err := d.Publish(context.Background(), NewTicketEvent(EventTicketCreated, "user@example.com", ticket, time.Now()))

	require.Error(t, err)
	assert.Equal(t, []string{"first:user@example.com", "second:user@example.com"}, got)
}

func TestNewTicketEventSnapshot(t *testing.T) {
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	ticket := domain.Ticket{ID: 3, Title: "X", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow}

	e1 := NewTicketEvent(EventTicketUpdated, "admin@example.com", ticket, at)
	e2 := NewTicketEvent(EventTicketUpdated, "admin@example.com", ticket, at)

	assert.Equal(t, int64(3), e1.TicketID)
	assert.Equal(t, at, e1.Timestamp)
	assert.Equal(t, domain.TicketPriorityLow, e1.Ticket.Priority)
	assert.NotEmpty(t, e1.ID)
	assert.NotEqual(t, e1.ID, e2.ID)
}
