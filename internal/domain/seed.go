package domain

import "time"

// SeedUser is a plaintext credential entry loaded into the identity store at startup.
type SeedUser struct {
	Email    string
	Password string
	Name     string
	Role     Role
}

// DefaultUsers is the fixed identity seed set.
func DefaultUsers() []SeedUser {
	return []SeedUser{
		{Email: "admin@example.com", Password: "admin123", Name: "Admin User", Role: RoleAdmin},
		{Email: "user@example.com", Password: "user123", Name: "Regular User", Role: RoleUser},
	}
}

// DemoTickets returns the tickets present on a fresh start.
func DemoTickets() []Ticket {
	return []Ticket{
		{
			ID:          1,
			Title:       "Cannot login to dashboard",
			Description: "Getting 404 error when trying to access dashboard",
			Status:      TicketStatusOpen,
			Priority:    TicketPriorityHigh,
			CreatedBy:   "user@example.com",
			AssignedTo:  "admin@example.com",
			CreatedAt:   seedTime("2024-01-15 10:30:00"),
			UpdatedAt:   seedTime("2024-01-15 10:30:00"),
		},
		{
			ID:          2,
			Title:       "Add new feature request",
			Description: "Please add export to PDF functionality",
			Status:      TicketStatusInProgress,
			Priority:    TicketPriorityMedium,
			CreatedBy:   "user@example.com",
			AssignedTo:  "admin@example.com",
			CreatedAt:   seedTime("2024-01-14 14:20:00"),
			UpdatedAt:   seedTime("2024-01-15 09:15:00"),
		},
	}
}

// TimestampLayout is the wire and storage format of ticket timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

func seedTime(v string) time.Time {
	t, err := time.ParseInLocation(TimestampLayout, v, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}
