package domain

// Role decides ticket visibility and mutation rights.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an identity known to the identity store. Email is the unique key.
type User struct {
	Email        string
	Name         string
	Role         Role
	PasswordHash string
}

// Caller is the authenticated identity making a request, with its role resolved.
type Caller struct {
	Email string
	Name  string
	Role  Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Caller returns the request identity for u.
func (u *User) Caller() Caller {
	return Caller{Email: u.Email, Name: u.Name, Role: u.Role}
}
