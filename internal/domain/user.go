package domain

import "time"

// Role is the access level of a back-office account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "empleado"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User is a back-office account that can sign in.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Identity returns the public fields of the account.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Identity is the public view of an authenticated account.
type Identity struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}
