// Package domain contains the core business entities for the package catalog.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the catalog system.
package domain

import (
	"time"
)

// Role is the authorization role assigned to a user.
type Role string

const (
	// RoleAdmin grants unrestricted listing visibility. Admins have no
	// override for mutating packages they do not own.
	RoleAdmin Role = "admin"

	// RoleStandard is the default role for registered users.
	RoleStandard Role = "standard"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStandard
}

// User represents a registered user in the system.
// Users own packages; a user is created once at registration and is
// immutable thereafter.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Username is the unique username for login.
	Username string `json:"userName"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This must never be exposed in API responses.
	PasswordHash string `json:"-"`

	// Role is either RoleAdmin or RoleStandard.
	Role Role `json:"userType"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser creates a new User with system-maintained timestamps.
func NewUser(username, passwordHash string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
