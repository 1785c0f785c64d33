// Package users implements the user directory: account creation, credential
// checks, and profile management. Sign-in identity is the email address.
package users

import "time"

// User is a user record. Capability flags are plain booleans checked through
// predicate methods; there is no role hierarchy.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAuthenticated reports whether the account may hold a session.
func (u *User) IsAuthenticated() bool {
	return u.IsActive
}

// CanAccessAdmin reports whether the account may perform administrative
// operations.
func (u *User) CanAccessAdmin() bool {
	return u.IsActive && u.IsStaff
}
