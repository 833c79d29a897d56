package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. A role is fixed at registration and never changes afterwards.
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`             // Primary key
	Username     string    `json:"username" db:"username"`      // Unique username
	PasswordHash string    `json:"-" db:"password_hash"`        // Hashed password, never serialized
	Name         string    `json:"name" db:"name"`              // Display name
	Phone        *string   `json:"phone,omitempty" db:"phone"`  // Optional contact phone
	Role         string    `json:"role" db:"role"`              // student or staff
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`   // Creation timestamp
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`   // Last update timestamp
}

// UserUpdate holds the mutable user fields for a partial update.
// Nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	Phone        *string
	PasswordHash *string
}

// Identity is the authenticated caller of a request: a user id plus its role.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// IsStaff reports whether the identity carries the staff role.
func (i Identity) IsStaff() bool {
	return i.Role == RoleStaff
}
