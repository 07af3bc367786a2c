// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered author. Authentication itself lives outside the
// blog core; users exist so posts and comments can name their author.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize the hash
	Name         string    `json:"name" db:"display_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Ref returns the author reference form of the user.
func (u *User) Ref() AuthorRef {
	return AuthorRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
