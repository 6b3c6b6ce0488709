package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account of the catalog.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserEdit carries a profile change. PasswordHash is already hashed; nil keeps the current one.
type UserEdit struct {
	Username     string
	Email        *string
	PasswordHash *string
}

// EmailValue returns the email or an empty string when unset.
func (u *User) EmailValue() string {
	if u == nil || u.Email == nil {
		return ""
	}
	return *u.Email
}
