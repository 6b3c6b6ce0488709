package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced user or movie does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized covers bad credentials, bad tokens and users that vanished after token issuance.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrInvalidToken is returned by token verification for bad signatures, malformed or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// ConflictError names the field whose uniqueness was violated.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflict builds a ConflictError for field with a user facing message.
func NewConflict(field, message string) *ConflictError {
	return &ConflictError{Field: field, Message: message}
}

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
