package repository

import (
	"context"

	"github.com/google/uuid"

	"movie-library/internal/domain"
)

// UserRepository defines persistence operations for User records.
// Lookups return domain.ErrNotFound when nothing matches and writes
// translate uniqueness violations to domain.ErrConflict.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
