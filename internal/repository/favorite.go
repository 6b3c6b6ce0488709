package repository

import (
	"context"

	"github.com/google/uuid"
)

// FavoriteRepository manages the user to movie favorite relation.
type FavoriteRepository interface {
	Exists(ctx context.Context, userID, movieID uuid.UUID) (bool, error)
	// Add inserts the pair. A duplicate pair yields domain.ErrConflict and a
	// missing user or movie yields domain.ErrNotFound.
	Add(ctx context.Context, userID, movieID uuid.UUID) error
	Remove(ctx context.Context, userID, movieID uuid.UUID) (int64, error)
	MoviesOf(userID uuid.UUID) MovieQuery
}
