package repository

import (
	"context"

	"github.com/google/uuid"

	"movie-library/internal/domain"
)

// MovieQuery is a lazily evaluated listing of movies. Nothing touches the
// store until Count or Fetch is called; results are ordered by creation so
// consecutive pages are stable for a fixed snapshot.
type MovieQuery interface {
	Count(ctx context.Context) (int64, error)
	Fetch(ctx context.Context, limit, offset int) ([]domain.Movie, error)
}

// MovieRepository exposes persistence operations for the movie catalog.
type MovieRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error)
	GetByTitle(ctx context.Context, title string) (*domain.Movie, error)
	Create(ctx context.Context, movie *domain.Movie) error
	Update(ctx context.Context, movie *domain.Movie) error
	SetPoster(ctx context.Context, id uuid.UUID, key string) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Query() MovieQuery
}
