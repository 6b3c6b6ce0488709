package domain

import (
	"time"

	"github.com/google/uuid"
)

// Movie is a catalog entry. Titles are unique across the catalog.
type Movie struct {
	ID          uuid.UUID
	Title       string
	Description *string
	PosterKey   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MovieEdit replaces the editable fields of a movie.
type MovieEdit struct {
	Title       string
	Description *string
}

// FavoriteOutcome reports what an add-to-favorites call did.
type FavoriteOutcome int

const (
	FavoriteAdded FavoriteOutcome = iota + 1
	FavoriteAlreadyExists
)

func (o FavoriteOutcome) String() string {
	switch o {
	case FavoriteAdded:
		return "added"
	case FavoriteAlreadyExists:
		return "already_favorite"
	default:
		return "unknown"
	}
}
