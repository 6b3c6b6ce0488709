package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"movie-library/internal/domain"
	"movie-library/internal/repository"
)

var errAlreadyFavorite = errors.New("already favorite")

// FavoritesManager maintains the user to movie favorite relation.
type FavoritesManager interface {
	Add(ctx context.Context, user *domain.User, movieID uuid.UUID) (domain.FavoriteOutcome, error)
	Remove(ctx context.Context, user *domain.User, movieID uuid.UUID) (int64, error)
	List(user *domain.User) repository.MovieQuery
}

type favoritesManager struct {
	store  Store
	logger logrus.FieldLogger
}

func NewFavoritesManager(store Store, logger logrus.FieldLogger) FavoritesManager {
	return &favoritesManager{
		store:  store,
		logger: fieldLogger(logger, "favorites"),
	}
}

// Add marks movieID as a favorite of user. Repeating a successful add reports
// domain.FavoriteAlreadyExists; a missing movie fails with domain.ErrNotFound.
func (m *favoritesManager) Add(ctx context.Context, user *domain.User, movieID uuid.UUID) (domain.FavoriteOutcome, error) {
	err := m.store.Execute(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Movies().GetByID(ctx, movieID); err != nil {
			return errors.Wrap(err, "get movie")
		}

		exists, err := repos.Favorites().Exists(ctx, user.ID, movieID)
		if err != nil {
			return errors.Wrap(err, "check favorite")
		}
		if exists {
			return errAlreadyFavorite
		}

		// the composite key rejects a concurrent insert of the same pair
		if err := repos.Favorites().Add(ctx, user.ID, movieID); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return errAlreadyFavorite
			}
			return errors.Wrap(err, "add favorite")
		}
		return nil
	})

	switch {
	case err == nil:
		m.logger.WithFields(logrus.Fields{"user_id": user.ID, "movie_id": movieID}).Debug("favorite added")
		return domain.FavoriteAdded, nil
	case errors.Is(err, errAlreadyFavorite):
		return domain.FavoriteAlreadyExists, nil
	default:
		return 0, err
	}
}

// Remove drops the pair and reports how many rows went away; 0 is not an error.
func (m *favoritesManager) Remove(ctx context.Context, user *domain.User, movieID uuid.UUID) (int64, error) {
	n, err := m.store.Favorites().Remove(ctx, user.ID, movieID)
	if err != nil {
		return 0, errors.Wrap(err, "remove favorite")
	}
	return n, nil
}

// List returns a lazy query over the user's favorite movies.
func (m *favoritesManager) List(user *domain.User) repository.MovieQuery {
	return m.store.Favorites().MoviesOf(user.ID)
}
