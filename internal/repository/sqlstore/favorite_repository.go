package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"movie-library/internal/repository"
)

// FavoriteRepository stores the (user, movie) pairs. The composite primary key
// rejects duplicate pairs and both foreign keys cascade on delete.
type FavoriteRepository struct {
	db sqlx.ExtContext
}

func NewFavoriteRepository(db sqlx.ExtContext) repository.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	var n int
	query := r.db.Rebind(`SELECT COUNT(*) FROM user_favorite_movies WHERE user_id=? AND movie_id=?`)
	if err := sqlx.GetContext(ctx, r.db, &n, query, userID, movieID); err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return n > 0, nil
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, movieID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`
INSERT INTO user_favorite_movies (user_id, movie_id)
VALUES (?, ?)`),
		userID,
		movieID,
	); err != nil {
		return wrap("insert favorite", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, movieID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
DELETE FROM user_favorite_movies
WHERE user_id=? AND movie_id=?`),
		userID,
		movieID,
	)
	if err != nil {
		return 0, wrap("delete favorite", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("favorite delete rows affected: %w", err)
	}
	return aff, nil
}

func (r *FavoriteRepository) MoviesOf(userID uuid.UUID) repository.MovieQuery {
	base := &movieQuery{
		db:   r.db,
		from: "movies m JOIN user_favorite_movies f ON f.movie_id = m.id",
	}
	return base.filter("f.user_id = ?", userID)
}
