package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"movie-library/internal/repository"
)

// Store vends repositories bound either to the pool or to a single transaction.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() repository.UserRepository {
	return NewUserRepository(s.db)
}

func (s *Store) Movies() repository.MovieRepository {
	return NewMovieRepository(s.db)
}

func (s *Store) Favorites() repository.FavoriteRepository {
	return NewFavoriteRepository(s.db)
}

// Ping reports whether the database answers a trivial query.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.db.GetContext(ctx, &one, `SELECT 1`); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	return nil
}

// Execute implements repository.TransactionManager.
func (s *Store) Execute(ctx context.Context, fn func(repos repository.Repositories) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = wrap("commit tx", cerr)
		}
	}()

	return fn(txRepositories{tx: tx})
}

type txRepositories struct {
	tx *sqlx.Tx
}

func (r txRepositories) Users() repository.UserRepository {
	return NewUserRepository(r.tx)
}

func (r txRepositories) Movies() repository.MovieRepository {
	return NewMovieRepository(r.tx)
}

func (r txRepositories) Favorites() repository.FavoriteRepository {
	return NewFavoriteRepository(r.tx)
}
