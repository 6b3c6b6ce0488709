package repository

import "context"

// Repositories hands out repositories bound to one unit of work.
type Repositories interface {
	Users() UserRepository
	Movies() MovieRepository
	Favorites() FavoriteRepository
}

// TransactionManager runs fn inside a single transaction, committing when fn
// returns nil and rolling back on error or panic.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
