package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"movie-library/internal/domain"
	"movie-library/internal/repository"
)

const movieColumns = `m.id, m.title, m.description, m.poster_key, m.created_at, m.updated_at`

type movieRow struct {
	ID          uuid.UUID      `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	PosterKey   string         `db:"poster_key"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r movieRow) toDomain() domain.Movie {
	return domain.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Description: fromNullString(r.Description),
		PosterKey:   r.PosterKey,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type MovieRepository struct {
	db sqlx.ExtContext
}

func NewMovieRepository(db sqlx.ExtContext) repository.MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	return r.getBy(ctx, "id", id)
}

func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return r.getBy(ctx, "title", title)
}

func (r *MovieRepository) getBy(ctx context.Context, column string, value any) (*domain.Movie, error) {
	var row movieRow
	query := r.db.Rebind(fmt.Sprintf(`SELECT %s FROM movies m WHERE m.%s = ?`, movieColumns, column))
	if err := sqlx.GetContext(ctx, r.db, &row, query, value); err != nil {
		return nil, wrap("get movie by "+column, err)
	}
	movie := row.toDomain()
	return &movie, nil
}

func (r *MovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	if movie.ID == uuid.Nil {
		movie.ID = uuid.New()
	}
	now := time.Now().UTC()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
INSERT INTO movies (id, title, description, poster_key, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`),
		movie.ID,
		movie.Title,
		toNullString(movie.Description),
		movie.PosterKey,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		return wrap("insert movie", err)
	}
	return nil
}

func (r *MovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	movie.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
UPDATE movies
SET title=?, description=?, updated_at=?
WHERE id=?`),
		movie.Title,
		toNullString(movie.Description),
		movie.UpdatedAt,
		movie.ID,
	)
	if err != nil {
		return wrap("update movie", err)
	}
	return expectAffected(res, "update movie")
}

func (r *MovieRepository) SetPoster(ctx context.Context, id uuid.UUID, key string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
UPDATE movies
SET poster_key=?, updated_at=?
WHERE id=?`),
		key,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return wrap("set movie poster", err)
	}
	return expectAffected(res, "set movie poster")
}

func (r *MovieRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM movies WHERE id=?`), id)
	if err != nil {
		return 0, wrap("delete movie", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("movie delete rows affected: %w", err)
	}
	return aff, nil
}

func (r *MovieRepository) Query() repository.MovieQuery {
	return &movieQuery{db: r.db, from: "movies m"}
}

// movieQuery composes a SELECT over movies without executing it.
type movieQuery struct {
	db    sqlx.ExtContext
	from  string
	where []string
	args  []any
}

func (q *movieQuery) filter(clause string, args ...any) *movieQuery {
	return &movieQuery{
		db:    q.db,
		from:  q.from,
		where: append(append([]string(nil), q.where...), clause),
		args:  append(append([]any(nil), q.args...), args...),
	}
}

func (q *movieQuery) whereSQL() string {
	if len(q.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.where, " AND ")
}

func (q *movieQuery) Count(ctx context.Context) (int64, error) {
	var total int64
	query := q.db.Rebind(`SELECT COUNT(*) FROM ` + q.from + q.whereSQL())
	if err := sqlx.GetContext(ctx, q.db, &total, query, q.args...); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return total, nil
}

func (q *movieQuery) Fetch(ctx context.Context, limit, offset int) ([]domain.Movie, error) {
	query := q.db.Rebind(`SELECT ` + movieColumns + ` FROM ` + q.from + q.whereSQL() +
		` ORDER BY m.created_at ASC, m.id ASC LIMIT ? OFFSET ?`)
	args := append(append([]any(nil), q.args...), limit, offset)

	var rows []movieRow
	if err := sqlx.SelectContext(ctx, q.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}

	movies := make([]domain.Movie, len(rows))
	for i := range rows {
		movies[i] = rows[i].toDomain()
	}
	return movies, nil
}

func expectAffected(res sql.Result, op string) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if aff == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
