package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"movie-library/internal/domain"
	"movie-library/internal/repository"
	"movie-library/internal/storage"
)

const (
	msgTitleExists       = "Title already exists!"
	msgTitleExistsOnEdit = "Title already exists."
)

// ErrStorageDisabled is returned by poster operations when no bucket is configured.
var ErrStorageDisabled = errors.New("poster storage is not configured")

// PosterOptions configures where posters are stored and how long download links live.
type PosterOptions struct {
	KeyPrefix  string
	PresignTTL time.Duration
}

// MovieCatalog manages movies and their posters.
type MovieCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Movie, error)
	List() repository.MovieQuery
	Create(ctx context.Context, edit domain.MovieEdit) (*domain.Movie, error)
	Update(ctx context.Context, id uuid.UUID, edit domain.MovieEdit) (*domain.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	AttachPoster(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*domain.Movie, error)
	PosterURL(ctx context.Context, id uuid.UUID) (string, error)
}

type movieCatalog struct {
	store   Store
	posters storage.Service
	opts    PosterOptions
	logger  logrus.FieldLogger
}

// NewMovieCatalog builds the catalog. posters may be nil, which disables poster operations.
func NewMovieCatalog(store Store, posters storage.Service, opts PosterOptions, logger logrus.FieldLogger) MovieCatalog {
	if opts.PresignTTL <= 0 {
		opts.PresignTTL = 15 * time.Minute
	}
	return &movieCatalog{
		store:   store,
		posters: posters,
		opts:    opts,
		logger:  fieldLogger(logger, "movies"),
	}
}

func (c *movieCatalog) Get(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	movie, err := c.store.Movies().GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get movie")
	}
	return movie, nil
}

// List returns a lazy query over the whole catalog.
func (c *movieCatalog) List() repository.MovieQuery {
	return c.store.Movies().Query()
}

// Create adds a movie. A duplicate title yields a *domain.ConflictError.
func (c *movieCatalog) Create(ctx context.Context, edit domain.MovieEdit) (*domain.Movie, error) {
	movie := &domain.Movie{
		Title:       edit.Title,
		Description: edit.Description,
	}
	if err := c.store.Movies().Create(ctx, movie); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.NewConflict("title", msgTitleExists)
		}
		return nil, errors.Wrap(err, "create movie")
	}
	return movie, nil
}

// Update replaces title and description. The stored movie is left untouched
// when the new title belongs to another movie.
func (c *movieCatalog) Update(ctx context.Context, id uuid.UUID, edit domain.MovieEdit) (*domain.Movie, error) {
	var updated *domain.Movie
	err := c.store.Execute(ctx, func(repos repository.Repositories) error {
		movies := repos.Movies()

		movie, err := movies.GetByID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "get movie")
		}

		if movie.Title != edit.Title {
			existing, err := movies.GetByTitle(ctx, edit.Title)
			switch {
			case err == nil && existing.ID != movie.ID:
				return domain.NewConflict("title", msgTitleExistsOnEdit)
			case err != nil && !errors.Is(err, domain.ErrNotFound):
				return errors.Wrap(err, "check title")
			}
		}

		movie.Title = edit.Title
		movie.Description = edit.Description
		if err := movies.Update(ctx, movie); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return domain.NewConflict("title", msgTitleExistsOnEdit)
			}
			return errors.Wrap(err, "update movie")
		}
		updated = movie
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the movie and reports how many rows went away. A stored
// poster is removed afterwards; failing to do so only logs a warning.
func (c *movieCatalog) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var posterKey string
	if movie, err := c.store.Movies().GetByID(ctx, id); err == nil {
		posterKey = movie.PosterKey
	} else if !errors.Is(err, domain.ErrNotFound) {
		return 0, errors.Wrap(err, "get movie")
	}

	n, err := c.store.Movies().Delete(ctx, id)
	if err != nil {
		return 0, errors.Wrap(err, "delete movie")
	}
	if n > 0 {
		c.dropPoster(ctx, posterKey)
	}
	return n, nil
}

// AttachPoster uploads body as the movie's poster, replacing any previous one.
func (c *movieCatalog) AttachPoster(ctx context.Context, id uuid.UUID, filename, contentType string, body io.Reader) (*domain.Movie, error) {
	if c.posters == nil {
		return nil, ErrStorageDisabled
	}
	movie, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	key := storage.PosterKey(c.opts.KeyPrefix, id, filename)
	if err := c.posters.Put(ctx, key, body, contentType); err != nil {
		return nil, errors.Wrap(err, "upload poster")
	}
	if err := c.store.Movies().SetPoster(ctx, id, key); err != nil {
		c.dropPoster(ctx, key)
		return nil, errors.Wrap(err, "save poster key")
	}

	c.dropPoster(ctx, movie.PosterKey)
	movie.PosterKey = key
	c.logger.WithFields(logrus.Fields{"movie_id": id, "key": key}).Info("poster attached")
	return movie, nil
}

// PosterURL returns a time limited download link for the movie's poster.
func (c *movieCatalog) PosterURL(ctx context.Context, id uuid.UUID) (string, error) {
	if c.posters == nil {
		return "", ErrStorageDisabled
	}
	movie, err := c.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if movie.PosterKey == "" {
		return "", errors.Wrap(domain.ErrNotFound, "movie has no poster")
	}
	url, err := c.posters.PresignGet(ctx, movie.PosterKey, c.opts.PresignTTL)
	if err != nil {
		return "", errors.Wrap(err, "presign poster")
	}
	return url, nil
}

func (c *movieCatalog) dropPoster(ctx context.Context, key string) {
	if key == "" || c.posters == nil {
		return
	}
	if err := c.posters.Delete(ctx, key); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("delete poster")
	}
}
