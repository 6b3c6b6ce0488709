package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"movie-library/internal/domain"
	"movie-library/internal/service"
	"movie-library/internal/validation"
)

const (
	msgBadCredentials   = "Could not validate credentials."
	msgBadLogin         = "Incorrect username or password."
	msgMovieNotFound    = "Movie not found!"
	msgMovieMissing     = "Movie does not exist!"
	msgPosterNotFound   = "Poster not found!"
	msgAlreadyFavorite  = "Movie is already in favorites!"
	msgStorageDisabled  = "Poster storage is not configured."
	msgInternal         = "Internal server error."
	msgInvalidUUID      = "value is not a valid uuid"
	msgInvalidJSONInput = "body is not valid JSON for this endpoint"
)

type errorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// fail writes the response for err. notFound is the detail used when err wraps domain.ErrNotFound.
func (h *Handler) fail(c *gin.Context, err error, notFound string) {
	var (
		verr     *domain.ValidationError
		conflict *domain.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		invalid(c, "body", verr)
	case errors.Is(err, domain.ErrUnauthorized):
		unauthorized(c, msgBadCredentials)
	case errors.As(err, &conflict):
		c.JSON(http.StatusBadRequest, gin.H{"detail": conflict.Message})
	case errors.Is(err, domain.ErrNotFound):
		if notFound == "" {
			notFound = "Not found."
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": notFound})
	case errors.Is(err, service.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": msgStorageDisabled})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": msgInternal})
	}
}

// invalid writes a 422 listing every rejected field under location.
func invalid(c *gin.Context, location string, verr *domain.ValidationError) {
	details := make([]errorDetail, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		details = append(details, errorDetail{
			Loc:  []string{location, f.Field},
			Msg:  f.Message,
			Type: f.Tag,
		})
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": details})
}

func badBody(c *gin.Context) {
	invalid(c, "body", validation.Invalid("body", "json", msgInvalidJSONInput))
}
