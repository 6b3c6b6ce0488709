package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movie-library/internal/domain"
)

func (h *Handler) listFavorites(c *gin.Context) {
	h.paginate(c, h.favorites.List(currentUser(c)))
}

func (h *Handler) addFavorite(c *gin.Context) {
	// an id that does not parse cannot name a movie
	movieID, err := uuid.Parse(c.Param("movie_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": msgMovieNotFound})
		return
	}

	outcome, err := h.favorites.Add(c.Request.Context(), currentUser(c), movieID)
	if err != nil {
		h.fail(c, err, msgMovieNotFound)
		return
	}
	if outcome == domain.FavoriteAlreadyExists {
		c.JSON(http.StatusBadRequest, gin.H{"detail": msgAlreadyFavorite})
		return
	}
	c.Status(http.StatusCreated)
}

func (h *Handler) removeFavorite(c *gin.Context) {
	movieID, ok := pathID(c, "movie_id")
	if !ok {
		return
	}
	if _, err := h.favorites.Remove(c.Request.Context(), currentUser(c), movieID); err != nil {
		h.fail(c, err, "")
		return
	}
	c.Status(http.StatusNoContent)
}
