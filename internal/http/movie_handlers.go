package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"movie-library/internal/domain"
	"movie-library/internal/validation"
)

type movieResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
}

func movieToResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Description: movie.Description,
	}
}

// pathID parses a uuid path parameter, writing a 422 when it is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		invalid(c, "path", validation.Invalid(name, "uuid", msgInvalidUUID))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) bindMovie(c *gin.Context) (domain.MovieEdit, bool) {
	var req validation.Movie
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return domain.MovieEdit{}, false
	}
	if err := validation.Check(req); err != nil {
		h.fail(c, err, "")
		return domain.MovieEdit{}, false
	}
	return domain.MovieEdit{Title: req.Title, Description: &req.Description}, true
}

func (h *Handler) listMovies(c *gin.Context) {
	h.paginate(c, h.movies.List())
}

func (h *Handler) getMovie(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	movie, err := h.movies.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, msgMovieNotFound)
		return
	}
	c.JSON(http.StatusOK, movieToResponse(*movie))
}

func (h *Handler) createMovie(c *gin.Context) {
	edit, ok := h.bindMovie(c)
	if !ok {
		return
	}
	movie, err := h.movies.Create(c.Request.Context(), edit)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, movieToResponse(*movie))
}

func (h *Handler) editMovie(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	edit, ok := h.bindMovie(c)
	if !ok {
		return
	}
	if _, err := h.movies.Update(c.Request.Context(), id, edit); err != nil {
		h.fail(c, err, msgMovieMissing)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) deleteMovie(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.movies.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) uploadPoster(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		invalid(c, "body", validation.Invalid("file", "required", "field required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		h.fail(c, err, "")
		return
	}
	defer file.Close()

	_, err = h.movies.AttachPoster(c.Request.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		h.fail(c, err, msgMovieNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) posterRedirect(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	url, err := h.movies.PosterURL(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, msgPosterNotFound)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}
