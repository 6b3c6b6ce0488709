package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movie-library/internal/domain"
	"movie-library/internal/repository"
	"movie-library/internal/validation"
)

type pageResponse struct {
	Items []movieResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Pages int64           `json:"pages"`
}

func parsePage(c *gin.Context) (validation.Page, error) {
	page := validation.NewPage()
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &page.Page}, {"size", &page.Size}} {
		raw, ok := c.GetQuery(p.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, validation.Invalid(p.name, "int", "value is not a valid integer")
		}
		*p.dst = n
	}

	return page, validation.Check(page)
}

// paginate evaluates q for the requested page and writes the page body.
func (h *Handler) paginate(c *gin.Context, q repository.MovieQuery) {
	page, err := parsePage(c)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			invalid(c, "query", verr)
			return
		}
		h.fail(c, err, "")
		return
	}

	ctx := c.Request.Context()
	total, err := q.Count(ctx)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	movies, err := q.Fetch(ctx, page.Size, page.Offset())
	if err != nil {
		h.fail(c, err, "")
		return
	}

	items := make([]movieResponse, len(movies))
	for i := range movies {
		items[i] = movieToResponse(movies[i])
	}
	size := int64(page.Size)
	c.JSON(http.StatusOK, pageResponse{
		Items: items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
		Pages: (total + size - 1) / size,
	})
}
