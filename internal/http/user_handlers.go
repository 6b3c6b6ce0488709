package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"movie-library/internal/domain"
	"movie-library/internal/service"
	"movie-library/internal/validation"
)

type userResponse struct {
	Username  string  `json:"username"`
	Email     *string `json:"email"`
	CreatedAt string  `json:"dt_created"`
	UpdatedAt string  `json:"dt_updated"`
}

func userToResponse(user *domain.User) userResponse {
	return userResponse{
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handler) register(c *gin.Context) {
	var req validation.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	if err := validation.Check(req); err != nil {
		h.fail(c, err, "")
		return
	}

	_, err := h.users.Register(c.Request.Context(), service.RegistrationInput{
		Username: req.Username,
		Password: req.Password,
		Email:    &req.Email,
	})
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Successful registration!"})
}

// authenticate exchanges form encoded credentials for a bearer token.
func (h *Handler) authenticate(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		verr := &domain.ValidationError{}
		if username == "" {
			verr.Fields = append(verr.Fields, domain.FieldError{Field: "username", Tag: "required", Message: "field required"})
		}
		if password == "" {
			verr.Fields = append(verr.Fields, domain.FieldError{Field: "password", Tag: "required", Message: "field required"})
		}
		invalid(c, "body", verr)
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			unauthorized(c, msgBadLogin)
			return
		}
		h.fail(c, err, "")
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, userToResponse(currentUser(c)))
}

func (h *Handler) editUser(c *gin.Context) {
	var req validation.UserEdit
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}
	if err := validation.Check(req); err != nil {
		h.fail(c, err, "")
		return
	}

	edit := domain.UserEdit{Username: req.Username, Email: &req.Email}
	if req.Password != nil {
		hash, err := h.hasher.Hash(*req.Password)
		if err != nil {
			h.fail(c, err, "")
			return
		}
		edit.PasswordHash = &hash
	}

	if _, err := h.users.Update(c.Request.Context(), currentUser(c), edit); err != nil {
		h.fail(c, err, "")
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) takeout(c *gin.Context) {
	if _, err := h.users.Delete(c.Request.Context(), currentUser(c)); err != nil {
		h.fail(c, err, "")
		return
	}
	c.Status(http.StatusNoContent)
}
