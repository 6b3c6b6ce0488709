// Package validation checks request payloads before they reach the services.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"movie-library/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// Registration is the sign-up payload.
type Registration struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
}

// UserEdit is the profile change payload. A nil Password keeps the current one.
type UserEdit struct {
	Username string  `json:"username" validate:"required"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Email    string  `json:"email" validate:"required,email"`
}

// Movie is the create and edit payload for catalog entries.
type Movie struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Page selects a slice of a listing.
type Page struct {
	Page int `json:"page" validate:"min=1"`
	Size int `json:"size" validate:"min=1,max=100"`
}

// NewPage returns a Page with the default values.
func NewPage() Page {
	return Page{Page: DefaultPage, Size: DefaultPageSize}
}

// Offset is the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Size
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(pageInRange, Page{})
	return v
}

// pageInRange rejects page numbers whose offset does not fit in an int.
func pageInRange(sl validator.StructLevel) {
	p := sl.Current().Interface().(Page)
	if p.Page < 1 || p.Size < 1 {
		return
	}
	if last := math.MaxInt/p.Size + 1; p.Page > last {
		sl.ReportError(p.Page, "page", "Page", "max", strconv.Itoa(last))
	}
}

// Check validates v and returns a *domain.ValidationError listing every failed field.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

// Invalid builds a single field validation failure, for input rejected before Check runs.
func Invalid(field, tag, msg string) *domain.ValidationError {
	return &domain.ValidationError{Fields: []domain.FieldError{{Field: field, Tag: tag, Message: msg}}}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
