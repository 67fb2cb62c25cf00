package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("invalid catalog entry")

var validate = validator.New()

func validateStruct(kind string, id int, data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%s %d: %w", kind, id, err)
	}
	var msgs []string
	for _, fieldErr := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fieldErr.Field(), errorMessage(fieldErr)))
	}
	return fmt.Errorf("%w: %s %d: %s", ErrInvalid, kind, id, strings.Join(msgs, "; "))
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("needs at least %s entries", err.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "lowercase":
		return "must be a lowercase slug"
	case "oneof":
		return fmt.Sprintf("%q is not one of %s", err.Value(), err.Param())
	default:
		return fmt.Sprintf("failed %s", err.Tag())
	}
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
