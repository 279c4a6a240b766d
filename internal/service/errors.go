package service

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/leads-service/internal/docstore"
	apperrors "github.com/spec-kit/leads-service/pkg/util"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// storeError translates document store failures into the error taxonomy.
func storeError(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrNotFound):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, docstore.ErrUnavailable):
		return apperrors.NewStorageUnavailable("", err)
	default:
		return apperrors.NewInternalError(err)
	}
}

// validationError reports each failing field with the rule it broke.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[snakeCase(fe.Field())] = fe.Tag()
	}
	return apperrors.NewValidationError("invalid payload", details)
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
