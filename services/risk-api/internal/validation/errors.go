package validation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nimeshabuddhika/credit-risk-api/pkg"
)

var messages = map[string]string{
	"required":          "is required",
	"gt":                "must be greater than %s",
	"gte":               "must be greater than or equal to %s",
	"ext_source":        "must be between 0 and 1 or null",
	"client_age":        fmt.Sprintf("must be between %d and %d", MinClientAge, MaxClientAge),
	"education_type":    "must be one of the supported education types",
	"organization_type": "must be one of the supported organization types",
	"type":              "must be a %s",
}

func message(rule, param string) string {
	m, ok := messages[rule]
	if !ok {
		return "failed " + rule
	}
	if param != "" {
		return fmt.Sprintf(m, param)
	}
	return m
}

// ToAppError converts a binding error into a 422 AppError naming each offending field.
// Malformed JSON that is not a field error becomes a 400.
func ToAppError(err error) error {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make([]pkg.FieldError, 0, len(vErrs))
		for _, fe := range vErrs {
			fields = append(fields, pkg.FieldError{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: message(fe.Tag(), fe.Param()),
			})
		}
		return pkg.NewValidationError(fields, err)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return pkg.NewValidationError([]pkg.FieldError{{
			Field:   typeErr.Field,
			Rule:    "type",
			Param:   typeErr.Type.String(),
			Message: message("type", typeErr.Type.String()),
		}}, err)
	}
	return pkg.NewAppError(pkg.ErrInvalidInputCode, "invalid request body", err)
}
