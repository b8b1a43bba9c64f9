package api

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator adapts go-playground/validator to echo.Validator and
// reports fields by their json or query names.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &requestValidator{validate: v}
}

// Validate implements echo.Validator.
func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	return newValidationError(fieldErrs)
}

// ValidationError lists user-facing messages per offending field.
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, e.Errors[field])
	}
	return "validation failed: " + strings.Join(messages, "; ")
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	out := make(map[string]string, len(errs))
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "excludesall":
			out[field] = fmt.Sprintf("%s must not contain commas", field)
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return &ValidationError{Errors: out}
}
