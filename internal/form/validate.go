// internal/form/validate.go
//
// Server-side validation of JSON payloads.
//
// Context
//   Public and console endpoints decode a JSON body into a typed struct
//   (content.EnquiryInput, content.Course, …) whose `validate` tags carry the
//   rules.  This file runs go-playground/validator over the struct and turns
//   its errors into []ErrorField keyed by the JSON field name, so clients can
//   highlight the exact input that failed.
//
// Workflow
//   •  Validate returns nil or a validationError wrapping []ErrorField.
//   •  Callers distinguish user input errors from system failures via
//      IsValidationError and read the fields with Fields.
//
// Style
//   Full sentences, two space spacing, Oxford comma.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// -----------------------------------------------------------------------------
// Error types
// -----------------------------------------------------------------------------

// ErrorField describes a single validation failure.
type ErrorField struct {
	Name    string `json:"field"`   // JSON field name
	Message string `json:"message"` // user-facing message
}

// validationError wraps []ErrorField and satisfies the error interface.
type validationError struct{ Fields []ErrorField }

func (ve validationError) Error() string { return "form validation failed" }

// -----------------------------------------------------------------------------
// Validator instance
// -----------------------------------------------------------------------------

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return val
}

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// Validate checks s against its `validate` tags.
func Validate(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]ErrorField, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, ErrorField{Name: fe.Field(), Message: message(fe)})
	}
	return validationError{Fields: fields}
}

// Invalid builds a validation error for a single field.
func Invalid(field, msg string) error {
	return validationError{Fields: []ErrorField{{Name: field, Message: msg}}}
}

// IsValidationError reports whether err came from failed validation.
func IsValidationError(err error) bool {
	var ve validationError
	return errors.As(err, &ve)
}

// Fields returns the field errors carried by err, or nil.
func Fields(err error) []ErrorField {
	var ve validationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// -----------------------------------------------------------------------------
// Messages
// -----------------------------------------------------------------------------

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return "Invalid input."
	}
}
