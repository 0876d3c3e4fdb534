package apperror

import (
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error is the uniform error container used across handlers instead of
// ad-hoc error shapes: a message, the HTTP status to respond with, and
// optional diagnostic details (e.g. the underlying database error).
type Error struct {
	Name       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, statusCode int) *Error {
	return &Error{
		Name:       "Error",
		Message:    message,
		StatusCode: statusCode,
	}
}

func WithDetails(message string, statusCode int, details map[string]interface{}) *Error {
	return &Error{
		Name:       "Error",
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Status returns the carried status code, defaulting to 500 when unset.
func (e *Error) Status() int {
	if e.StatusCode == 0 {
		return http.StatusInternalServerError
	}
	return e.StatusCode
}

// FieldError is one entry of a field-keyed validation failure map.
type FieldError struct {
	Message string      `json:"message"`
	Kind    string      `json:"kind"`
	Path    string      `json:"path"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationError signals that a payload was rejected against the
// schema rules. Fields maps field name to its failure.
type ValidationError struct {
	Fields map[string]FieldError
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}

func NewValidation(fields map[string]FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// FromOzzo converts an ozzo-validation error into a ValidationError,
// preserving the per-field messages. Non-field errors come back as a
// generic 400.
func FromOzzo(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		return New(err.Error(), http.StatusBadRequest)
	}
	fields := make(map[string]FieldError, len(errs))
	for field, ferr := range errs {
		fields[field] = FieldError{
			Message: fmt.Sprintf("%s %s", field, ferr.Error()),
			Kind:    "invalid",
			Path:    field,
		}
	}
	return NewValidation(fields)
}

// DuplicateKeyError signals a uniqueness-constraint violation reported
// by the data store.
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s must be unique. %q is already taken.", e.Field, e.Value)
}

func NewDuplicateKey(field, value string) *DuplicateKeyError {
	return &DuplicateKeyError{Field: field, Value: value}
}
