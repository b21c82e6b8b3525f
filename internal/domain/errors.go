package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden indicates the caller is authenticated but not allowed to
	// perform the operation. Kept distinct from validation errors so clients
	// can tell "fix your input" from "you may not do this".
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a missing or malformed input field. It is always
// resolved locally, before any collaborator call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Required returns a ValidationError for a missing field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// Invalid returns a ValidationError with a reason.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
