package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the sentinel wrapped by every ValidationError.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError reports a field-level validation failure. Mutations that
// return one leave the entity untouched.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match against ErrInvalidArgument.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArgument(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
