package domain

import (
	"errors"
	"strings"
)

// ErrNotFound marks a lookup for a missing entity. API handlers map it to
// a 404 response, distinct from validation failures.
var ErrNotFound = errors.New("record not found")

// ValidationError carries one or more human readable input problems.
// It maps to a 422 response and is never retried.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// NewValidationError builds a ValidationError from messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
