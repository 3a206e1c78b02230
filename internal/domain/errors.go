// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: no record with that id exists under the caller's owner scope.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the referenced record belongs to a different owner.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError rejects malformed input before any storage call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
