package services

import (
	"errors"
	"fmt"
)

// The service layer fails with exactly one of these. Handlers translate them
// to HTTP statuses in one place; a *storage.Error passes through untouched
// and surfaces as a 500.
var (
	// ErrNotFound means the id does not resolve at all within the caller's
	// scope.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the id exists but belongs to a different owner.
	// The two cases are deliberately distinct: a cross-owner probe gets 403,
	// a genuinely absent id gets 404.
	ErrForbidden = errors.New("forbidden")

	// ErrUnsupportedForView means the document is owned correctly but its
	// type cannot be rendered inline; callers fall back to download.
	ErrUnsupportedForView = errors.New("document type cannot be viewed inline")
)

// ValidationError reports a rejected input before any I/O has happened.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
