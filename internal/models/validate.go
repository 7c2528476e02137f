package models

import "fmt"

// MaxNotesLen bounds free-text notes on entries and expenses.
const MaxNotesLen = 5000

// ValidationError describes a single rejected field. It is returned (never
// panicked) before any persistence attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
