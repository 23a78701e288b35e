package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidField marks every field-level parse or domain failure.
	ErrInvalidField = errors.New("invalid field value")

	// ErrUnknownField indicates a field name outside the registry.
	ErrUnknownField = errors.New("unknown field")
)

// FieldError describes one rejected field value.
type FieldError struct {
	Field  FieldName
	Raw    string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Reason, e.Raw)
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }

// ValidationError aggregates the field errors of a whole Assessment.
type ValidationError struct {
	Problems []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Error()
	}
	return "assessment is not well-formed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidField }
