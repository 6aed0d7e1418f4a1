package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a missing entity.
	ErrNotFound = errors.New("not found")
	// ErrForbidden reports an operation on an entity the caller does not own.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports a malformed or out-of-range request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
