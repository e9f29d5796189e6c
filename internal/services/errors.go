package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when an operation requires an actor
	// and none was supplied
	ErrUnauthenticated = errors.New("authentication required")

	// ErrPermissionDenied is returned when the permission gate denies an
	// authenticated actor
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError is a field-level validation failure; no partial write
// occurs when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
