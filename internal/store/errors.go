package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced id, path, or name does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed or missing required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ConflictError reports an operation that would collide with existing state,
// such as renaming a folder onto an existing path.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
