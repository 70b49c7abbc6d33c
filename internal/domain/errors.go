package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (document, project)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NotFound builds a wrapped ErrNotFound for the given resource type and id.
func NotFound(resourceType, id string) error {
	return fmt.Errorf("%s %s: %w", resourceType, id, ErrNotFound)
}

// Invalid wraps a validation failure so handlers can map it to 400.
func Invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
