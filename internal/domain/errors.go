package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers. The typed errors below unwrap to
// them so callers can match a kind with errors.Is without knowing the message.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation error")
	ErrStore        = errors.New("store error")
	ErrUnauthorized = errors.New("unauthorized")
)

// NotFoundError reports a target or parent entity that is absent, soft-deleted
// or owned by another user. Message is user-facing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound creates a NotFoundError with a user-facing message.
func NewNotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// ConflictError reports a business-rule violation that is not a shape problem.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflict creates a ConflictError with a user-facing message.
func NewConflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// ErrOrNil returns e when at least one field error was collected, nil otherwise.
// The explicit nil keeps a typed nil pointer out of the error interface.
func (e *ValidationError) ErrOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// StoreError wraps an unexpected failure from the backing store. Its detail is
// meant for logs only.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }

// Unwrap exposes both the store sentinel and the underlying cause.
func (e *StoreError) Unwrap() []error { return []error{ErrStore, e.Err} }

// UnauthorizedError reports missing or rejected credentials. Message is user-facing.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }
func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

func NewUnauthorized(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}
