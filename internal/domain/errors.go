package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrValidation       = errors.New("validation error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
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

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// NotFoundError names the entity and id that could not be resolved.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidOperationError reports a command that is well-formed but not
// permitted in the current state.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *InvalidOperationError) Unwrap() error { return ErrInvalidOperation }

// NewInvalidOperationError creates an InvalidOperationError.
func NewInvalidOperationError(op, reason string) *InvalidOperationError {
	return &InvalidOperationError{Op: op, Reason: reason}
}

// fieldErrors accumulates FieldErrors under a dotted prefix.
type fieldErrors struct {
	prefix string
	errs   []FieldError
}

func (f *fieldErrors) add(field, message string) {
	if f.prefix != "" {
		field = f.prefix + "." + field
	}
	f.errs = append(f.errs, FieldError{Field: field, Message: message})
}

func (f *fieldErrors) merge(prefix string, errs []FieldError) {
	for _, e := range errs {
		if prefix != "" {
			e.Field = prefix + "." + e.Field
		}
		if f.prefix != "" {
			e.Field = f.prefix + "." + e.Field
		}
		f.errs = append(f.errs, e)
	}
}

func (f *fieldErrors) err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return NewValidationErrors(f.errs)
}
