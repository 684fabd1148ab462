package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("fill.opacity", "must be between 0 and 1")

	if got := err.Error(); got != "validation: fill.opacity: must be between 0 and 1" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "rect.width", Message: "must be >= 0"},
		{Field: "scale.scale", Message: "must be > 0"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestNotFoundError_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("remove page: %w", NewNotFoundError("page", "p-1"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("errors.Is(err, ErrNotFound) = false")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("errors.As(err, *NotFoundError) = false")
	}
	if nf.Entity != "page" || nf.ID != "p-1" {
		t.Errorf("unexpected NotFoundError: %+v", nf)
	}
}

func TestInvalidOperationError(t *testing.T) {
	t.Parallel()

	err := NewInvalidOperationError("removePage", "document must keep at least one page")

	if got := err.Error(); got != "removePage: document must keep at least one page" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatal("errors.Is(err, ErrInvalidOperation) = false")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrInvalidOperation,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestFieldErrors_Prefix(t *testing.T) {
	t.Parallel()

	fe := fieldErrors{prefix: "pages[0]"}
	fe.add("pageName", "required")
	fe.merge("objects[1]", []FieldError{{Field: "fill.color", Message: "invalid"}})

	err := fe.err()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Errors[0].Field != "pages[0].pageName" {
		t.Errorf("field[0] = %q", ve.Errors[0].Field)
	}
	if ve.Errors[1].Field != "pages[0].objects[1].fill.color" {
		t.Errorf("field[1] = %q", ve.Errors[1].Field)
	}

	if (&fieldErrors{}).err() != nil {
		t.Error("empty fieldErrors should produce nil error")
	}
}
