package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestBlockNotFoundWrapsSentinel(t *testing.T) {
	err := fmt.Errorf("modify sizes: %w", NewBlockNotFound("Size", 3))

	if !errors.Is(err, ErrBlockNotFound) {
		t.Fatalf("errors.Is(%v, ErrBlockNotFound) = false", err)
	}
	if got := BlockName(err); got != "Size" {
		t.Errorf("BlockName = %q, want %q", got, "Size")
	}
	if BlockName(ErrFormat) != "" {
		t.Errorf("BlockName of a plain sentinel should be empty")
	}
}

func TestValidationErrorWrapsSentinel(t *testing.T) {
	err := Validationf("sizes", "expected %d values, got %d", 3, 2)

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("errors.Is(%v, ErrValidation) = false", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("errors.As ValidationError failed")
	}
	if ve.Field != "sizes" || ve.Reason != "expected 3 values, got 2" {
		t.Errorf("unexpected validation error fields: %+v", ve)
	}
}
