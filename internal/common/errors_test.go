package common

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := NewValidationError("title", "must be 3-500 characters")

	if !errors.Is(err, ErrorValidation) {
		t.Fatalf("expected errors.Is(err, ErrorValidation) to be true")
	}
	if got, want := err.Error(), "title: must be 3-500 characters"; got != want {
		t.Fatalf("unexpected message: got %q want %q", got, want)
	}
}

func TestValidationError_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create project: %w", NewValidationError("description", "too long"))

	if !errors.Is(err, ErrorValidation) {
		t.Fatalf("wrapped validation error must still match ErrorValidation")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "description" {
		t.Fatalf("expected to recover field name, got %+v", ve)
	}
}

func TestRateLimitError_MatchesSentinel(t *testing.T) {
	err := &RateLimitError{RetryAfter: 5 * time.Minute}

	if !errors.Is(err, ErrorRateLimited) {
		t.Fatalf("expected errors.Is(err, ErrorRateLimited) to be true")
	}
	if got, want := err.Error(), "too many attempts, retry in 5m0s"; got != want {
		t.Fatalf("unexpected message: got %q want %q", got, want)
	}
}
