package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound_MatchesSentinel(t *testing.T) {
	err := NotFound("snippet", "abc123")

	if !errors.Is(err, ErrNotFound) {
		t.Error("expected NotFound error to match ErrNotFound")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("NotFound error must not match ErrValidation")
	}
}

func TestValidationFailed_CarriesField(t *testing.T) {
	err := ValidationFailed("code", "code is required")

	if err.Field != "code" {
		t.Errorf("Field = %q, want %q", err.Field, "code")
	}
	if err.Error() != "code is required" {
		t.Errorf("Error() = %q, want %q", err.Error(), "code is required")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("expected validation error to match ErrValidation")
	}
}

func TestUnavailable_MatchesSentinel(t *testing.T) {
	err := Unavailable("assistant")

	if !errors.Is(err, ErrUnavailable) {
		t.Error("expected Unavailable error to match ErrUnavailable")
	}
}

func TestAppError_SurvivesWrapping(t *testing.T) {
	// Errors wrapped with %w at the service layer must still match their
	// sentinel when the handler inspects them.
	inner := ValidationFailed("name", "name is required")
	wrapped := fmt.Errorf("creating snippet: %w", inner)

	if !errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped error lost its ErrValidation sentinel")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As failed to extract *AppError from wrapped chain")
	}
	if appErr.Message != "name is required" {
		t.Errorf("Message = %q, want %q", appErr.Message, "name is required")
	}
}
