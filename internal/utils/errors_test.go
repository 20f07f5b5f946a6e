package utils

import (
	"errors"
	"strings"
	"testing"
)

// TestErrorWithSuggestionImplementsError verifies interface compliance
func TestErrorWithSuggestionImplementsError(t *testing.T) {
	var _ error = &ErrorWithSuggestion{}
}

// TestErrorWithSuggestionError verifies Error() method output
func TestErrorWithSuggestionError(t *testing.T) {
	err := &ErrorWithSuggestion{
		Err:        errors.New("something went wrong"),
		Suggestion: "Try doing X",
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "something went wrong") {
		t.Errorf("Error() should contain error message, got: %s", errStr)
	}
	if !strings.Contains(errStr, "Suggestion: Try doing X") {
		t.Errorf("Error() should contain suggestion text, got: %s", errStr)
	}
}

// TestErrorWithSuggestionUnwrap verifies Unwrap() for error chain
func TestErrorWithSuggestionUnwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	wrapped := WrapWithSuggestion(underlying, "suggestion")

	if !errors.Is(wrapped, underlying) {
		t.Error("wrapped error should match underlying error")
	}

	var errWithSuggestion *ErrorWithSuggestion
	if !errors.As(wrapped, &errWithSuggestion) {
		t.Fatal("WrapWithSuggestion should return *ErrorWithSuggestion")
	}
	if errWithSuggestion.GetSuggestion() != "suggestion" {
		t.Errorf("GetSuggestion() = %q, want %q", errWithSuggestion.GetSuggestion(), "suggestion")
	}
}

// TestErrorConstructors verifies every constructor carries message and suggestion
func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"todo not found", ErrTodoNotFound(42), "42"},
		{"invalid id", ErrInvalidID("abc"), "abc"},
		{"empty title", ErrEmptyTitle(), "empty"},
		{"title too long", ErrTitleTooLong(40, 38), "40"},
		{"backend not configured", ErrBackendNotConfigured("redis"), "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("error should contain %q, got: %s", tt.contains, tt.err.Error())
			}
			var errWithSuggestion *ErrorWithSuggestion
			if !errors.As(tt.err, &errWithSuggestion) {
				t.Fatal("should return *ErrorWithSuggestion")
			}
			if errWithSuggestion.GetSuggestion() == "" {
				t.Error("should have a suggestion")
			}
		})
	}
}
