package utils

import (
	"errors"
	"fmt"
)

// ErrorWithSuggestion wraps an error with a user-friendly suggestion.
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface.
func (e *ErrorWithSuggestion) Error() string {
	return fmt.Sprintf("%s\n\nSuggestion: %s", e.Err.Error(), e.Suggestion)
}

// GetSuggestion returns the suggestion text.
func (e *ErrorWithSuggestion) GetSuggestion() string {
	return e.Suggestion
}

// Unwrap returns the underlying error for error chain support.
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// WrapWithSuggestion wraps an existing error with a suggestion.
func WrapWithSuggestion(err error, suggestion string) error {
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// ErrTodoNotFound returns an error for when no todo has the given id.
func ErrTodoNotFound(id int) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("todo not found: %d", id),
		Suggestion: "Check the id with 'todopad ls'",
	}
}

// ErrInvalidID returns an error for an id argument that is not a positive number.
func ErrInvalidID(s string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("invalid todo id: %q", s),
		Suggestion: "Ids are positive whole numbers, as shown by 'todopad ls'",
	}
}

// ErrEmptyTitle returns an error for a blank title.
func ErrEmptyTitle() error {
	return &ErrorWithSuggestion{
		Err:        errors.New("title is empty"),
		Suggestion: "Pass the title as arguments, e.g. todopad add \"Buy milk\"",
	}
}

// ErrTitleTooLong returns an error for a title over the input limit.
func ErrTitleTooLong(length, limit int) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("title is %d characters long", length),
		Suggestion: fmt.Sprintf("Titles are limited to %d characters", limit),
	}
}

// ErrBackendNotConfigured returns an error when a storage backend is unknown.
func ErrBackendNotConfigured(name string) error {
	return &ErrorWithSuggestion{
		Err:        fmt.Errorf("storage backend not configured: %s", name),
		Suggestion: "Set storage.backend to sqlite, file or memory in your config file",
	}
}
