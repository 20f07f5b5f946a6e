package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTodoIDValid(t *testing.T) {
	tests := map[string]int{"1": 1, "42": 42, " 7 ": 7}
	for in, want := range tests {
		got, err := ParseTodoID(in)
		if err != nil {
			t.Errorf("ParseTodoID(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseTodoID(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseTodoIDInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseTodoID(in)
		if err == nil {
			t.Errorf("ParseTodoID(%q) should fail", in)
			continue
		}
		var errWithSuggestion *ErrorWithSuggestion
		if !errors.As(err, &errWithSuggestion) {
			t.Errorf("ParseTodoID(%q) should return *ErrorWithSuggestion", in)
		}
	}
}

func TestValidateTitle(t *testing.T) {
	if err := ValidateTitle("Buy milk", 38); err != nil {
		t.Errorf("ValidateTitle() error = %v", err)
	}
	if err := ValidateTitle(strings.Repeat("a", 38), 38); err != nil {
		t.Errorf("title at the limit should be valid, got %v", err)
	}
	if err := ValidateTitle(strings.Repeat("é", 38), 38); err != nil {
		t.Errorf("limit counts characters, not bytes, got %v", err)
	}
	if err := ValidateTitle(strings.Repeat("a", 39), 38); err == nil {
		t.Error("title over the limit should be rejected")
	}
	if err := ValidateTitle("   ", 38); err == nil {
		t.Error("blank title should be rejected")
	}
}
