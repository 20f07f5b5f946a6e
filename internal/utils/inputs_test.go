package utils

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// TestPromptYesNo verifies accepted answers
func TestPromptYesNo(t *testing.T) {
	tests := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		"  y  \n": true,
		"n\n":     false,
		"No\n":    false,
		"":        false,
	}
	for input, want := range tests {
		got := PromptYesNoWithReader("Delete?", strings.NewReader(input), io.Discard)
		if got != want {
			t.Errorf("PromptYesNo with input %q = %v, want %v", input, got, want)
		}
	}
}

// TestPromptYesNoRetryOnInvalid verifies loop until valid input
func TestPromptYesNoRetryOnInvalid(t *testing.T) {
	var output bytes.Buffer
	result := PromptYesNoWithReader("Delete?", strings.NewReader("maybe\ny\n"), &output)
	if !result {
		t.Error("PromptYesNo should return true after valid 'y' input")
	}
	if strings.Count(output.String(), "Delete?") < 2 {
		t.Error("PromptYesNo should re-prompt on invalid input")
	}
}

func TestPromptLine(t *testing.T) {
	var output bytes.Buffer
	line, err := PromptLineWithReader("Title: ", strings.NewReader("  Buy milk \r\nnext\n"), &output)
	if err != nil {
		t.Fatalf("PromptLine() error = %v", err)
	}
	if line != "  Buy milk " {
		t.Errorf("PromptLine() = %q, want %q", line, "  Buy milk ")
	}
	if output.String() != "Title: " {
		t.Errorf("prompt not written, got %q", output.String())
	}

	if _, err := PromptLineWithReader("Title: ", strings.NewReader(""), io.Discard); !errors.Is(err, ErrNoInput) {
		t.Errorf("empty reader error = %v, want ErrNoInput", err)
	}
}
