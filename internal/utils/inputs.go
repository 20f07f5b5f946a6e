package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the reader is exhausted before a line is read.
var ErrNoInput = errors.New("no input")

// PromptYesNoWithReader prompts for yes/no until a valid answer is read.
// EOF counts as no.
func PromptYesNoWithReader(prompt string, reader io.Reader, writer io.Writer) bool {
	scanner := bufio.NewScanner(reader)

	for {
		_, _ = fmt.Fprintf(writer, "%s (y/n): ", prompt)
		if !scanner.Scan() {
			return false
		}

		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}

// PromptLineWithReader writes prompt and reads one line. The line is
// returned without its newline but otherwise untouched.
func PromptLineWithReader(prompt string, reader io.Reader, writer io.Writer) (string, error) {
	_, _ = fmt.Fprint(writer, prompt)
	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return strings.TrimRight(scanner.Text(), "\r"), nil
}
