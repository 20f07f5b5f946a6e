package utils

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseTodoID parses a todo id argument. Ids are positive integers.
func ParseTodoID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 1 {
		return 0, ErrInvalidID(s)
	}
	return id, nil
}

// ValidateTitle checks a title typed on the command line: it must not be
// blank and must fit within limit characters.
func ValidateTitle(title string, limit int) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle()
	}
	if n := utf8.RuneCountInString(title); n > limit {
		return ErrTitleTooLong(n, limit)
	}
	return nil
}
