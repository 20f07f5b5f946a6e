package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInvalidRoute is returned for paths that name no screen.
var ErrInvalidRoute = errors.New("invalid route")

// Screen identifies a destination.
type Screen int

const (
	ScreenList Screen = iota
	ScreenEdit
)

// Route is a parsed navigation target: "/" or "/todos/{id}".
type Route struct {
	Screen Screen
	ID     int
}

// ListRoute is the list screen.
var ListRoute = Route{Screen: ScreenList}

// EditRoute is the edit screen for id.
func EditRoute(id int) Route {
	return Route{Screen: ScreenEdit, ID: id}
}

// ParseRoute parses a path. The id segment must be a number.
func ParseRoute(path string) (Route, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return ListRoute, nil
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || parts[0] != "todos" {
		return Route{}, fmt.Errorf("%w: %q", ErrInvalidRoute, path)
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return Route{}, fmt.Errorf("%w: %q: id is not a number", ErrInvalidRoute, path)
	}
	return EditRoute(id), nil
}

// Path renders the route back to its path.
func (r Route) Path() string {
	if r.Screen == ScreenEdit {
		return "/todos/" + strconv.Itoa(r.ID)
	}
	return "/"
}

func (r Route) String() string {
	return r.Path()
}

// navigateMsg asks the root model to switch screens.
type navigateMsg struct {
	route Route
}

// navigate returns a command that switches to route.
func navigate(route Route) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{route: route}
	}
}
