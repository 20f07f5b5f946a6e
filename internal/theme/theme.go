// Package theme resolves the light and dark palettes and holds the
// current color scheme. Screens receive a *State at construction.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ColorScheme is the light/dark preference.
type ColorScheme int

const (
	Light ColorScheme = iota
	Dark
)

func (c ColorScheme) String() string {
	if c == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the other scheme.
func (c ColorScheme) Toggle() ColorScheme {
	if c == Dark {
		return Light
	}
	return Dark
}

// ParseScheme parses a configured theme value. "auto" and "" report
// ok=false, meaning the scheme should be detected.
func ParseScheme(s string) (scheme ColorScheme, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, true, nil
	case "dark":
		return Dark, true, nil
	case "", "auto":
		return Light, false, nil
	default:
		return Light, false, fmt.Errorf("invalid theme %q: expected auto, light or dark", s)
	}
}

// Theme is a resolved palette plus the styles built from it.
type Theme struct {
	Scheme ColorScheme

	Background lipgloss.Color
	Text       lipgloss.Color
	Button     lipgloss.Color
	ButtonText lipgloss.Color
	Muted      lipgloss.Color
	Danger     lipgloss.Color
	Border     lipgloss.Color

	// Icon marks the current scheme on the toggle: a sun or a moon.
	Icon string

	App          lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Action       lipgloss.Style
	CancelAction lipgloss.Style
	Item         lipgloss.Style
	Completed    lipgloss.Style
	Selected     lipgloss.Style
	Delete       lipgloss.Style
	Toggle       lipgloss.Style
	Help         lipgloss.Style
}

type palette struct {
	background, text, button, buttonText, muted, danger, border string
	icon                                                         string
}

var palettes = map[ColorScheme]palette{
	Light: {
		background: "#FFFFFF",
		text:       "#11181C",
		button:     "#11181C",
		buttonText: "#FFFFFF",
		muted:      "#808080",
		danger:     "#FF0000",
		border:     "#CCCCCC",
		icon:       "☀",
	},
	Dark: {
		background: "#151718",
		text:       "#ECEDEE",
		button:     "#ECEDEE",
		buttonText: "#000000",
		muted:      "#808080",
		danger:     "#FF0000",
		border:     "#CCCCCC",
		icon:       "☾",
	},
}

// Resolve returns the theme for scheme.
func Resolve(scheme ColorScheme) Theme {
	p, ok := palettes[scheme]
	if !ok {
		scheme, p = Light, palettes[Light]
	}

	t := Theme{
		Scheme:     scheme,
		Background: lipgloss.Color(p.background),
		Text:       lipgloss.Color(p.text),
		Button:     lipgloss.Color(p.button),
		ButtonText: lipgloss.Color(p.buttonText),
		Muted:      lipgloss.Color(p.muted),
		Danger:     lipgloss.Color(p.danger),
		Border:     lipgloss.Color(p.border),
		Icon:       p.icon,
	}

	t.App = lipgloss.NewStyle().
		Background(t.Background).
		Foreground(t.Text).
		Padding(1, 2)
	t.Input = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	t.InputFocused = t.Input.BorderForeground(t.Text)
	t.Action = lipgloss.NewStyle().
		Background(t.Button).
		Foreground(t.ButtonText).
		Padding(0, 2)
	t.CancelAction = t.Action.
		Background(t.Danger).
		Foreground(lipgloss.Color("#FFFFFF"))
	t.Item = lipgloss.NewStyle().Foreground(t.Text)
	t.Completed = lipgloss.NewStyle().
		Foreground(t.Muted).
		Strikethrough(true)
	t.Selected = lipgloss.NewStyle().Bold(true)
	t.Delete = lipgloss.NewStyle().Foreground(t.Danger)
	t.Toggle = lipgloss.NewStyle().Foreground(t.Text)
	t.Help = lipgloss.NewStyle().Foreground(t.Muted)
	return t
}

// State is the current color scheme shared by the screens.
type State struct {
	mu     sync.RWMutex
	scheme ColorScheme
}

// NewState creates a state starting at scheme.
func NewState(scheme ColorScheme) *State {
	return &State{scheme: scheme}
}

// Scheme returns the current scheme.
func (s *State) Scheme() ColorScheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheme
}

// Toggle flips the scheme and returns the new one.
func (s *State) Toggle() ColorScheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheme = s.scheme.Toggle()
	return s.scheme
}

// Theme resolves the current scheme.
func (s *State) Theme() Theme {
	return Resolve(s.Scheme())
}
