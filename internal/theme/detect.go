package theme

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// EnvTheme overrides scheme detection: light, dark or auto.
const EnvTheme = "TODOPAD_THEME"

// Detect derives the default scheme from the host terminal.
func Detect() ColorScheme {
	return DetectFrom(os.Getenv, lipgloss.HasDarkBackground)
}

// DetectFrom applies the detection order to the given environment:
//  1. TODOPAD_THEME=light|dark (auto falls through)
//  2. COLORFGBG, whose last segment is the background color index
//  3. the terminal's reported background
func DetectFrom(getenv func(string) string, hasDarkBackground func() bool) ColorScheme {
	if scheme, ok, err := ParseScheme(getenv(EnvTheme)); err == nil && ok {
		return scheme
	}

	if v := strings.TrimSpace(getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			// 0-6 and 8 are the dark entries of the 16-color table.
			if bg < 7 || bg == 8 {
				return Dark
			}
			return Light
		}
	}

	if hasDarkBackground != nil && hasDarkBackground() {
		return Dark
	}
	return Light
}

// Initial picks the starting scheme: a configured light or dark wins,
// anything else is detected.
func Initial(configured string) ColorScheme {
	if scheme, ok, err := ParseScheme(configured); err == nil && ok {
		return scheme
	}
	return Detect()
}

// ApplyColorProfile sets Lip Gloss's color profile for the interactive UI.
// NO_COLOR disables color; otherwise termenv's guess is raised when TERM or
// COLORTERM advertise more than was detected.
func ApplyColorProfile() {
	lipgloss.SetColorProfile(profileFrom(os.Getenv, termenv.ColorProfile()))
}

func profileFrom(getenv func(string) string, detected termenv.Profile) termenv.Profile {
	if strings.TrimSpace(getenv("NO_COLOR")) != "" {
		return termenv.Ascii
	}

	term := strings.ToLower(strings.TrimSpace(getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if detected != termenv.Ascii {
			return termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if detected == termenv.Ascii || detected == termenv.ANSI {
			return termenv.ANSI256
		}
	}
	return detected
}
