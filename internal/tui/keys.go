package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// listKeyMap holds the list screen bindings. Letter keys only act while the
// list has focus; with the input focused they are typed.
type listKeyMap struct {
	Add         key.Binding
	Toggle      key.Binding
	Delete      key.Binding
	Edit        key.Binding
	Up          key.Binding
	Down        key.Binding
	Focus       key.Binding
	ToggleTheme key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "o"),
			key.WithHelp("e", "edit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "input/list"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Focus, k.Help}
}

// FullHelp implements help.KeyMap
func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Focus, k.ToggleTheme},
		{k.Up, k.Down, k.Toggle},
		{k.Edit, k.Delete},
		{k.Help, k.Quit},
	}
}

// editKeyMap holds the edit screen bindings.
type editKeyMap struct {
	Save        key.Binding
	Cancel      key.Binding
	ToggleTheme key.Binding
	ForceQuit   key.Binding
}

func newEditKeyMap() editKeyMap {
	return editKeyMap{
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel, k.ToggleTheme}
}

// FullHelp implements help.KeyMap
func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
