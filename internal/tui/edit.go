package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todopad/internal/theme"
	"todopad/internal/todo"
)

// EditState is the edit screen's position in its flow:
// Loading, then Ready, then Saving, then back to the list.
type EditState int

const (
	EditLoading EditState = iota
	EditReady
	EditSaving
	EditDone
)

func (s EditState) String() string {
	switch s {
	case EditLoading:
		return "loading"
	case EditReady:
		return "ready"
	case EditSaving:
		return "saving"
	case EditDone:
		return "done"
	}
	return fmt.Sprintf("EditState(%d)", int(s))
}

type draftLoadedMsg struct {
	id    int
	draft todo.Todo
	found bool
}

type draftSavedMsg struct {
	id  int
	err error
}

// editModel is the edit screen for one todo id.
type editModel struct {
	svc   Service
	ctx   context.Context
	theme *theme.State

	id    int
	state EditState
	draft todo.Todo

	input textinput.Model
	keys  editKeyMap
	help  help.Model
}

func newEditModel(ctx context.Context, svc Service, ts *theme.State, id int) *editModel {
	ti := textinput.New()
	ti.Placeholder = "Edit todo"
	ti.CharLimit = todo.MaxTitleLength
	ti.Width = todo.MaxTitleLength
	ti.Prompt = ""

	return &editModel{
		svc:   svc,
		ctx:   ctx,
		theme: ts,
		id:    id,
		state: EditLoading,
		draft: todo.Todo{ID: id},
		input: ti,
		keys:  newEditKeyMap(),
		help:  help.New(),
	}
}

// load queries the store for the todo. A missing todo leaves an empty
// draft that still carries the route id.
func (m *editModel) load() tea.Cmd {
	id := m.id
	return func() tea.Msg {
		t, found, err := m.svc.Get(m.ctx, id)
		if err != nil {
			logError(fmt.Sprintf("load todo %d", id), err)
		}
		if !found {
			t = todo.Todo{ID: id}
		}
		return draftLoadedMsg{id: id, draft: t, found: found}
	}
}

func (m *editModel) save() tea.Cmd {
	draft := m.draft
	draft.Title = m.input.Value()
	return func() tea.Msg {
		return draftSavedMsg{id: draft.ID, err: m.svc.SaveEdit(m.ctx, draft)}
	}
}

func (m *editModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return nil

	case draftLoadedMsg:
		if msg.id != m.id || m.state != EditLoading {
			return nil
		}
		m.draft = msg.draft
		m.input.SetValue(msg.draft.Title)
		m.input.CursorEnd()
		m.state = EditReady
		return m.input.Focus()

	case draftSavedMsg:
		if msg.id != m.id || m.state != EditSaving {
			return nil
		}
		if msg.err != nil {
			logError("save edit", msg.err)
			m.state = EditReady
			return nil
		}
		m.state = EditDone
		return navigate(ListRoute)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == EditReady {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *editModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.ToggleTheme):
		m.theme.Toggle()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		if m.state == EditSaving {
			return nil
		}
		m.state = EditDone
		return navigate(ListRoute)
	case key.Matches(msg, m.keys.Save):
		if m.state != EditReady {
			return nil
		}
		m.state = EditSaving
		return m.save()
	}

	if m.state != EditReady {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *editModel) View() string {
	th := m.theme.Theme()
	var b strings.Builder

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		th.InputFocused.Render(m.input.View()),
		"  ",
		th.Toggle.Render(th.Icon),
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		th.Action.Render("Save"),
		" ",
		th.CancelAction.Render("Cancel"),
	)
	b.WriteString(buttons)
	b.WriteString("\n\n")

	switch m.state {
	case EditLoading:
		b.WriteString(th.Help.Render("Loading..."))
	case EditSaving:
		b.WriteString(th.Help.Render("Saving..."))
	default:
		b.WriteString(th.Help.Render(fmt.Sprintf("Editing todo %d", m.id)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return th.App.Render(b.String())
}
