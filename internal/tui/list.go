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

// listFocus says which part of the list screen receives keys
type listFocus int

const (
	focusInput listFocus = iota
	focusList
)

// Message types
type itemsLoadedMsg struct {
	items todo.Collection
}

type itemsChangedMsg struct {
	items todo.Collection
	added bool
}

type errMsg struct {
	err error
}

// listModel is the list screen: input, add button, theme toggle and items.
type listModel struct {
	svc   Service
	ctx   context.Context
	theme *theme.State

	items  todo.Collection
	cursor int
	focus  listFocus
	loaded bool

	input textinput.Model
	keys  listKeyMap
	help  help.Model
	width int
}

func newListModel(ctx context.Context, svc Service, ts *theme.State) *listModel {
	ti := textinput.New()
	ti.Placeholder = "Add a new todo"
	ti.CharLimit = todo.MaxTitleLength
	ti.Width = todo.MaxTitleLength
	ti.Prompt = ""
	ti.Focus()

	return &listModel{
		svc:   svc,
		ctx:   ctx,
		theme: ts,
		input: ti,
		keys:  newListKeyMap(),
		help:  help.New(),
	}
}

// load runs the start-up policy
func (m *listModel) load() tea.Cmd {
	return func() tea.Msg {
		items, err := m.svc.Load(m.ctx)
		if err != nil {
			logError("load todos", err)
		}
		return itemsLoadedMsg{items: items}
	}
}

// refresh re-reads the service's list, e.g. after returning from the edit screen
func (m *listModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return itemsLoadedMsg{items: m.svc.Items(m.ctx)}
	}
}

func (m *listModel) addTodo(title string) tea.Cmd {
	return func() tea.Msg {
		_, added, err := m.svc.Add(m.ctx, title)
		if err != nil {
			return errMsg{fmt.Errorf("add todo: %w", err)}
		}
		return itemsChangedMsg{items: m.svc.Items(m.ctx), added: added}
	}
}

func (m *listModel) toggleTodo(id int) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.Toggle(m.ctx, id); err != nil {
			return errMsg{fmt.Errorf("toggle todo %d: %w", id, err)}
		}
		return itemsChangedMsg{items: m.svc.Items(m.ctx)}
	}
}

func (m *listModel) removeTodo(id int) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.Remove(m.ctx, id); err != nil {
			return errMsg{fmt.Errorf("remove todo %d: %w", id, err)}
		}
		return itemsChangedMsg{items: m.svc.Items(m.ctx)}
	}
}

func (m *listModel) selected() (todo.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return todo.Todo{}, false
	}
	return m.items[m.cursor], true
}

func (m *listModel) setItems(items todo.Collection) {
	m.items = items
	m.loaded = true
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *listModel) setFocus(f listFocus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *listModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return nil

	case itemsLoadedMsg:
		m.setItems(msg.items)
		return nil

	case itemsChangedMsg:
		m.setItems(msg.items)
		if msg.added {
			m.input.Reset()
			m.cursor = 0
		}
		return nil

	case errMsg:
		logError("list screen", msg.err)
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *listModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit
	case key.Matches(msg, m.keys.ToggleTheme):
		m.theme.Toggle()
		return nil
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusInput {
			m.setFocus(focusList)
			return nil
		}
		m.setFocus(focusInput)
		return textinput.Blink
	case key.Matches(msg, m.keys.Add):
		if m.focus == focusInput {
			return m.addTodo(m.input.Value())
		}
	}

	if m.focus == focusInput {
		switch msg.Type {
		case tea.KeyUp, tea.KeyDown:
			m.setFocus(focusList)
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m.toggleTodo(t.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			return m.removeTodo(t.ID)
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			return navigate(EditRoute(t.ID))
		}
	}
	return nil
}

func (m *listModel) View() string {
	th := m.theme.Theme()
	var b strings.Builder

	inputStyle := th.Input
	if m.focus == focusInput {
		inputStyle = th.InputFocused
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		inputStyle.Render(m.input.View()),
		" ",
		th.Action.Render("Add"),
		"  ",
		th.Toggle.Render(th.Icon),
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(th.Help.Render("Loading..."))
		b.WriteString("\n")
	case len(m.items) == 0:
		b.WriteString(th.Help.Render("Nothing to do."))
		b.WriteString("\n")
	}

	for i, t := range m.items {
		b.WriteString(m.renderItem(th, i, t))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return th.App.Render(b.String())
}

func (m *listModel) renderItem(th theme.Theme, i int, t todo.Todo) string {
	cursor := "  "
	isSelected := m.focus == focusList && i == m.cursor
	if isSelected {
		cursor = "› "
	}

	check := "○"
	title := th.Item.Render(t.Title)
	if t.Completed {
		check = "●"
		title = th.Completed.Render(t.Title)
	}

	line := fmt.Sprintf("%s%s %s", cursor, check, title)
	if isSelected {
		line = th.Selected.Render(line)
	}
	return line + "  " + th.Delete.Render("✕")
}
