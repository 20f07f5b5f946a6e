// Package tui provides the interactive to-do app: a list screen and an
// edit screen behind a small router.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todopad/internal/theme"
	"todopad/internal/todo"
	"todopad/internal/utils"
)

// Service is the subset of todo.Service the screens use
type Service interface {
	Load(ctx context.Context) (todo.Collection, error)
	Items(ctx context.Context) todo.Collection
	Add(ctx context.Context, title string) (todo.Todo, bool, error)
	Toggle(ctx context.Context, id int) (bool, error)
	Remove(ctx context.Context, id int) (bool, error)
	Get(ctx context.Context, id int) (todo.Todo, bool, error)
	SaveEdit(ctx context.Context, draft todo.Todo) error
}

// Model is the root model. It owns both screens and swaps them on navigation.
type Model struct {
	svc   Service
	ctx   context.Context
	theme *theme.State

	route Route
	start Route
	list  *listModel
	edit  *editModel

	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithContext sets the context passed to storage calls
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithRoute opens the app on route instead of the list
func WithRoute(r Route) Option {
	return func(m *Model) { m.start = r }
}

// New creates the root model. The theme state is shared by both screens.
func New(svc Service, ts *theme.State, opts ...Option) *Model {
	m := &Model{
		svc:   svc,
		ctx:   context.Background(),
		theme: ts,
		start: ListRoute,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.theme == nil {
		m.theme = theme.NewState(theme.Detect())
	}
	m.list = newListModel(m.ctx, svc, m.theme)
	m.route = ListRoute
	return m
}

// Route returns the current route
func (m *Model) Route() Route {
	return m.route
}

// Init loads the list and, when started elsewhere, navigates there once
// the load has finished.
func (m *Model) Init() tea.Cmd {
	load := m.list.load()
	if m.start != ListRoute {
		load = tea.Sequence(load, navigate(m.start))
	}
	return tea.Batch(load, textinput.Blink)
}

// Update routes messages to the active screen
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.Update(msg)
		if m.edit != nil {
			m.edit.Update(msg)
		}
		return m, nil

	case navigateMsg:
		return m, m.navigate(msg.route)

	case itemsLoadedMsg, itemsChangedMsg, errMsg:
		// List results may arrive while the edit screen is showing.
		return m, m.list.Update(msg)

	case draftLoadedMsg, draftSavedMsg:
		if m.edit == nil {
			return m, nil
		}
		return m, m.edit.Update(msg)
	}

	if m.route.Screen == ScreenEdit && m.edit != nil {
		return m, m.edit.Update(msg)
	}
	return m, m.list.Update(msg)
}

func (m *Model) navigate(r Route) tea.Cmd {
	utils.Debugf("navigate %s -> %s", m.route, r)
	m.route = r

	switch r.Screen {
	case ScreenEdit:
		m.edit = newEditModel(m.ctx, m.svc, m.theme, r.ID)
		if m.width > 0 {
			m.edit.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		return m.edit.load()
	default:
		m.edit = nil
		return m.list.refresh()
	}
}

// View renders the active screen
func (m *Model) View() string {
	if m.route.Screen == ScreenEdit && m.edit != nil {
		return m.edit.View()
	}
	return m.list.View()
}

// Run starts the interactive app on the alternate screen
func Run(ctx context.Context, svc Service, ts *theme.State, opts ...Option) error {
	theme.ApplyColorProfile()
	opts = append([]Option{WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(svc, ts, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func logError(what string, err error) {
	utils.Errorf("%s: %v", what, err)
}
