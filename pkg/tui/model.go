// Package tui is the interactive terminal front end: a text input that
// re-queries on every keystroke and a field grid for the result.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/MakerMaker19/countryinfo/pkg/country"
	"github.com/MakerMaker19/countryinfo/pkg/lookup"
)

const ErrorText = lookup.ErrorText

const placeholder = "Enter country"

// resultMsg carries a finished lookup back into the update loop.
type resultMsg lookup.Result

// Model is the bubbletea model. It owns the query (through the text
// input) and the lookup session derived from it.
type Model struct {
	input   textinput.Model
	spinner spinner.Model
	session lookup.Session
	loader  *lookup.Loader
	styles  Styles
	logger  *zap.Logger
	width   int
}

type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithStyles(st Styles) Option {
	return func(m *Model) {
		m.styles = st
	}
}

func New(loader *lookup.Loader, opts ...Option) Model {
	m := Model{
		loader: loader,
		styles: DefaultStyles(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.Width = 40
	ti.PromptStyle = m.styles.Muted
	ti.TextStyle = m.styles.Value
	ti.PlaceholderStyle = m.styles.Muted
	ti.Focus()
	m.input = ti

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = m.styles.Spinner
	m.spinner = sp

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
		return m, nil

	case spinner.TickMsg:
		if m.session.State() != lookup.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case resultMsg:
		res := lookup.Result(msg)
		if !m.session.Resolve(res) {
			m.logger.Debug("discarding stale lookup result",
				zap.String("request_id", res.Request.ID),
				zap.String("query", res.Request.Query),
				zap.Uint64("gen", res.Request.Gen),
			)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if q := m.input.Value(); q != m.session.Query() {
		cmds = append(cmds, m.setQuery(q))
	}
	return m, tea.Batch(cmds...)
}

// setQuery hands the new input text to the session and, for a non-empty
// query, returns the command that fetches it.
func (m *Model) setQuery(q string) tea.Cmd {
	wasLoading := m.session.State() == lookup.StateLoading

	req, ok := m.session.SetQuery(q)
	if !ok {
		return nil
	}
	fetch := m.fetch(req)
	if wasLoading {
		// spinner is already ticking
		return fetch
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

func (m Model) fetch(req lookup.Request) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		return resultMsg(loader.Load(context.Background(), req))
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("country info"))
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n\n")

	if body := m.body(); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("esc quit"))
	return m.styles.App.Render(b.String())
}

func (m Model) body() string {
	switch m.session.State() {
	case lookup.StateLoading:
		return m.spinner.View() + " " + m.styles.Muted.Render("Loading…")
	case lookup.StateFailed:
		return m.styles.Error.Render(ErrorText)
	case lookup.StateLoaded:
		rec, ok := m.session.Record()
		if !ok {
			return ""
		}
		return renderGrid(country.Fields(rec), m.width, m.styles)
	default:
		return ""
	}
}

// Query is the current input text.
func (m Model) Query() string { return m.session.Query() }

// State is the lookup state behind the current view.
func (m Model) State() lookup.State { return m.session.State() }

// Run starts the program full screen and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
