package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dbexplorer/internal/browse"
	"dbexplorer/internal/theme"
)

type Options struct {
	Theme theme.Theme
	// Accent overrides the theme accent when set.
	Accent string
	// WatchTheme re-detects the theme when the Omarchy theme changes.
	WatchTheme bool
	// Renderer defaults to lipgloss.DefaultRenderer.
	Renderer *lipgloss.Renderer
}

// Model drives browse.State from bubbletea messages. It owns the only
// mutable copy of the state.
type Model struct {
	state  browse.State
	input  textinput.Model
	keys   keyMap
	opts   Options
	styles browse.Styles
	watch  *themeWatcher
}

func NewModel(state browse.State, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Focus()
	m := Model{
		state:  state,
		input:  ti,
		keys:   defaultKeyMap(),
		opts:   opts,
		styles: stylesFor(opts.Renderer, opts.Theme, opts.Accent),
	}
	if opts.WatchTheme {
		m.watch = newThemeWatcher()
	}
	return m
}

func (m Model) State() browse.State { return m.state }

func (m Model) Init() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return m.watch.startCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state, _ = browse.Reduce(m.state, browse.Resize{Width: msg.Width, Height: msg.Height})
		return m, nil

	case themeChangedMsg:
		m.opts.Theme = msg.Theme
		m.styles = stylesFor(m.opts.Renderer, msg.Theme, m.opts.Accent)
		if !msg.Watching {
			return m, nil
		}
		return m, m.watch.waitCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.state, _ = browse.Reduce(m.state, browse.Up{})
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.state, _ = browse.Reduce(m.state, browse.Down{})
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			m.state, _ = browse.Reduce(m.state, browse.Enter{})
			return m, nil
		}
		prev := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if line := m.input.Value(); line != prev {
			m.state, _ = browse.Reduce(m.state, browse.LineUpdated{Line: line})
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	return browse.Render(m.state, m.styles)
}
