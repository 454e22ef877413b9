package command

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktracker/internal/theme"
	"github.com/nhle/tasktracker/internal/view"
)

// Kind identifies a palette command.
type Kind int

const (
	KindFilter Kind = iota
	KindNew
	KindClear
	KindHelp
	KindQuit
)

// Command is a parsed palette entry.
type Command struct {
	Kind Kind
	// Filter is set for KindFilter.
	Filter view.Filter
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg Command

// ErrorMsg is emitted when the input does not parse.
type ErrorMsg struct{ Err error }

// suggestions are offered as the user types.
var suggestions = []string{
	"filter all", "filter high", "filter medium", "filter low",
	"new", "clear", "help", "quit",
}

// Parse turns palette input into a Command.
func Parse(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	switch fields[0] {
	case "filter", "f":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: filter all|high|medium|low")
		}
		f, err := view.ParseFilter(fields[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindFilter, Filter: f}, nil
	case "new", "add":
		return Command{Kind: KindNew}, nil
	case "clear":
		return Command{Kind: KindClear}, nil
	case "help":
		return Command{Kind: KindHelp}, nil
	case "quit", "q":
		return Command{Kind: KindQuit}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q", fields[0])
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "filter high, new, clear, quit..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(suggestions)
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			raw := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if raw == "" {
				return m, nil
			}
			cmd, err := Parse(raw)
			if err != nil {
				return m, func() tea.Msg { return ErrorMsg{Err: err} }
			}
			return m, func() tea.Msg { return CommandMsg(cmd) }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Command Palette"),
		m.input.View(),
	)

	return theme.PanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
