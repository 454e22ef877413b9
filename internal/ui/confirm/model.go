package confirm

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/tasktracker/internal/theme"
)

// Action identifies what the user is being asked to approve.
type Action int

const (
	ActionDelete Action = iota
	ActionClearAll
)

// ResultMsg carries the user's answer. TargetID is the task the prompt
// was opened for, if any.
type ResultMsg struct {
	Action    Action
	TargetID  string
	Confirmed bool
}

// dismissKey answers no without moving through the buttons.
var dismissKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))

// Model is a yes/no prompt shown before destructive operations.
type Model struct {
	form      *huh.Form
	confirmed *bool
	action    Action
	targetID  string
	width     int
}

// New creates an idle prompt.
func New(width int) Model {
	return Model{confirmed: new(bool), width: width}
}

// Ask opens the prompt with the given question.
func (m *Model) Ask(action Action, targetID, title, description string) tea.Cmd {
	m.action = action
	m.targetID = targetID
	*m.confirmed = false
	km := huh.NewDefaultKeyMap()
	km.Quit = dismissKey
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Delete").
				Negative("Cancel").
				Value(m.confirmed),
		),
	).WithKeyMap(km).WithWidth(min(max(m.width-8, 30), 60)).WithShowHelp(false)
	return m.form.Init()
}

// AskDelete asks whether to delete one task.
func (m *Model) AskDelete(taskID, topic string) tea.Cmd {
	return m.Ask(ActionDelete, taskID, "Delete this task?", topic)
}

// AskClearAll asks whether to remove every task.
func (m *Model) AskClearAll(count int) tea.Cmd {
	desc := "This removes every task."
	if count == 1 {
		desc = "This removes the only task."
	}
	return m.Ask(ActionClearAll, "", "Delete all tasks?", desc)
}

// Update handles messages for the prompt.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, dismissKey) {
		return m, m.result(false)
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.result(*m.confirmed)
	case huh.StateAborted:
		return m, m.result(false)
	}
	return m, cmd
}

func (m Model) result(ok bool) tea.Cmd {
	res := ResultMsg{Action: m.action, TargetID: m.targetID, Confirmed: ok}
	return func() tea.Msg { return res }
}

// View renders the prompt.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return theme.PanelStyle.Render(m.form.View())
}

// SetSize updates the prompt width.
func (m *Model) SetSize(width int) {
	m.width = width
}
