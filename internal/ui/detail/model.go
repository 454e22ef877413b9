package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktracker/internal/keys"
	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Action is a task operation requested from the detail view.
type Action int

const (
	ActionEdit Action = iota
	ActionToggle
	ActionDelete
)

// ActionMsg signals the parent to execute an action on the shown task.
type ActionMsg struct {
	Action Action
	TaskID string
}

// Model is the task detail view component.
type Model struct {
	task     *model.Task
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, max(height-2, 0))
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// SetTask shows t. A nil task clears the view.
func (m *Model) SetTask(t *model.Task) {
	m.task = t
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// TaskID returns the id of the shown task, or "".
func (m Model) TaskID() string {
	if m.task == nil {
		return ""
	}
	return m.task.ID
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
		if m.task != nil {
			id := m.task.ID
			action := func(a Action) tea.Cmd {
				return func() tea.Msg { return ActionMsg{Action: a, TaskID: id} }
			}
			switch {
			case key.Matches(msg, m.keys.Edit):
				return m, action(ActionEdit)
			case key.Matches(msg, m.keys.Toggle):
				return m, action(ActionToggle)
			case key.Matches(msg, m.keys.Delete):
				return m, action(ActionDelete)
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.task == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No task selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.task == nil {
		return ""
	}
	t := m.task

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(11)

	done := "no"
	if t.Completed {
		done = "yes"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(t.Topic))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Priority"), theme.PriorityStyle(t.Priority).Render(t.Priority.Label()))
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Status"), theme.StatusStyle(t.Status).Render(t.Status.Label()))
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Completed"), done)
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Created"), formatMillis(t.CreatedAt))
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Updated"), formatMillis(t.UpdatedAt))
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("ID"), t.ID)

	b.WriteString("\n")
	desc := t.Description
	if desc == "" {
		desc = theme.HelpStyle.Render("No description")
	}
	b.WriteString(lipgloss.NewStyle().Width(max(m.width-2, 20)).Render(desc))

	return b.String()
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 0)
	m.viewport.SetContent(m.renderContent())
}
