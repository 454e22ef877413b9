package taskform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/theme"
)

// SubmitMsg is dispatched when the user completes the form. EditID is
// empty when creating a task.
type SubmitMsg struct {
	EditID      string
	Topic       string
	Description string
	Priority    model.Priority
	Status      model.Status
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// cancelKey abandons the form. huh quits on ctrl+c by default, which the
// app reserves for exiting the program.
var cancelKey = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))

func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = cancelKey
	return km
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	topic       string
	description string
	priority    model.Priority
	status      model.Status
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	editID string
	width  int
	height int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.DefaultPriority, status: model.DefaultStatus},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form with the defaults for a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editID = ""
	*m.fb = formBindings{priority: model.DefaultPriority, status: model.DefaultStatus}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with the values of an existing task.
func (m *Model) StartEdit(t model.Task) tea.Cmd {
	m.editID = t.ID
	*m.fb = formBindings{
		topic:       t.Topic,
		description: t.Description,
		priority:    t.Priority,
		status:      t.Status,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Editing reports whether the form edits an existing task.
func (m Model) Editing() bool { return m.editID != "" }

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, cancelKey) {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.submit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.Editing() {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return theme.PanelStyle.Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	priorities := make([]huh.Option[model.Priority], 0, len(model.Priorities))
	for _, p := range model.Priorities {
		priorities = append(priorities, huh.NewOption(p.Label(), p))
	}
	statuses := make([]huh.Option[model.Status], 0, len(model.Statuses))
	for _, s := range model.Statuses {
		statuses = append(statuses, huh.NewOption(s.Label(), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Topic").
				Placeholder("What needs to be done?").
				Value(&m.fb.topic).
				Validate(validateRequired("Topic")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&m.fb.priority),
			huh.NewSelect[model.Status]().
				Title("Status").
				Options(statuses...).
				Value(&m.fb.status),
		),
	).WithKeyMap(formKeyMap()).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) submit() tea.Cmd {
	msg := SubmitMsg{
		EditID:      m.editID,
		Topic:       m.fb.topic,
		Description: m.fb.description,
		Priority:    m.fb.priority,
		Status:      m.fb.status,
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	return min(max(m.width-8, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-8, 10)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
