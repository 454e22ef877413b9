package tasklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktracker/internal/keys"
	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/theme"
	"github.com/nhle/tasktracker/internal/view"
)

// FilterChangedMsg is sent when the user picks a different priority filter.
type FilterChangedMsg struct {
	Filter view.Filter
}

// Model is the main task list view component. It renders the projection
// of the full collection under the current filter.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	filter view.Filter
	all    []model.Task
	width  int
	height int
}

// New creates a new task list model.
func New(k *keys.KeyMap, filter view.Filter, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, max(height-2, 0))
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		filter: filter,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetTasks replaces the collection and recomputes the projection. The
// cursor stays on the previously selected task when it is still visible.
func (m *Model) SetTasks(tasks []model.Task) tea.Cmd {
	m.all = tasks
	return m.refresh()
}

// SetFilter changes the priority filter.
func (m *Model) SetFilter(f view.Filter) tea.Cmd {
	m.filter = f
	return m.refresh()
}

// Filter returns the active filter.
func (m Model) Filter() view.Filter { return m.filter }

// Visible returns the tasks currently shown, in display order.
func (m Model) Visible() []model.Task {
	items := m.list.Items()
	out := make([]model.Task, 0, len(items))
	for _, it := range items {
		out = append(out, it.(TaskItem).Task)
	}
	return out
}

// Selected returns the task under the cursor.
func (m Model) Selected() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

func (m *Model) refresh() tea.Cmd {
	prevID := ""
	if t, ok := m.Selected(); ok {
		prevID = t.ID
	}

	projected := view.Project(m.all, m.filter)
	items := make([]list.Item, len(projected))
	cursor := 0
	for i, t := range projected {
		items[i] = TaskItem{Task: t}
		if t.ID == prevID {
			cursor = i
		}
	}
	cmd := m.list.SetItems(items)
	m.list.Select(cursor)
	return cmd
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if f, ok := m.filterForKey(msg); ok {
			cmd := m.SetFilter(f)
			return m, tea.Batch(cmd, func() tea.Msg { return FilterChangedMsg{Filter: f} })
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) filterForKey(msg tea.KeyMsg) (view.Filter, bool) {
	switch {
	case key.Matches(msg, m.keys.FilterAll):
		return view.FilterAll, true
	case key.Matches(msg, m.keys.FilterHigh):
		return view.FilterHigh, true
	case key.Matches(msg, m.keys.FilterMedium):
		return view.FilterMedium, true
	case key.Matches(msg, m.keys.FilterLow):
		return view.FilterLow, true
	case key.Matches(msg, m.keys.CycleFilter):
		return m.filter.Next(), true
	}
	return "", false
}

// View renders the filter bar followed by the list or the empty state.
func (m Model) View() string {
	bar := m.renderFilterBar()
	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, bar, m.renderEmptyState())
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, m.list.View())
}

func (m Model) renderFilterBar() string {
	counts := view.Counts(m.all)
	tabs := make([]string, 0, 4)
	for _, f := range view.Filters() {
		label := fmt.Sprintf("%s (%d)", f.Label(), counts[f])
		if f == m.filter {
			tabs = append(tabs, theme.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, theme.TabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ") + "\n"
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(max(m.height-2, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	msg := view.EmptyMessage(len(m.all), m.filter)
	if len(m.all) == 0 {
		msg = strings.Replace(msg, "above", "with n", 1)
	}
	return style.Render(msg)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-2, 0))
}
