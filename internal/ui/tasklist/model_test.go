package tasklist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/keys"
	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/view"
)

func sample() []model.Task {
	return []model.Task{
		{ID: "A", Topic: "low open", Priority: model.PriorityLow, Status: model.StatusTodo, CreatedAt: 1},
		{ID: "B", Topic: "high done", Priority: model.PriorityHigh, Status: model.StatusDone, Completed: true, CreatedAt: 2},
		{ID: "C", Topic: "high open", Priority: model.PriorityHigh, Status: model.StatusTodo, CreatedAt: 3},
		{ID: "D", Topic: "medium open", Priority: model.PriorityMedium, Status: model.StatusBlocked, CreatedAt: 4},
	}
}

func visibleIDs(m Model) []string {
	var out []string
	for _, t := range m.Visible() {
		out = append(out, t.ID)
	}
	return out
}

func TestSetTasksProjects(t *testing.T) {
	m := New(keys.DefaultKeyMap(), view.FilterAll, 80, 40)
	m.SetTasks(sample())

	assert.Equal(t, []string{"C", "D", "A", "B"}, visibleIDs(m))
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "C", sel.ID)
}

func TestFilterKeys(t *testing.T) {
	m := New(keys.DefaultKeyMap(), view.FilterAll, 80, 40)
	m.SetTasks(sample())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	assert.NotNil(t, cmd)
	assert.Equal(t, view.FilterHigh, m.Filter())
	assert.Equal(t, []string{"C", "B"}, visibleIDs(m))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, view.FilterMedium, m.Filter())
	assert.Equal(t, []string{"D"}, visibleIDs(m))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	assert.Equal(t, view.FilterAll, m.Filter())
	assert.Len(t, m.Visible(), 4)
}

func TestSelectionFollowsTask(t *testing.T) {
	m := New(keys.DefaultKeyMap(), view.FilterAll, 80, 40)
	m.SetTasks(sample())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	sel, _ := m.Selected()
	require.Equal(t, "D", sel.ID)

	// Completing C moves it to the bottom; the cursor stays on D.
	tasks := sample()
	tasks[2].Completed = true
	tasks[2].Status = model.StatusDone
	m.SetTasks(tasks)

	sel, _ = m.Selected()
	assert.Equal(t, "D", sel.ID)
}

func TestEmptyStates(t *testing.T) {
	m := New(keys.DefaultKeyMap(), view.FilterAll, 80, 20)
	m.SetTasks(nil)
	assert.Contains(t, m.View(), "No tasks yet")

	m.SetTasks(sample()[:1])
	m.SetFilter(view.FilterHigh)
	assert.Contains(t, m.View(), `No tasks match the filter "high".`)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", relativeTime(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", relativeTime(now.Add(-5*time.Minute), now))
	assert.Equal(t, "1h ago", relativeTime(now.Add(-time.Hour), now))
	assert.Equal(t, "2d ago", relativeTime(now.Add(-48*time.Hour), now))
	assert.Equal(t, "Feb 01, 2025", relativeTime(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestRenderTaskShowsBadges(t *testing.T) {
	d := ItemDelegate{now: func() time.Time { return time.UnixMilli(10_000) }}
	out := d.renderTask(model.Task{
		Topic:     "Write report",
		Priority:  model.PriorityHigh,
		Status:    model.StatusInProgress,
		CreatedAt: 5_000,
	}, false, 80)

	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "In progress")
	assert.Contains(t, out, "No description")
}
