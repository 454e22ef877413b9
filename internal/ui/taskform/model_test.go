package taskform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/model"
)

func TestStartCreateDefaults(t *testing.T) {
	m := New(80, 30)
	m.fb.topic = "left over"
	m.StartCreate()

	assert.False(t, m.Editing())
	assert.Empty(t, m.fb.topic)
	assert.Equal(t, model.PriorityMedium, m.fb.priority)
	assert.Equal(t, model.StatusTodo, m.fb.status)
}

func TestStartEditPrefills(t *testing.T) {
	m := New(80, 30)
	m.StartEdit(model.Task{
		ID:          "t_1",
		Topic:       "Write report",
		Description: "Q3",
		Priority:    model.PriorityHigh,
		Status:      model.StatusBlocked,
	})

	assert.True(t, m.Editing())
	assert.Equal(t, "Write report", m.fb.topic)
	assert.Equal(t, model.StatusBlocked, m.fb.status)

	msg := m.submit()().(SubmitMsg)
	assert.Equal(t, SubmitMsg{
		EditID:      "t_1",
		Topic:       "Write report",
		Description: "Q3",
		Priority:    model.PriorityHigh,
		Status:      model.StatusBlocked,
	}, msg)
}

func TestValidateRequired(t *testing.T) {
	v := validateRequired("Topic")
	assert.EqualError(t, v("   "), "Topic is required")
	assert.NoError(t, v("x"))
}

func TestEscCancels(t *testing.T) {
	for _, start := range []func(*Model) tea.Cmd{
		func(m *Model) tea.Cmd { return m.StartCreate() },
		func(m *Model) tea.Cmd { return m.StartEdit(model.Task{ID: "t_1", Topic: "Keep"}) },
	} {
		m := New(80, 30)
		start(&m)

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.Equal(t, CancelMsg{}, cmd())
	}
}
