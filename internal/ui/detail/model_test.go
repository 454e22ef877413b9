package detail

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/keys"
	"github.com/nhle/tasktracker/internal/model"
)

func TestActions(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetTask(&model.Task{ID: "t_1", Topic: "Write report", Priority: model.PriorityHigh, Status: model.StatusTodo})

	tests := []struct {
		key  tea.KeyMsg
		want Action
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")}, ActionEdit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, ActionToggle},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, ActionDelete},
	}
	for _, tt := range tests {
		_, cmd := m.Update(tt.key)
		require.NotNil(t, cmd)
		assert.Equal(t, ActionMsg{Action: tt.want, TaskID: "t_1"}, cmd())
	}
}

func TestBack(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}

func TestRenderContent(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.SetTask(&model.Task{
		ID:          "t_abc",
		Topic:       "Write report",
		Description: "Quarterly numbers",
		Priority:    model.PriorityLow,
		Status:      model.StatusBlocked,
	})

	out := m.renderContent()
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Quarterly numbers")
	assert.Contains(t, out, "Blocked")
	assert.Contains(t, out, "t_abc")
	assert.Equal(t, "t_abc", m.TaskID())
}
