package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	tests := []struct {
		name          string
		completed     bool
		status        Status
		wantCompleted bool
		wantStatus    Status
	}{
		{"complete todo", false, StatusTodo, true, StatusDone},
		{"complete blocked", false, StatusBlocked, true, StatusDone},
		{"complete in-progress", false, StatusInProgress, true, StatusDone},
		{"reopen done", true, StatusDone, false, StatusTodo},
		{"reopen completed in-progress keeps status", true, StatusInProgress, false, StatusInProgress},
		{"reopen completed blocked keeps status", true, StatusBlocked, false, StatusBlocked},
		{"reopen completed todo keeps status", true, StatusTodo, false, StatusTodo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completed, status := Toggle(tt.completed, tt.status)
			assert.Equal(t, tt.wantCompleted, completed)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestToggleTwiceFromTodo(t *testing.T) {
	c, s := Toggle(false, StatusTodo)
	c, s = Toggle(c, s)
	assert.False(t, c)
	assert.Equal(t, StatusTodo, s)
}

func TestCompletedAfterUpdate(t *testing.T) {
	assert.True(t, CompletedAfterUpdate(false, StatusDone))
	assert.True(t, CompletedAfterUpdate(true, StatusDone))
	assert.True(t, CompletedAfterUpdate(true, StatusTodo), "completed flag survives a move away from done")
	assert.False(t, CompletedAfterUpdate(false, StatusBlocked))
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Less(t, PriorityLow.Rank(), Priority("urgent").Rank())
}

func TestParseEnums(t *testing.T) {
	p, err := ParsePriority(" High ")
	assert.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)

	s, err := ParseStatus("in-progress")
	assert.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)
	assert.Equal(t, "In progress", s.Label())

	_, err = ParseStatus("in_progress")
	assert.Error(t, err)
}
