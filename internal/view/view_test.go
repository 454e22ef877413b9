package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/model"
)

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestProjectSortOrder(t *testing.T) {
	tests := []struct {
		name  string
		tasks []model.Task
		want  []string
	}{
		{
			name: "completion then rank",
			tasks: []model.Task{
				{ID: "A", Priority: model.PriorityLow, Completed: false, CreatedAt: 1},
				{ID: "B", Priority: model.PriorityHigh, Completed: true, CreatedAt: 2},
				{ID: "C", Priority: model.PriorityHigh, Completed: false, CreatedAt: 3},
				{ID: "D", Priority: model.PriorityMedium, Completed: false, CreatedAt: 4},
			},
			want: []string{"C", "D", "A", "B"},
		},
		{
			name: "newest first among open high",
			tasks: []model.Task{
				{ID: "A", Priority: model.PriorityLow, Completed: false, CreatedAt: 100},
				{ID: "B", Priority: model.PriorityHigh, Completed: true, CreatedAt: 400},
				{ID: "C", Priority: model.PriorityHigh, Completed: false, CreatedAt: 300},
				{ID: "D", Priority: model.PriorityHigh, Completed: false, CreatedAt: 200},
			},
			want: []string{"C", "D", "A", "B"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.tasks, FilterAll)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []string{"A", "B", "C", "D"}, ids(tt.tasks), "input order untouched")
		})
	}
}

func TestProjectNewestFirstWithinRank(t *testing.T) {
	tasks := []model.Task{
		{ID: "old", Priority: model.PriorityMedium, CreatedAt: 10},
		{ID: "new", Priority: model.PriorityMedium, CreatedAt: 20},
		{ID: "tie", Priority: model.PriorityMedium, CreatedAt: 10},
	}

	got := Project(tasks, FilterAll)
	assert.Equal(t, []string{"new", "old", "tie"}, ids(got), "equal keys keep stored order")
}

func TestProjectFilter(t *testing.T) {
	tasks := []model.Task{
		{ID: "h1", Priority: model.PriorityHigh},
		{ID: "m1", Priority: model.PriorityMedium},
		{ID: "h2", Priority: model.PriorityHigh, CreatedAt: 5},
	}

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"h2", "h1", "m1"}},
		{FilterHigh, []string{"h2", "h1"}},
		{FilterMedium, []string{"m1"}},
		{FilterLow, []string{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Project(tasks, tt.filter)))
		})
	}
}

func TestProjectEmptyInput(t *testing.T) {
	got := Project(nil, FilterAll)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEmptyMessage(t *testing.T) {
	assert.Equal(t, "No tasks yet. Add your first task above.", EmptyMessage(0, FilterAll))
	assert.Equal(t, "No tasks yet. Add your first task above.", EmptyMessage(0, FilterHigh))
	assert.Equal(t, `No tasks match the filter "high".`, EmptyMessage(3, FilterHigh))
	assert.Equal(t, "No tasks yet. Add your first task above.", EmptyMessage(3, FilterAll))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" Medium ")
	require.NoError(t, err)
	assert.Equal(t, FilterMedium, f)

	_, err = ParseFilter("urgent")
	assert.Error(t, err)
}

func TestFilterNextCycles(t *testing.T) {
	f := FilterAll
	var seen []Filter
	for range Filters() {
		f = f.Next()
		seen = append(seen, f)
	}
	assert.Equal(t, []Filter{FilterHigh, FilterMedium, FilterLow, FilterAll}, seen)
}

func TestCounts(t *testing.T) {
	tasks := []model.Task{
		{Priority: model.PriorityHigh},
		{Priority: model.PriorityHigh},
		{Priority: model.PriorityLow},
	}

	c := Counts(tasks)
	assert.Equal(t, 3, c[FilterAll])
	assert.Equal(t, 2, c[FilterHigh])
	assert.Equal(t, 0, c[FilterMedium])
	assert.Equal(t, 1, c[FilterLow])
}
