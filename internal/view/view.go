// Package view derives the display order of tasks. Nothing here mutates
// its input; the stored order is owned by the repository.
package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/nhle/tasktracker/internal/model"
)

// Filter restricts the view to one priority, or shows everything.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterHigh   Filter = "high"
	FilterMedium Filter = "medium"
	FilterLow    Filter = "low"
)

// Filters returns every filter in the order the UI cycles through them.
func Filters() []Filter {
	return []Filter{FilterAll, FilterHigh, FilterMedium, FilterLow}
}

// ParseFilter converts user input into a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Filters(), f) {
		return "", fmt.Errorf("unknown filter %q", s)
	}
	return f, nil
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	all := Filters()
	i := slices.Index(all, f)
	return all[(i+1)%len(all)]
}

// Label is the display text for the filter tab.
func (f Filter) Label() string {
	if f == FilterAll {
		return "All"
	}
	return model.Priority(f).Label()
}

// Match reports whether t passes the filter.
func (f Filter) Match(t model.Task) bool {
	return f == FilterAll || t.Priority == model.Priority(f)
}

// Compare orders tasks for display: incomplete before completed, then by
// priority rank, then newest first.
func Compare(a, b model.Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}
	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	return cmp.Compare(b.CreatedAt, a.CreatedAt)
}

// Project returns the tasks that pass f in display order. The input slice
// is left untouched.
func Project(tasks []model.Task, f Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, Compare)
	return out
}

// EmptyMessage is shown in place of an empty projection. total is the size
// of the whole collection.
func EmptyMessage(total int, f Filter) string {
	if total > 0 && f != FilterAll {
		return fmt.Sprintf("No tasks match the filter %q.", string(f))
	}
	return "No tasks yet. Add your first task above."
}

// Counts returns how many tasks fall under each filter.
func Counts(tasks []model.Task) map[Filter]int {
	counts := make(map[Filter]int, 4)
	for _, t := range tasks {
		counts[FilterAll]++
		for _, f := range Filters()[1:] {
			if f.Match(t) {
				counts[f]++
			}
		}
	}
	return counts
}
