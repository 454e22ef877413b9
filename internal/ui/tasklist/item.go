package tasklist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktracker/internal/model"
	"github.com/nhle/tasktracker/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Topic }

// ItemDelegate implements list.ItemDelegate for rendering task rows.
type ItemDelegate struct {
	// now is the reference time for relative timestamps.
	now func() time.Time
}

// Height returns the number of lines each item takes: the topic line and
// the description line.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderTask(ti.Task, index == m.Index(), m.Width()))
}

func (d ItemDelegate) renderTask(t model.Task, selected bool, width int) string {
	// Prefix: ✓ for completed, ○ for open
	prefix := "○"
	if t.Completed {
		prefix = "✓"
	}

	priBadge := theme.PriorityStyle(t.Priority).Render(t.Priority.Label())
	statusBadge := theme.StatusStyle(t.Status).Render(t.Status.Label())

	topic := t.Topic
	if t.Completed {
		topic = theme.CompletedStyle.Render(topic)
	}

	now := time.Now
	if d.now != nil {
		now = d.now
	}
	created := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(time.UnixMilli(t.CreatedAt), now()))

	first := fmt.Sprintf("%s %s %s %s", prefix, topic, priBadge, statusBadge)

	desc := t.Description
	if desc == "" {
		desc = "No description"
	}
	if width > 20 && lipgloss.Width(desc) > width-16 {
		desc = truncate(desc, width-16)
	}
	second := "  " + lipgloss.NewStyle().Foreground(theme.ColorGray).Render(desc) + "  " + created

	line := lipgloss.JoinVertical(lipgloss.Left, first, second)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t, now time.Time) string {
	if t.IsZero() || t.UnixMilli() == 0 {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("Jan 02, 2006")
	}
}
