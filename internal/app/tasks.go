package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasktracker/internal/tasks"
	"github.com/nhle/tasktracker/internal/ui/command"
	"github.com/nhle/tasktracker/internal/ui/taskform"
)

// submitTask creates or updates a task from the form values.
func (m *Model) submitTask(msg taskform.SubmitMsg) tea.Cmd {
	if msg.EditID == "" {
		t, err := m.repo.Create(m.ctx, tasks.NewTask{
			Topic:       msg.Topic,
			Description: msg.Description,
			Priority:    msg.Priority,
			Status:      msg.Status,
		})
		if err != nil {
			return m.fail("creating task", err)
		}
		m.setFlash("created "+t.Topic, false)
		return m.refresh()
	}

	t, err := m.repo.Update(m.ctx, msg.EditID, tasks.Patch{
		Topic:       &msg.Topic,
		Description: &msg.Description,
		Priority:    &msg.Priority,
		Status:      &msg.Status,
	})
	if err != nil {
		return m.fail("updating task", err)
	}
	m.setFlash("updated "+t.Topic, false)
	return m.refresh()
}

// toggleTask flips the completion flag of a task.
func (m *Model) toggleTask(id string) tea.Cmd {
	t, err := m.repo.ToggleComplete(m.ctx, id)
	if err != nil {
		return m.fail("toggling task", err)
	}
	if t.Completed {
		m.setFlash("completed "+t.Topic, false)
	} else {
		m.setFlash("reopened "+t.Topic, false)
	}
	return m.refresh()
}

// deleteTask removes a task after the user confirmed.
func (m *Model) deleteTask(id string) tea.Cmd {
	if err := m.repo.Delete(m.ctx, id); err != nil {
		return m.fail("deleting task", err)
	}
	m.setFlash("deleted task", false)
	return m.refresh()
}

// clearTasks removes every task after the user confirmed.
func (m *Model) clearTasks() tea.Cmd {
	if err := m.repo.Reset(m.ctx); err != nil {
		return m.fail("clearing tasks", err)
	}
	m.setFlash("cleared all tasks", false)
	return m.refresh()
}

// executeCommand runs a parsed command palette entry.
func (m *Model) executeCommand(cmd command.Command) tea.Cmd {
	switch cmd.Kind {
	case command.KindFilter:
		m.setFlash("filter: "+string(cmd.Filter), false)
		return m.taskList.SetFilter(cmd.Filter)
	case command.KindNew:
		return m.startCreate()
	case command.KindClear:
		if m.repo.Len() == 0 {
			m.setFlash("nothing to clear", false)
			return nil
		}
		m.previousView = m.currentView
		m.currentView = ViewConfirm
		return m.confirmView.AskClearAll(m.repo.Len())
	case command.KindHelp:
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	case command.KindQuit:
		return tea.Quit
	}
	return nil
}

// refresh pushes the current collection into the list and detail views.
// A detail view whose task is gone falls back to the list.
func (m *Model) refresh() tea.Cmd {
	if id := m.detail.TaskID(); id != "" {
		if t, ok := m.repo.Get(id); ok {
			m.detail.SetTask(&t)
		} else {
			m.detail.SetTask(nil)
			if m.currentView == ViewDetail {
				m.currentView = ViewList
			}
		}
	}
	return m.taskList.SetTasks(m.repo.List())
}

// fail records an error in the status bar. Validation problems are the
// user's to fix; anything else is also logged.
func (m *Model) fail(action string, err error) tea.Cmd {
	if !tasks.IsValidation(err) {
		m.log.WithError(err).Error(action)
	}
	m.setFlash(action+": "+err.Error(), true)
	// A failed save leaves the in-memory change in place; show it.
	return m.refresh()
}
