package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhle/tasktracker/internal/keys"
	"github.com/nhle/tasktracker/internal/tasks"
	"github.com/nhle/tasktracker/internal/ui"
	"github.com/nhle/tasktracker/internal/ui/command"
	"github.com/nhle/tasktracker/internal/ui/confirm"
	"github.com/nhle/tasktracker/internal/ui/detail"
	helpview "github.com/nhle/tasktracker/internal/ui/help"
	"github.com/nhle/tasktracker/internal/ui/taskform"
	"github.com/nhle/tasktracker/internal/ui/tasklist"
	"github.com/nhle/tasktracker/internal/view"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewTaskCreate
	ViewTaskEdit
	ViewConfirm
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the task repository.
//
// Repository calls happen synchronously inside Update so that mutations
// and their writes are strictly ordered.
type Model struct {
	ctx          context.Context
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	repo         *tasks.Repository
	log          logrus.FieldLogger
	keys         *keys.KeyMap
	taskList     tasklist.Model
	detail       detail.Model
	helpView     helpview.Model
	commandView  command.Model
	formView     taskform.Model
	confirmView  confirm.Model
	ready        bool
	flash        string
	flashIsError bool
}

// New creates a new root application model around repo.
func New(ctx context.Context, repo *tasks.Repository, filter view.Filter, log logrus.FieldLogger) Model {
	k := keys.DefaultKeyMap()
	m := Model{
		ctx:         ctx,
		currentView: ViewList,
		layout:      ui.NewLayout(80, 24),
		repo:        repo,
		log:         log,
		keys:        k,
		taskList:    tasklist.New(k, filter, 80, 22),
		detail:      detail.New(k, 80, 22),
		helpView:    helpview.New(k, 80, 22),
		commandView: command.New(80, 22),
		formView:    taskform.New(80, 22),
		confirmView: confirm.New(80),
	}
	m.taskList.SetTasks(repo.List())
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.taskList.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(msg.Width, contentHeight)
		m.detail.SetSize(msg.Width, contentHeight)
		m.helpView.SetSize(msg.Width, contentHeight)
		m.commandView.SetSize(msg.Width, contentHeight)
		m.formView.SetSize(msg.Width, contentHeight)
		m.confirmView.SetSize(msg.Width)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case taskform.SubmitMsg:
		m.currentView = m.previousView
		return m, m.submitTask(msg)

	case taskform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case detail.ActionMsg:
		return m, m.detailAction(msg)

	case confirm.ResultMsg:
		m.currentView = m.previousView
		if !msg.Confirmed {
			return m, nil
		}
		switch msg.Action {
		case confirm.ActionDelete:
			return m, m.deleteTask(msg.TargetID)
		case confirm.ActionClearAll:
			return m, m.clearTasks()
		}
		return m, nil

	case tasklist.FilterChangedMsg:
		m.setFlash(fmt.Sprintf("filter: %s", msg.Filter), false)
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(command.Command(msg))

	case command.ErrorMsg:
		m.currentView = m.previousView
		m.setFlash(msg.Err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that switch views. Keys are only
// intercepted from the list, help and command views so that typing in
// the form is never hijacked.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false

	case ViewList:
	default:
		return m, nil, false
	}

	m.flash = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true

	case key.Matches(msg, m.keys.New):
		return m, m.startCreate(), true

	case key.Matches(msg, m.keys.Open):
		if t, ok := m.taskList.Selected(); ok {
			m.detail.SetTask(&t)
			m.currentView = ViewDetail
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.taskList.Selected(); ok {
			return m, m.startEdit(t.ID), true
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.taskList.Selected(); ok {
			return m, m.toggleTask(t.ID), true
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.taskList.Selected(); ok {
			return m, m.askDelete(t.ID), true
		}
		return m, nil, true
	}

	return m, nil, false
}

func (m *Model) startCreate() tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewTaskCreate
	return m.formView.StartCreate()
}

func (m *Model) startEdit(id string) tea.Cmd {
	t, ok := m.repo.Get(id)
	if !ok {
		return nil
	}
	m.previousView = m.currentView
	m.currentView = ViewTaskEdit
	return m.formView.StartEdit(t)
}

func (m *Model) askDelete(id string) tea.Cmd {
	t, ok := m.repo.Get(id)
	if !ok {
		return nil
	}
	m.previousView = m.currentView
	m.currentView = ViewConfirm
	return m.confirmView.AskDelete(t.ID, t.Topic)
}

// detailAction runs an action requested from the detail view.
func (m *Model) detailAction(msg detail.ActionMsg) tea.Cmd {
	switch msg.Action {
	case detail.ActionEdit:
		return m.startEdit(msg.TaskID)
	case detail.ActionToggle:
		return m.toggleTask(msg.TaskID)
	case detail.ActionDelete:
		return m.askDelete(msg.TaskID)
	}
	return nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.formView, cmd = m.formView.Update(msg)
	case ViewConfirm:
		m.confirmView, cmd = m.confirmView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Task Tracker", m.summary())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewTaskCreate, ViewTaskEdit:
		return m.layout.Center(m.formView.View())
	case ViewConfirm:
		return m.layout.Center(m.confirmView.View())
	default:
		return ""
	}
}

// summary returns the open/total counts shown in the header.
func (m Model) summary() string {
	all := m.repo.List()
	open := 0
	for _, t := range all {
		if !t.Completed {
			open++
		}
	}
	return fmt.Sprintf("%d open / %d total", open, len(all))
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.flash != "" && (m.currentView == ViewList || m.currentView == ViewDetail) {
		if m.flashIsError {
			return "⚠ " + m.flash
		}
		return m.flash
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "esc back | e edit | x toggle | d delete | j/k scroll"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewTaskCreate, ViewTaskEdit:
		return "enter next/submit | esc cancel"
	case ViewConfirm:
		return "←/→ choose | enter confirm | esc cancel"
	default:
		return "q quit | ? help | n new | enter open | e edit | x toggle | d delete | 0-3 filter | tab cycle"
	}
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashIsError = isErr
}
