// Package tui renders the task dashboard in the terminal.
//
// The App model reads everything it shows from the store; store operations run as
// bubbletea commands and report back through the messages below.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/internal/report"
	"github.com/fastygo/taskboard/internal/store"
)

type tab int

const (
	tabTasks tab = iota
	tabCreate
	tabReports
	tabCount
)

var tabTitles = [tabCount]string{"Tasks", "Create Task", "Reports"}

const flashDuration = 3 * time.Second

const (
	msgCreating      = "Creating Task..."
	msgSaving        = "Saving Task..."
	msgCreated       = "Task created successfully!"
	msgUpdated       = "Task updated successfully!"
	msgCreateFailed  = "Failed to create task. Please try again."
	msgUpdateFailed  = "Failed to update task. Please try again."
	msgToggleFailed  = "Failed to update task status."
	msgDeleteFailed  = "Failed to delete task."
	msgConfirmDelete = "Are you sure you want to delete this task?"
)

type (
	tasksLoadedMsg    struct{ err error }
	taskSavedMsg      struct{ ok, editing bool }
	taskToggledMsg    struct{ ok bool }
	taskDeletedMsg    struct{ ok bool }
	reportExportedMsg struct {
		path string
		err  error
	}
	clearFlashMsg struct{ seq int }
)

// Option customizes App construction.
type Option func(*App)

// WithContext sets the context passed to store operations.
func WithContext(ctx context.Context) Option {
	return func(a *App) {
		if ctx != nil {
			a.ctx = ctx
		}
	}
}

// WithReportDir sets where exported PDF reports are written.
func WithReportDir(dir string) Option {
	return func(a *App) {
		if dir != "" {
			a.reportDir = dir
		}
	}
}

// WithClock overrides the time source used for dates and report names.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// App is the dashboard model.
type App struct {
	ctx       context.Context
	store     *store.Store
	logger    *zap.Logger
	now       func() time.Time
	reportDir string

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	tab       tab
	cursor    int
	loading   bool
	confirmID string
	notice    string

	form taskForm

	exporting  bool
	reportPath string
	reportErr  error

	width  int
	height int
}

// New creates the dashboard for s.
func New(s *store.Store, opts ...Option) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	a := &App{
		ctx:       context.Background(),
		store:     s,
		logger:    zap.NewNop(),
		now:       time.Now,
		reportDir: ".",
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		form:      newTaskForm(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Init loads the task list.
func (a *App) Init() tea.Cmd {
	return a.reload()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tasksLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.logger.Warn("task list load failed", zap.Error(msg.err))
		}
		a.clampCursor()
		return a, nil

	case taskSavedMsg:
		return a, a.handleSaved(msg)

	case taskToggledMsg:
		if !msg.ok {
			a.notice = msgToggleFailed
		}
		return a, nil

	case taskDeletedMsg:
		if !msg.ok {
			a.notice = msgDeleteFailed
		}
		a.clampCursor()
		return a, nil

	case reportExportedMsg:
		a.exporting = false
		a.reportPath, a.reportErr = msg.path, msg.err
		if msg.err != nil {
			a.logger.Warn("report export failed", zap.Error(msg.err))
		}
		return a, nil

	case clearFlashMsg:
		if msg.seq == a.form.successSeq {
			a.form.success = ""
		}
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.tab == tabCreate {
			return a, a.updateForm(msg)
		}
		if a.confirmID != "" {
			return a, a.updateConfirm(msg)
		}
		return a, a.updateKeys(msg)
	}

	if a.tab == tabCreate {
		return a, a.form.update(msg)
	}
	return a, nil
}

func (a *App) updateKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Exit):
		return tea.Quit
	case key.Matches(msg, a.keys.NextTab):
		return a.switchTab((a.tab + 1) % tabCount)
	case key.Matches(msg, a.keys.PrevTab):
		return a.switchTab((a.tab + tabCount - 1) % tabCount)
	case key.Matches(msg, a.keys.Tab1):
		return a.switchTab(tabTasks)
	case key.Matches(msg, a.keys.Tab2):
		return a.switchTab(tabCreate)
	case key.Matches(msg, a.keys.Tab3):
		return a.switchTab(tabReports)
	}

	if a.tab == tabReports {
		if key.Matches(msg, a.keys.Export) {
			return a.exportReport()
		}
		return nil
	}

	// The list may have shrunk since the last result message.
	a.clampCursor()
	visible := a.visibleTasks()
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(visible)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Reload):
		return a.reload()
	case key.Matches(msg, a.keys.New):
		a.form.clear()
		return a.switchTab(tabCreate)
	case len(visible) == 0:
		return nil
	case key.Matches(msg, a.keys.Toggle):
		return a.toggle(visible[a.cursor].ID)
	case key.Matches(msg, a.keys.Delete):
		a.notice = ""
		a.confirmID = visible[a.cursor].ID
	case key.Matches(msg, a.keys.Edit):
		a.form.load(visible[a.cursor])
		return a.switchTab(tabCreate)
	}
	return nil
}

func (a *App) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		id := a.confirmID
		a.confirmID = ""
		s, ctx := a.store, a.ctx
		return func() tea.Msg {
			return taskDeletedMsg{ok: s.DeleteTask(ctx, id)}
		}
	case key.Matches(msg, a.keys.Cancel):
		a.confirmID = ""
	}
	return nil
}

func (a *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Back):
		if a.form.editing() {
			a.form.clear()
		}
		return a.switchTab(tabTasks)
	case key.Matches(msg, a.keys.Field):
		return a.form.nextField()
	case key.Matches(msg, a.keys.Submit):
		return a.submit()
	case msg.Type == tea.KeyEnter && a.form.focus == fieldTitle:
		return a.submit()
	}
	return a.form.update(msg)
}

func (a *App) switchTab(t tab) tea.Cmd {
	a.tab = t
	a.confirmID = ""
	if t == tabCreate {
		return a.form.focusField(fieldTitle)
	}
	a.form.blur()
	return nil
}

func (a *App) reload() tea.Cmd {
	a.loading = true
	a.notice = ""
	s, ctx := a.store, a.ctx
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		return tasksLoadedMsg{err: s.Load(ctx)}
	})
}

func (a *App) toggle(id string) tea.Cmd {
	a.notice = ""
	s, ctx := a.store, a.ctx
	return func() tea.Msg {
		return taskToggledMsg{ok: s.ToggleTask(ctx, id)}
	}
}

// submit validates the form locally, then creates or updates the task.
func (a *App) submit() tea.Cmd {
	if a.form.submitting {
		return nil
	}
	draft := a.form.draft().Normalize()
	a.form.success = ""
	if err := draft.Validate(); err != nil {
		a.form.err = domain.ErrTitleRequired.Message
		return nil
	}
	a.form.err = ""
	a.form.submitting = true

	s, ctx := a.store, a.ctx
	if id := a.form.editingID; id != "" {
		return tea.Batch(a.spinner.Tick, func() tea.Msg {
			task, ok := s.Find(id)
			if !ok {
				return taskSavedMsg{editing: true}
			}
			task.Title = draft.Title
			task.Description = draft.Description
			return taskSavedMsg{ok: s.UpdateTask(ctx, task), editing: true}
		})
	}
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		return taskSavedMsg{ok: s.AddTask(ctx, draft)}
	})
}

func (a *App) handleSaved(msg taskSavedMsg) tea.Cmd {
	a.form.submitting = false
	if !msg.ok {
		if msg.editing {
			a.form.err = msgUpdateFailed
		} else {
			a.form.err = msgCreateFailed
		}
		return nil
	}

	a.form.clear()
	a.form.err = ""
	a.form.successSeq++
	seq := a.form.successSeq
	flash := tea.Tick(flashDuration, func(time.Time) tea.Msg { return clearFlashMsg{seq: seq} })

	if msg.editing {
		a.form.success = msgUpdated
		return tea.Batch(flash, a.switchTab(tabTasks))
	}
	a.form.success = msgCreated
	return tea.Batch(flash, a.form.focusField(fieldTitle))
}

func (a *App) exportReport() tea.Cmd {
	if a.exporting {
		return nil
	}
	a.exporting = true
	a.reportPath, a.reportErr = "", nil
	tasks, dir, now := a.store.Tasks(), a.reportDir, a.now()
	return tea.Batch(a.spinner.Tick, func() tea.Msg {
		path, err := report.Export(dir, tasks, now)
		return reportExportedMsg{path: path, err: err}
	})
}

// visibleTasks returns tasks in display order: pending first, then completed.
func (a *App) visibleTasks() []domain.Task {
	pending, completed := domain.SplitByStatus(a.store.Tasks())
	return append(pending, completed...)
}

func (a *App) clampCursor() {
	n := len(a.visibleTasks())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) busy() bool {
	return a.loading || a.form.submitting || a.exporting || a.store.IsLoading()
}
