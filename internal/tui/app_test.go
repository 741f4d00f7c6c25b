package tui

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zaptest"

	"github.com/fastygo/taskboard/internal/store"
	"github.com/fastygo/taskboard/internal/testutil"
)

var testNow = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, api *testutil.FakeAPI, opts ...Option) *App {
	t.Helper()
	s := store.New(api, zaptest.NewLogger(t))
	opts = append([]Option{WithClock(func() time.Time { return testNow }), WithLogger(zaptest.NewLogger(t))}, opts...)
	app := New(s, opts...)
	settle(t, app, app.Init())
	return app
}

// collect runs cmd and returns the messages produced within a short window.
// Timer based commands (cursor blink, flash expiry) are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(150 * time.Millisecond):
		return nil
	}
}

// settle feeds the dashboard's own result messages back into the model.
func settle(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case tasksLoadedMsg, taskSavedMsg, taskToggledMsg, taskDeletedMsg, reportExportedMsg:
			_, next := app.Update(msg)
			settle(t, app, next)
		}
	}
}

func press(t *testing.T, app *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := app.Update(msg)
		settle(t, app, cmd)
	}
}

func seeded() *testutil.FakeAPI {
	return testutil.NewFakeAPI(
		testutil.Task("1", "Complete project documentation", false),
		testutil.Task("2", "Review code changes", true),
		testutil.Task("3", "Update dependencies", false),
	)
}

func TestDashboardRendersSectionsAndStats(t *testing.T) {
	app := newTestApp(t, seeded())
	view := app.View()

	for _, want := range []string{
		"Task Management Dashboard",
		"Complete project documentation",
		"Review code changes",
		"Update dependencies",
		"Pending Tasks (2)",
		"Completed Tasks (1)",
		"Total Tasks",
		"33%",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestLoadFailureShowsError(t *testing.T) {
	api := seeded()
	api.GetTasksErr = testutil.ErrUnavailable
	app := newTestApp(t, api)

	if !strings.Contains(app.View(), store.LoadErrorMessage) {
		t.Fatalf("expected load error in view")
	}

	api.GetTasksErr = nil
	press(t, app, "r")
	if strings.Contains(app.View(), store.LoadErrorMessage) || len(app.store.Tasks()) != 3 {
		t.Fatalf("reload should recover")
	}
}

func TestToggleSelectedTask(t *testing.T) {
	app := newTestApp(t, seeded())

	// Cursor starts on the first pending task.
	press(t, app, "space")
	if task, _ := app.store.Find("1"); !task.Completed {
		t.Fatalf("expected task 1 completed, got %+v", task)
	}
	if !strings.Contains(app.View(), "Completed Tasks (2)") {
		t.Fatalf("sections not updated:\n%s", app.View())
	}
}

func TestToggleFailureShowsNotice(t *testing.T) {
	api := seeded()
	app := newTestApp(t, api)
	api.ToggleTaskErr = testutil.ErrUnavailable

	press(t, app, "space")
	if !strings.Contains(app.View(), msgToggleFailed) {
		t.Fatalf("expected toggle failure notice")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	app := newTestApp(t, seeded())

	press(t, app, "d")
	if !strings.Contains(app.View(), msgConfirmDelete) {
		t.Fatalf("expected confirmation prompt")
	}
	press(t, app, "n")
	if len(app.store.Tasks()) != 3 {
		t.Fatalf("cancel must not delete")
	}

	press(t, app, "down", "d", "y")
	if _, ok := app.store.Find("3"); ok {
		t.Fatalf("expected task 3 to be deleted")
	}
	if len(app.store.Tasks()) != 2 {
		t.Fatalf("expected exactly one task removed")
	}
	if app.cursor >= len(app.store.Tasks()) {
		t.Fatalf("cursor should be clamped, got %d", app.cursor)
	}
}

func TestKeysAfterListShrinksUnderCursor(t *testing.T) {
	app := newTestApp(t, seeded())
	press(t, app, "down", "down")
	if app.cursor != 2 {
		t.Fatalf("expected cursor on the last row, got %d", app.cursor)
	}

	// A delete that committed before its result message was processed.
	if !app.store.DeleteTask(context.Background(), "2") {
		t.Fatalf("delete failed")
	}
	press(t, app, "space")

	if app.cursor != 1 {
		t.Fatalf("cursor should be clamped to the last row, got %d", app.cursor)
	}
	if task, _ := app.store.Find("3"); !task.Completed {
		t.Fatalf("expected the row under the clamped cursor to be toggled, got %+v", task)
	}
}

func TestCreateTaskFlow(t *testing.T) {
	api := testutil.NewFakeAPI()
	app := newTestApp(t, api)

	press(t, app, "2")
	if app.tab != tabCreate {
		t.Fatalf("expected create tab")
	}
	press(t, app, "Write tests", "tab", "cover the dashboard", "ctrl+s")

	tasks := app.store.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Write tests" || tasks[0].Description != "cover the dashboard" || tasks[0].Completed {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
	if app.form.success != msgCreated || app.form.title.Value() != "" || app.form.description.Value() != "" {
		t.Fatalf("form should be cleared with a success message, got %+v", app.form.success)
	}

	_, _ = app.Update(clearFlashMsg{seq: app.form.successSeq - 1})
	if app.form.success == "" {
		t.Fatalf("stale flash timer must not clear the message")
	}
	_, _ = app.Update(clearFlashMsg{seq: app.form.successSeq})
	if app.form.success != "" {
		t.Fatalf("expected success message cleared")
	}
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	api := testutil.NewFakeAPI()
	app := newTestApp(t, api)
	calls := api.CallCount()

	press(t, app, "2", "   ", "enter")
	if app.form.err != "Task title is required" {
		t.Fatalf("expected validation message, got %q", app.form.err)
	}
	if api.CallCount() != calls {
		t.Fatalf("validation failure must not call the api")
	}
}

func TestCreateFailureShowsMessage(t *testing.T) {
	api := testutil.NewFakeAPI()
	app := newTestApp(t, api)
	api.CreateTaskErr = testutil.ErrUnavailable

	press(t, app, "2", "New task", "enter")
	if app.form.err != msgCreateFailed || app.form.submitting {
		t.Fatalf("expected create failure message, got %q", app.form.err)
	}
	if app.form.title.Value() != "New task" {
		t.Fatalf("input must be kept after a failure")
	}
}

func TestEditTaskFlow(t *testing.T) {
	app := newTestApp(t, seeded())

	press(t, app, "e")
	if app.tab != tabCreate || !app.form.editing() {
		t.Fatalf("expected edit mode on the create tab")
	}
	if !strings.Contains(app.View(), "Edit Task") {
		t.Fatalf("expected edit heading")
	}
	app.form.title.SetValue("Complete all documentation")
	press(t, app, "ctrl+s")

	task, _ := app.store.Find("1")
	if task.Title != "Complete all documentation" {
		t.Fatalf("edit not applied: %+v", task)
	}
	if app.tab != tabTasks || app.form.editing() {
		t.Fatalf("expected return to tasks tab after editing")
	}
}

func TestTabNavigation(t *testing.T) {
	app := newTestApp(t, seeded())

	press(t, app, "tab")
	if app.tab != tabCreate {
		t.Fatalf("expected create tab, got %d", app.tab)
	}
	press(t, app, "esc")
	if app.tab != tabTasks {
		t.Fatalf("esc should return to tasks")
	}
	press(t, app, "shift+tab")
	if app.tab != tabReports {
		t.Fatalf("shift+tab should wrap to reports, got %d", app.tab)
	}
}

func TestExportReport(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, seeded(), WithReportDir(dir), WithContext(context.Background()))

	press(t, app, "3", "enter")
	if app.reportErr != nil {
		t.Fatalf("export failed: %v", app.reportErr)
	}
	if !strings.HasSuffix(app.reportPath, "task-report-2024-03-05.pdf") {
		t.Fatalf("unexpected report path %q", app.reportPath)
	}
	if _, err := os.Stat(app.reportPath); err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(app.View(), "Report saved to") {
		t.Fatalf("expected saved notice")
	}
}

func TestQuit(t *testing.T) {
	app := newTestApp(t, seeded())
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
