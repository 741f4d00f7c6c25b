package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fastygo/taskboard/domain"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
)

// taskForm backs both the create and the edit flow.
type taskForm struct {
	title       textinput.Model
	description textarea.Model
	focus       formField

	editingID  string
	submitting bool
	err        string
	success    string
	successSeq int
}

func newTaskForm() taskForm {
	title := textinput.New()
	title.Placeholder = "Enter task title..."
	title.CharLimit = 200
	title.Width = 50

	description := textarea.New()
	description.Placeholder = "Enter task description..."
	description.ShowLineNumbers = false
	description.SetWidth(52)
	description.SetHeight(4)

	return taskForm{title: title, description: description}
}

func (f *taskForm) editing() bool {
	return f.editingID != ""
}

func (f *taskForm) focusField(field formField) tea.Cmd {
	f.focus = field
	if field == fieldDescription {
		f.title.Blur()
		return f.description.Focus()
	}
	f.description.Blur()
	return f.title.Focus()
}

func (f *taskForm) blur() {
	f.title.Blur()
	f.description.Blur()
}

func (f *taskForm) nextField() tea.Cmd {
	if f.focus == fieldTitle {
		return f.focusField(fieldDescription)
	}
	return f.focusField(fieldTitle)
}

// clear empties the inputs and leaves edit mode. Messages are kept.
func (f *taskForm) clear() {
	f.title.Reset()
	f.description.Reset()
	f.editingID = ""
	f.submitting = false
}

func (f *taskForm) load(task domain.Task) {
	f.title.SetValue(task.Title)
	f.description.SetValue(task.Description)
	f.editingID = task.ID
	f.err = ""
	f.success = ""
}

func (f *taskForm) draft() domain.TaskDraft {
	return domain.TaskDraft{
		Title:       f.title.Value(),
		Description: f.description.Value(),
	}
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == fieldDescription {
		f.description, cmd = f.description.Update(msg)
		return cmd
	}
	f.title, cmd = f.title.Update(msg)
	return cmd
}
