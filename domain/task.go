package domain

import (
	"strings"
	"time"
)

// Task represents a single unit of work tracked by the dashboard.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Status returns the human readable completion state.
func (t Task) Status() string {
	if t.Completed {
		return "completed"
	}
	return "pending"
}

// WasUpdated reports whether the task changed after creation.
func (t Task) WasUpdated() bool {
	return !t.UpdatedAt.Equal(t.CreatedAt)
}

// Touch bumps UpdatedAt while keeping it at or after CreatedAt.
func (t *Task) Touch(now time.Time) {
	if t == nil {
		return
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

// TaskDraft carries the user supplied fields of a task before the backend accepts it.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Normalize trims surrounding whitespace from every field.
func (d TaskDraft) Normalize() TaskDraft {
	return TaskDraft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
	}
}

// Validate checks the draft can be submitted.
func (d TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// TaskPatch describes a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Apply copies the set fields onto the task.
func (p TaskPatch) Apply(t *Task) {
	if t == nil {
		return
	}
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

// SplitByStatus separates tasks into pending and completed, preserving order.
func SplitByStatus(tasks []Task) (pending, completed []Task) {
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
			continue
		}
		pending = append(pending, t)
	}
	return pending, completed
}
