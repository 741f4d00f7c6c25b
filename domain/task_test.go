package domain

import (
	"testing"
	"time"
)

func TestTaskDraftValidate(t *testing.T) {
	if err := (TaskDraft{Title: "   "}).Validate(); err != ErrTitleRequired {
		t.Fatalf("expected ErrTitleRequired for blank title, got %v", err)
	}
	if err := (TaskDraft{Title: "Write docs"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsDomainError(ErrTitleRequired, ErrCodeInvalid) {
		t.Fatalf("title error should be classified as invalid")
	}
}

func TestTaskDraftNormalize(t *testing.T) {
	got := TaskDraft{Title: "  Test Task ", Description: "\tTest Description\n"}.Normalize()
	if got.Title != "Test Task" || got.Description != "Test Description" {
		t.Fatalf("unexpected normalized draft: %+v", got)
	}
}

func TestTouchKeepsUpdatedAfterCreated(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	task := Task{CreatedAt: created, UpdatedAt: created}

	task.Touch(created.Add(-time.Hour))
	if task.UpdatedAt.Before(task.CreatedAt) {
		t.Fatalf("updated_at %v moved before created_at %v", task.UpdatedAt, task.CreatedAt)
	}

	later := created.Add(time.Minute)
	task.Touch(later)
	if !task.UpdatedAt.Equal(later) {
		t.Fatalf("expected updated_at %v, got %v", later, task.UpdatedAt)
	}
	if !task.WasUpdated() {
		t.Fatalf("expected task to report an update")
	}
}

func TestTaskPatchApply(t *testing.T) {
	title := "  New title "
	done := true
	task := Task{ID: "a", Title: "Old", Description: "keep"}
	TaskPatch{Title: &title, Completed: &done}.Apply(&task)

	if task.Title != "New title" || task.Description != "keep" || !task.Completed {
		t.Fatalf("unexpected patched task: %+v", task)
	}
}

func TestSplitByStatusPreservesOrder(t *testing.T) {
	tasks := []Task{
		{ID: "1"}, {ID: "2", Completed: true}, {ID: "3"}, {ID: "4", Completed: true},
	}
	pending, completed := SplitByStatus(tasks)
	if len(pending) != 2 || pending[0].ID != "1" || pending[1].ID != "3" {
		t.Fatalf("unexpected pending tasks: %+v", pending)
	}
	if len(completed) != 2 || completed[0].ID != "2" || completed[1].ID != "4" {
		t.Fatalf("unexpected completed tasks: %+v", completed)
	}
}

func TestComputeStats(t *testing.T) {
	if got := ComputeStats(nil); got != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}

	tasks := []Task{{Completed: true}, {}, {}}
	got := ComputeStats(tasks)
	want := Stats{Total: 3, Completed: 1, Pending: 2, CompletionRate: 33}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	got = ComputeStats([]Task{{Completed: true}, {Completed: true}, {}})
	if got.CompletionRate != 67 {
		t.Fatalf("expected rounded rate 67, got %d", got.CompletionRate)
	}
}
