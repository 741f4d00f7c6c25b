// Package repotest holds the behaviour every repository.TaskRepository driver must share.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTask(title, description string, offset time.Duration) *domain.Task {
	at := base.Add(offset)
	return &domain.Task{Title: title, Description: description, CreatedAt: at, UpdatedAt: at}
}

// RunTaskRepository exercises repo against the shared contract. repo must start empty.
func RunTaskRepository(t *testing.T, repo repository.TaskRepository) {
	t.Helper()
	ctx := context.Background()

	first, err := repo.Create(ctx, newTask("first", "", 0))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("create must assign an id")
	}
	second, err := repo.Create(ctx, newTask("second", "with details", time.Minute))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	tasks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", tasks)
	}

	got, err := repo.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "second" || got.Description != "with details" || got.Completed {
		t.Fatalf("unexpected task %+v", got)
	}
	if !got.CreatedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("created_at not preserved: %v", got.CreatedAt)
	}

	toggledAt := base.Add(time.Hour)
	toggled, err := repo.Toggle(ctx, first.ID, toggledAt)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !toggled.Completed || toggled.Title != "first" || !toggled.UpdatedAt.Equal(toggledAt) {
		t.Fatalf("unexpected toggled task %+v", toggled)
	}

	got.Title = "second renamed"
	got.Description = ""
	got.UpdatedAt = base.Add(2 * time.Hour)
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	reloaded, err := repo.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Title != "second renamed" || reloaded.Description != "" {
		t.Fatalf("update not persisted: %+v", reloaded)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != second.ID {
		t.Fatalf("expected only second to remain, got %+v", tasks)
	}

	expectNotFound(t, "get", func() error { _, err := repo.GetByID(ctx, first.ID); return err })
	expectNotFound(t, "delete", func() error { return repo.Delete(ctx, first.ID) })
	expectNotFound(t, "toggle", func() error { _, err := repo.Toggle(ctx, first.ID, base); return err })
	expectNotFound(t, "update", func() error {
		return repo.Update(ctx, &domain.Task{ID: first.ID, Title: "ghost", UpdatedAt: base})
	})
}

func expectNotFound(t *testing.T, op string, fn func() error) {
	t.Helper()
	if err := fn(); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("%s of missing task: expected ErrTaskNotFound, got %v", op, err)
	}
}
