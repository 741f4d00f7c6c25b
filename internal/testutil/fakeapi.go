// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fastygo/taskboard/domain"
)

// ErrNotFound is returned when a task id is unknown.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is a convenient injected failure.
var ErrUnavailable = errors.New("backend unavailable")

// FakeAPI is an in-memory implementation of store.TaskAPI. It echoes drafts with a
// generated id and timestamps, the way the real backend does.
type FakeAPI struct {
	mu    sync.Mutex
	tasks []domain.Task
	seq   int
	now   time.Time

	// Error injection for testing
	GetTasksErr   error
	CreateTaskErr error
	ToggleTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// Calls records every operation in order, e.g. "create", "toggle:abc".
	Calls []string
}

// NewFakeAPI creates a FakeAPI seeded with tasks.
func NewFakeAPI(tasks ...domain.Task) *FakeAPI {
	f := &FakeAPI{
		now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.tasks = append(f.tasks, tasks...)
	return f
}

// Task builds a seed task with fixed timestamps.
func Task(id, title string, completed bool) domain.Task {
	ts := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	return domain.Task{
		ID:        id,
		Title:     title,
		Completed: completed,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

// Stored returns a copy of the backend's tasks.
func (f *FakeAPI) Stored() []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// CallCount returns how many operations were invoked.
func (f *FakeAPI) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

func (f *FakeAPI) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *FakeAPI) record(call string) {
	f.Calls = append(f.Calls, call)
}

// GetTasks implements store.TaskAPI.
func (f *FakeAPI) GetTasks(ctx context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list")
	if f.GetTasksErr != nil {
		return []domain.Task{}, f.GetTasksErr
	}
	out := make([]domain.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements store.TaskAPI.
func (f *FakeAPI) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create")
	if f.CreateTaskErr != nil {
		return nil, f.CreateTaskErr
	}
	f.seq++
	now := f.tick()
	task := domain.Task{
		ID:          fmt.Sprintf("task-%d", f.seq),
		Title:       draft.Title,
		Description: draft.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append(f.tasks, task)
	return &task, nil
}

// ToggleTask implements store.TaskAPI.
func (f *FakeAPI) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("toggle:" + id)
	if f.ToggleTaskErr != nil {
		return nil, f.ToggleTaskErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = !f.tasks[i].Completed
			f.tasks[i].Touch(f.tick())
			task := f.tasks[i]
			return &task, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateTask implements store.TaskAPI.
func (f *FakeAPI) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update:" + task.ID)
	if f.UpdateTaskErr != nil {
		return nil, f.UpdateTaskErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i].Title = task.Title
			f.tasks[i].Description = task.Description
			f.tasks[i].Completed = task.Completed
			f.tasks[i].Touch(f.tick())
			updated := f.tasks[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteTask implements store.TaskAPI.
func (f *FakeAPI) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete:" + id)
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
