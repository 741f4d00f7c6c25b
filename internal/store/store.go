// Package store is the single source of truth for the dashboard's task list.
//
// Views read snapshots and call the store's operations; the operations call the task
// API and, on success, apply a reducer transition. Nothing else writes task state.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
)

// LoadErrorMessage is the message exposed when the initial fetch fails.
const LoadErrorMessage = "Failed to load tasks"

// TaskAPI is the remote side of the store.
type TaskAPI interface {
	GetTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error)
	ToggleTask(ctx context.Context, id string) (*domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// State is a read-only snapshot of the store.
type State struct {
	Tasks     []domain.Task
	IsLoading bool
	Error     string
}

// Store holds the in-memory task sequence plus loading and error flags.
type Store struct {
	api    TaskAPI
	logger *zap.Logger

	mu    sync.RWMutex
	state State
}

// New creates an empty store backed by api.
func New(api TaskAPI, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:    api,
		logger: logger,
		state:  State{Tasks: []domain.Task{}},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Tasks:     clone(s.state.Tasks),
		IsLoading: s.state.IsLoading,
		Error:     s.state.Error,
	}
}

// Tasks returns a copy of the task sequence.
func (s *Store) Tasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.state.Tasks)
}

// IsLoading reports whether the initial load is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoading
}

// Err returns the load error message, empty when the last load succeeded.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Error
}

// Stats computes the dashboard counters from the current tasks.
func (s *Store) Stats() domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ComputeStats(s.state.Tasks)
}

// Find returns the task with id, if present.
func (s *Store) Find(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// Load replaces the task sequence with the backend's list. On failure the list is
// emptied and Err reports LoadErrorMessage.
func (s *Store) Load(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	tasks, err := s.api.GetTasks(ctx)
	if tasks == nil {
		tasks = []domain.Task{}
	}
	s.dispatch(SetTasks(tasks))

	s.mu.Lock()
	if err != nil {
		s.state.Error = LoadErrorMessage
	} else {
		s.state.Error = ""
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to load tasks", zap.Error(err))
		return err
	}
	s.logger.Debug("tasks loaded", zap.Int("count", len(tasks)))
	return nil
}

// AddTask creates a task from draft. Invalid drafts are rejected without a network call.
func (s *Store) AddTask(ctx context.Context, draft domain.TaskDraft) bool {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		s.logger.Debug("rejected task draft", zap.Error(err))
		return false
	}
	created, err := s.api.CreateTask(ctx, draft)
	if err != nil || created == nil {
		s.logger.Error("failed to create task", zap.Error(err))
		return false
	}
	s.dispatch(AddTask(*created))
	return true
}

// ToggleTask flips completion on the server and applies the server's task.
func (s *Store) ToggleTask(ctx context.Context, id string) bool {
	updated, err := s.api.ToggleTask(ctx, id)
	if err != nil || updated == nil {
		s.logger.Error("failed to toggle task", zap.String("task_id", id), zap.Error(err))
		return false
	}
	s.dispatch(UpdateTask(*updated))
	return true
}

// UpdateTask persists an edited task and applies the server's version.
func (s *Store) UpdateTask(ctx context.Context, task domain.Task) bool {
	draft := domain.TaskDraft{Title: task.Title, Description: task.Description}.Normalize()
	if err := draft.Validate(); err != nil {
		s.logger.Debug("rejected task edit", zap.String("task_id", task.ID), zap.Error(err))
		return false
	}
	task.Title, task.Description = draft.Title, draft.Description

	updated, err := s.api.UpdateTask(ctx, task)
	if err != nil || updated == nil {
		s.logger.Error("failed to update task", zap.String("task_id", task.ID), zap.Error(err))
		return false
	}
	s.dispatch(UpdateTask(*updated))
	return true
}

// DeleteTask removes the task on the server, then locally.
func (s *Store) DeleteTask(ctx context.Context, id string) bool {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.logger.Error("failed to delete task", zap.String("task_id", id), zap.Error(err))
		return false
	}
	s.dispatch(DeleteTask(id))
	return true
}

func (s *Store) dispatch(action Action) {
	s.mu.Lock()
	s.state.Tasks = Reduce(s.state.Tasks, action)
	s.mu.Unlock()
	s.logger.Debug("store dispatch", zap.Stringer("action", action.Type))
}

func (s *Store) setLoading(loading bool) {
	s.mu.Lock()
	s.state.IsLoading = loading
	s.mu.Unlock()
}
