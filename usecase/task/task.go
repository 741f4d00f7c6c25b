package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	appLogger "github.com/fastygo/taskboard/pkg/logger"
	"github.com/fastygo/taskboard/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	now    func() time.Time
	logger *zap.Logger
}

// Option customizes a UseCase.
type Option func(*UseCase)

// WithClock overrides the time source used to stamp tasks.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func New(tasks repository.TaskRepository, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		tasks:  tasks,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ListTasks returns every task, newest first.
func (uc *UseCase) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return uc.tasks.List(ctx)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// CreateTask validates the draft and stores a new pending task.
func (uc *UseCase) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := uc.stamp()
	task := &domain.Task{
		Title:       draft.Title,
		Description: draft.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	uc.log(ctx).Info("task created", zap.String("task_id", created.ID))
	return created, nil
}

// UpdateTask applies the patch to an existing task.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(task)
	if task.Title == "" {
		return nil, domain.ErrTitleRequired
	}
	task.Touch(uc.stamp())

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	uc.log(ctx).Info("task updated", zap.String("task_id", id))
	return task, nil
}

// ToggleTask flips the completion flag of a task.
func (uc *UseCase) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.Toggle(ctx, id, uc.stamp())
	if err != nil {
		return nil, err
	}
	uc.log(ctx).Info("task toggled", zap.String("task_id", id), zap.Bool("completed", task.Completed))
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.log(ctx).Info("task deleted", zap.String("task_id", id))
	return nil
}

func (uc *UseCase) log(ctx context.Context) *zap.Logger {
	return appLogger.WithRequestID(ctx, uc.logger)
}

// stamp returns the current time truncated to microseconds, the finest precision every driver keeps.
func (uc *UseCase) stamp() time.Time {
	return uc.now().UTC().Truncate(time.Microsecond)
}
