// Package redis decorates a task repository with a read-through list cache.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

const listKey = "tasks:list"

type cachedTaskRepository struct {
	next   repository.TaskRepository
	client *redislib.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTaskRepository caches List results in Redis. Every mutation invalidates the
// cached list; cache failures are logged and the call falls through to next.
func NewCachedTaskRepository(next repository.TaskRepository, client *redislib.Client, ttl time.Duration, logger *zap.Logger) repository.TaskRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedTaskRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *cachedTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	result, err := r.client.Get(ctx, listKey).Result()
	switch {
	case err == nil:
		var tasks []domain.Task
		if err := json.Unmarshal([]byte(result), &tasks); err == nil {
			return tasks, nil
		}
		r.logger.Warn("discarding corrupt cached task list")
	case !errors.Is(err, redislib.Nil):
		r.logger.Warn("task cache read failed", zap.Error(err))
	}

	tasks, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(tasks)
	if err != nil {
		return tasks, nil
	}
	if err := r.client.Set(ctx, listKey, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("task cache write failed", zap.Error(err))
	}
	return tasks, nil
}

func (r *cachedTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.next.GetByID(ctx, id)
}

func (r *cachedTaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	created, err := r.next.Create(ctx, task)
	if err == nil {
		r.invalidate(ctx)
	}
	return created, err
}

func (r *cachedTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	err := r.next.Update(ctx, task)
	if err == nil {
		r.invalidate(ctx)
	}
	return err
}

func (r *cachedTaskRepository) Toggle(ctx context.Context, id string, at time.Time) (*domain.Task, error) {
	task, err := r.next.Toggle(ctx, id, at)
	if err == nil {
		r.invalidate(ctx)
	}
	return task, err
}

func (r *cachedTaskRepository) Delete(ctx context.Context, id string) error {
	err := r.next.Delete(ctx, id)
	if err == nil {
		r.invalidate(ctx)
	}
	return err
}

// Ping reports Redis availability.
func (r *cachedTaskRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *cachedTaskRepository) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, listKey).Err(); err != nil {
		r.logger.Warn("task cache invalidation failed", zap.Error(err))
	}
}
