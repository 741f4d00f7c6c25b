package repository

import (
	"context"
	"time"

	"github.com/fastygo/taskboard/domain"
)

// TaskRepository persists tasks. List returns the newest tasks first.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Toggle(ctx context.Context, id string, at time.Time) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
