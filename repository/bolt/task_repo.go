// Package bolt stores tasks in an embedded BoltDB file, one JSON value per task id.
package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

const defaultBucket = "tasks"

// Store wraps BoltDB and implements repository.TaskRepository.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

var _ repository.TaskRepository = (*Store)(nil)

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(defaultBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(defaultBucket),
	}, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	tasks := []domain.Task{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(_, v []byte) error {
			var task domain.Task
			if err := json.Unmarshal(v, &task); err != nil {
				return err
			}
			tasks = append(tasks, task)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	var task *domain.Task
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		task, err = s.get(tx, id)
		return err
	})
	return task, err
}

func (s *Store) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return s.put(tx, task)
	}); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		current, err := s.get(tx, task.ID)
		if err != nil {
			return err
		}
		current.Title = task.Title
		current.Description = task.Description
		current.Completed = task.Completed
		current.Touch(task.UpdatedAt)
		return s.put(tx, current)
	})
}

func (s *Store) Toggle(ctx context.Context, id string, at time.Time) (*domain.Task, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	var task *domain.Task
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		task, err = s.get(tx, id)
		if err != nil {
			return err
		}
		task.Completed = !task.Completed
		task.Touch(at)
		return s.put(tx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(id)) == nil {
			return domain.ErrTaskNotFound
		}
		return b.Delete([]byte(id))
	})
}

// Ping implements repository.Pinger.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(s.bucket) == nil {
			return bolt.ErrBucketNotFound
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stats exposes Bolt statistics for monitoring endpoints.
func (s *Store) Stats() bolt.Stats {
	if s == nil || s.db == nil {
		return bolt.Stats{}
	}
	return s.db.Stats()
}

func (s *Store) ready(ctx context.Context) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return ctx.Err()
}

func (s *Store) get(tx *bolt.Tx, id string) (*domain.Task, error) {
	v := tx.Bucket(s.bucket).Get([]byte(id))
	if v == nil {
		return nil, domain.ErrTaskNotFound
	}
	var task domain.Task
	if err := json.Unmarshal(v, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Store) put(tx *bolt.Tx, task *domain.Task) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return tx.Bucket(s.bucket).Put([]byte(task.ID), payload)
}
