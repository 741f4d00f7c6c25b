// Package sqlite stores tasks in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

const taskColumns = `id, title, description, completed, created_at, updated_at`

// TaskRepository is a SQLite-backed repository.TaskRepository.
type TaskRepository struct {
	db *sql.DB
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

// Open creates the database file if needed and bootstraps the tasks table.
func Open(path string) (*TaskRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(repository.TasksTableDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: bootstrap tasks table: %w", err)
	}
	return &TaskRepository{db: db}, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, title, description, completed, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		nullString(task.Description),
		task.Completed,
		task.CreatedAt.UTC(),
		task.UpdatedAt.UTC(),
	); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = ?,
		description = ?,
		completed = ?,
		updated_at = ?
	WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		task.Title,
		nullString(task.Description),
		task.Completed,
		task.UpdatedAt.UTC(),
		task.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *TaskRepository) Toggle(ctx context.Context, id string, at time.Time) (*domain.Task, error) {
	const query = `UPDATE tasks SET completed = NOT completed, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, at.UTC(), id)
	if err != nil {
		return nil, err
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Ping implements repository.Pinger.
func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *TaskRepository) Close() error {
	return r.db.Close()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task.Description = description.String
	return &task, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
