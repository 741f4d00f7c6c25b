package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fastygo/taskboard/repository/repotest"
)

func openTestRepo(t *testing.T) *TaskRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Skipf("sqlite unavailable (cgo disabled?): %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTaskRepositoryContract(t *testing.T) {
	repotest.RunTaskRepository(t, openTestRepo(t))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.db")
	repo, err := Open(path)
	if err != nil {
		t.Skipf("sqlite unavailable (cgo disabled?): %v", err)
	}
	repo.Close()

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen existing database: %v", err)
	}
	defer again.Close()
	if err := again.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
