package transport

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fastygo/taskboard/domain"
)

func TestParseTimestampAcceptsPythonISO(t *testing.T) {
	got, err := ParseTimestamp("2024-03-01T09:15:30.123456")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2024, 3, 1, 9, 15, 30, 123456000, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := ParseTimestamp("2024-03-01T09:15:30+02:00"); err != nil {
		t.Fatalf("rfc3339 with offset should parse: %v", err)
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Fatalf("expected error for garbage timestamp")
	}
}

func TestAPITaskNullDescription(t *testing.T) {
	body := `{"id":"1","title":"A","description":null,"completed":true,"created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-02T00:00:00Z"}`
	var wire APITask
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	task, err := wire.ToTask()
	if err != nil {
		t.Fatalf("to task: %v", err)
	}
	if task.Description != "" || !task.Completed || !task.WasUpdated() {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestFromTaskOmitsEmptyDescription(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	wire := FromTask(domain.Task{ID: "1", Title: "A", CreatedAt: now, UpdatedAt: now})
	if wire.Description != nil {
		t.Fatalf("expected nil description, got %q", *wire.Description)
	}
	if wire.CreatedAt != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected created_at %q", wire.CreatedAt)
	}
	if FromTasks(nil) == nil {
		t.Fatalf("FromTasks must never return nil")
	}
}
