package transport

import (
	"fmt"
	"time"

	"github.com/fastygo/taskboard/domain"
)

// isoLocalLayout matches the zone-less timestamps produced by Python's datetime.isoformat().
const isoLocalLayout = "2006-01-02T15:04:05.999999999"

// APITask is the wire representation of a task.
type APITask struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// FromTask renders a domain task for the wire.
func FromTask(t domain.Task) APITask {
	var description *string
	if t.Description != "" {
		d := t.Description
		description = &d
	}
	return APITask{
		ID:          t.ID,
		Title:       t.Title,
		Description: description,
		Completed:   t.Completed,
		CreatedAt:   FormatTimestamp(t.CreatedAt),
		UpdatedAt:   FormatTimestamp(t.UpdatedAt),
	}
}

// FromTasks renders a list, never returning nil so the JSON is always an array.
func FromTasks(tasks []domain.Task) []APITask {
	out := make([]APITask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, FromTask(t))
	}
	return out
}

// ToTask parses the wire task into the domain form.
func (a APITask) ToTask() (domain.Task, error) {
	created, err := ParseTimestamp(a.CreatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s created_at: %w", a.ID, err)
	}
	updated, err := ParseTimestamp(a.UpdatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s updated_at: %w", a.ID, err)
	}
	task := domain.Task{
		ID:        a.ID,
		Title:     a.Title,
		Completed: a.Completed,
		CreatedAt: created,
		UpdatedAt: updated,
	}
	if a.Description != nil {
		task.Description = *a.Description
	}
	return task, nil
}

// FormatTimestamp encodes a time as RFC3339 with nanoseconds in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp accepts RFC3339 and zone-less ISO-8601 timestamps (read as UTC).
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(isoLocalLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
	}
	return t, nil
}
