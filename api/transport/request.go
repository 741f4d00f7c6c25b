package transport

import "github.com/fastygo/taskboard/domain"

// CreateTaskRequest is the POST /api/tasks body.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Draft converts the request into a domain draft.
func (r CreateTaskRequest) Draft() domain.TaskDraft {
	return domain.TaskDraft{Title: r.Title, Description: r.Description}
}

// UpdateTaskRequest is the PUT /api/tasks/{id} body. Absent fields are not changed.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Patch converts the request into a domain patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}
