// Package client talks to the task REST API and normalizes its envelope responses.
//
// Every method logs failures and returns a sentinel (empty slice, nil task) alongside
// the classified error, so callers that only care about success can ignore the error.
package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/domain"
)

const tasksPath = "/api/tasks"

// Doer is the subset of fasthttp.Client used here; tests swap in in-memory transports.
type Doer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

// Option customizes Client construction.
type Option func(*Client)

// WithDoer replaces the underlying HTTP client.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.http = d
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds requests whose context carries no deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Client performs task CRUD against the REST backend.
type Client struct {
	baseURL string
	http    Doer
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &fasthttp.Client{
			Name:                "taskboard",
			MaxIdleConnDuration: 30 * time.Second,
		},
		timeout: 10 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTasks fetches every task. On failure it returns an empty, non-nil slice.
func (c *Client) GetTasks(ctx context.Context) ([]domain.Task, error) {
	const op = "get tasks"
	var wire []transport.APITask
	if err := c.do(ctx, op, fasthttp.MethodGet, tasksPath, nil, &wire); err != nil {
		return []domain.Task{}, err
	}
	tasks := make([]domain.Task, 0, len(wire))
	for _, w := range wire {
		task, err := w.ToTask()
		if err != nil {
			return []domain.Task{}, c.fail(&Error{Kind: KindEnvelope, Op: op, Err: err})
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// CreateTask submits a draft. The backend assigns id and timestamps.
func (c *Client) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	body := transport.CreateTaskRequest{
		Title:       draft.Title,
		Description: draft.Description,
		Completed:   false,
	}
	return c.taskCall(ctx, "create task", fasthttp.MethodPost, tasksPath, body)
}

// ToggleTask flips the completion flag of the task on the server.
func (c *Client) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	return c.taskCall(ctx, "toggle task", fasthttp.MethodPatch, taskPath(id)+"/toggle", nil)
}

// UpdateTask persists title, description and completion of an existing task.
func (c *Client) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	title, description, completed := task.Title, task.Description, task.Completed
	body := transport.UpdateTaskRequest{
		Title:       &title,
		Description: &description,
		Completed:   &completed,
	}
	return c.taskCall(ctx, "update task", fasthttp.MethodPut, taskPath(task.ID), body)
}

// DeleteTask removes a task. A nil error means the backend confirmed the delete.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, "delete task", fasthttp.MethodDelete, taskPath(id), nil, nil)
}

func (c *Client) taskCall(ctx context.Context, op, method, path string, body interface{}) (*domain.Task, error) {
	var wire transport.APITask
	if err := c.do(ctx, op, method, path, body, &wire); err != nil {
		return nil, err
	}
	task, err := wire.ToTask()
	if err != nil {
		return nil, c.fail(&Error{Kind: KindEnvelope, Op: op, Err: err})
	}
	return &task, nil
}

// do sends the request and decodes the envelope. When out is nil the data field is not required.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return c.fail(&Error{Kind: KindTransport, Op: op, Err: err})
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return c.fail(&Error{Kind: KindTransport, Op: op, Err: err})
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(payload)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return c.fail(&Error{Kind: KindTransport, Op: op, Err: err})
	}

	status := resp.StatusCode()
	if status == fasthttp.StatusNoContent && out == nil {
		return nil
	}
	var envelope transport.RawEnvelope
	decodeErr := json.Unmarshal(resp.Body(), &envelope)

	if status < 200 || status > 299 {
		e := &Error{Kind: KindStatus, Op: op, Status: status}
		if decodeErr == nil {
			e.Message = envelope.Message
		}
		return c.fail(e)
	}
	if decodeErr != nil {
		return c.fail(&Error{Kind: KindEnvelope, Op: op, Status: status, Err: decodeErr})
	}
	if !envelope.Success {
		return c.fail(&Error{Kind: KindEnvelope, Op: op, Status: status, Message: envelope.Message})
	}
	if out == nil {
		return nil
	}
	if !envelope.HasData() {
		return c.fail(&Error{Kind: KindEnvelope, Op: op, Status: status, Message: "response has no data"})
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return c.fail(&Error{Kind: KindEnvelope, Op: op, Status: status, Err: err})
	}
	return nil
}

func (c *Client) fail(err *Error) error {
	c.logger.Warn("task api request failed",
		zap.String("op", err.Op),
		zap.String("kind", string(err.Kind)),
		zap.Int("status", err.Status),
		zap.Error(err))
	return err
}

func taskPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}
