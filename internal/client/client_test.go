package client

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fastygo/taskboard/domain"
)

const (
	createdAt = "2024-03-01T09:00:00Z"
	updatedAt = "2024-03-02T10:30:00Z"
)

// newTestClient serves handler on an in-memory listener and returns a client wired to it.
func newTestClient(t *testing.T, handler fasthttp.RequestHandler) (*Client, *observer.ObservedLogs) {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: handler}
	go func() {
		_ = server.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = server.Shutdown()
		_ = ln.Close()
	})

	core, logs := observer.New(zap.DebugLevel)
	doer := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}
	c := New("http://tasks.test", WithDoer(doer), WithLogger(zap.New(core)), WithTimeout(2*time.Second))
	return c, logs
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body string) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(body)
}

func TestGetTasksMapsEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Method()) != fasthttp.MethodGet || string(ctx.Path()) != "/api/tasks" {
			t.Errorf("unexpected request %s %s", ctx.Method(), ctx.Path())
		}
		writeJSON(ctx, 200, `{"success":true,"message":"Tasks retrieved successfully","data":[
			{"id":"a","title":"Task A","description":"first","completed":false,"created_at":"`+createdAt+`","updated_at":"`+createdAt+`"},
			{"id":"b","title":"Task B","description":null,"completed":true,"created_at":"2024-03-01T09:00:00.5","updated_at":"`+updatedAt+`"}
		]}`)
	})

	tasks, err := c.GetTasks(context.Background())
	if err != nil {
		t.Fatalf("get tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[0].Description != "first" || tasks[0].Completed {
		t.Fatalf("unexpected first task: %+v", tasks[0])
	}
	if !tasks[1].Completed || tasks[1].Description != "" {
		t.Fatalf("unexpected second task: %+v", tasks[1])
	}
	if tasks[1].UpdatedAt.Before(tasks[1].CreatedAt) {
		t.Fatalf("timestamps out of order: %+v", tasks[1])
	}
}

func TestGetTasksFailuresReturnEmptySlice(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		kind   Kind
	}{
		{name: "server error", status: 500, body: `{"success":false,"message":"boom"}`, kind: KindStatus},
		{name: "not found html", status: 404, body: `<html>nope</html>`, kind: KindStatus},
		{name: "unsuccessful envelope", status: 200, body: `{"success":false,"message":"nope"}`, kind: KindEnvelope},
		{name: "missing data", status: 200, body: `{"success":true,"message":"ok"}`, kind: KindEnvelope},
		{name: "malformed body", status: 200, body: `{"success":tru`, kind: KindEnvelope},
		{name: "bad timestamp", status: 200, body: `{"success":true,"data":[{"id":"a","title":"A","created_at":"soon","updated_at":"soon"}]}`, kind: KindEnvelope},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, logs := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
				writeJSON(ctx, tc.status, tc.body)
			})

			tasks, err := c.GetTasks(context.Background())
			if tasks == nil || len(tasks) != 0 {
				t.Fatalf("expected empty non-nil slice, got %#v", tasks)
			}
			if !IsKind(err, tc.kind) {
				t.Fatalf("expected %s error, got %v", tc.kind, err)
			}
			if logs.FilterMessage("task api request failed").Len() != 1 {
				t.Fatalf("expected failure to be logged once, got %d", logs.Len())
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	doer := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return nil, errors.New("connection refused")
		},
	}
	c := New("http://tasks.test", WithDoer(doer))

	tasks, err := c.GetTasks(context.Background())
	if len(tasks) != 0 || !IsKind(err, KindTransport) {
		t.Fatalf("expected transport failure, got %v (%d tasks)", err, len(tasks))
	}
	if task, err := c.ToggleTask(context.Background(), "a"); task != nil || !IsKind(err, KindTransport) {
		t.Fatalf("expected nil task and transport error, got %v, %v", task, err)
	}
}

func TestCancelledContextSkipsRequest(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		called = true
		writeJSON(ctx, 200, `{"success":true,"data":[]}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.GetTasks(ctx); !IsKind(err, KindTransport) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled transport error, got %v", err)
	}
	if called {
		t.Fatalf("request should not be sent with a cancelled context")
	}
}

func TestCreateTaskSendsDraft(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Method()) != fasthttp.MethodPost {
			t.Errorf("expected POST, got %s", ctx.Method())
		}
		if ct := string(ctx.Request.Header.ContentType()); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["title"] != "Test Task" || body["description"] != "Test Description" || body["completed"] != false {
			t.Errorf("unexpected body %v", body)
		}
		writeJSON(ctx, 201, `{"success":true,"message":"Task created successfully","data":{"id":"new-1","title":"Test Task","description":"Test Description","completed":false,"created_at":"`+createdAt+`","updated_at":"`+createdAt+`"}}`)
	})

	task, err := c.CreateTask(context.Background(), domain.TaskDraft{Title: "Test Task", Description: "Test Description"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID != "new-1" || task.Completed {
		t.Fatalf("unexpected created task %+v", task)
	}
}

func TestToggleAndUpdatePaths(t *testing.T) {
	var seen []string
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		seen = append(seen, string(ctx.Method())+" "+string(ctx.RequestURI()))
		writeJSON(ctx, 200, `{"success":true,"data":{"id":"a b","title":"T","completed":true,"created_at":"`+createdAt+`","updated_at":"`+updatedAt+`"}}`)
	})

	if _, err := c.ToggleTask(context.Background(), "a b"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := c.UpdateTask(context.Background(), domain.Task{ID: "a b", Title: "T", Completed: true}); err != nil {
		t.Fatalf("update: %v", err)
	}

	want := []string{"PATCH /api/tasks/a%20b/toggle", "PUT /api/tasks/a%20b"}
	if len(seen) != len(want) {
		t.Fatalf("expected %d requests, got %v", len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("request %d: expected %q, got %q", i, want[i], seen[i])
		}
	}
}

func TestDeleteTask(t *testing.T) {
	c, _ := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/api/tasks/known":
			writeJSON(ctx, 200, `{"success":true,"data":null,"message":"Task deleted successfully"}`)
		default:
			writeJSON(ctx, 404, `{"success":false,"data":null,"message":"Task not found"}`)
		}
	})

	if err := c.DeleteTask(context.Background(), "known"); err != nil {
		t.Fatalf("delete known: %v", err)
	}

	err := c.DeleteTask(context.Background(), "missing")
	var cErr *Error
	if !errors.As(err, &cErr) || cErr.Status != 404 || cErr.Message != "Task not found" {
		t.Fatalf("expected 404 client error with message, got %v", err)
	}
}
