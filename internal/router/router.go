package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/taskboard/api/handler"
	"github.com/fastygo/taskboard/internal/middleware"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/tasks", handlers.Task.GetTasks)
	r.POST("/api/tasks", handlers.Task.CreateTask)
	r.GET("/api/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/api/tasks/{id}", handlers.Task.UpdateTask)
	r.PATCH("/api/tasks/{id}/toggle", handlers.Task.ToggleTask)
	r.DELETE("/api/tasks/{id}", handlers.Task.DeleteTask)

	return r
}

// Handler wraps the router with the global middleware chain.
func Handler(r *router.Router, mws ...middleware.Middleware) fasthttp.RequestHandler {
	return middleware.Chain(r.Handler, mws...)
}
