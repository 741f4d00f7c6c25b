package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/taskboard/pkg/logger"
)

// HeaderRequestID is read from incoming requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

const userValueRequestID = "request_id"

// Adapter converts fasthttp.RequestCtx into a stdlib context bounded by a per-request timeout.
type Adapter struct {
	base    context.Context
	timeout time.Duration
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithBaseContext makes every request context a child of base.
func WithBaseContext(base context.Context) Option {
	return func(a *Adapter) {
		if base != nil {
			a.base = base
		}
	}
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration, opts ...Option) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	a := &Adapter{
		base:    context.Background(),
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Timeout returns the per-request deadline applied by Attach.
func (a *Adapter) Timeout() time.Duration {
	return a.timeout
}

// Attach derives the context for one request. It carries the request id for
// logger.WithRequestID.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(a.base, a.timeout)
	return appLogger.ContextWithRequestID(stdCtx, RequestID(ctx)), cancel
}

// RequestID returns the id of the request, generating and caching one on first use.
// The id is echoed through the X-Request-ID response header.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	if cached, ok := ctx.UserValue(userValueRequestID).(string); ok && cached != "" {
		return cached
	}
	reqID := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID)))
	if reqID == "" {
		reqID = uuid.NewString()
	}
	ctx.SetUserValue(userValueRequestID, reqID)
	ctx.Response.Header.Set(HeaderRequestID, reqID)
	return reqID
}
