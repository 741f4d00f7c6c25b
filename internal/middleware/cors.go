package middleware

import (
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskboard/pkg/httpcontext"
)

const (
	allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	allowedHeaders = "Content-Type, Authorization, " + httpcontext.HeaderRequestID
)

// CORS answers preflight requests and decorates responses for allowed origins.
// An origin list containing "*" allows every origin.
func CORS(origins []string) Middleware {
	allowAll := false
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = normalizeOrigin(o)
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	isAllowed := func(origin string) bool {
		if allowAll {
			return true
		}
		_, ok := allowed[normalizeOrigin(origin)]
		return ok
	}

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			origin := string(ctx.Request.Header.Peek("Origin"))
			if origin == "" {
				next(ctx)
				return
			}

			preflight := ctx.IsOptions() && len(ctx.Request.Header.Peek("Access-Control-Request-Method")) > 0
			if !isAllowed(origin) {
				if preflight {
					ctx.SetStatusCode(fasthttp.StatusForbidden)
					return
				}
				next(ctx)
				return
			}

			h := &ctx.Response.Header
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")

			if preflight {
				h.Set("Access-Control-Allow-Methods", allowedMethods)
				if requested := ctx.Request.Header.Peek("Access-Control-Request-Headers"); len(requested) > 0 {
					h.SetBytesV("Access-Control-Allow-Headers", requested)
				} else {
					h.Set("Access-Control-Allow-Headers", allowedHeaders)
				}
				h.Set("Access-Control-Max-Age", "600")
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}

			h.Set("Access-Control-Expose-Headers", httpcontext.HeaderRequestID)
			next(ctx)
		}
	}
}

func normalizeOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}
