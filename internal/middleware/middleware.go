package middleware

import "github.com/valyala/fasthttp"

// Middleware decorates a request handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Chain wraps h so the first middleware is the outermost.
func Chain(h fasthttp.RequestHandler, mws ...Middleware) fasthttp.RequestHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}
