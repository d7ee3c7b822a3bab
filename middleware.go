package router

import "github.com/valyala/fasthttp"

// Middleware wraps a request handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Before returns a middleware which calls fn before the wrapped handler.
// The handler is skipped when fn sets a status code >= 400.
func Before(fn fasthttp.RequestHandler) Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			fn(ctx)

			if ctx.Response.StatusCode() >= fasthttp.StatusBadRequest {
				return
			}

			next(ctx)
		}
	}
}

// After returns a middleware which calls fn once the wrapped handler returns.
func After(fn fasthttp.RequestHandler) Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			next(ctx)
			fn(ctx)
		}
	}
}

// applyMiddleware wraps handler so that middleware[0] runs first.
func applyMiddleware(handler fasthttp.RequestHandler, middleware []Middleware) fasthttp.RequestHandler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	return handler
}
