package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kamiweb/router"
	"github.com/kamiweb/router/internal/config"
	"github.com/valyala/fasthttp"
)

// newApp registers the demo routes.
func newApp(cfg config.Config, logger *slog.Logger) (*router.App, error) {
	r := router.New()
	r.Logger = logger
	cfg.Apply(r)

	r.PanicHandler = func(ctx *fasthttp.RequestCtx, _ interface{}) {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
	}

	r.Use(logRequests(logger))

	r.GET("/", func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("Welcome!\n")
	})
	r.OPTIONS("*", func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.Set(fasthttp.HeaderAllow, "DELETE, GET, HEAD, OPTIONS, POST")
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	})

	api := r.Group("/api")
	api.GET("/routes", func(ctx *fasthttp.RequestCtx) {
		for method, paths := range r.List() {
			for _, path := range paths {
				fmt.Fprintf(ctx, "%s %s\n", method, path)
			}
		}
	})

	users := api.Group("/users/:id")
	users.GET("/", func(ctx *fasthttp.RequestCtx) {
		fmt.Fprintf(ctx, "user %s\n", router.Param(ctx, "id"))
	})
	users.DELETE("/", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	})
	users.GET("/posts/:post", func(ctx *fasthttp.RequestCtx) {
		params := router.ParamsOf(ctx)
		user, _ := params.ByName("id")
		post, _ := params.ByName("post")

		fmt.Fprintf(ctx, "post %s of user %s\n", post, user)
	})

	if cfg.StaticRoot != "" {
		r.ServeFiles("/static/*filepath", cfg.StaticRoot)
	}

	return r.Build()
}

// logRequests logs every served request once it's done.
func logRequests(logger *slog.Logger) router.Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()

			next(ctx)

			attrs := []any{
				slog.String("method", string(ctx.Method())),
				slog.String("path", string(ctx.Path())),
				slog.Int("status", ctx.Response.StatusCode()),
				slog.Duration("latency", time.Since(start)),
			}

			if route, ok := ctx.UserValue(router.MatchedRoutePathParam).(string); ok {
				attrs = append(attrs, slog.String("route", route))
			}

			logger.Info("request", attrs...)
		}
	}
}
