package router

import (
	"log/slog"

	"github.com/kamiweb/router/radix"
	"github.com/valyala/fasthttp"
)

// Router is a fasthttp request router built in two steps: routes are
// registered on it, then Build turns it into an immutable App.
//
// WARNING: Not concurrency-safe! Register routes from a single goroutine.
type Router struct {
	recognizer *radix.Builder
	entries    []*entry
	index      map[string]int
	middleware []Middleware
	err        error
	app        *App

	registeredPaths map[string][]string

	// If enabled, adds the matched route path onto the ctx.UserValue context
	// before invoking the handler.
	// The matched route path is only added to handlers of routes that were
	// registered when this option was enabled.
	SaveMatchedRoutePath bool

	// Enables automatic redirection if the current route can't be matched but a
	// handler for the path with (without) the trailing slash exists.
	// For example if /foo/ is requested but a route only exists for /foo, the
	// client is redirected to /foo with http status code 301 for GET requests
	// and 308 for all other request methods.
	RedirectTrailingSlash bool

	// If enabled, the router tries to fix the current request path, if no
	// handle is registered for it.
	// Superfluous path elements like ../ or // are removed and, if a handle
	// can be found for the cleaned path, the router makes a redirection
	// with status code 301 for GET requests and 308 for all other methods.
	RedirectFixedPath bool

	// If enabled, the router checks if another method is allowed for the
	// current route, if the current request can not be routed.
	// If this is the case, the request is answered with 'Method Not Allowed'
	// and HTTP status code 405.
	// If no other Method is allowed, the request is delegated to the NotFound
	// handler.
	HandleMethodNotAllowed bool

	// If enabled, the router automatically replies to OPTIONS requests.
	// Custom OPTIONS handlers take priority over automatic replies.
	HandleOPTIONS bool

	// If enabled, HEAD requests are served by the GET handler of a path when
	// no HEAD handler is registered for it.
	FallbackHEAD bool

	// An optional fasthttp.RequestHandler that is called on automatic OPTIONS requests.
	// The handler is only called if HandleOPTIONS is true and no OPTIONS
	// handler for the specific path was set.
	// The "Allowed" header is set before calling the handler.
	GlobalOPTIONS fasthttp.RequestHandler

	// Configurable fasthttp.RequestHandler which is called when no matching route is
	// found. If it is not set, default NotFound is used.
	NotFound fasthttp.RequestHandler

	// Configurable fasthttp.RequestHandler which is called when a request
	// cannot be routed and HandleMethodNotAllowed is true.
	// If it is not set, ctx.Error with fasthttp.StatusMethodNotAllowed is used.
	// The "Allow" header with allowed request methods is set before the handler
	// is called.
	MethodNotAllowed fasthttp.RequestHandler

	// Function to handle panics recovered from http handlers.
	// It should be used to generate a error page and return the http error code
	// 500 (Internal Server Error).
	// The handler can be used to keep your server from crashing because of
	// unrecovered panics.
	PanicHandler func(*fasthttp.RequestCtx, interface{})

	// Logger receives registration errors, build summaries and recovered
	// panics. slog.Default() is used when nil.
	Logger *slog.Logger
}

// Group is a sub-router which shares a path prefix and middleware.
type Group struct {
	router     *Router
	prefix     *radix.Template
	middleware []Middleware
	err        error
}

// App is the immutable, servable result of Router.Build.
//
// It's safe for concurrent use.
type App struct {
	recognizer      *radix.Recognizer
	entries         []*entry
	registeredPaths map[string][]string
	globalAllowed   string

	redirectTrailingSlash  bool
	redirectFixedPath      bool
	handleMethodNotAllowed bool
	handleOPTIONS          bool
	fallbackHEAD           bool

	globalOPTIONS    fasthttp.RequestHandler
	notFound         fasthttp.RequestHandler
	methodNotAllowed fasthttp.RequestHandler
	panicHandler     func(*fasthttp.RequestCtx, interface{})
	logger           *slog.Logger
}

// entry is the dispatch table of a single path template.
type entry struct {
	path     string
	template *radix.Template
	handlers map[string]fasthttp.RequestHandler
	allow    string

	// shared by every request of a route without parameters
	static *Params
}

// Params gives access to the parameters of the matched route.
//
// Values are views into the request path: they are only valid until the
// request handler returns. Copy them to keep them longer.
type Params struct {
	path     string
	template *radix.Template
	captures *radix.Captures
}
