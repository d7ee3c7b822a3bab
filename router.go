package router

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kamiweb/router/radix"
	"github.com/savsgio/gotils"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

// MethodWild wild HTTP method
const MethodWild = "*"

var (
	questionMark = byte('?')

	// MatchedRoutePathParam is the param name under which the path of the matched
	// route is stored, if Router.SaveMatchedRoutePath is set.
	MatchedRoutePathParam = fmt.Sprintf("__matchedRoutePath::%s__", gotils.RandBytes(make([]byte, 15)))
)

// New returns a new initialized Router.
// Path auto-correction, including trailing slashes, is enabled by default.
func New() *Router {
	return &Router{
		recognizer:             radix.NewBuilder(),
		index:                  make(map[string]int),
		registeredPaths:        make(map[string][]string),
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		FallbackHEAD:           true,
	}
}

func (r *Router) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}

	return slog.Default()
}

// Group returns a new group whose routes share the given path prefix.
func (r *Router) Group(path string) *Group {
	return newGroup(r, nil, path)
}

// Use appends global middleware. It wraps every route of the router, no
// matter whether the route was registered before or after the call.
func (r *Router) Use(middleware ...Middleware) {
	r.middleware = append(r.middleware, middleware...)
}

// Err returns the first error met while registering routes.
// Build returns the same error.
func (r *Router) Err() error {
	return r.err
}

func (r *Router) setErr(err error) {
	r.logger().Error("route registration failed", slog.String("error", err.Error()))

	if r.err == nil {
		r.err = err
	}
}

func (r *Router) saveMatchedRoutePath(path string, handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.SetUserValue(MatchedRoutePathParam, path)
		handler(ctx)
	}
}

// GET is a shortcut for router.Handle(fasthttp.MethodGet, path, handler)
func (r *Router) GET(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodGet, path, handler)
}

// HEAD is a shortcut for router.Handle(fasthttp.MethodHead, path, handler)
func (r *Router) HEAD(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodHead, path, handler)
}

// OPTIONS is a shortcut for router.Handle(fasthttp.MethodOptions, path, handler)
func (r *Router) OPTIONS(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodOptions, path, handler)
}

// POST is a shortcut for router.Handle(fasthttp.MethodPost, path, handler)
func (r *Router) POST(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodPost, path, handler)
}

// PUT is a shortcut for router.Handle(fasthttp.MethodPut, path, handler)
func (r *Router) PUT(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodPut, path, handler)
}

// PATCH is a shortcut for router.Handle(fasthttp.MethodPatch, path, handler)
func (r *Router) PATCH(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodPatch, path, handler)
}

// DELETE is a shortcut for router.Handle(fasthttp.MethodDelete, path, handler)
func (r *Router) DELETE(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodDelete, path, handler)
}

// CONNECT is a shortcut for router.Handle(fasthttp.MethodConnect, path, handler)
func (r *Router) CONNECT(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodConnect, path, handler)
}

// TRACE is a shortcut for router.Handle(fasthttp.MethodTrace, path, handler)
func (r *Router) TRACE(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodTrace, path, handler)
}

// ANY is a shortcut for router.Handle(router.MethodWild, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (r *Router) ANY(path string, handler fasthttp.RequestHandler) {
	r.Handle(MethodWild, path, handler)
}

// Handle registers a new request handler with the given path and method.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
//
// The path "*" registers the handler of server-wide requests such as
// "OPTIONS *".
//
// Registration errors don't panic: the first one is kept and returned by
// Err and Build.
func (r *Router) Handle(method, path string, handler fasthttp.RequestHandler) {
	if path == radix.Asterisk {
		if err := r.add(method, path, nil, handler); err != nil {
			r.setErr(err)
		}

		return
	}

	tpl, err := radix.ParseTemplate(path)
	if err != nil {
		r.setErr(fmt.Errorf("%s %s: %w", method, path, err))
		return
	}

	if err := r.add(method, path, tpl, handler); err != nil {
		r.setErr(err)
	}
}

// add registers a handler for a full template; the template is inserted
// into the recognizer the first time it's seen.
func (r *Router) add(method, path string, tpl *radix.Template, handler fasthttp.RequestHandler) error {
	switch {
	case r.app != nil:
		// The built App shares the entries
		return fmt.Errorf("%s %s: %w", method, path, radix.ErrFinished)
	case len(method) == 0:
		return fmt.Errorf("%s: method must not be empty", path)
	case handler == nil:
		return fmt.Errorf("%s %s: handler must not be nil", method, path)
	}

	i, ok := r.index[path]
	if !ok {
		if err := r.recognizer.AddPath(path); err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}

		i = len(r.entries)
		r.index[path] = i
		r.entries = append(r.entries, &entry{
			path:     path,
			template: tpl,
			handlers: make(map[string]fasthttp.RequestHandler),
		})
	}

	e := r.entries[i]
	if _, ok := e.handlers[method]; ok {
		return fmt.Errorf("%s %s: a handler is already registered for the method", method, path)
	}

	if r.SaveMatchedRoutePath {
		handler = r.saveMatchedRoutePath(path, handler)
	}

	e.handlers[method] = handler
	r.registeredPaths[method] = append(r.registeredPaths[method], path)

	return nil
}

// ServeFiles serves files from the given file system root.
// The path must end with "/*filepath", files are then served from the local
// path /defined/root/dir/*filepath.
// For example if root is "/etc" and *filepath is "passwd", the local file
// "/etc/passwd" would be served.
// Internally a fasthttp.FSHandler is used, therefore fasthttp.NotFound is used instead
// Use:
//
//	router.ServeFiles("/src/*filepath", "./")
func (r *Router) ServeFiles(path string, rootPath string) {
	r.ServeFilesCustom(path, &fasthttp.FS{
		Root:               rootPath,
		IndexNames:         []string{"index.html"},
		GenerateIndexPages: true,
		AcceptByteRange:    true,
	})
}

// ServeFilesCustom serves files from the given file system settings.
// The path must end with "/*filepath", files are then served from the local
// path /defined/root/dir/*filepath.
// For example if root is "/etc" and *filepath is "passwd", the local file
// "/etc/passwd" would be served.
// Internally a fasthttp.FSHandler is used, therefore fasthttp.NotFound is used instead
// of the Router's NotFound handler.
// Use:
//
//	router.ServeFilesCustom("/src/*filepath", *customFS)
func (r *Router) ServeFilesCustom(path string, fs *fasthttp.FS) {
	const suffix = "/*filepath"

	if !strings.HasSuffix(path, suffix) {
		r.setErr(fmt.Errorf("path must end with %s in path '%s'", suffix, path))
		return
	}

	prefix := path[:len(path)-len(suffix)]
	stripSlashes := strings.Count(prefix, "/")

	if fs.PathRewrite == nil && stripSlashes > 0 {
		fs.PathRewrite = fasthttp.NewPathSlashesStripper(stripSlashes)
	}

	r.GET(path, fs.NewRequestHandler())
}

// List returns all registered routes grouped by method
func (r *Router) List() map[string][]string {
	return r.registeredPaths
}

// Build finishes the registration and returns the servable App.
// It fails with the first registration error. Later calls return the same
// App; routes registered after the first Build are rejected.
func (r *Router) Build() (*App, error) {
	if r.err != nil {
		return nil, r.err
	}

	if r.app != nil {
		return r.app, nil
	}

	recognizer, err := r.recognizer.Finish()
	if err != nil {
		return nil, err
	}

	methods := make([]string, 0, len(r.registeredPaths))

	for _, e := range r.entries {
		for method, handler := range e.handlers {
			e.handlers[method] = applyMiddleware(handler, r.middleware)

			if method != MethodWild && !gotils.StringSliceInclude(methods, method) {
				methods = append(methods, method)
			}
		}

		e.allow = e.allowed(r.FallbackHEAD)

		if e.template != nil {
			e.static = &Params{template: e.template}
		}
	}

	app := &App{
		recognizer:             recognizer,
		entries:                r.entries,
		registeredPaths:        r.registeredPaths,
		globalAllowed:          allowHeader(methods, r.FallbackHEAD),
		redirectTrailingSlash:  r.RedirectTrailingSlash,
		redirectFixedPath:      r.RedirectFixedPath,
		handleMethodNotAllowed: r.HandleMethodNotAllowed,
		handleOPTIONS:          r.HandleOPTIONS,
		fallbackHEAD:           r.FallbackHEAD,
		globalOPTIONS:          r.GlobalOPTIONS,
		notFound:               r.NotFound,
		methodNotAllowed:       r.MethodNotAllowed,
		panicHandler:           r.PanicHandler,
		logger:                 r.logger(),
	}

	r.app = app

	app.logger.Debug("router built",
		slog.Int("paths", recognizer.Len()),
		slog.String("allow", app.globalAllowed),
	)

	return app, nil
}

// handler returns the handler serving method, falling back to the wild
// method and then to GET for HEAD requests.
func (e *entry) handler(method string, fallbackHEAD bool) fasthttp.RequestHandler {
	if h := e.handlers[method]; h != nil {
		return h
	}

	if h := e.handlers[MethodWild]; h != nil {
		return h
	}

	if fallbackHEAD && method == fasthttp.MethodHead {
		return e.handlers[fasthttp.MethodGet]
	}

	return nil
}

func (e *entry) allowed(fallbackHEAD bool) string {
	methods := make([]string, 0, len(e.handlers))
	for method := range e.handlers {
		if method != MethodWild {
			methods = append(methods, method)
		}
	}

	return allowHeader(methods, fallbackHEAD)
}

func (a *App) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		a.logger.Error("panic recovered",
			slog.String("method", string(ctx.Method())),
			slog.String("path", string(ctx.Path())),
			slog.Any("panic", rcv),
		)

		a.panicHandler(ctx, rcv)
	}
}

// Lookup allows the manual lookup of a method + path combo.
// This is e.g. useful to build a framework around this router.
// If the path was found, it returns the handler function and the path
// parameters. Middleware registered with Use is part of the handler.
func (a *App) Lookup(method, path string) (fasthttp.RequestHandler, *Params, bool) {
	index, captures, ok := a.recognizer.Recognize(path)
	if !ok {
		return nil, nil, false
	}

	e := a.entries[index]

	handler := e.handler(method, a.fallbackHEAD)
	if handler == nil {
		return nil, nil, false
	}

	return handler, e.params(path, captures), true
}

// params returns the parameters of a match on e, nil for the "*" path.
func (e *entry) params(path string, captures *radix.Captures) *Params {
	if captures == nil {
		return e.static
	}

	return &Params{path: path, template: e.template, captures: captures}
}

// List returns all registered routes grouped by method
func (a *App) List() map[string][]string {
	return a.registeredPaths
}

// redirect sends the client to uri, keeping the query string.
func (a *App) redirect(ctx *fasthttp.RequestCtx, uri *bytebufferpool.ByteBuffer, method string) {
	// Moved Permanently, request with GET method
	code := fasthttp.StatusMovedPermanently
	if method != fasthttp.MethodGet {
		// Permanent Redirect, request with same method
		code = fasthttp.StatusPermanentRedirect
	}

	queryBuf := ctx.URI().QueryString()
	if len(queryBuf) > 0 {
		uri.WriteByte(questionMark)
		uri.Write(queryBuf)
	}

	ctx.RedirectBytes(uri.Bytes(), code)
}

// tryRedirect looks for a registered path differing from the request path
// only by a trailing slash or by superfluous path elements.
func (a *App) tryRedirect(ctx *fasthttp.RequestCtx, method, path string) bool {
	uri := bytebufferpool.Get()
	defer bytebufferpool.Put(uri)

	if a.redirectTrailingSlash {
		if len(path) > 1 && path[len(path)-1] == '/' {
			uri.SetString(path[:len(path)-1])
		} else {
			uri.SetString(path)
			uri.WriteString("/")
		}

		if a.routable(method, gotils.B2S(uri.B)) {
			a.redirect(ctx, uri, method)
			return true
		}
	}

	if a.redirectFixedPath {
		fixedPath := CleanPath(path)

		if fixedPath != path && a.routable(method, fixedPath) {
			uri.SetString(fixedPath)
			a.redirect(ctx, uri, method)
			return true
		}
	}

	return false
}

func (a *App) routable(method, path string) bool {
	index, _, ok := a.recognizer.Recognize(path)

	return ok && a.entries[index].handler(method, a.fallbackHEAD) != nil
}

// Handler makes the router implement the fasthttp.RequestHandler interface.
func (a *App) Handler(ctx *fasthttp.RequestCtx) {
	if a.panicHandler != nil {
		defer a.recv(ctx)
	}

	method := gotils.B2S(ctx.Method())

	path := gotils.B2S(ctx.Path())
	if gotils.B2S(ctx.RequestURI()) == radix.Asterisk {
		path = radix.Asterisk
	}

	index, captures, ok := a.recognizer.Recognize(path)
	if ok {
		e := a.entries[index]

		if handler := e.handler(method, a.fallbackHEAD); handler != nil {
			if params := e.params(path, captures); params != nil {
				ctx.SetUserValue(paramsKey{}, params)
			}

			handler(ctx)
			return
		}

		if a.handleOPTIONS && method == fasthttp.MethodOptions {
			a.options(ctx, e.allow)
			return
		}

		if a.handleMethodNotAllowed {
			a.methodNotAllowedReply(ctx, e.allow)
			return
		}
	} else if path == radix.Asterisk {
		if a.handleOPTIONS && method == fasthttp.MethodOptions && a.globalAllowed != "" {
			a.options(ctx, a.globalAllowed)
			return
		}
	} else if method != fasthttp.MethodConnect && path != "/" {
		if a.tryRedirect(ctx, method, path) {
			return
		}
	}

	// Handle 404
	if a.notFound != nil {
		a.notFound(ctx)
	} else {
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
	}
}

func (a *App) options(ctx *fasthttp.RequestCtx, allow string) {
	ctx.Response.Header.Set(fasthttp.HeaderAllow, allow)

	if a.globalOPTIONS != nil {
		a.globalOPTIONS(ctx)
	}
}

func (a *App) methodNotAllowedReply(ctx *fasthttp.RequestCtx, allow string) {
	ctx.Response.Header.Set(fasthttp.HeaderAllow, allow)

	if a.methodNotAllowed != nil {
		a.methodNotAllowed(ctx)
	} else {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		ctx.SetBodyString(fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed))
	}
}
