package router

import (
	"fmt"

	"github.com/kamiweb/router/radix"
	"github.com/valyala/fasthttp"
)

func newGroup(r *Router, parent *Group, path string) *Group {
	g := &Group{router: r}

	prefix, err := radix.ParseTemplate(path)
	if err != nil {
		g.err = fmt.Errorf("group %s: %w", path, err)
		r.setErr(g.err)

		return g
	}

	if parent != nil {
		g.err = parent.err
		g.middleware = append(g.middleware, parent.middleware...)

		if parent.prefix != nil {
			if prefix, err = parent.prefix.Join(prefix); err != nil {
				g.err = fmt.Errorf("group %s: %w", path, err)
				r.setErr(g.err)

				return g
			}
		}
	}

	g.prefix = prefix

	return g
}

// Group returns a new group nested in this one. It inherits the prefix and
// the middleware of its parent.
func (g *Group) Group(path string) *Group {
	return newGroup(g.router, g, path)
}

// Use appends middleware to the group. Only routes registered afterwards are
// wrapped by it.
func (g *Group) Use(middleware ...Middleware) {
	g.middleware = append(g.middleware, middleware...)
}

// Prefix returns the path template shared by the routes of the group.
func (g *Group) Prefix() string {
	if g.prefix == nil {
		return ""
	}

	return g.prefix.String()
}

func (g *Group) join(path string) (*radix.Template, error) {
	if g.err != nil {
		return nil, g.err
	}

	tpl, err := radix.ParseTemplate(path)
	if err != nil {
		return nil, err
	}

	return g.prefix.Join(tpl)
}

// GET is a shortcut for group.Handle(fasthttp.MethodGet, path, handler)
func (g *Group) GET(path string, handler fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodGet, path, handler)
}

// HEAD is a shortcut for group.Handle(fasthttp.MethodHead, path, handler)
func (g *Group) HEAD(path string, handler fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodHead, path, handler)
}

// POST is a shortcut for group.Handle(fasthttp.MethodPost, path, handler)
func (g *Group) POST(path string, handler fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodPost, path, handler)
}

// PUT is a shortcut for group.Handle(fasthttp.MethodPut, path, handler)
func (g *Group) PUT(path string, handler fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodPut, path, handler)
}

// PATCH is a shortcut for group.Handle(fasthttp.MethodPatch, path, handler)
func (g *Group) PATCH(path string, handler fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodPatch, path, handler)
}

// DELETE is a shortcut for group.Handle(fasthttp.MethodDelete, path, handler)
func (g *Group) DELETE(path string, handler fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodDelete, path, handler)
}

// CONNECT is a shortcut for group.Handle(fasthttp.MethodConnect, path, handler)
func (g *Group) CONNECT(path string, handler fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodConnect, path, handler)
}

// OPTIONS is a shortcut for group.Handle(fasthttp.MethodOptions, path, handler)
func (g *Group) OPTIONS(path string, handler fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodOptions, path, handler)
}

// TRACE is a shortcut for group.Handle(fasthttp.MethodTrace, path, handler)
func (g *Group) TRACE(path string, handler fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodTrace, path, handler)
}

// ANY is a shortcut for group.Handle(router.MethodWild, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (g *Group) ANY(path string, handler fasthttp.RequestHandler) {
	g.Handle(MethodWild, path, handler)
}

// ServeFiles serves files from the given file system root.
// The path must end with "/*filepath", files are then served from the local
// path /defined/root/dir/*filepath.
// Internally a fasthttp.FSHandler is used, therefore fasthttp.NotFound is used instead
// Use:
//
//	group.ServeFiles("/src/*filepath", "./")
func (g *Group) ServeFiles(path string, rootPath string) {
	full, err := g.join(path)
	if err != nil {
		g.router.setErr(fmt.Errorf("%s %s: %w", fasthttp.MethodGet, path, err))
		return
	}

	g.router.ServeFiles(full.String(), rootPath)
}

// ServeFilesCustom serves files from the given file system settings.
// The path must end with "/*filepath", files are then served from the local
// path /defined/root/dir/*filepath.
// Internally a fasthttp.FSHandler is used, therefore fasthttp.NotFound is used instead
// of the Router's NotFound handler.
// Use:
//
//	group.ServeFilesCustom("/src/*filepath", *customFS)
func (g *Group) ServeFilesCustom(path string, fs *fasthttp.FS) {
	full, err := g.join(path)
	if err != nil {
		g.router.setErr(fmt.Errorf("%s %s: %w", fasthttp.MethodGet, path, err))
		return
	}

	g.router.ServeFilesCustom(full.String(), fs)
}

// Handle registers a new request handler with the given path and method.
// The path is appended to the group prefix and the handler is wrapped by the
// group middleware.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
//
// This function is intended for bulk loading and to allow the usage of less
// frequently used, non-standardized or custom methods (e.g. for internal
// communication with a proxy).
func (g *Group) Handle(method, path string, handler fasthttp.RequestHandler) {
	full, err := g.join(path)
	if err != nil {
		g.router.setErr(fmt.Errorf("%s %s: %w", method, path, err))
		return
	}

	if handler != nil {
		handler = applyMiddleware(handler, g.middleware)
	}

	if err := g.router.add(method, full.String(), full, handler); err != nil {
		g.router.setErr(err)
	}
}
