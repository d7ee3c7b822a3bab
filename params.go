package router

import "github.com/valyala/fasthttp"

// paramsKey is the user value key of the matched route parameters.
type paramsKey struct{}

// ParamsOf returns the parameters of the route matched for ctx.
// It returns nil only for the "*" path and for requests which were not
// routed. Routes without parameters get an empty Params reporting their Route.
func ParamsOf(ctx *fasthttp.RequestCtx) *Params {
	params, _ := ctx.UserValue(paramsKey{}).(*Params)

	return params
}

// Param returns the value of the named parameter, positional or catch-all,
// of the route matched for ctx. It's empty when there is no such parameter.
func Param(ctx *fasthttp.RequestCtx, name string) string {
	value, _ := ParamsOf(ctx).ByName(name)

	return value
}

// Len returns the number of positional parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}

	return len(p.captures.Params())
}

// Get returns the value of the i-th positional parameter.
func (p *Params) Get(i int) (string, bool) {
	if i < 0 || i >= p.Len() {
		return "", false
	}

	return p.captures.Params()[i].Of(p.path), true
}

// ByName returns the value of the named parameter. The catch-all is found
// by its name too.
func (p *Params) ByName(name string) (string, bool) {
	if p == nil {
		return "", false
	}

	for i, paramName := range p.template.Params() {
		if paramName == name {
			return p.Get(i)
		}
	}

	if catchAll, ok := p.template.CatchAll(); ok && catchAll == name {
		return p.Wildcard()
	}

	return "", false
}

// Wildcard returns the value of the catch-all parameter, if the route has one.
// It's empty, and ok, for a request ending where the catch-all begins.
func (p *Params) Wildcard() (string, bool) {
	if p == nil {
		return "", false
	}

	span, ok := p.captures.Wildcard()
	if !ok {
		return "", false
	}

	return span.Of(p.path), true
}

// Names returns the positional parameter names in declaration order.
func (p *Params) Names() []string {
	if p == nil {
		return nil
	}

	return p.template.Params()
}

// Route returns the path template of the matched route.
func (p *Params) Route() string {
	if p == nil {
		return ""
	}

	return p.template.String()
}
