package router

import (
	"sort"

	"github.com/savsgio/gotils"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

// allowHeader returns the value of the Allow header for the given methods,
// sorted and including OPTIONS. HEAD is listed when GET is and fallbackHEAD
// is enabled. It's empty when there are no methods.
func allowHeader(methods []string, fallbackHEAD bool) string {
	if len(methods) == 0 {
		return ""
	}

	allowed := make([]string, 0, len(methods)+2)
	allowed = append(allowed, methods...)

	if fallbackHEAD && gotils.StringSliceInclude(allowed, fasthttp.MethodGet) &&
		!gotils.StringSliceInclude(allowed, fasthttp.MethodHead) {
		allowed = append(allowed, fasthttp.MethodHead)
	}

	if !gotils.StringSliceInclude(allowed, fasthttp.MethodOptions) {
		allowed = append(allowed, fasthttp.MethodOptions)
	}

	sort.Strings(allowed)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, method := range allowed {
		if i > 0 {
			buf.WriteString(", ")
		}

		buf.WriteString(method)
	}

	return buf.String()
}
