package router

import (
	"bytes"

	"github.com/savsgio/gotils"
	"github.com/valyala/bytebufferpool"
)

// CleanPath is the URL version of path.Clean, it returns a canonical URL path
// for p, eliminating . and .. elements.
//
// The following rules are applied iteratively until no further processing can
// be done:
//  1. Replace multiple slashes with a single slash.
//  2. Eliminate each . path name element (the current directory).
//  3. Eliminate each inner .. path name element (the parent directory)
//     along with the non-.. element that precedes it.
//  4. Eliminate .. elements that begin a rooted path:
//     that is, replace "/.." by "/" at the beginning of a path.
//
// A leading slash is added when missing and a trailing slash is kept.
// If the result of this process is an empty string, "/" is returned.
func CleanPath(p string) string {
	if p == "" {
		return "/"
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteByte('/')

	n := len(p)

	for r := 0; r < n; {
		for r < n && p[r] == '/' {
			r++
		}

		end := r
		for end < n && p[end] != '/' {
			end++
		}

		elem := p[r:end]
		r = end

		switch elem {
		case "", ".":
			// skip
		case "..":
			if i := bytes.LastIndexByte(buf.B, '/'); i > 0 {
				buf.B = buf.B[:i]
			} else {
				buf.B = buf.B[:1]
			}
		default:
			if len(buf.B) > 1 {
				buf.WriteByte('/')
			}

			buf.WriteString(elem)
		}
	}

	if p[n-1] == '/' && len(buf.B) > 1 {
		buf.WriteByte('/')
	}

	if gotils.B2S(buf.B) == p {
		return p
	}

	return buf.String()
}
