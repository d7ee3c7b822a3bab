package radix

import "strings"

// ParseTemplate validates the given path template and splits it into
// static, param (":name") and catch-all ("*name") segments.
func ParseTemplate(path string) (*Template, error) {
	switch {
	case !isASCII(path):
		return nil, newError(ErrNotASCII, path, "", "")
	case len(path) == 0 || path[0] != '/':
		return nil, newError(ErrMissingLeadingSlash, path, "", "")
	}

	t := &Template{path: path}

	for offset := 0; offset < len(path); {
		pos := findWildcardBegin(path, offset)
		if pos > offset {
			t.segments = append(t.segments, Segment{Kind: SegmentStatic, Value: path[offset:pos]})
		}

		if pos == len(path) {
			break
		}

		end, err := findWildcardEnd(path, pos)
		if err != nil {
			return nil, err
		}

		name := path[pos+1 : end]
		if t.hasName(name) {
			return nil, newError(ErrDuplicateParamName, path, path[pos:end], "")
		}

		if path[pos] == '*' {
			t.catchAll = name
			t.segments = append(t.segments, Segment{Kind: SegmentCatchAll, Value: name})
		} else {
			t.params = append(t.params, name)
			t.segments = append(t.segments, Segment{Kind: SegmentParam, Value: name})
		}

		offset = end
	}

	return t, nil
}

func (t *Template) hasName(name string) bool {
	if t.catchAll == name {
		return true
	}

	for _, p := range t.params {
		if p == name {
			return true
		}
	}

	return false
}

// String returns the template as it was registered.
func (t *Template) String() string {
	return t.path
}

// Segments returns the parsed segments in order.
func (t *Template) Segments() []Segment {
	return t.segments
}

// Params returns the names of the positional parameters in declaration order.
func (t *Template) Params() []string {
	return t.params
}

// CatchAll returns the name of the trailing catch-all, if the template has one.
func (t *Template) CatchAll() (string, bool) {
	return t.catchAll, t.catchAll != ""
}

// Join appends other to t the way nested prefixes compose: "/" is the
// identity and a slash shared by both sides appears once.
func (t *Template) Join(other *Template) (*Template, error) {
	switch {
	case t.path == "/":
		return other, nil
	case other.path == "/":
		return t, nil
	}

	if strings.HasSuffix(t.path, "/") {
		return ParseTemplate(t.path + other.path[1:])
	}

	return ParseTemplate(t.path + other.path)
}
