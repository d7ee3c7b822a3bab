package radix

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{asterisk: noLeaf}
}

// AddPath registers a path template. Its route index is the number of
// templates added before it.
//
// The first error is also kept and returned again by Finish, so a caller may
// register a whole application and check once.
func (b *Builder) AddPath(path string) error {
	if b.finished {
		return newError(ErrFinished, path, "", "")
	}

	if err := b.addPath(path); err != nil {
		if b.err == nil {
			b.err = err
		}

		return err
	}

	b.paths = append(b.paths, path)

	return nil
}

func (b *Builder) addPath(path string) error {
	index := len(b.paths)

	if path == Asterisk {
		if b.asterisk != noLeaf {
			return newError(ErrDuplicateAsterisk, path, "", "")
		}

		b.asterisk = index

		return nil
	}

	if _, err := ParseTemplate(path); err != nil {
		return err
	}

	if b.root == nil {
		pos := findWildcardBegin(path, 0)
		root := newNode(static, path[:pos])

		if err := root.insertChild(path, pos, index); err != nil {
			return err
		}

		b.root = root

		return nil
	}

	return b.root.insert(path, index)
}

// Len returns the number of registered templates.
func (b *Builder) Len() int {
	return len(b.paths)
}

// Finish turns the builder into an immutable Recognizer. It fails with the
// first error returned by AddPath, if any.
func (b *Builder) Finish() (*Recognizer, error) {
	if b.err != nil {
		return nil, b.err
	}

	b.finished = true

	return &Recognizer{
		root:     b.root,
		paths:    b.paths,
		asterisk: b.asterisk,
	}, nil
}

// Recognize returns the index of the template matching path and where its
// parameters are. Captures is nil when the template has no parameters.
func (r *Recognizer) Recognize(path string) (int, *Captures, bool) {
	if path == Asterisk {
		return r.asterisk, nil, r.asterisk != noLeaf
	}

	if r.root == nil {
		return noLeaf, nil, false
	}

	// Use a static sized buffer on the stack in the common case.
	var buf [stackParamsSize]Span

	index, params, wildcard, hasWildcard := r.root.lookup(path, buf[:0])
	if index == noLeaf {
		return noLeaf, nil, false
	}

	if len(params) == 0 && !hasWildcard {
		return index, nil, true
	}

	captures := &Captures{wildcard: wildcard, hasWildcard: hasWildcard}
	if len(params) > 0 {
		captures.params = append(make([]Span, 0, len(params)), params...)
	}

	return index, captures, true
}

// Len returns the number of recognized templates.
func (r *Recognizer) Len() int {
	return len(r.paths)
}

// Path returns the template registered with the given index.
func (r *Recognizer) Path(index int) string {
	return r.paths[index]
}

// Params returns the spans of the positional parameters in declaration order.
func (c *Captures) Params() []Span {
	if c == nil {
		return nil
	}

	return c.params
}

// Wildcard returns the span of the catch-all parameter, if any.
func (c *Captures) Wildcard() (Span, bool) {
	if c == nil {
		return Span{}, false
	}

	return c.wildcard, c.hasWildcard
}

// Of returns the part of path covered by the span, without copying.
// path must be the string the span was recognized from.
func (s Span) Of(path string) string {
	return path[s.Start:s.End]
}
