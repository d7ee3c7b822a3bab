package radix

import (
	"errors"
	"strings"
)

// Template syntax errors.
var (
	ErrNotASCII            = errors.New("the path must be a sequence of ASCII characters")
	ErrMissingLeadingSlash = errors.New("path must begin with '/'")
	ErrWildcardPosition    = errors.New("a wildcard character (':' or '*') must follow a slash")
	ErrEmptyWildcardName   = errors.New("wildcards must be named with a non-empty name")
	ErrWildcardInSegment   = errors.New("only one wildcard character (':' or '*') is allowed per path segment")
	ErrCatchAllNotLast     = errors.New("catch-all routes are only allowed at the end of the path")
	ErrDuplicateParamName  = errors.New("duplicated parameter name")
)

// Structural conflicts between registered templates.
var (
	ErrStaticConflict    = errors.New("a static node has already been inserted at the wildcard position")
	ErrWildcardConflict  = errors.New("wildcard conflict")
	ErrCatchAllConflict  = errors.New("catch-all conflict")
	ErrDuplicatePath     = errors.New("duplicated route")
	ErrDuplicateAsterisk = errors.New("the asterisk URI has already been registered")
	ErrFinished          = errors.New("the builder has already been finished")
)

// Error reports a template that could not be registered.
// Use errors.Is against the Err* variables to tell the causes apart.
type Error struct {
	Err error

	// Path is the full template being registered.
	Path string

	// Segment is the part of Path the error is about, if any.
	Segment string

	// Existing is the conflicting part of the tree, if any.
	Existing string
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	if e.Segment != "" {
		b.WriteString(": '")
		b.WriteString(e.Segment)
		b.WriteString("'")
	}

	switch {
	case e.Existing == "":
	case e.Segment == "":
		b.WriteString(": existing '")
		b.WriteString(e.Existing)
		b.WriteString("'")
	default:
		b.WriteString(" conflicts with existing '")
		b.WriteString(e.Existing)
		b.WriteString("'")
	}

	b.WriteString(" in path '")
	b.WriteString(e.Path)
	b.WriteString("'")

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(err error, path, segment, existing string) *Error {
	return &Error{Err: err, Path: path, Segment: segment, Existing: existing}
}
