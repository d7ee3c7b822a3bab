package radix

type nodeType uint8

type node struct {
	nType nodeType

	// path holds the static bytes of a static node, or the whole wildcard
	// segment (sigil included) of a param/catch-all node.
	path     string
	leaf     int
	children []*node
}

// Span is a half-open byte range [Start, End) of a matched request path.
type Span struct {
	Start int
	End   int
}

// Captures describes where the parameters of a recognized path are.
//
// The offsets are only valid for the very string given to Recognize.
type Captures struct {
	params      []Span
	wildcard    Span
	hasWildcard bool
}

// Builder collects path templates and turns them into a Recognizer.
//
// WARNING: Not concurrency-safe!
type Builder struct {
	root     *node
	paths    []string
	asterisk int
	err      error
	finished bool
}

// Recognizer is the immutable result of Builder.Finish.
//
// It's safe for concurrent use.
type Recognizer struct {
	root     *node
	paths    []string
	asterisk int
}

// SegmentKind is the kind of a template segment.
type SegmentKind uint8

// Segment kinds.
const (
	SegmentStatic SegmentKind = iota
	SegmentParam
	SegmentCatchAll
)

// Segment is a piece of a parsed path template.
// Value holds the static bytes, or the name of a param/catch-all.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// Template is a validated path template.
type Template struct {
	path     string
	segments []Segment
	params   []string
	catchAll string
}
