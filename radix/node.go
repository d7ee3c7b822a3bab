package radix

func newNode(nType nodeType, path string) *node {
	return &node{nType: nType, path: path, leaf: noLeaf}
}

func wildcardNodeType(c byte) nodeType {
	if c == '*' {
		return catchAll
	}

	return param
}

// split shortens a static node to its first i bytes and moves the rest of
// it, with its leaf and children, into a new single child.
func (n *node) split(i int) {
	child := &node{
		nType:    static,
		path:     n.path[i:],
		leaf:     n.leaf,
		children: n.children,
	}

	n.path = n.path[:i]
	n.leaf = noLeaf
	n.children = []*node{child}
}

func (n *node) setLeaf(path string, index int) error {
	if n.leaf != noLeaf {
		return newError(ErrDuplicatePath, path, "", "")
	}

	n.leaf = index

	return nil
}

func (n *node) hasCatchAllChild() bool {
	for _, child := range n.children {
		if child.nType == catchAll {
			return true
		}
	}

	return false
}

// insert walks the tree from n and registers path with the given index,
// splitting static nodes and appending new ones as needed.
func (n *node) insert(path string, index int) error {
	offset := 0

walk:
	for {
		if n.nType == static {
			i := longestCommonPrefix(path[offset:], n.path)
			if i < len(n.path) {
				// Splits edge because only a part of the prefix is shared
				n.split(i)
			}

			offset += i
			if offset == len(path) {
				break walk
			}
		}

		switch c := path[offset]; {
		case isWildcardChar(c):
			if len(n.children) == 0 {
				if c == '*' && n.leaf != noLeaf {
					// The current node already ends a path, a catch-all would shadow it
					return newError(ErrCatchAllConflict, path, path[offset:], n.path)
				}

				return n.insertChild(path, offset, index)
			}

			child := n.children[0]
			if child.nType == static {
				return newError(ErrStaticConflict, path, path[offset:offset+segmentEndIndex(path[offset:])], child.path)
			}

			end, err := findWildcardEnd(path, offset)
			if err != nil {
				return err
			}

			if child.path != path[offset:end] {
				return newError(ErrWildcardConflict, path, path[offset:end], child.path)
			}

			n = child
			offset = end

			if offset == len(path) {
				break walk
			}

		default:
			var next *node

			for _, child := range n.children {
				if child.nType != static {
					return newError(ErrWildcardConflict, path, path[offset:offset+segmentEndIndex(path[offset:])], child.path)
				}

				if child.path[0] == c {
					next = child
					break
				}
			}

			if next != nil {
				n = next
				continue walk
			}

			// No child shares the next byte, so appends the rest of the path as a new chain
			pos := findWildcardBegin(path, offset)
			child := newNode(static, path[offset:pos])

			if err := child.insertChild(path, pos, index); err != nil {
				return err
			}

			n.children = append(n.children, child)

			return nil
		}
	}

	if n.hasCatchAllChild() {
		return newError(ErrCatchAllConflict, path, "", n.children[0].path)
	}

	return n.setLeaf(path, index)
}

// insertChild appends the wildcard and static runs of path[offset:] as a
// fresh chain below n. path[offset] must be a wildcard character unless
// offset == len(path).
func (n *node) insertChild(path string, offset, index int) error {
	for offset < len(path) {
		end, err := findWildcardEnd(path, offset)
		if err != nil {
			return err
		}

		child := newNode(wildcardNodeType(path[offset]), path[offset:end])
		n.children = append(n.children, child)
		n = child
		offset = end

		if offset < len(path) {
			pos := findWildcardBegin(path, offset)
			child := newNode(static, path[offset:pos])
			n.children = append(n.children, child)
			n = child
			offset = pos
		}
	}

	return n.setLeaf(path, index)
}

// child returns the only child that may continue a lookup whose next byte
// is c. Static and wildcard children never coexist, so there is no
// backtracking.
func (n *node) child(c byte) *node {
	for _, child := range n.children {
		if child.nType != static || child.path[0] == c {
			return child
		}
	}

	return nil
}

// lookup walks the tree from n. The returned spans are appended to params,
// which is expected to be backed by a caller's stack buffer.
func (n *node) lookup(path string, params []Span) (int, []Span, Span, bool) {
	offset := 0

	for {
		switch n.nType {
		case static:
			rest := path[offset:]

			switch {
			case len(rest) > len(n.path):
				if rest[:len(n.path)] != n.path {
					return noLeaf, params, Span{}, false
				}

				offset += len(n.path)

			case rest == n.path:
				if n.leaf != noLeaf {
					return n.leaf, params, Span{}, false
				}

				// Only an empty catch-all can still match, e.g. '/files/' for '/files/*path'
				if len(n.children) == 1 && n.children[0].nType == catchAll {
					return n.children[0].leaf, params, Span{Start: len(path), End: len(path)}, true
				}

				return noLeaf, params, Span{}, false

			default:
				return noLeaf, params, Span{}, false
			}

		case param:
			// An empty segment is captured as an empty span
			end := offset + segmentEndIndex(path[offset:])
			params = append(params, Span{Start: offset, End: end})
			offset = end

			if offset == len(path) {
				return n.leaf, params, Span{}, false
			}

		case catchAll:
			return n.leaf, params, Span{Start: offset, End: len(path)}, true
		}

		if n = n.child(path[offset]); n == nil {
			return noLeaf, params, Span{}, false
		}
	}
}
