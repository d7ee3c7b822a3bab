package radix

func min(a, b int) int {
	if a <= b {
		return a
	}
	return b
}

// longestCommonPrefix finds the length of the longest common prefix.
// Templates are ASCII only, so it's safe to compare byte per byte.
func longestCommonPrefix(a, b string) int {
	i := 0
	max := min(len(a), len(b))

	for i < max && a[i] == b[i] {
		i++
	}

	return i
}

// segmentEndIndex returns the index where the segment ends from the given path
func segmentEndIndex(path string) int {
	end := 0
	for end < len(path) && path[end] != '/' {
		end++
	}

	return end
}

func isWildcardChar(c byte) bool {
	return c == ':' || c == '*'
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}

	return true
}

// findWildcardBegin returns the index of the first ':' or '*' at or after
// offset, or len(path) if there is none.
func findWildcardBegin(path string, offset int) int {
	for i := offset; i < len(path); i++ {
		if isWildcardChar(path[i]) {
			return i
		}
	}

	return len(path)
}

// findWildcardEnd returns the index where the wildcard segment starting at
// path[offset] ends, checking that the segment is well placed and named.
func findWildcardEnd(path string, offset int) (int, error) {
	if offset > 0 && path[offset-1] != '/' {
		return 0, newError(ErrWildcardPosition, path, path[offset:offset+segmentEndIndex(path[offset:])], "")
	}

	end := offset + 1
	for end < len(path) && path[end] != '/' {
		if isWildcardChar(path[end]) {
			return 0, newError(ErrWildcardInSegment, path, path[offset:offset+segmentEndIndex(path[offset:])], "")
		}

		end++
	}

	switch {
	case end == offset+1:
		return 0, newError(ErrEmptyWildcardName, path, path[offset:end], "")
	case path[offset] == '*' && end < len(path):
		return 0, newError(ErrCatchAllNotLast, path, path[offset:end], "")
	}

	return end, nil
}
