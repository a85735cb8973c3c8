package buffer

import "unicode"

// Class partitions runes for word-boundary detection.
type Class int

const (
	ClassWord Class = iota
	ClassSpace
	ClassPunct
)

// IsWordRune reports whether r is considered part of a word.
// Words consist of letters, digits, or underscore characters.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// ClassOf returns the boundary class of r.
func ClassOf(r rune) Class {
	switch {
	case IsWordRune(r):
		return ClassWord
	case unicode.IsSpace(r):
		return ClassSpace
	default:
		return ClassPunct
	}
}

// RuneSource is the read access word scanning needs.
type RuneSource interface {
	Len() int
	RuneAt(i int) rune
}

// NextBoundary returns the first class transition after pos, or Len.
func NextBoundary(src RuneSource, pos int) int {
	n := src.Len()
	if pos < 0 {
		pos = 0
	}
	if pos >= n {
		return n
	}
	c := ClassOf(src.RuneAt(pos))
	for pos < n && ClassOf(src.RuneAt(pos)) == c {
		pos++
	}
	return pos
}

// PrevBoundary returns the nearest class transition before pos, or 0.
func PrevBoundary(src RuneSource, pos int) int {
	if pos > src.Len() {
		pos = src.Len()
	}
	if pos <= 0 {
		return 0
	}
	c := ClassOf(src.RuneAt(pos - 1))
	for pos > 0 && ClassOf(src.RuneAt(pos-1)) == c {
		pos--
	}
	return pos
}

// WordAt returns the run of same-class runes containing pos. At the end of
// the text the run ending there is used.
func WordAt(src RuneSource, pos int) Range {
	n := src.Len()
	if n == 0 {
		return Range{}
	}
	if pos >= n {
		pos = n - 1
	}
	if pos < 0 {
		pos = 0
	}
	return Range{Start: PrevBoundary(src, pos+1), End: NextBoundary(src, pos)}
}
