// Package cursor tracks the cursor and selection of one document.
package cursor

import "example.com/tabedit/pkg/buffer"

// Granularity is the unit a selection extends by.
type Granularity int

const (
	Char Granularity = iota
	Word
	Line
)

func (g Granularity) String() string {
	switch g {
	case Word:
		return "word"
	case Line:
		return "line"
	default:
		return "char"
	}
}

// Doc is the read-only view of a document the selection needs.
type Doc interface {
	Len() int
	RuneAt(i int) rune
	LineAt(offset int) (int, error)
	OffsetOf(line, column int) (int, error)
	LineLen(line int) int
	LineCount() int
}

// Selection is an anchor and a head; the head is the cursor. It is active
// when anchor != head. Operations read the document and never modify it.
type Selection struct {
	anchor int
	head   int
	sticky int
	gran   Granularity
	// origin is the word or line picked by the gesture that started a
	// Word/Line selection; extension never shrinks below it.
	origin buffer.Range
}

// Head returns the cursor offset.
func (s *Selection) Head() int { return s.head }

// Anchor returns the fixed end of the selection.
func (s *Selection) Anchor() int { return s.anchor }

// Sticky returns the column kept across vertical moves.
func (s *Selection) Sticky() int { return s.sticky }

// Granularity returns the active selection unit.
func (s *Selection) Granularity() Granularity { return s.gran }

// Active reports whether anything is selected.
func (s *Selection) Active() bool { return s.anchor != s.head }

// Range returns the normalized selection and whether it is non-empty.
func (s *Selection) Range() (buffer.Range, bool) {
	lo, hi := s.anchor, s.head
	if lo > hi {
		lo, hi = hi, lo
	}
	return buffer.Range{Start: lo, End: hi}, lo != hi
}

func clamp(doc Doc, off int) int {
	if off < 0 {
		return 0
	}
	if n := doc.Len(); off > n {
		return n
	}
	return off
}

func column(doc Doc, off int) int {
	line, err := doc.LineAt(off)
	if err != nil {
		return 0
	}
	start, _ := doc.OffsetOf(line, 0)
	return off - start
}

// place moves the head and either keeps or collapses the anchor.
func (s *Selection) place(doc Doc, off int, extend bool) {
	off = clamp(doc, off)
	if !extend {
		s.anchor = off
		s.gran = Char
	} else if !s.Active() {
		s.anchor = s.head
	}
	s.head = off
}

// MoveTo places the cursor at off and clears the selection.
func (s *Selection) MoveTo(doc Doc, off int) {
	s.place(doc, off, false)
	s.sticky = column(doc, s.head)
}

// Clamp pulls anchor and head back inside the document, for use after the
// content changed underneath the selection.
func (s *Selection) Clamp(doc Doc) {
	s.anchor = clamp(doc, s.anchor)
	s.head = clamp(doc, s.head)
	s.origin.Start = clamp(doc, s.origin.Start)
	s.origin.End = clamp(doc, s.origin.End)
}

// ClearSelection collapses the selection onto the head.
func (s *Selection) ClearSelection() {
	s.anchor = s.head
	s.gran = Char
}

// SelectAll selects the whole document with the cursor at the end.
func (s *Selection) SelectAll(doc Doc) {
	s.anchor = 0
	s.head = doc.Len()
	s.gran = Char
	s.sticky = column(doc, s.head)
}

// SelectWordAt selects the same-class run around off and switches to word
// granularity.
func (s *Selection) SelectWordAt(doc Doc, off int) {
	r := buffer.WordAt(doc, clamp(doc, off))
	s.anchor, s.head = r.Start, r.End
	s.gran = Word
	s.origin = r
	s.sticky = column(doc, s.head)
}

// SelectLineAt selects line including its terminator and switches to line
// granularity.
func (s *Selection) SelectLineAt(doc Doc, line int) {
	r := lineSpan(doc, line)
	s.anchor, s.head = r.Start, r.End
	s.gran = Line
	s.origin = r
	s.sticky = column(doc, s.head)
}

// lineSpan returns the range of line n including its newline.
func lineSpan(doc Doc, n int) buffer.Range {
	if n < 0 {
		n = 0
	}
	if last := doc.LineCount() - 1; n > last {
		n = last
	}
	start, _ := doc.OffsetOf(n, 0)
	end := start + doc.LineLen(n)
	if n < doc.LineCount()-1 {
		end++
	}
	return buffer.Range{Start: start, End: end}
}

// ExtendSelection moves the head to off keeping the anchor. With Word or
// Line granularity the head snaps outward to the enclosing word or line and
// the originally selected unit stays selected.
func (s *Selection) ExtendSelection(doc Doc, off int) {
	off = clamp(doc, off)
	switch s.gran {
	case Word:
		if off >= s.origin.Start {
			s.anchor = s.origin.Start
			s.head = maxInt(s.origin.End, snapWordEnd(doc, off))
		} else {
			s.anchor = s.origin.End
			s.head = buffer.WordAt(doc, off).Start
		}
	case Line:
		line, _ := doc.LineAt(off)
		span := lineSpan(doc, line)
		if span.Start >= s.origin.Start {
			s.anchor = s.origin.Start
			s.head = maxInt(s.origin.End, span.End)
		} else {
			s.anchor = s.origin.End
			s.head = span.Start
		}
	default:
		if !s.Active() {
			s.anchor = s.head
		}
		s.head = off
	}
	s.sticky = column(doc, s.head)
}

// snapWordEnd returns the end of the run containing off, or off itself when
// it already sits on a boundary.
func snapWordEnd(doc Doc, off int) int {
	if off == 0 || off >= doc.Len() {
		return off
	}
	if buffer.ClassOf(doc.RuneAt(off-1)) != buffer.ClassOf(doc.RuneAt(off)) {
		return off
	}
	return buffer.NextBoundary(doc, off)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
