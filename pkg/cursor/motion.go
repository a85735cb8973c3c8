package cursor

import "example.com/tabedit/pkg/buffer"

// horizontal applies a horizontal move to target and refreshes the sticky
// column. A plain move from an active selection starts at the head.
func (s *Selection) horizontal(doc Doc, target int, extend bool) {
	if extend && s.gran != Char {
		s.ExtendSelection(doc, target)
		return
	}
	s.place(doc, target, extend)
	s.sticky = column(doc, s.head)
}

// vertical moves to the same sticky column on another line. The sticky
// column is left untouched.
func (s *Selection) vertical(doc Doc, delta int, extend bool) {
	line, err := doc.LineAt(s.head)
	if err != nil {
		line = 0
	}
	target := line + delta
	if target < 0 {
		target = 0
	}
	if last := doc.LineCount() - 1; target > last {
		target = last
	}
	off := s.head
	if target != line {
		col := s.sticky
		if n := doc.LineLen(target); col > n {
			col = n
		}
		off, _ = doc.OffsetOf(target, col)
	}
	sticky := s.sticky
	if extend && s.gran != Char {
		s.ExtendSelection(doc, off)
	} else {
		s.place(doc, off, extend)
	}
	s.sticky = sticky
}

// MoveByChar moves one character left (dir < 0) or right (dir > 0).
func (s *Selection) MoveByChar(doc Doc, dir int, extend bool) {
	s.horizontal(doc, s.head+sign(dir), extend)
}

// MoveByWord moves to the next class transition in the direction of dir.
func (s *Selection) MoveByWord(doc Doc, dir int, extend bool) {
	target := buffer.NextBoundary(doc, s.head)
	if dir < 0 {
		target = buffer.PrevBoundary(doc, s.head)
	}
	s.horizontal(doc, target, extend)
}

// MoveByLine moves up (dir < 0) or down (dir > 0) one line.
func (s *Selection) MoveByLine(doc Doc, dir int, extend bool) {
	s.vertical(doc, sign(dir), extend)
}

// MoveByPage moves rows lines up or down, stopping at the first or last line.
func (s *Selection) MoveByPage(doc Doc, dir, rows int, extend bool) {
	if rows < 1 {
		rows = 1
	}
	s.vertical(doc, sign(dir)*rows, extend)
}

// MoveLineEdge moves to the start (dir < 0) or end (dir > 0) of the line.
func (s *Selection) MoveLineEdge(doc Doc, dir int, extend bool) {
	line, _ := doc.LineAt(s.head)
	target, _ := doc.OffsetOf(line, 0)
	if dir > 0 {
		target += doc.LineLen(line)
	}
	s.horizontal(doc, target, extend)
}

// MoveDocEdge moves to the start (dir < 0) or end (dir > 0) of the document.
func (s *Selection) MoveDocEdge(doc Doc, dir int, extend bool) {
	target := 0
	if dir > 0 {
		target = doc.Len()
	}
	s.horizontal(doc, target, extend)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
