// Package viewport maps between buffer offsets and screen cells for one tab.
package viewport

// Lines is the read access the viewport needs. The tab registry hands it
// out by tab id so a viewport never holds its buffer directly.
type Lines interface {
	LineCount() int
	Line(n int) string
	LineAt(offset int) (int, error)
	OffsetOf(line, column int) (int, error)
}

// Viewport is the scroll state of one tab. Top and TopSeg name the first
// visible row: segment TopSeg of line Top. Left is the horizontal scroll in
// cells and only applies without wrapping.
type Viewport struct {
	TabID      int
	Top        int
	TopSeg     int
	Left       int
	Rows       int
	Cols       int
	Gutter     int
	Wrap       WrapMode
	TabWidth   int
	AutoFollow bool
}

// New returns an auto-following viewport for tabID.
func New(tabID, rows, cols int) *Viewport {
	return &Viewport{TabID: tabID, Rows: rows, Cols: cols, TabWidth: DefaultTabWidth, AutoFollow: true}
}

// Resize records the size of the text area including the gutter.
func (v *Viewport) Resize(rows, cols int) {
	v.Rows, v.Cols = rows, cols
}

// TextWidth is the number of cells available for text.
func (v *Viewport) TextWidth() int {
	if w := v.Cols - v.Gutter; w > 0 {
		return w
	}
	return 1
}

func (v *Viewport) rows() int {
	if v.Rows < 1 {
		return 1
	}
	return v.Rows
}

// pos is a screen row position in the document: a line and one of its
// segments.
type pos struct {
	line int
	seg  int
}

func (p pos) before(q pos) bool {
	return p.line < q.line || (p.line == q.line && p.seg < q.seg)
}

func (v *Viewport) lineSegments(src Lines, n int) ([]rune, []Segment) {
	line := []rune(src.Line(n))
	return line, v.segments(line)
}

func (v *Viewport) segCount(src Lines, n int) int {
	if v.Wrap == WrapNone {
		return 1
	}
	_, segs := v.lineSegments(src, n)
	return len(segs)
}

func (v *Viewport) next(src Lines, p pos) (pos, bool) {
	if p.seg+1 < v.segCount(src, p.line) {
		return pos{p.line, p.seg + 1}, true
	}
	if p.line+1 < src.LineCount() {
		return pos{p.line + 1, 0}, true
	}
	return p, false
}

func (v *Viewport) prev(src Lines, p pos) (pos, bool) {
	if p.seg > 0 {
		return pos{p.line, p.seg - 1}, true
	}
	if p.line > 0 {
		return pos{p.line - 1, v.segCount(src, p.line-1) - 1}, true
	}
	return p, false
}

func (v *Viewport) top() pos { return pos{v.Top, v.TopSeg} }

func (v *Viewport) setTop(p pos) {
	v.Top, v.TopSeg = p.line, p.seg
}

// normalize keeps the top row inside the document after edits or mode
// changes shrank it.
func (v *Viewport) normalize(src Lines) {
	if n := src.LineCount(); v.Top >= n {
		v.Top, v.TopSeg = n-1, 0
	}
	if v.Top < 0 {
		v.Top = 0
	}
	if v.TopSeg < 0 {
		v.TopSeg = 0
	}
	if c := v.segCount(src, v.Top); v.TopSeg >= c {
		v.TopSeg = c - 1
	}
	if v.Wrap != WrapNone {
		v.Left = 0
	}
}

// locate returns the row position and cell of an offset.
func (v *Viewport) locate(src Lines, offset int) (pos, int, bool) {
	line, err := src.LineAt(offset)
	if err != nil {
		return pos{}, 0, false
	}
	start, err := src.OffsetOf(line, 0)
	if err != nil {
		return pos{}, 0, false
	}
	text, segs := v.lineSegments(src, line)
	col := offset - start
	i := segmentFor(segs, col)
	return pos{line, i}, v.cellOf(text, segs[i], col), true
}

// distance counts rows from a to b (a before or equal b), giving up once
// limit is exceeded.
func (v *Viewport) distance(src Lines, a, b pos, limit int) int {
	n := 0
	for a.before(b) {
		if n > limit {
			return n
		}
		var ok bool
		if a, ok = v.next(src, a); !ok {
			break
		}
		n++
	}
	return n
}

// maxTop is the highest top row that still fills the screen, so the last
// document row sits on the bottom screen row.
func (v *Viewport) maxTop(src Lines) pos {
	last := src.LineCount() - 1
	p := pos{last, v.segCount(src, last) - 1}
	for i := 1; i < v.rows(); i++ {
		q, ok := v.prev(src, p)
		if !ok {
			break
		}
		p = q
	}
	return p
}

func (v *Viewport) clampTop(src Lines) {
	if m := v.maxTop(src); m.before(v.top()) {
		v.setTop(m)
	}
}

// EnsureVisible scrolls by the smallest amount that brings offset on
// screen. Targets more than a page away are centered instead. It reports
// whether the scroll position changed.
func (v *Viewport) EnsureVisible(src Lines, offset int) bool {
	v.normalize(src)
	target, x, ok := v.locate(src, offset)
	if !ok {
		return false
	}
	oldTop, oldLeft := v.top(), v.Left
	rows := v.rows()

	switch {
	case target.before(v.top()):
		far := v.Top-target.line > rows || v.distance(src, target, v.top(), rows) > rows
		if far {
			v.center(src, target)
		} else {
			v.setTop(target)
		}
	default:
		if target.line-v.Top > 2*rows {
			v.center(src, target)
			break
		}
		d := v.distance(src, v.top(), target, 2*rows)
		switch {
		case d < rows:
		case d >= 2*rows:
			v.center(src, target)
		default:
			v.ScrollBy(src, d-rows+1)
		}
	}

	if v.Wrap == WrapNone {
		w := v.TextWidth()
		if x < v.Left {
			v.Left = x
		} else if x >= v.Left+w {
			v.Left = x - w + 1
		}
	}
	return v.top() != oldTop || v.Left != oldLeft
}

func (v *Viewport) center(src Lines, target pos) {
	p := target
	for i := 0; i < v.rows()/2; i++ {
		q, ok := v.prev(src, p)
		if !ok {
			break
		}
		p = q
	}
	v.setTop(p)
	v.clampTop(src)
}

// ScrollBy moves the top row by n screen rows, stopping at the document
// edges.
func (v *Viewport) ScrollBy(src Lines, n int) {
	v.normalize(src)
	p := v.top()
	for ; n > 0; n-- {
		q, ok := v.next(src, p)
		if !ok {
			break
		}
		p = q
	}
	for ; n < 0; n++ {
		q, ok := v.prev(src, p)
		if !ok {
			break
		}
		p = q
	}
	v.setTop(p)
	v.clampTop(src)
}

// ScrollToTop shows the first line.
func (v *Viewport) ScrollToTop() {
	v.Top, v.TopSeg, v.Left = 0, 0, 0
}

// ScrollToBottom shows the last page of the document.
func (v *Viewport) ScrollToBottom(src Lines) {
	v.setTop(v.maxTop(src))
	v.Left = 0
}

// BufferToScreen returns the screen row and column of offset relative to
// the text area origin, gutter included. ok is false when the offset is
// not currently visible.
func (v *Viewport) BufferToScreen(src Lines, offset int) (row, col int, ok bool) {
	v.normalize(src)
	target, x, found := v.locate(src, offset)
	if !found || target.before(v.top()) || target.line-v.Top > v.rows() {
		return 0, 0, false
	}
	row = v.distance(src, v.top(), target, v.rows())
	if row >= v.rows() {
		return 0, 0, false
	}
	if v.Wrap == WrapNone {
		x -= v.Left
		if x < 0 || x >= v.TextWidth() {
			return 0, 0, false
		}
	}
	return row, v.Gutter + x, true
}

// Hit describes what a screen cell resolves to.
type Hit struct {
	Offset   int
	Line     int
	InGutter bool
	// Beyond is set when the cell lies below the last line of text.
	Beyond bool
}

// HitTest resolves a cell in the text area. Cells past the end of a line
// clamp to the line end, cells below the document to the end of the last
// line.
func (v *Viewport) HitTest(src Lines, row, col int) Hit {
	v.normalize(src)
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	h := Hit{InGutter: col < v.Gutter}
	p := v.top()
	for i := 0; i < row; i++ {
		q, ok := v.next(src, p)
		if !ok {
			last := src.LineCount() - 1
			start, _ := src.OffsetOf(last, 0)
			h.Line = last
			h.Offset = start + len([]rune(src.Line(last)))
			h.Beyond = true
			return h
		}
		p = q
	}
	x := col - v.Gutter
	if x < 0 {
		x = 0
	}
	if v.Wrap == WrapNone {
		x += v.Left
	}
	text, segs := v.lineSegments(src, p.line)
	seg := segs[p.seg]
	start, _ := src.OffsetOf(p.line, 0)
	h.Line = p.line
	h.Offset = start + v.columnAt(text, seg, x, p.seg == len(segs)-1)
	return h
}

// ScreenToBuffer resolves a cell to a buffer offset, clamping as HitTest.
func (v *Viewport) ScreenToBuffer(src Lines, row, col int) int {
	return v.HitTest(src, row, col).Offset
}
