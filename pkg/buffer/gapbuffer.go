package buffer

// GapBuffer is a gap-buffer implementation for runes.
// The underlying slice stores runes with a gap between gapStart and gapEnd.
type GapBuffer struct {
	buf      []rune
	gapStart int
	gapEnd   int
}

// NewGapBuffer creates an empty GapBuffer with an initial capacity.
func NewGapBuffer(cap int) *GapBuffer {
	if cap < 1 {
		cap = 128
	}
	b := make([]rune, cap)
	return &GapBuffer{buf: b, gapStart: 0, gapEnd: cap}
}

// NewGapBufferFromString initializes a GapBuffer with the provided text.
func NewGapBufferFromString(s string) *GapBuffer {
	runes := []rune(s)
	cap := len(runes) + 128
	b := NewGapBuffer(cap)
	// place the runes before the gap
	copy(b.buf, runes)
	b.gapStart = len(runes)
	return b
}

func (g *GapBuffer) ensureGap(n int) {
	gap := g.gapEnd - g.gapStart
	if gap >= n {
		return
	}
	// grow buffer: double size or add n
	needed := n - gap
	newCap := len(g.buf)*2 + needed
	newBuf := make([]rune, newCap)
	copy(newBuf, g.buf[:g.gapStart])
	suffixLen := len(g.buf) - g.gapEnd
	copy(newBuf[newCap-suffixLen:], g.buf[g.gapEnd:])
	g.gapEnd = newCap - suffixLen
	g.buf = newBuf
}

// moveGap moves the gap so that gapStart == pos. pos must be within [0, Len].
func (g *GapBuffer) moveGap(pos int) {
	switch {
	case pos < g.gapStart:
		// shift the runes between pos and the gap to the far side
		d := g.gapStart - pos
		copy(g.buf[g.gapEnd-d:g.gapEnd], g.buf[pos:g.gapStart])
		g.gapEnd -= d
		g.gapStart = pos
	case pos > g.gapStart:
		d := pos - g.gapStart
		copy(g.buf[g.gapStart:g.gapStart+d], g.buf[g.gapEnd:g.gapEnd+d])
		g.gapStart += d
		g.gapEnd += d
	}
}

// Insert inserts runes at position pos (0..Len()).
func (g *GapBuffer) Insert(pos int, s []rune) error {
	if pos < 0 || pos > g.Len() {
		return ErrOutOfBounds
	}
	g.moveGap(pos)
	g.ensureGap(len(s))
	copy(g.buf[g.gapStart:], s)
	g.gapStart += len(s)
	return nil
}

// Delete removes runes in [start,end).
func (g *GapBuffer) Delete(start, end int) error {
	if start < 0 || end < start || end > g.Len() {
		return ErrOutOfBounds
	}
	g.moveGap(start)
	// expand gap by (end-start) from the right
	g.gapEnd += end - start
	return nil
}

// Slice returns a copy of the runes in [start,end). Out of range bounds are
// clamped.
func (g *GapBuffer) Slice(start, end int) []rune {
	if start < 0 {
		start = 0
	}
	if end > g.Len() {
		end = g.Len()
	}
	if start >= end {
		return []rune{}
	}
	out := make([]rune, 0, end-start)
	if start < g.gapStart {
		stop := end
		if stop > g.gapStart {
			stop = g.gapStart
		}
		out = append(out, g.buf[start:stop]...)
		start = stop
	}
	if start < end {
		shift := g.gapEnd - g.gapStart
		out = append(out, g.buf[start+shift:end+shift]...)
	}
	return out
}

// Len returns the logical length (excluding gap)
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

// RuneAt returns the rune at index i. If i is out of bounds, it returns 0.
func (g *GapBuffer) RuneAt(i int) rune {
	if i < 0 || i >= g.Len() {
		return 0
	}
	if i < g.gapStart {
		return g.buf[i]
	}
	return g.buf[g.gapEnd+(i-g.gapStart)]
}

// String returns the full content.
func (g *GapBuffer) String() string {
	return string(g.Slice(0, g.Len()))
}
