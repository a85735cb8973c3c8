package viewport

import "unicode"

// WrapMode selects how long lines are laid out.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapChar
	WrapWord
)

// ParseWrapMode maps "none", "char" and "word" to a WrapMode.
func ParseWrapMode(s string) (WrapMode, bool) {
	switch s {
	case "", "none", "off":
		return WrapNone, true
	case "char":
		return WrapChar, true
	case "word", "on":
		return WrapWord, true
	}
	return WrapNone, false
}

func (m WrapMode) String() string {
	switch m {
	case WrapChar:
		return "char"
	case WrapWord:
		return "word"
	default:
		return "none"
	}
}

// Segment is the part of a line drawn on one screen row, as rune columns
// [Start, End).
type Segment struct {
	Start int
	End   int
}

// segments splits a line into screen rows. Every line has at least one
// segment. When the last row is exactly full an empty segment follows so
// the end-of-line position stays on screen.
func (v *Viewport) segments(line []rune) []Segment {
	if v.Wrap == WrapNone || len(line) == 0 {
		return []Segment{{Start: 0, End: len(line)}}
	}
	width := v.TextWidth()
	var segs []Segment
	start := 0
	x := 0
	for start < len(line) {
		end, lastBreak := start, -1
		x = 0
		for end < len(line) {
			w := RuneWidth(line[end], x, v.TabWidth)
			if x+w > width && end > start {
				break
			}
			x += w
			end++
			if v.Wrap == WrapWord && unicode.IsSpace(line[end-1]) {
				lastBreak = end
			}
		}
		if end < len(line) && v.Wrap == WrapWord && lastBreak > start {
			end = lastBreak
		}
		segs = append(segs, Segment{Start: start, End: end})
		start = end
	}
	if x >= width {
		segs = append(segs, Segment{Start: len(line), End: len(line)})
	}
	return segs
}

// segmentFor returns the index of the segment holding rune column col.
func segmentFor(segs []Segment, col int) int {
	for i, s := range segs {
		if col < s.End || i == len(segs)-1 {
			return i
		}
	}
	return len(segs) - 1
}

// cellOf returns the cell offset of column col inside seg.
func (v *Viewport) cellOf(line []rune, seg Segment, col int) int {
	x := 0
	for i := seg.Start; i < col && i < len(line); i++ {
		x += RuneWidth(line[i], x, v.TabWidth)
	}
	return x
}

// columnAt returns the rune column drawn at cell x inside seg, clamping
// past the end of the segment.
func (v *Viewport) columnAt(line []rune, seg Segment, x int, last bool) int {
	cur := 0
	for i := seg.Start; i < seg.End; i++ {
		w := RuneWidth(line[i], cur, v.TabWidth)
		if x < cur+w {
			return i
		}
		cur += w
	}
	if !last && seg.End > seg.Start {
		return seg.End - 1
	}
	return seg.End
}
