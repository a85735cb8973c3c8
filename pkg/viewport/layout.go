package viewport

// Cell is one rune placed on screen. X is relative to the text area, after
// the gutter.
type Cell struct {
	Rune   rune
	Offset int
	X      int
	Width  int
}

// Row is one visible screen row.
type Row struct {
	Line int
	Seg  int
	// Start and End are the buffer offsets covered by the row.
	Start int
	End   int
	Cells []Cell
}

// Layout returns the rows currently on screen, top to bottom. Rows past the
// end of the document are omitted.
func (v *Viewport) Layout(src Lines) []Row {
	v.normalize(src)
	var out []Row
	p := v.top()
	width := v.TextWidth()
	for len(out) < v.rows() {
		text, segs := v.lineSegments(src, p.line)
		seg := segs[p.seg]
		start, _ := src.OffsetOf(p.line, 0)
		row := Row{Line: p.line, Seg: p.seg, Start: start + seg.Start, End: start + seg.End}
		x := 0
		for i := seg.Start; i < seg.End; i++ {
			w := RuneWidth(text[i], x, v.TabWidth)
			sx := x
			if v.Wrap == WrapNone {
				sx -= v.Left
			}
			x += w
			if sx < 0 {
				continue
			}
			if sx+w > width {
				break
			}
			row.Cells = append(row.Cells, Cell{Rune: text[i], Offset: start + i, X: sx, Width: w})
		}
		out = append(out, row)
		q, ok := v.next(src, p)
		if !ok {
			break
		}
		p = q
	}
	return out
}
