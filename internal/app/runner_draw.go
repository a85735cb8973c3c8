package app

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"example.com/tabedit/pkg/buffer"
	"example.com/tabedit/pkg/command"
	"example.com/tabedit/pkg/keymap"
	"example.com/tabedit/pkg/search"
	"example.com/tabedit/pkg/tabs"
	"example.com/tabedit/pkg/viewport"
)

// tabSpan is the screen columns a tab title occupies in the tab bar.
type tabSpan struct {
	x0, x1 int
	id     int
}

func (r *Runner) style(fg, bg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(bg)
}

// putString draws text from x and returns the column after it. Nothing is
// drawn at or past maxX.
func putString(s tcell.Screen, x, y int, text string, style tcell.Style, maxX int) int {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, ch, nil, style)
		x += w
	}
	return x
}

func fillRow(s tcell.Screen, x0, x1, y int, style tcell.Style) {
	for x := x0; x < x1; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// drawUI is the splash shown when no tab is open.
func (r *Runner) drawUI() {
	s := r.Screen
	width, height := s.Size()
	base := r.style(r.Theme.Foreground, r.Theme.Background)
	msg := "tabedit: no file open"
	putString(s, (width-runewidth.StringWidth(msg))/2, height/2, msg, base, width)
	hint := fmt.Sprintf("%s new tab  %s open file  %s quit",
		r.keyLabel(keymap.NewTab), r.keyLabel(keymap.OpenFile), r.keyLabel(keymap.Quit))
	putString(s, (width-runewidth.StringWidth(hint))/2, height/2+1, hint, base.Dim(true), width)
}

func (r *Runner) keyLabel(a keymap.Action) string {
	for _, e := range r.Keys.Help() {
		if e.Action == a {
			return e.Keys
		}
	}
	return "?"
}

// draw renders the current state. It only reads engine state.
func (r *Runner) draw() {
	s := r.Screen
	if s == nil {
		return
	}
	base := r.style(r.Theme.Foreground, r.Theme.Background)
	s.SetStyle(base)
	s.Clear()
	s.HideCursor()
	t := r.Tabs.Active()
	switch {
	case r.showHelp:
		r.drawHelp()
	case t == nil:
		r.drawUI()
	default:
		r.drawTabBar()
		r.drawText(t)
	}
	if r.mode == command.ModeFinder {
		r.drawFinder()
	}
	r.drawFooter(t)
	s.Show()
}

func (r *Runner) drawTabBar() {
	s := r.Screen
	width, _ := s.Size()
	fillRow(s, 0, width, 0, r.style(r.Theme.TabForeground, r.Theme.TabBackground))
	r.tabSpans = r.tabSpans[:0]
	active := r.Tabs.Active()
	x := 0
	for _, t := range r.Tabs.Tabs() {
		style := r.style(r.Theme.TabForeground, r.Theme.TabBackground)
		if t == active {
			style = r.style(r.Theme.TabActiveForeground, r.Theme.TabActiveBackground).Bold(true)
		}
		x0 := x
		x = putString(s, x, 0, " "+t.DisplayName()+" ", style, width)
		r.tabSpans = append(r.tabSpans, tabSpan{x0: x0, x1: x, id: t.ID})
		if x >= width {
			break
		}
	}
}

// visibleMatches returns matches of the last query inside the rows.
func (r *Runner) visibleMatches(doc *buffer.Buffer, rows []viewport.Row) []buffer.Range {
	if r.lastQuery == "" || len(rows) == 0 {
		return nil
	}
	span := buffer.Range{Start: rows[0].Start, End: rows[len(rows)-1].End}
	text, err := doc.Slice(span)
	if err != nil {
		return nil
	}
	ms := search.FindAll(text, r.lastQuery)
	for i := range ms {
		ms[i].Start += span.Start
		ms[i].End += span.Start
	}
	return ms
}

func inAny(ranges []buffer.Range, off int) bool {
	for _, m := range ranges {
		if m.Contains(off) {
			return true
		}
	}
	return false
}

func (r *Runner) drawText(t *tabs.Tab) {
	s := r.Screen
	r.layoutTab(t)
	src, err := r.Tabs.Source(t.View.TabID)
	if err != nil {
		return
	}
	doc, view := t.Buffer, t.View
	rows := view.Layout(src)
	sel, hasSel := t.Cursor.Range()
	matches := r.visibleMatches(doc, rows)

	text := r.style(r.Theme.Foreground, r.Theme.Background)
	selStyle := r.style(r.Theme.SelectionForeground, r.Theme.SelectionBackground)
	matchStyle := r.style(r.Theme.SearchForeground, r.Theme.SearchBackground)
	gutter := r.style(r.Theme.Gutter, r.Theme.Background)

	for i, row := range rows {
		y := tabBarRows + i
		if view.Gutter > 0 && row.Seg == 0 {
			num := strconv.Itoa(row.Line + 1)
			putString(s, view.Gutter-1-len(num), y, num, gutter, view.Gutter)
		}
		for _, c := range row.Cells {
			style := text
			switch {
			case hasSel && sel.Contains(c.Offset):
				style = selStyle
			case inAny(matches, c.Offset):
				style = matchStyle
			}
			x := view.Gutter + c.X
			if c.Rune == '\t' {
				fillRow(s, x, x+c.Width, y, style)
				continue
			}
			ch := c.Rune
			if unicode.IsControl(ch) {
				// a lone \r from mixed line endings, or other control runes
				ch = '?'
				style = style.Dim(true)
			}
			s.SetContent(x, y, ch, nil, style)
		}
		// a selected line break shows as one highlighted cell
		end := view.Gutter
		if n := len(row.Cells); n > 0 {
			last := row.Cells[n-1]
			end += last.X + last.Width
		}
		if hasSel && sel.Contains(row.End) && row.End < doc.Len() && doc.RuneAt(row.End) == '\n' && end < view.Cols {
			s.SetContent(end, y, ' ', nil, selStyle)
		}
	}
	if r.mode == command.ModeEdit {
		if row, col, ok := view.BufferToScreen(src, t.Cursor.Head()); ok {
			s.ShowCursor(col, tabBarRows+row)
		}
	}
}

func (r *Runner) drawFinder() {
	s := r.Screen
	width, _ := s.Size()
	f := r.finder
	bg := r.style(r.Theme.Foreground, r.Theme.FinderBackground)
	fillRow(s, 0, width, tabBarRows, bg)
	x := putString(s, 0, tabBarRows, "Open: "+string(f.query), bg.Bold(true), width)
	s.ShowCursor(x, tabBarRows)

	rows := r.finderRows()
	for i := 0; i < rows; i++ {
		y := tabBarRows + 1 + i
		idx := f.top + i
		style := bg
		if idx == f.selected {
			style = r.style(r.Theme.Foreground, r.Theme.FinderSelected)
		}
		fillRow(s, 0, width, y, style)
		if idx >= len(f.results) {
			if idx == 0 {
				putString(s, 1, y, "no matches", style.Dim(true), width)
			}
			continue
		}
		res := f.results[idx]
		hit := map[int]bool{}
		for _, p := range res.Positions {
			hit[p] = true
		}
		cx := 1
		for j, ch := range []rune(res.Path) {
			st := style
			if hit[j] {
				st = style.Foreground(r.Theme.FinderMatch).Bold(true)
			}
			cx = putString(s, cx, y, string(ch), st, width)
		}
	}
}

func (r *Runner) drawFooter(t *tabs.Tab) {
	s := r.Screen
	width, height := s.Size()
	if height < 2 {
		return
	}
	mini := r.style(r.Theme.MiniForeground, r.Theme.MiniBackground)
	fillRow(s, 0, width, height-2, mini)
	switch r.mode {
	case command.ModePrompt:
		x := putString(s, 0, height-2, r.prompt.label()+string(r.prompt.input), mini, width)
		s.ShowCursor(x, height-2)
		if msg := r.prompt.err; msg != "" {
			start := width - runewidth.StringWidth(msg)
			if start < x+1 {
				start = x + 1
			}
			putString(s, start, height-2, msg, mini.Foreground(tcell.ColorRed), width)
		}
	case command.ModeConfirm:
		x := putString(s, 0, height-2, r.confirm.question, mini.Bold(true), width)
		s.ShowCursor(x, height-2)
	default:
		putString(s, 0, height-2, r.message, mini, width)
	}

	status := r.style(r.Theme.StatusForeground, r.Theme.StatusBackground)
	fillRow(s, 0, width, height-1, status)
	left := " no file"
	if t != nil {
		line, col, _ := t.Buffer.Position(t.Cursor.Head())
		left = fmt.Sprintf(" %s | Ln %d, Col %d | %d/%d", t.DisplayName(), line+1, col+1, r.Tabs.ActiveIndex()+1, r.Tabs.Len())
		if t.View.Wrap != viewport.WrapNone {
			left += " | wrap " + t.View.Wrap.String()
		}
	}
	putString(s, 0, height-1, left, status, width)
	right := r.keyLabel(keymap.Help) + " help "
	if rx := width - runewidth.StringWidth(right); rx > runewidth.StringWidth(left)+1 {
		putString(s, rx, height-1, right, status, width)
	}
}

func (r *Runner) drawHelp() {
	s := r.Screen
	width, height := s.Size()
	base := r.style(r.Theme.Foreground, r.Theme.Background)
	entries := r.Keys.Help()
	lines := []string{"Keys (any key to close)", ""}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%-22s %s", e.Keys, e.Desc))
	}
	y := (height - len(lines)) / 2
	if y < 0 {
		y = 0
	}
	for i, line := range lines {
		if y+i >= height-footerRows {
			break
		}
		x := (width - 40) / 2
		if x < 0 {
			x = 0
		}
		putString(s, x, y+i, line, base, width)
	}
}
