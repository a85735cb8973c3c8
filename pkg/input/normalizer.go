package input

import (
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"example.com/tabedit/pkg/keymap"
)

// DefaultDoubleClick is the window in which presses count as one gesture.
const DefaultDoubleClick = 500 * time.Millisecond

// Normalizer converts tcell events into Events. It keeps the small amount
// of state needed for bracketed paste, drags and click counting.
type Normalizer struct {
	// DoubleClick is the maximum delay between presses of a multi-click.
	DoubleClick time.Duration
	// Tolerance is how many cells a repeated press may drift.
	Tolerance int

	pasting bool
	paste   strings.Builder

	held      bool
	dragRow   int
	dragCol   int
	lastRow   int
	lastCol   int
	lastPress time.Time
	clicks    int
}

// NewNormalizer returns a Normalizer with the default click window.
func NewNormalizer() *Normalizer {
	return &Normalizer{DoubleClick: DefaultDoubleClick, Tolerance: 1}
}

// Normalize converts a raw event. A KindNone event with a nil error means
// the input was consumed without producing anything, such as a key inside
// a bracketed paste.
func (n *Normalizer) Normalize(ev tcell.Event) (Event, error) {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		return n.pasteEvent(ev), nil
	case *tcell.EventKey:
		if n.pasting {
			n.collect(ev)
			return Event{}, nil
		}
		out, err := n.key(ev)
		out.When = ev.When()
		return out, err
	case *tcell.EventMouse:
		return n.mouse(ev)
	}
	return Event{}, ErrUnrecognized
}

func (n *Normalizer) pasteEvent(ev *tcell.EventPaste) Event {
	if ev.Start() {
		n.pasting = true
		n.paste.Reset()
		return Event{}
	}
	n.pasting = false
	text := n.paste.String()
	n.paste.Reset()
	if text == "" {
		return Event{}
	}
	return Event{Kind: KindPaste, Text: text, When: ev.When()}
}

func (n *Normalizer) collect(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		n.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		n.paste.WriteByte('\n')
	case tcell.KeyTab:
		n.paste.WriteByte('\t')
	}
}

func dirOf(k tcell.Key) int {
	switch k {
	case tcell.KeyLeft, tcell.KeyUp, tcell.KeyBackspace2:
		return -1
	}
	return 1
}

func (n *Normalizer) key(ev *tcell.EventKey) (Event, error) {
	c := keymap.FromEvent(ev)
	word := c.Mod&(tcell.ModAlt|tcell.ModCtrl) != 0
	shift := c.Has(tcell.ModShift)
	dir := dirOf(c.Key)

	switch c.Key {
	case tcell.KeyLeft, tcell.KeyRight:
		kind := KindMoveChar
		switch {
		case word && shift:
			kind = KindSelectWord
		case word:
			kind = KindMoveWord
		case shift:
			kind = KindSelectChar
		}
		return Event{Kind: kind, Dir: dir, Chord: c}, nil
	case tcell.KeyUp, tcell.KeyDown:
		if word {
			return Event{Kind: KindKey, Chord: c}, nil
		}
		kind := KindMoveLine
		if shift {
			kind = KindSelectLine
		}
		return Event{Kind: kind, Dir: dir, Chord: c}, nil
	case tcell.KeyBackspace2, tcell.KeyDelete:
		kind := KindDeleteChar
		if word {
			kind = KindDeleteWord
		}
		return Event{Kind: kind, Dir: dir, Chord: c}, nil
	case tcell.KeyRune:
		return n.runeKey(ev, c)
	}
	return Event{Kind: KindKey, Chord: c}, nil
}

func (n *Normalizer) runeKey(ev *tcell.EventKey, c keymap.Chord) (Event, error) {
	switch {
	case c.Mod == tcell.ModAlt || c.Mod == tcell.ModAlt|tcell.ModShift:
		// Option/Meta letters arrive as ESC-prefixed runes
		if out, err := DecodeSequence("\x1b" + string(ev.Rune())); err == nil && out.Kind != KindInsert {
			out.Chord = c
			return out, nil
		}
		return Event{Kind: KindKey, Chord: c}, nil
	case c.Mod != 0:
		return Event{Kind: KindKey, Chord: c}, nil
	}
	r := ev.Rune()
	if !unicode.IsPrint(r) && r != '\t' {
		return Event{}, ErrUnrecognized
	}
	return Event{Kind: KindInsert, Text: string(r), Chord: c}, nil
}

// MultiClick reports whether a press at (row, col) at time t continues the
// gesture of a press at (prevRow, prevCol) at prev.
func MultiClick(prev, t time.Time, prevRow, prevCol, row, col int, window time.Duration, tolerance int) bool {
	if prev.IsZero() {
		return false
	}
	d := t.Sub(prev)
	if d < 0 || d > window {
		return false
	}
	return row == prevRow && abs(col-prevCol) <= tolerance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (n *Normalizer) mouse(ev *tcell.EventMouse) (Event, error) {
	col, row := ev.Position()
	btn := ev.Buttons()
	out := Event{Row: row, Col: col, Mod: ev.Modifiers(), When: ev.When()}
	switch {
	case btn&tcell.WheelUp != 0:
		out.Kind, out.Delta = KindScroll, -3
	case btn&tcell.WheelDown != 0:
		out.Kind, out.Delta = KindScroll, 3
	case btn&tcell.WheelLeft != 0:
		out.Kind, out.Delta, out.Horizontal = KindScroll, -3, true
	case btn&tcell.WheelRight != 0:
		out.Kind, out.Delta, out.Horizontal = KindScroll, 3, true
	case btn&tcell.Button1 != 0:
		if n.held {
			if row == n.dragRow && col == n.dragCol {
				return Event{}, nil
			}
			n.dragRow, n.dragCol = row, col
			// a drag ends any click sequence
			n.lastPress = time.Time{}
			out.Kind = KindDrag
			return out, nil
		}
		n.held = true
		window := n.DoubleClick
		if window <= 0 {
			window = DefaultDoubleClick
		}
		if MultiClick(n.lastPress, out.When, n.lastRow, n.lastCol, row, col, window, n.Tolerance) && n.clicks < 3 {
			n.clicks++
		} else {
			n.clicks = 1
		}
		n.lastPress, n.lastRow, n.lastCol = out.When, row, col
		n.dragRow, n.dragCol = row, col
		switch n.clicks {
		case 2:
			out.Kind = KindDoubleClick
		case 3:
			out.Kind = KindTripleClick
		default:
			out.Kind = KindPress
		}
	case btn == tcell.ButtonNone:
		if !n.held {
			return Event{}, nil
		}
		n.held = false
		out.Kind = KindRelease
	default:
		return Event{}, ErrUnrecognized
	}
	return out, nil
}
