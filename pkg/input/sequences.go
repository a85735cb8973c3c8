package input

import (
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"example.com/tabedit/pkg/keymap"
)

// sequences decodes raw terminal byte sequences whose meaning differs
// across terminals and platforms. macOS Terminal sends ESC b / ESC f for
// Option+Left/Right, iTerm2 may send ESC ESC [ D, xterm encodes modifiers
// as the second CSI parameter (2 shift, 3 alt, 5 ctrl, 9 meta).
var sequences = map[string]Event{
	"\x1bb": {Kind: KindMoveWord, Dir: -1},
	"\x1bf": {Kind: KindMoveWord, Dir: 1},
	"\x1bB": {Kind: KindSelectWord, Dir: -1},
	"\x1bF": {Kind: KindSelectWord, Dir: 1},
	"\x1bd": {Kind: KindDeleteWord, Dir: 1},

	"\x1b\x7f": {Kind: KindDeleteWord, Dir: -1},
	"\x1b\b":   {Kind: KindDeleteWord, Dir: -1},
	"\x7f":     {Kind: KindDeleteChar, Dir: -1},
	"\b":       {Kind: KindDeleteChar, Dir: -1},

	"\x1b[D": {Kind: KindMoveChar, Dir: -1},
	"\x1b[C": {Kind: KindMoveChar, Dir: 1},
	"\x1bOD": {Kind: KindMoveChar, Dir: -1},
	"\x1bOC": {Kind: KindMoveChar, Dir: 1},
	"\x1b[A": {Kind: KindMoveLine, Dir: -1},
	"\x1b[B": {Kind: KindMoveLine, Dir: 1},
	"\x1bOA": {Kind: KindMoveLine, Dir: -1},
	"\x1bOB": {Kind: KindMoveLine, Dir: 1},

	"\x1b[1;2D": {Kind: KindSelectChar, Dir: -1},
	"\x1b[1;2C": {Kind: KindSelectChar, Dir: 1},
	"\x1b[1;2A": {Kind: KindSelectLine, Dir: -1},
	"\x1b[1;2B": {Kind: KindSelectLine, Dir: 1},

	"\x1b[1;3D":   {Kind: KindMoveWord, Dir: -1},
	"\x1b[1;3C":   {Kind: KindMoveWord, Dir: 1},
	"\x1b[1;5D":   {Kind: KindMoveWord, Dir: -1},
	"\x1b[1;5C":   {Kind: KindMoveWord, Dir: 1},
	"\x1b[1;9D":   {Kind: KindMoveWord, Dir: -1},
	"\x1b[1;9C":   {Kind: KindMoveWord, Dir: 1},
	"\x1b\x1b[D":  {Kind: KindMoveWord, Dir: -1},
	"\x1b\x1b[C":  {Kind: KindMoveWord, Dir: 1},
	"\x1b[1;4D":   {Kind: KindSelectWord, Dir: -1},
	"\x1b[1;4C":   {Kind: KindSelectWord, Dir: 1},
	"\x1b[1;6D":   {Kind: KindSelectWord, Dir: -1},
	"\x1b[1;6C":   {Kind: KindSelectWord, Dir: 1},
	"\x1b[1;10D":  {Kind: KindSelectWord, Dir: -1},
	"\x1b[1;10C":  {Kind: KindSelectWord, Dir: 1},
	"\x1b[3~":     {Kind: KindDeleteChar, Dir: 1},
	"\x1b[3;3~":   {Kind: KindDeleteWord, Dir: 1},
	"\x1b[3;5~":   {Kind: KindDeleteWord, Dir: 1},
	"\x1b[3;9~":   {Kind: KindDeleteWord, Dir: 1},
	"\x1b\x1b[3~": {Kind: KindDeleteWord, Dir: 1},
}

// canonicalChord gives each directional kind one chord so keymap lookups
// see the same key whichever encoding produced the event.
func canonicalChord(k Kind, dir int) keymap.Chord {
	key := tcell.KeyRight
	if dir < 0 {
		key = tcell.KeyLeft
	}
	switch k {
	case KindMoveChar:
		return keymap.Chord{Key: key}
	case KindSelectChar:
		return keymap.Chord{Key: key, Mod: tcell.ModShift}
	case KindMoveWord:
		return keymap.Chord{Key: key, Mod: tcell.ModAlt}
	case KindSelectWord:
		return keymap.Chord{Key: key, Mod: tcell.ModAlt | tcell.ModShift}
	case KindMoveLine, KindSelectLine:
		c := keymap.Chord{Key: tcell.KeyDown}
		if dir < 0 {
			c.Key = tcell.KeyUp
		}
		if k == KindSelectLine {
			c.Mod = tcell.ModShift
		}
		return c
	case KindDeleteChar, KindDeleteWord:
		c := keymap.Chord{Key: tcell.KeyDelete}
		if dir < 0 {
			c.Key = tcell.KeyBackspace2
		}
		if k == KindDeleteWord {
			c.Mod = tcell.ModAlt
		}
		return c
	}
	return keymap.Chord{}
}

// DecodeSequence normalizes a raw input sequence. Sequences missing from
// the table pass through as an insertion when they are a single printable
// character and are rejected with ErrUnrecognized otherwise.
func DecodeSequence(seq string) (Event, error) {
	if ev, ok := sequences[seq]; ok {
		ev.Chord = canonicalChord(ev.Kind, ev.Dir)
		return ev, nil
	}
	r, size := utf8.DecodeRuneInString(seq)
	if r != utf8.RuneError && size == len(seq) && unicode.IsPrint(r) {
		return Event{Kind: KindInsert, Text: seq, Chord: keymap.Chord{Key: tcell.KeyRune, Rune: r}}, nil
	}
	return Event{}, ErrUnrecognized
}
