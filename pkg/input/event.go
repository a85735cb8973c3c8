// Package input turns raw terminal input into canonical editor events.
package input

import (
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"example.com/tabedit/pkg/keymap"
)

// ErrUnrecognized is returned for input that has no canonical meaning.
// Callers drop the event; it is never fatal.
var ErrUnrecognized = errors.New("input: unrecognized input")

// Kind is the canonical event vocabulary.
type Kind int

const (
	KindNone Kind = iota
	KindMoveChar
	KindMoveWord
	KindMoveLine
	KindSelectChar
	KindSelectWord
	KindSelectLine
	KindDeleteChar
	KindDeleteWord
	KindInsert
	KindPaste
	// KindKey is any other chord, resolved through the keymap.
	KindKey
	KindPress
	KindDrag
	KindRelease
	KindScroll
	KindDoubleClick
	KindTripleClick
)

var kindNames = [...]string{
	KindNone:        "none",
	KindMoveChar:    "move-char",
	KindMoveWord:    "move-word",
	KindMoveLine:    "move-line",
	KindSelectChar:  "select-char",
	KindSelectWord:  "select-word",
	KindSelectLine:  "select-line",
	KindDeleteChar:  "delete-char",
	KindDeleteWord:  "delete-word",
	KindInsert:      "insert",
	KindPaste:       "paste",
	KindKey:         "key",
	KindPress:       "press",
	KindDrag:        "drag",
	KindRelease:     "release",
	KindScroll:      "scroll",
	KindDoubleClick: "double-click",
	KindTripleClick: "triple-click",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is a normalized input event. Dir is -1 or +1 for directional
// kinds. Row and Col are screen cells for mouse kinds.
type Event struct {
	Kind  Kind
	Dir   int
	Text  string
	Chord keymap.Chord
	Row   int
	Col   int
	// Delta is the scroll amount in rows (or cells when Horizontal).
	Delta      int
	Horizontal bool
	Mod        tcell.ModMask
	When       time.Time
}

// Mouse reports whether the event came from the mouse.
func (e Event) Mouse() bool {
	return e.Kind >= KindPress && e.Kind <= KindTripleClick
}
