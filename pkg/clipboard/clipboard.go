// Package clipboard connects copy and paste to the system clipboard, with
// an in-process history that works when no system clipboard is reachable.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrEmpty is returned by ReadText when nothing has been copied.
var ErrEmpty = errors.New("clipboard: empty")

// Clipboard provides editor-level clipboard integration. Failures must
// not crash the UI.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// RingSize is how many copies a Ring remembers.
const RingSize = 10

// Ring stores a small history of copied text, newest first.
type Ring struct {
	entries []string
}

// Push adds copied text to the ring. Empty text is ignored.
func (k *Ring) Push(s string) {
	if s == "" {
		return
	}
	if k.entries == nil {
		k.entries = make([]string, 0, RingSize)
	}
	if len(k.entries) < RingSize {
		k.entries = append(k.entries, "")
	}
	copy(k.entries[1:], k.entries[:len(k.entries)-1])
	k.entries[0] = s
}

// Current returns the most recent copy.
func (k *Ring) Current() string {
	if len(k.entries) == 0 {
		return ""
	}
	return k.entries[0]
}

// Len returns the number of entries in the ring.
func (k *Ring) Len() int { return len(k.entries) }

// ReadText returns the most recent copy.
func (k *Ring) ReadText() (string, error) {
	if len(k.entries) == 0 {
		return "", ErrEmpty
	}
	return k.entries[0], nil
}

// WriteText pushes s.
func (k *Ring) WriteText(s string) error {
	k.Push(s)
	return nil
}

// System writes through to the OS clipboard and remembers every copy in a
// Ring. Reads prefer the OS clipboard so text copied in other programs can
// be pasted.
type System struct {
	Ring Ring
	// Disabled skips the OS clipboard; set automatically when the
	// platform has no clipboard tool.
	Disabled bool
}

// NewSystem returns a clipboard backed by the OS when available.
func NewSystem() *System {
	return &System{Disabled: clipboard.Unsupported}
}

// WriteText stores s. The ring keeps the text even when the OS write fails.
func (c *System) WriteText(s string) error {
	c.Ring.Push(s)
	if c.Disabled {
		return nil
	}
	return clipboard.WriteAll(s)
}

// ReadText returns the OS clipboard text, falling back to the ring.
func (c *System) ReadText() (string, error) {
	if !c.Disabled {
		if s, err := clipboard.ReadAll(); err == nil && s != "" {
			return s, nil
		}
	}
	return c.Ring.ReadText()
}
