package history

import (
	"errors"
	"unicode/utf8"
)

// ErrEmpty is returned by Undo and Redo when there is nothing to act on.
var ErrEmpty = errors.New("history: nothing to undo or redo")

// DefaultLimit is the number of undo records kept when no limit is given.
const DefaultLimit = 1000

// Edit captures a single content mutation in rune offsets: Deleted was
// replaced by Inserted starting at Offset. A pure insert has an empty
// Deleted, a pure delete an empty Inserted.
type Edit struct {
	Offset   int
	Deleted  string
	Inserted string
}

// Inverse returns the edit that undoes e.
func (e Edit) Inverse() Edit {
	return Edit{Offset: e.Offset, Deleted: e.Inserted, Inserted: e.Deleted}
}

// End returns the rune offset just past the inserted text.
func (e Edit) End() int {
	return e.Offset + utf8.RuneCountInString(e.Inserted)
}

// History keeps bounded stacks of past/future edits for undo/redo.
type History struct {
	past   []Edit
	future []Edit
	limit  int
}

// New creates an empty History holding at most limit undo records.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Record pushes a forward edit and discards any redo entries.
func (h *History) Record(e Edit) {
	if e.Deleted == "" && e.Inserted == "" {
		return
	}
	h.past = append(h.past, e)
	if over := len(h.past) - h.limit; over > 0 {
		// drop the oldest records, keeping the backing array from growing
		h.past = append(h.past[:0], h.past[over:]...)
	}
	h.future = nil
}

// CanUndo reports whether there is an edit to undo.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether there is an edit to redo.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Len returns the number of undo records.
func (h *History) Len() int { return len(h.past) }

// Undo pops the most recent edit and returns its inverse, which the caller
// applies. The forward edit moves to the redo stack.
func (h *History) Undo() (Edit, error) {
	if !h.CanUndo() {
		return Edit{}, ErrEmpty
	}
	e := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, e)
	return e.Inverse(), nil
}

// Redo pops the most recently undone edit and returns it for reapplying.
func (h *History) Redo() (Edit, error) {
	if !h.CanRedo() {
		return Edit{}, ErrEmpty
	}
	e := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, e)
	return e, nil
}

// Undone puts an edit returned by Undo back on the undo stack. Callers use
// it when applying the inverse failed.
func (h *History) Undone(inverse Edit) {
	if n := len(h.future); n > 0 {
		h.future = h.future[:n-1]
	}
	h.past = append(h.past, inverse.Inverse())
}

// Redone reverses a Redo whose edit could not be applied.
func (h *History) Redone(e Edit) {
	if n := len(h.past); n > 0 {
		h.past = h.past[:n-1]
	}
	h.future = append(h.future, e)
}
