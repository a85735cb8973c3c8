package buffer

import (
	"errors"
	"fmt"

	"example.com/tabedit/pkg/history"
)

var (
	// ErrOutOfBounds reports an offset or range outside [0, Len].
	ErrOutOfBounds = errors.New("buffer: offset out of bounds")
	// ErrEmptyHistory is returned by Undo/Redo with nothing to act on.
	ErrEmptyHistory = history.ErrEmpty
)

// Range is a half-open rune interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered by r.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the range covers nothing.
func (r Range) Empty() bool { return r.Start == r.End }

// Contains reports whether offset lies inside [Start, End).
func (r Range) Contains(offset int) bool { return offset >= r.Start && offset < r.End }

// Options configures a Buffer.
type Options struct {
	// HistoryLimit bounds the undo stack; zero selects history.DefaultLimit.
	HistoryLimit int
}

// Buffer is the text of one document: rune storage plus a line index, an
// undo history and a dirty flag. All offsets are rune offsets.
type Buffer struct {
	store   TextStorage
	lines   *lineIndex
	hist    *history.History
	dirty   bool
	version uint64
}

// New creates a Buffer seeded with text. The new buffer is clean.
func New(text string, opts Options) *Buffer {
	runes := []rune(text)
	return &Buffer{
		store: NewGapBufferFromString(text),
		lines: newLineIndex(runes),
		hist:  history.New(opts.HistoryLimit),
	}
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int { return b.store.Len() }

// RuneAt returns the rune at offset i, or 0 when i is out of range.
func (b *Buffer) RuneAt(i int) rune { return b.store.RuneAt(i) }

// String returns the whole content.
func (b *Buffer) String() string { return string(b.store.Slice(0, b.store.Len())) }

// Bytes returns the content as UTF-8 for persistence.
func (b *Buffer) Bytes() []byte { return []byte(b.String()) }

// Dirty reports whether the content changed since the last MarkSaved.
func (b *Buffer) Dirty() bool { return b.dirty }

// MarkSaved acknowledges a successful write and clears the dirty flag.
func (b *Buffer) MarkSaved() { b.dirty = false }

// Version increases on every content change.
func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) checkRange(r Range) error {
	if r.Start < 0 || r.End < r.Start || r.End > b.Len() {
		return fmt.Errorf("%w: range [%d,%d) with length %d", ErrOutOfBounds, r.Start, r.End, b.Len())
	}
	return nil
}

// Insert inserts text at offset.
func (b *Buffer) Insert(offset int, text string) error {
	return b.Replace(Range{Start: offset, End: offset}, text)
}

// Delete removes the runes in r.
func (b *Buffer) Delete(r Range) error {
	return b.Replace(r, "")
}

// Replace substitutes the runes in r with text as a single undoable edit.
func (b *Buffer) Replace(r Range, text string) error {
	if err := b.checkRange(r); err != nil {
		return err
	}
	if r.Empty() && text == "" {
		return nil
	}
	e := history.Edit{Offset: r.Start, Deleted: string(b.store.Slice(r.Start, r.End)), Inserted: text}
	if err := b.apply(e); err != nil {
		return err
	}
	b.hist.Record(e)
	return nil
}

// apply performs an edit on storage and the line index without touching
// history.
func (b *Buffer) apply(e history.Edit) error {
	removed := []rune(e.Deleted)
	inserted := []rune(e.Inserted)
	end := e.Offset + len(removed)
	if err := b.checkRange(Range{Start: e.Offset, End: end}); err != nil {
		return err
	}
	if len(removed) > 0 {
		if err := b.store.Delete(e.Offset, end); err != nil {
			return err
		}
	}
	if len(inserted) > 0 {
		if err := b.store.Insert(e.Offset, inserted); err != nil {
			return err
		}
	}
	b.lines.update(e.Offset, len(removed), inserted)
	b.dirty = true
	b.version++
	return nil
}

// Undo reverts the most recent edit and returns the edit that was applied
// to do so.
func (b *Buffer) Undo() (history.Edit, error) {
	inv, err := b.hist.Undo()
	if err != nil {
		return history.Edit{}, err
	}
	if err := b.apply(inv); err != nil {
		b.hist.Undone(inv)
		return history.Edit{}, err
	}
	return inv, nil
}

// Redo reapplies the most recently undone edit and returns it.
func (b *Buffer) Redo() (history.Edit, error) {
	e, err := b.hist.Redo()
	if err != nil {
		return history.Edit{}, err
	}
	if err := b.apply(e); err != nil {
		b.hist.Redone(e)
		return history.Edit{}, err
	}
	return e, nil
}

// Slice returns the text in r.
func (b *Buffer) Slice(r Range) (string, error) {
	if err := b.checkRange(r); err != nil {
		return "", err
	}
	return string(b.store.Slice(r.Start, r.End)), nil
}

// LineCount returns the number of lines. An empty buffer has one line and
// a trailing newline starts a new, empty line.
func (b *Buffer) LineCount() int { return b.lines.count() }

// LineAt returns the zero-based line containing offset.
func (b *Buffer) LineAt(offset int) (int, error) {
	if offset < 0 || offset > b.Len() {
		return 0, fmt.Errorf("%w: offset %d with length %d", ErrOutOfBounds, offset, b.Len())
	}
	return b.lines.lineOf(offset), nil
}

// LineRange returns the content range of line n, excluding its terminator.
// Out of range lines yield an empty range at the nearest end.
func (b *Buffer) LineRange(n int) Range {
	if n < 0 {
		return Range{}
	}
	if n >= b.lines.count() {
		return Range{Start: b.Len(), End: b.Len()}
	}
	start := b.lines.starts[n]
	end := b.Len()
	if n+1 < b.lines.count() {
		end = b.lines.starts[n+1] - 1
	}
	return Range{Start: start, End: end}
}

// LineLen returns the number of runes on line n, excluding the terminator.
func (b *Buffer) LineLen(n int) int { return b.LineRange(n).Len() }

// Line returns the text of line n without its terminator.
func (b *Buffer) Line(n int) string {
	r := b.LineRange(n)
	return string(b.store.Slice(r.Start, r.End))
}

// OffsetOf converts a line and column into an offset.
func (b *Buffer) OffsetOf(line, column int) (int, error) {
	if line < 0 || line >= b.lines.count() {
		return 0, fmt.Errorf("%w: line %d of %d", ErrOutOfBounds, line, b.lines.count())
	}
	r := b.LineRange(line)
	if column < 0 || column > r.Len() {
		return 0, fmt.Errorf("%w: column %d on line %d of length %d", ErrOutOfBounds, column, line, r.Len())
	}
	return r.Start + column, nil
}

// Position converts an offset into its line and column.
func (b *Buffer) Position(offset int) (line, column int, err error) {
	line, err = b.LineAt(offset)
	if err != nil {
		return 0, 0, err
	}
	return line, offset - b.lines.starts[line], nil
}
