package history

import (
	"errors"
	"testing"
)

func TestHistory_UndoRedo(t *testing.T) {
	h := New(0)
	h.Record(Edit{Offset: 1, Inserted: "X"})
	h.Record(Edit{Offset: 2, Deleted: "b"})

	inv, err := h.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if inv.Offset != 2 || inv.Inserted != "b" || inv.Deleted != "" {
		t.Fatalf("expected inverse re-inserting b at 2, got %+v", inv)
	}
	fwd, err := h.Redo()
	if err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if fwd.Deleted != "b" {
		t.Fatalf("expected redo of delete, got %+v", fwd)
	}
	if h.Len() != 2 {
		t.Fatalf("expected 2 undo records, got %d", h.Len())
	}
}

func TestHistory_RecordClearsRedo(t *testing.T) {
	h := New(0)
	h.Record(Edit{Offset: 0, Inserted: "a"})
	if _, err := h.Undo(); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	h.Record(Edit{Offset: 0, Inserted: "b"})
	if _, err := h.Redo(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty after new edit, got %v", err)
	}
}

func TestHistory_Empty(t *testing.T) {
	h := New(0)
	if _, err := h.Undo(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestHistory_Limit(t *testing.T) {
	h := New(3)
	for i := 0; i < 5; i++ {
		h.Record(Edit{Offset: i, Inserted: "x"})
	}
	if h.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", h.Len())
	}
	inv, _ := h.Undo()
	if inv.Offset != 4 {
		t.Fatalf("expected newest record first, got offset %d", inv.Offset)
	}
	h.Undo()
	last, _ := h.Undo()
	if last.Offset != 2 {
		t.Fatalf("expected oldest kept record at offset 2, got %d", last.Offset)
	}
	if h.CanUndo() {
		t.Fatalf("expected undo stack exhausted")
	}
}

func TestEdit_InverseAndEnd(t *testing.T) {
	e := Edit{Offset: 3, Deleted: "ab", Inserted: "héllo"}
	if got := e.End(); got != 8 {
		t.Fatalf("expected end 8, got %d", got)
	}
	if inv := e.Inverse(); inv.Inserted != "ab" || inv.Deleted != "héllo" {
		t.Fatalf("unexpected inverse %+v", inv)
	}
}
