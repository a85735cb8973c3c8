package buffer

import (
	"errors"
	"testing"
)

func TestGapBuffer_InsertDelete(t *testing.T) {
	g := NewGapBufferFromString("Hello World")
	if g.String() != "Hello World" {
		t.Fatalf("expected initial content 'Hello World', got %q", g.String())
	}
	// insert comma after Hello
	if err := g.Insert(5, []rune{','}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if g.String() != "Hello, World" {
		t.Fatalf("expected 'Hello, World', got %q", g.String())
	}
	if err := g.Delete(5, 6); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if g.String() != "Hello World" {
		t.Fatalf("expected 'Hello World' after delete, got %q", g.String())
	}
}

func TestGapBuffer_SliceAcrossGap(t *testing.T) {
	g := NewGapBufferFromString("abcdef")
	// park the gap in the middle
	if err := g.Insert(3, []rune("XY")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := string(g.Slice(1, 7)); got != "bcXYde" {
		t.Fatalf("expected 'bcXYde', got %q", got)
	}
	if got := string(g.Slice(-3, 100)); got != "abcXYdef" {
		t.Fatalf("expected clamped slice, got %q", got)
	}
	if got := g.RuneAt(4); got != 'Y' {
		t.Fatalf("expected 'Y', got %q", got)
	}
}

func TestGapBuffer_Grow(t *testing.T) {
	g := NewGapBuffer(1)
	for i := 0; i < 300; i++ {
		if err := g.Insert(g.Len()/2, []rune("é")); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}
	if g.Len() != 300 {
		t.Fatalf("expected 300 runes, got %d", g.Len())
	}
}

func TestGapBuffer_Bounds(t *testing.T) {
	g := NewGapBufferFromString("abc")
	if err := g.Insert(4, []rune("x")); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := g.Delete(2, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}
