package keymap

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestParseChord(t *testing.T) {
	cases := []struct {
		in   string
		want Chord
	}{
		{"Ctrl+S", Chord{Key: tcell.KeyRune, Rune: 's', Mod: tcell.ModCtrl}},
		{"ctrl+shift+z", Chord{Key: tcell.KeyRune, Rune: 'z', Mod: tcell.ModCtrl | tcell.ModShift}},
		{"ctrl+Z", Chord{Key: tcell.KeyRune, Rune: 'z', Mod: tcell.ModCtrl | tcell.ModShift}},
		{"Option+Left", Chord{Key: tcell.KeyLeft, Mod: tcell.ModAlt}},
		{"pgdn", Chord{Key: tcell.KeyPgDn}},
		{"ctrl+]", Chord{Key: tcell.KeyRune, Rune: ']', Mod: tcell.ModCtrl}},
		{"ctrl++", Chord{Key: tcell.KeyRune, Rune: '+', Mod: tcell.ModCtrl}},
		{"*+f1", Chord{Key: tcell.KeyF1, Any: true}},
		{"alt+space", Chord{Key: tcell.KeyRune, Rune: ' ', Mod: tcell.ModAlt}},
	}
	for _, tc := range cases {
		got, err := ParseChord(tc.in)
		if err != nil {
			t.Fatalf("ParseChord(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseChord(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "hyper+x", "ctrl+nope"} {
		if _, err := ParseChord(bad); !errors.Is(err, ErrInvalidChord) {
			t.Fatalf("ParseChord(%q): expected ErrInvalidChord, got %v", bad, err)
		}
	}
}

func TestChordString(t *testing.T) {
	for _, s := range []string{"ctrl+alt+shift+left", "ctrl+s", "*+f1", "alt+space", "backspace"} {
		c := MustParse(s)
		if c.String() != s {
			t.Fatalf("expected %q, got %q", s, c.String())
		}
	}
}

func TestFromEvent(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone), "ctrl+q"},
		{tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModShift), "ctrl+shift+z"},
		{tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModMeta), "alt+b"},
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModAlt), "alt+shift+w"},
		{tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), "A"},
		{tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), "backspace"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModAlt), "alt+backspace"},
		{tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "shift+tab"},
		{tcell.NewEventKey(tcell.KeyCtrlRightSq, 0, tcell.ModNone), "ctrl+]"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl|tcell.ModShift), "ctrl+shift+left"},
	}
	for _, tc := range cases {
		if got := FromEvent(tc.ev).String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestDefaultLookup(t *testing.T) {
	k := Default()
	cases := map[string]Action{
		"ctrl+n":        NewTab,
		"ctrl+w":        CloseTab,
		"ctrl+s":        Save,
		"ctrl+p":        OpenFile,
		"ctrl+q":        Quit,
		"ctrl+]":        NextTab,
		"ctrl+pgup":     PrevTab,
		"ctrl+left":     WordLeft,
		"alt+right":     WordRight,
		"pgup":          PageUp,
		"pgdn":          PageDown,
		"ctrl+a":        SelectAll,
		"ctrl+c":        Copy,
		"ctrl+x":        Cut,
		"ctrl+v":        Paste,
		"alt+backspace": DeleteWord,
		"ctrl+shift+z":  Redo,
	}
	for chord, want := range cases {
		got, ok := k.Lookup(MustParse(chord))
		if !ok || got != want {
			t.Fatalf("Lookup(%s) = %q %v, want %q", chord, got, ok, want)
		}
	}
	if _, ok := k.Lookup(MustParse("ctrl+g")); ok {
		t.Fatalf("ctrl+g should be unbound")
	}
}

func TestExactBeatsWildcard(t *testing.T) {
	k := Default()
	if err := k.Set(Help, "*+f2"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := k.Set(FindNext, "shift+f2"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if a, _ := k.Lookup(MustParse("shift+f2")); a != FindNext {
		t.Fatalf("expected exact entry to win, got %q", a)
	}
	if a, _ := k.Lookup(MustParse("ctrl+f2")); a != Help {
		t.Fatalf("expected wildcard entry for ctrl+f2, got %q", a)
	}
	if a, _ := k.Lookup(MustParse("f2")); a != Help {
		t.Fatalf("expected wildcard entry for f2, got %q", a)
	}
}

func TestOverrides(t *testing.T) {
	k := Default()
	err := k.Apply(map[string][]string{
		"quit":  {"ctrl+x"},
		"paste": {},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if a, _ := k.Lookup(MustParse("ctrl+x")); a != Quit {
		t.Fatalf("override should win over built-in cut, got %q", a)
	}
	if _, ok := k.Lookup(MustParse("ctrl+q")); ok {
		t.Fatalf("old quit chord should be gone")
	}
	if _, ok := k.Lookup(MustParse("ctrl+v")); ok {
		t.Fatalf("disabled action should not resolve")
	}
	for _, h := range k.Help() {
		if h.Action == Paste {
			t.Fatalf("disabled action listed in help")
		}
	}
	if err := k.Set("no-such-action", "f5"); err == nil {
		t.Fatalf("expected unknown action error")
	}
	if err := k.Set(Quit, "hyper+q"); !errors.Is(err, ErrInvalidChord) {
		t.Fatalf("expected ErrInvalidChord, got %v", err)
	}
}
