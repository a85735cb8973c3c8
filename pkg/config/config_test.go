package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"example.com/tabedit/pkg/keymap"
	"example.com/tabedit/pkg/viewport"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabWidth != 4 || cfg.WrapMode() != viewport.WrapNone || cfg.DoubleClick() != 500*time.Millisecond || !cfg.AutoFollow {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigRemap(t *testing.T) {
	path := writeConfig(t, "keymap:\n  quit: ctrl+x\n  save: [ctrl+s, f2]\ntab_width: 8\nwrap: word\nauto_follow: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabWidth != 8 || cfg.WrapMode() != viewport.WrapWord || !cfg.LineNumbers || cfg.AutoFollow {
		t.Fatalf("expected file values over defaults, got %+v", cfg)
	}
	km, err := cfg.Keys()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if a, ok := km.Lookup(keymap.MustParse("ctrl+x")); !ok || a != keymap.Quit {
		t.Fatalf("expected remapped quit to ctrl+x, got %q", a)
	}
	if a, ok := km.Lookup(keymap.MustParse("f2")); !ok || a != keymap.Save {
		t.Fatalf("expected f2 to save, got %q", a)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []string{
		"tab_width: 0\n",
		"wrap: sideways\n",
		"keymap:\n  quit: ctrl+nope\n",
		"keymap:\n  fly: ctrl+f\n",
		"theme:\n  name: neon\n",
		"theme:\n  colors:\n    sparkle: red\n",
		"keymap:\n  quit: {a: b}\n",
	}
	for _, data := range cases {
		if _, err := Load(writeConfig(t, data)); err == nil {
			t.Fatalf("expected error for %q", data)
		} else if data != "keymap:\n  quit: {a: b}\n" && !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid for %q, got %v", data, err)
		}
	}
}

func TestResolveTheme(t *testing.T) {
	path := writeConfig(t, "theme:\n  name: light\n  colors:\n    selection_bg: '#ff0000'\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	th, err := cfg.ResolveTheme()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if th.Background != tcell.ColorWhite {
		t.Fatalf("expected light background, got %v", th.Background)
	}
	if th.SelectionBackground != tcell.NewHexColor(0xff0000) {
		t.Fatalf("expected overridden selection color, got %v", th.SelectionBackground)
	}
}

func TestParseColor(t *testing.T) {
	if c := ParseColor("Red", tcell.ColorBlue); c != tcell.ColorRed {
		t.Fatalf("expected red, got %v", c)
	}
	if c := ParseColor("not-a-color", tcell.ColorBlue); c != tcell.ColorBlue {
		t.Fatalf("expected fallback, got %v", c)
	}
}
