package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestImportThemeBase16(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base16.yaml")
	data := `
scheme: "base16-test"
base00: '181818'
base01: '282828'
base02: '383838'
base03: '585858'
base04: 'b8b8b8'
base05: 'd8d8d8'
base08: 'ab4642'
base09: 'dc9656'
base0A: 'f7ca88'
base0B: 'a1b56c'
base0D: '7cafc2'
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	th, err := ImportTheme(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if th.Background != tcell.NewHexColor(0x181818) || th.Foreground != tcell.NewHexColor(0xd8d8d8) {
		t.Fatalf("expected base00/base05 colors, got %v %v", th.Background, th.Foreground)
	}
	if th.SearchBackground != tcell.NewHexColor(0xf7ca88) {
		t.Fatalf("expected base0A search color, got %v", th.SearchBackground)
	}
}

func TestImportThemeAlacritty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alacritty.yml")
	data := `
colors:
  primary:
    background: '#1d1f21'
    foreground: '#c5c8c6'
  normal:
    blue:    '0x81a2be'
    yellow:  '0xf0c674'
    white:   '0xc5c8c6'
  bright:
    black:   '0x969896'
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	th, err := ImportTheme(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if th.Background != tcell.NewHexColor(0x1d1f21) {
		t.Fatalf("expected primary background, got %v", th.Background)
	}
	if th.SelectionBackground != tcell.NewHexColor(0x81a2be) {
		t.Fatalf("expected selection from normal.blue, got %v", th.SelectionBackground)
	}
}

func TestImportThemeUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.yaml")
	if err := os.WriteFile(path, []byte("name: nothing\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportTheme(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
