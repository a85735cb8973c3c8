package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// ImportTheme reads a theme file in a known format and converts it to Theme.
// Supported:
// - Base16 YAML (keys base00..base0F)
// - Alacritty YAML (colors.primary/normal/bright)
func ImportTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", filepath.Base(path), err)
	}
	lowered := lowerKeys(doc)
	switch {
	case lowered["base00"] != nil:
		return importBase16(lowered), nil
	case lowered["colors"] != nil:
		return importAlacritty(lowered), nil
	}
	return Theme{}, fmt.Errorf("unrecognized theme format %s: %w", filepath.Base(path), ErrInvalid)
}

func lowerKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			v = lowerKeys(sub)
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// lookup follows a dotted path through nested maps.
func lookup(m map[string]any, path string) (string, bool) {
	var cur any = m
	for _, part := range strings.Split(path, ".") {
		next, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur = next[part]
	}
	s, ok := cur.(string)
	return s, ok
}

func parseHexToColor(v string, fallback tcell.Color) tcell.Color {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "#") {
		v = v[1:]
	} else if strings.HasPrefix(strings.ToLower(v), "0x") {
		v = v[2:]
	}
	if len(v) != 6 {
		return fallback
	}
	if _, err := strconv.ParseInt(v, 16, 32); err != nil {
		return fallback
	}
	return ParseColor("#"+strings.ToLower(v), fallback)
}

func importBase16(doc map[string]any) Theme {
	t := DefaultTheme()
	get := func(k string, fb tcell.Color) tcell.Color {
		v, _ := lookup(doc, k)
		return parseHexToColor(v, fb)
	}

	t.Background = get("base00", t.Background)
	t.Foreground = get("base05", t.Foreground)

	t.TabBackground = get("base01", t.TabBackground)
	t.TabForeground = get("base04", t.TabForeground)
	t.TabActiveBackground = t.Background
	t.TabActiveForeground = t.Foreground

	t.StatusBackground = get("base02", t.StatusBackground)
	t.StatusForeground = t.Foreground
	t.MiniBackground = t.Background
	t.MiniForeground = t.Foreground
	t.Gutter = get("base03", t.Gutter)

	t.SelectionBackground = get("base02", t.SelectionBackground)
	t.SelectionForeground = t.Foreground
	t.SearchBackground = get("base0a", t.SearchBackground)
	t.SearchForeground = t.Background

	t.FinderBackground = t.TabBackground
	t.FinderSelected = get("base0d", t.FinderSelected)
	t.FinderMatch = get("base09", t.FinderMatch)
	return t
}

func importAlacritty(doc map[string]any) Theme {
	t := DefaultTheme()
	get := func(p string, fb tcell.Color) tcell.Color {
		if v, ok := lookup(doc, p); ok {
			return parseHexToColor(v, fb)
		}
		return fb
	}

	t.Background = get("colors.primary.background", t.Background)
	t.Foreground = get("colors.primary.foreground", t.Foreground)

	t.TabBackground = get("colors.bright.black", t.TabBackground)
	t.TabForeground = t.Foreground
	t.TabActiveBackground = t.Background
	t.TabActiveForeground = t.Foreground

	t.StatusBackground = get("colors.normal.white", t.StatusBackground)
	t.StatusForeground = t.Background
	t.MiniBackground = t.Background
	t.MiniForeground = t.Foreground
	t.Gutter = get("colors.bright.black", t.Gutter)

	t.SelectionBackground = get("colors.selection.background", get("colors.normal.blue", t.SelectionBackground))
	t.SelectionForeground = get("colors.selection.text", t.Foreground)
	t.SearchBackground = get("colors.normal.yellow", t.SearchBackground)
	t.SearchForeground = t.Background

	t.FinderBackground = t.TabBackground
	t.FinderSelected = get("colors.normal.blue", t.FinderSelected)
	t.FinderMatch = get("colors.normal.yellow", t.FinderMatch)
	return t
}
