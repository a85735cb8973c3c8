package config

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the colors of every screen element.
type Theme struct {
	Background tcell.Color
	Foreground tcell.Color

	// Tab bar
	TabBackground       tcell.Color
	TabForeground       tcell.Color
	TabActiveBackground tcell.Color
	TabActiveForeground tcell.Color

	// Status bar and prompt line
	StatusBackground tcell.Color
	StatusForeground tcell.Color
	MiniBackground   tcell.Color
	MiniForeground   tcell.Color

	Gutter tcell.Color

	SelectionBackground tcell.Color
	SelectionForeground tcell.Color
	SearchBackground    tcell.Color
	SearchForeground    tcell.Color

	// Finder overlay; FinderMatch colors the matched query characters.
	FinderBackground tcell.Color
	FinderSelected   tcell.Color
	FinderMatch      tcell.Color
}

// themeRoles maps the color names accepted under theme.colors to fields.
var themeRoles = map[string]func(*Theme) *tcell.Color{
	"background":      func(t *Theme) *tcell.Color { return &t.Background },
	"foreground":      func(t *Theme) *tcell.Color { return &t.Foreground },
	"tab_bg":          func(t *Theme) *tcell.Color { return &t.TabBackground },
	"tab_fg":          func(t *Theme) *tcell.Color { return &t.TabForeground },
	"tab_active_bg":   func(t *Theme) *tcell.Color { return &t.TabActiveBackground },
	"tab_active_fg":   func(t *Theme) *tcell.Color { return &t.TabActiveForeground },
	"status_bg":       func(t *Theme) *tcell.Color { return &t.StatusBackground },
	"status_fg":       func(t *Theme) *tcell.Color { return &t.StatusForeground },
	"mini_bg":         func(t *Theme) *tcell.Color { return &t.MiniBackground },
	"mini_fg":         func(t *Theme) *tcell.Color { return &t.MiniForeground },
	"gutter":          func(t *Theme) *tcell.Color { return &t.Gutter },
	"selection_bg":    func(t *Theme) *tcell.Color { return &t.SelectionBackground },
	"selection_fg":    func(t *Theme) *tcell.Color { return &t.SelectionForeground },
	"search_bg":       func(t *Theme) *tcell.Color { return &t.SearchBackground },
	"search_fg":       func(t *Theme) *tcell.Color { return &t.SearchForeground },
	"finder_bg":       func(t *Theme) *tcell.Color { return &t.FinderBackground },
	"finder_selected": func(t *Theme) *tcell.Color { return &t.FinderSelected },
	"finder_match":    func(t *Theme) *tcell.Color { return &t.FinderMatch },
}

// DefaultTheme is a dark theme on a black background.
func DefaultTheme() Theme {
	return Theme{
		Background: tcell.ColorBlack,
		Foreground: tcell.ColorWhite,

		TabBackground:       tcell.ColorDarkSlateGray,
		TabForeground:       tcell.ColorSilver,
		TabActiveBackground: tcell.ColorBlack,
		TabActiveForeground: tcell.ColorWhite,

		StatusBackground: tcell.ColorWhite,
		StatusForeground: tcell.ColorBlack,
		MiniBackground:   tcell.ColorBlack,
		MiniForeground:   tcell.ColorWhite,

		Gutter: tcell.ColorGray,

		SelectionBackground: tcell.ColorNavy,
		SelectionForeground: tcell.ColorWhite,
		SearchBackground:    tcell.ColorYellow,
		SearchForeground:    tcell.ColorBlack,

		FinderBackground: tcell.ColorDarkSlateGray,
		FinderSelected:   tcell.ColorTeal,
		FinderMatch:      tcell.ColorYellow,
	}
}

// TerminalTheme follows the terminal's own palette and default colors.
func TerminalTheme() Theme {
	return Theme{
		Background: tcell.ColorDefault,
		Foreground: tcell.ColorDefault,

		TabBackground:       tcell.ColorGray,
		TabForeground:       tcell.ColorDefault,
		TabActiveBackground: tcell.ColorDefault,
		TabActiveForeground: tcell.ColorDefault,

		StatusBackground: tcell.ColorGray,
		StatusForeground: tcell.ColorDefault,
		MiniBackground:   tcell.ColorDefault,
		MiniForeground:   tcell.ColorDefault,

		Gutter: tcell.ColorGray,

		SelectionBackground: tcell.ColorBlue,
		SelectionForeground: tcell.ColorDefault,
		SearchBackground:    tcell.ColorYellow,
		SearchForeground:    tcell.ColorDefault,

		FinderBackground: tcell.ColorGray,
		FinderSelected:   tcell.ColorBlue,
		FinderMatch:      tcell.ColorYellow,
	}
}

// BuiltinThemes exposes the presets by name.
var BuiltinThemes = map[string]Theme{
	"default":  DefaultTheme(),
	"dark":     DefaultTheme(),
	"terminal": TerminalTheme(),
	"light": {
		Background: tcell.ColorWhite,
		Foreground: tcell.ColorBlack,

		TabBackground:       tcell.ColorSilver,
		TabForeground:       tcell.ColorBlack,
		TabActiveBackground: tcell.ColorWhite,
		TabActiveForeground: tcell.ColorBlack,

		StatusBackground: tcell.ColorBlack,
		StatusForeground: tcell.ColorWhite,
		MiniBackground:   tcell.ColorWhite,
		MiniForeground:   tcell.ColorBlack,

		Gutter: tcell.ColorGray,

		SelectionBackground: tcell.ColorLightBlue,
		SelectionForeground: tcell.ColorBlack,
		SearchBackground:    tcell.ColorYellow,
		SearchForeground:    tcell.ColorBlack,

		FinderBackground: tcell.ColorSilver,
		FinderSelected:   tcell.ColorLightBlue,
		FinderMatch:      tcell.ColorRed,
	},
}

// ParseColor returns a tcell.Color from a name or hex like "#aabbcc".
// If parsing fails, it returns the provided fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	// tcell.GetColor supports W3C names or #RRGGBB (case-insensitive)
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// ResolveTheme builds the configured theme: the named preset, then the
// imported file, then single color overrides.
func (c *Config) ResolveTheme() (Theme, error) {
	t, ok := BuiltinThemes[c.Theme.Name]
	if !ok {
		return Theme{}, fmt.Errorf("theme %q: %w", c.Theme.Name, ErrInvalid)
	}
	if c.Theme.File != "" {
		imported, err := ImportTheme(c.Theme.File)
		if err != nil {
			return Theme{}, err
		}
		t = imported
	}
	for role, value := range c.Theme.Colors {
		field, ok := themeRoles[role]
		if !ok {
			return Theme{}, fmt.Errorf("theme color %q: %w", role, ErrInvalid)
		}
		p := field(&t)
		*p = ParseColor(value, *p)
	}
	return t, nil
}
