package viewport

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is used when a viewport has no tab width configured.
const DefaultTabWidth = 4

// RuneWidth returns the number of cells r occupies when drawn at cell x.
// Tabs advance to the next tab stop. Runes the terminal would draw with no
// width still take one cell so every offset has a screen position.
func RuneWidth(r rune, x, tabWidth int) int {
	if r == '\t' {
		if tabWidth < 1 {
			tabWidth = DefaultTabWidth
		}
		return tabWidth - x%tabWidth
	}
	w := runewidth.RuneWidth(r)
	if w == 0 && !unicode.IsControl(r) {
		w = uniseg.StringWidth(string(r))
	}
	if w < 1 {
		w = 1
	}
	return w
}

// StringWidth returns the cell width of s starting at cell 0.
func StringWidth(s string, tabWidth int) int {
	x := 0
	for _, r := range s {
		x += RuneWidth(r, x, tabWidth)
	}
	return x
}
