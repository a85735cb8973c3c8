package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// ErrInvalidChord is returned for chord descriptions that cannot be parsed.
var ErrInvalidChord = errors.New("keymap: invalid chord")

// Chord is a key together with its modifier set. Runes are stored lower
// case with Shift carried in Mod when Ctrl or Alt is also held. Any marks
// a wildcard entry that matches the key under every modifier set.
type Chord struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
	Any  bool
}

const modMask = tcell.ModShift | tcell.ModCtrl | tcell.ModAlt

var keyNames = map[string]tcell.Key{
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pageup":    tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"pagedown":  tcell.KeyPgDn,
	"pgdown":    tcell.KeyPgDn,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"esc":       tcell.KeyEsc,
	"escape":    tcell.KeyEsc,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

var keyLabels = func() map[tcell.Key]string {
	m := make(map[tcell.Key]string, len(keyNames))
	for _, name := range []string{"left", "right", "up", "down", "home", "end", "pgup", "pgdn",
		"backspace", "delete", "insert", "enter", "tab", "esc",
		"f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10", "f11", "f12"} {
		m[keyNames[name]] = name
	}
	return m
}()

// ParseChord converts a description like "ctrl+shift+z", "Alt+Left" or
// "*+f1" into a Chord. Modifier names are case-insensitive; "meta" and
// "option" are aliases for alt.
func ParseChord(s string) (Chord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Chord{}, fmt.Errorf("%w: empty", ErrInvalidChord)
	}
	var c Chord
	parts := strings.Split(s, "+")
	// "ctrl++" names the plus key
	if strings.HasSuffix(s, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			c.Mod |= tcell.ModCtrl
		case "alt", "meta", "option", "opt":
			c.Mod |= tcell.ModAlt
		case "shift":
			c.Mod |= tcell.ModShift
		case "*", "any":
			c.Any = true
		default:
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidChord, p, s)
		}
	}
	last := parts[len(parts)-1]
	if k, ok := keyNames[strings.ToLower(last)]; ok {
		c.Key = k
	} else if strings.EqualFold(last, "space") {
		c.Key, c.Rune = tcell.KeyRune, ' '
	} else {
		r := []rune(last)
		if len(r) != 1 {
			return Chord{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidChord, last, s)
		}
		c.Key, c.Rune = tcell.KeyRune, r[0]
		if unicode.IsUpper(r[0]) {
			c.Rune = unicode.ToLower(r[0])
			if c.Mod&(tcell.ModCtrl|tcell.ModAlt) != 0 {
				c.Mod |= tcell.ModShift
			}
		}
	}
	if c.Any {
		c.Mod = 0
	}
	return c, nil
}

// MustParse is like ParseChord but panics if s cannot be parsed.
func MustParse(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the chord in the form ParseChord accepts.
func (c Chord) String() string {
	var sb strings.Builder
	if c.Any {
		sb.WriteString("*+")
	}
	if c.Mod&tcell.ModCtrl != 0 {
		sb.WriteString("ctrl+")
	}
	if c.Mod&tcell.ModAlt != 0 {
		sb.WriteString("alt+")
	}
	if c.Mod&tcell.ModShift != 0 {
		sb.WriteString("shift+")
	}
	switch {
	case c.Key == tcell.KeyRune && c.Rune == ' ':
		sb.WriteString("space")
	case c.Key == tcell.KeyRune:
		sb.WriteRune(c.Rune)
	default:
		if name, ok := keyLabels[c.Key]; ok {
			sb.WriteString(name)
		} else {
			fmt.Fprintf(&sb, "key%d", int(c.Key))
		}
	}
	return sb.String()
}

// Without returns c with the given modifiers cleared.
func (c Chord) Without(m tcell.ModMask) Chord {
	c.Mod &^= m
	return c
}

// Has reports whether all modifiers in m are held.
func (c Chord) Has(m tcell.ModMask) bool { return c.Mod&m == m }

// wildcard returns the key of c with modifiers erased, as stored for "*+"
// entries.
func (c Chord) wildcard() Chord {
	return Chord{Key: c.Key, Rune: c.Rune, Any: true}
}

var ctrlRunes = map[tcell.Key]rune{
	tcell.KeyCtrlSpace:      ' ',
	tcell.KeyCtrlBackslash:  '\\',
	tcell.KeyCtrlRightSq:    ']',
	tcell.KeyCtrlCarat:      '^',
	tcell.KeyCtrlUnderscore: '_',
}

// FromEvent returns the canonical chord of a key event. Meta folds into
// Alt, control characters become ctrl+letter, both backspace codes become
// "backspace" and Backtab becomes shift+tab.
func FromEvent(ev *tcell.EventKey) Chord {
	mod := ev.Modifiers()
	if mod&tcell.ModMeta != 0 {
		mod = mod&^tcell.ModMeta | tcell.ModAlt
	}
	mod &= modMask
	key := ev.Key()
	switch {
	case key == tcell.KeyRune:
		r := ev.Rune()
		if mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			return Chord{Key: tcell.KeyRune, Rune: r}
		}
		if unicode.IsUpper(r) {
			r = unicode.ToLower(r)
			mod |= tcell.ModShift
		}
		return Chord{Key: tcell.KeyRune, Rune: r, Mod: mod}
	case key == tcell.KeyBackspace || key == tcell.KeyBackspace2:
		return Chord{Key: tcell.KeyBackspace2, Mod: mod}
	case key == tcell.KeyBacktab:
		return Chord{Key: tcell.KeyTab, Mod: mod | tcell.ModShift}
	case key == tcell.KeyTab || key == tcell.KeyEnter || key == tcell.KeyEsc:
		return Chord{Key: key, Mod: mod}
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		return Chord{Key: tcell.KeyRune, Rune: rune('a' + key - tcell.KeyCtrlA), Mod: mod | tcell.ModCtrl}
	}
	if r, ok := ctrlRunes[key]; ok {
		return Chord{Key: tcell.KeyRune, Rune: r, Mod: mod | tcell.ModCtrl}
	}
	return Chord{Key: key, Mod: mod}
}
