// Package keymap holds the chord to action table used by the dispatcher.
package keymap

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// Action names an editor command that can be bound to chords.
type Action string

const (
	NewTab            Action = "new-tab"
	CloseTab          Action = "close-tab"
	Save              Action = "save"
	SaveAs            Action = "save-as"
	OpenFile          Action = "open-file"
	Quit              Action = "quit"
	NextTab           Action = "next-tab"
	PrevTab           Action = "prev-tab"
	WordLeft          Action = "word-left"
	WordRight         Action = "word-right"
	LineStart         Action = "line-start"
	LineEnd           Action = "line-end"
	DocStart          Action = "doc-start"
	DocEnd            Action = "doc-end"
	PageUp            Action = "page-up"
	PageDown          Action = "page-down"
	SelectAll         Action = "select-all"
	Copy              Action = "copy"
	Cut               Action = "cut"
	CutLine           Action = "cut-line"
	Paste             Action = "paste"
	DeleteWord        Action = "delete-word"
	DeleteWordForward Action = "delete-word-forward"
	Undo              Action = "undo"
	Redo              Action = "redo"
	Find              Action = "find"
	FindNext          Action = "find-next"
	GotoLine          Action = "goto-line"
	ToggleWrap        Action = "toggle-wrap"
	Help              Action = "help"
)

// Keymap maps chords to actions. Each action is backed by a key.Binding so
// it carries help text and can be disabled.
type Keymap struct {
	bindings   map[Action]key.Binding
	order      []Action
	overridden map[Action]bool
	exact      map[Chord]Action
	wild       map[Chord]Action
}

type entry struct {
	action Action
	keys   []string
	desc   string
}

var defaults = []entry{
	{NewTab, []string{"ctrl+n"}, "new tab"},
	{CloseTab, []string{"ctrl+w"}, "close tab"},
	{Save, []string{"ctrl+s"}, "save"},
	{SaveAs, []string{"ctrl+alt+s", "f12"}, "save as"},
	{OpenFile, []string{"ctrl+p", "ctrl+o"}, "open file"},
	{Quit, []string{"ctrl+q"}, "quit"},
	{NextTab, []string{"ctrl+pgdn", "ctrl+]"}, "next tab"},
	{PrevTab, []string{"ctrl+pgup"}, "previous tab"},
	{WordLeft, []string{"alt+left", "ctrl+left"}, "word left"},
	{WordRight, []string{"alt+right", "ctrl+right"}, "word right"},
	{LineStart, []string{"home"}, "line start"},
	{LineEnd, []string{"end"}, "line end"},
	{DocStart, []string{"ctrl+home"}, "document start"},
	{DocEnd, []string{"ctrl+end"}, "document end"},
	{PageUp, []string{"pgup"}, "page up"},
	{PageDown, []string{"pgdn"}, "page down"},
	{SelectAll, []string{"ctrl+a"}, "select all"},
	{Copy, []string{"ctrl+c"}, "copy"},
	{Cut, []string{"ctrl+x"}, "cut"},
	{CutLine, []string{"ctrl+k"}, "cut line"},
	{Paste, []string{"ctrl+v"}, "paste"},
	{DeleteWord, []string{"alt+backspace", "ctrl+backspace"}, "delete word"},
	{DeleteWordForward, []string{"alt+delete", "ctrl+delete", "alt+d"}, "delete next word"},
	{Undo, []string{"ctrl+z"}, "undo"},
	{Redo, []string{"ctrl+y", "ctrl+shift+z"}, "redo"},
	{Find, []string{"ctrl+f"}, "find"},
	{FindNext, []string{"f3"}, "find next"},
	{GotoLine, []string{"ctrl+g", "alt+g"}, "go to line"},
	{ToggleWrap, []string{"alt+w"}, "toggle wrap"},
	{Help, []string{"f1"}, "help"},
}

// Default returns the built-in keymap.
func Default() *Keymap {
	k := &Keymap{
		bindings:   make(map[Action]key.Binding, len(defaults)),
		overridden: map[Action]bool{},
	}
	for _, e := range defaults {
		k.bindings[e.action] = key.NewBinding(key.WithKeys(e.keys...), key.WithHelp(e.keys[0], e.desc))
		k.order = append(k.order, e.action)
	}
	k.reindex()
	return k
}

// Set replaces the chords of an action. An empty list disables it. Chords
// set here win over conflicting built-in ones.
func (k *Keymap) Set(a Action, chords ...string) error {
	b, ok := k.bindings[a]
	if !ok {
		return fmt.Errorf("keymap: unknown action %q", a)
	}
	for _, c := range chords {
		if _, err := ParseChord(c); err != nil {
			return err
		}
	}
	if len(chords) == 0 {
		b.SetEnabled(false)
	} else {
		b.SetKeys(chords...)
		b.SetHelp(chords[0], b.Help().Desc)
		b.SetEnabled(true)
	}
	k.bindings[a] = b
	k.overridden[a] = true
	k.reindex()
	return nil
}

// Apply sets every action in overrides, stopping at the first error.
func (k *Keymap) Apply(overrides map[string][]string) error {
	for name, chords := range overrides {
		if err := k.Set(Action(name), chords...); err != nil {
			return err
		}
	}
	return nil
}

func (k *Keymap) reindex() {
	k.exact = map[Chord]Action{}
	k.wild = map[Chord]Action{}
	add := func(a Action) {
		b := k.bindings[a]
		if !b.Enabled() {
			return
		}
		for _, s := range b.Keys() {
			c, err := ParseChord(s)
			if err != nil {
				continue
			}
			if c.Any {
				k.wild[c.wildcard()] = a
			} else {
				k.exact[c] = a
			}
		}
	}
	// built-ins first so overrides replace them on conflict
	for _, a := range k.order {
		if !k.overridden[a] {
			add(a)
		}
	}
	for _, a := range k.order {
		if k.overridden[a] {
			add(a)
		}
	}
}

// Lookup returns the action bound to c. An entry for the exact modifier
// set wins over a wildcard entry for the same key.
func (k *Keymap) Lookup(c Chord) (Action, bool) {
	if a, ok := k.exact[c]; ok {
		return a, true
	}
	a, ok := k.wild[c.wildcard()]
	return a, ok
}

// HelpEntry is one line of key help.
type HelpEntry struct {
	Action Action
	Keys   string
	Desc   string
}

// Help lists the enabled bindings in definition order.
func (k *Keymap) Help() []HelpEntry {
	var out []HelpEntry
	for _, a := range k.order {
		b := k.bindings[a]
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, HelpEntry{Action: a, Keys: h.Key, Desc: h.Desc})
	}
	return out
}
