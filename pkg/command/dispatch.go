package command

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"example.com/tabedit/pkg/input"
	"example.com/tabedit/pkg/keymap"
)

// Dispatcher maps events to commands. It never touches editor state.
type Dispatcher struct {
	Keys *keymap.Keymap
}

// NewDispatcher returns a dispatcher over keys, or the default keymap when
// keys is nil.
func NewDispatcher(keys *keymap.Keymap) *Dispatcher {
	if keys == nil {
		keys = keymap.Default()
	}
	return &Dispatcher{Keys: keys}
}

// motions are the actions that move the cursor; they extend the selection
// when Shift is added to their chord.
var motions = map[keymap.Action]Command{
	keymap.WordLeft:  {Kind: Move, Unit: UnitWord, Dir: -1},
	keymap.WordRight: {Kind: Move, Unit: UnitWord, Dir: 1},
	keymap.LineStart: {Kind: Move, Unit: UnitLineEdge, Dir: -1},
	keymap.LineEnd:   {Kind: Move, Unit: UnitLineEdge, Dir: 1},
	keymap.DocStart:  {Kind: Move, Unit: UnitDoc, Dir: -1},
	keymap.DocEnd:    {Kind: Move, Unit: UnitDoc, Dir: 1},
	keymap.PageUp:    {Kind: Move, Unit: UnitPage, Dir: -1},
	keymap.PageDown:  {Kind: Move, Unit: UnitPage, Dir: 1},
}

func actionCommand(a keymap.Action) Command {
	if c, ok := motions[a]; ok {
		return c
	}
	switch a {
	case keymap.DeleteWord:
		return Command{Kind: Delete, Unit: UnitWord, Dir: -1}
	case keymap.DeleteWordForward:
		return Command{Kind: Delete, Unit: UnitWord, Dir: 1}
	}
	return Command{Kind: Action, Action: a}
}

// Dispatch resolves ev in mode. Unmapped input yields a None command.
func (d *Dispatcher) Dispatch(ev input.Event, mode Mode) Command {
	switch mode {
	case ModeFinder, ModePrompt:
		return d.prompt(ev, mode)
	case ModeConfirm:
		return confirm(ev)
	}
	return d.edit(ev)
}

func (d *Dispatcher) lookup(ev input.Event) (Command, bool) {
	if ev.Kind == input.KindInsert || ev.Kind == input.KindPaste || ev.Mouse() || ev.Kind == input.KindNone {
		return Command{}, false
	}
	if a, ok := d.Keys.Lookup(ev.Chord); ok {
		return actionCommand(a), true
	}
	if ev.Chord.Has(tcell.ModShift) {
		if a, ok := d.Keys.Lookup(ev.Chord.Without(tcell.ModShift)); ok {
			if c, ok := motions[a]; ok {
				c.Extend = true
				return c, true
			}
		}
	}
	return Command{}, false
}

func (d *Dispatcher) edit(ev input.Event) Command {
	if c, ok := d.lookup(ev); ok {
		return c
	}
	switch ev.Kind {
	case input.KindMoveChar, input.KindSelectChar:
		return Command{Kind: Move, Unit: UnitChar, Dir: ev.Dir, Extend: ev.Kind == input.KindSelectChar}
	case input.KindMoveWord, input.KindSelectWord:
		return Command{Kind: Move, Unit: UnitWord, Dir: ev.Dir, Extend: ev.Kind == input.KindSelectWord}
	case input.KindMoveLine, input.KindSelectLine:
		return Command{Kind: Move, Unit: UnitLine, Dir: ev.Dir, Extend: ev.Kind == input.KindSelectLine}
	case input.KindDeleteChar:
		return Command{Kind: Delete, Unit: UnitChar, Dir: ev.Dir}
	case input.KindDeleteWord:
		return Command{Kind: Delete, Unit: UnitWord, Dir: ev.Dir}
	case input.KindInsert, input.KindPaste:
		return Command{Kind: Insert, Text: ev.Text}
	case input.KindPress:
		return Command{Kind: Click, Row: ev.Row, Col: ev.Col, Extend: ev.Mod&tcell.ModShift != 0}
	case input.KindDrag:
		return Command{Kind: Drag, Row: ev.Row, Col: ev.Col}
	case input.KindRelease:
		return Command{Kind: Release, Row: ev.Row, Col: ev.Col}
	case input.KindScroll:
		return Command{Kind: Scroll, Delta: ev.Delta, Horizontal: ev.Horizontal}
	case input.KindDoubleClick:
		return Command{Kind: SelectWordAt, Row: ev.Row, Col: ev.Col}
	case input.KindTripleClick:
		return Command{Kind: SelectLineAt, Row: ev.Row, Col: ev.Col}
	case input.KindKey:
		switch ev.Chord {
		case keymap.Chord{Key: tcell.KeyEnter}:
			return Command{Kind: Newline}
		case keymap.Chord{Key: tcell.KeyTab}:
			return Command{Kind: Insert, Text: "\t"}
		}
	}
	return Command{}
}

func (d *Dispatcher) prompt(ev input.Event, mode Mode) Command {
	switch ev.Kind {
	case input.KindInsert:
		return Command{Kind: PromptInput, Text: ev.Text}
	case input.KindPaste:
		// prompts are single line
		text := strings.NewReplacer("\r", "", "\n", " ").Replace(ev.Text)
		return Command{Kind: PromptInput, Text: text}
	case input.KindDeleteChar:
		if ev.Dir < 0 {
			return Command{Kind: PromptBackspace}
		}
	case input.KindMoveLine:
		if mode == ModeFinder {
			return Command{Kind: PromptMove, Dir: ev.Dir}
		}
	case input.KindScroll:
		if mode == ModeFinder && !ev.Horizontal {
			return Command{Kind: PromptMove, Dir: sign(ev.Delta)}
		}
	case input.KindKey:
		switch ev.Chord {
		case keymap.Chord{Key: tcell.KeyEnter}:
			return Command{Kind: PromptAccept}
		case keymap.Chord{Key: tcell.KeyEsc}:
			return Command{Kind: PromptCancel}
		}
		if a, ok := d.Keys.Lookup(ev.Chord); ok {
			switch a {
			case keymap.Quit:
				return Command{Kind: PromptCancel}
			case keymap.FindNext:
				return Command{Kind: PromptAccept}
			}
		}
	}
	return Command{}
}

func confirm(ev input.Event) Command {
	switch ev.Kind {
	case input.KindInsert:
		switch strings.ToLower(ev.Text) {
		case "y":
			return Command{Kind: ConfirmYes}
		case "n":
			return Command{Kind: ConfirmNo}
		}
	case input.KindKey:
		if ev.Chord == (keymap.Chord{Key: tcell.KeyEsc}) {
			return Command{Kind: ConfirmNo}
		}
	}
	return Command{}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
