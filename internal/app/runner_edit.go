package app

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"example.com/tabedit/pkg/buffer"
	"example.com/tabedit/pkg/command"
	"example.com/tabedit/pkg/cursor"
	"example.com/tabedit/pkg/history"
	"example.com/tabedit/pkg/keymap"
	"example.com/tabedit/pkg/tabs"
	"example.com/tabedit/pkg/viewport"
)

// apply runs an edit mode command against the active tab.
func (r *Runner) apply(cmd command.Command) {
	if cmd.Kind == command.Action {
		r.Logger.Event("action", map[string]any{"name": cmd.Name()})
		r.action(cmd.Action)
		return
	}
	t := r.Tabs.Active()
	if t == nil {
		return
	}
	r.message = ""
	r.layoutTab(t)
	src, err := r.Tabs.Source(t.View.TabID)
	if err != nil {
		return
	}
	doc, view, sel := t.Buffer, t.View, t.Cursor
	follow := true
	if cmd.Kind == command.Click || cmd.Kind == command.SelectWordAt || cmd.Kind == command.SelectLineAt {
		// a drag only extends a selection whose press landed on text
		r.pressInText = cmd.Row >= tabBarRows && cmd.Row < tabBarRows+view.Rows
		if cmd.Row >= tabBarRows+view.Rows {
			return
		}
		if cmd.Row < tabBarRows && cmd.Kind != command.Click {
			return
		}
	}

	switch cmd.Kind {
	case command.Move:
		r.move(t, cmd)
	case command.Delete:
		r.deleteUnit(t, cmd.Unit, cmd.Dir)
	case command.Insert:
		r.insertText(t, normalizeNewlines(cmd.Text))
	case command.Newline:
		r.insertText(t, "\n")
	case command.Click:
		if cmd.Row < tabBarRows {
			r.clickTabBar(cmd.Col)
			return
		}
		hit := view.HitTest(src, cmd.Row-tabBarRows, cmd.Col)
		switch {
		case hit.InGutter && cmd.Extend:
			if sel.Granularity() != cursor.Line {
				line, _ := doc.LineAt(sel.Anchor())
				sel.SelectLineAt(doc, line)
			}
			sel.ExtendSelection(doc, hit.Offset)
		case hit.InGutter:
			sel.SelectLineAt(doc, hit.Line)
		case cmd.Extend:
			sel.ExtendSelection(doc, hit.Offset)
		default:
			sel.MoveTo(doc, hit.Offset)
		}
	case command.Drag:
		if !r.pressInText {
			return
		}
		row := cmd.Row - tabBarRows
		switch {
		case row < 0:
			view.ScrollBy(src, -1)
		case row >= view.Rows:
			view.ScrollBy(src, 1)
		}
		sel.ExtendSelection(doc, view.ScreenToBuffer(src, row, cmd.Col))
		follow = false
	case command.Release:
		r.pressInText = false
		follow = false
	case command.SelectWordAt:
		sel.SelectWordAt(doc, view.ScreenToBuffer(src, cmd.Row-tabBarRows, cmd.Col))
	case command.SelectLineAt:
		hit := view.HitTest(src, cmd.Row-tabBarRows, cmd.Col)
		sel.SelectLineAt(doc, hit.Line)
	case command.Scroll:
		if cmd.Horizontal {
			if view.Wrap == viewport.WrapNone {
				view.Left += cmd.Delta
				if view.Left < 0 {
					view.Left = 0
				}
			}
		} else {
			view.ScrollBy(src, cmd.Delta)
		}
		follow = false
	default:
		return
	}
	r.layoutTab(t)
	if follow && view.AutoFollow {
		view.EnsureVisible(src, sel.Head())
	}
}

func (r *Runner) move(t *tabs.Tab, cmd command.Command) {
	doc, sel := t.Buffer, t.Cursor
	switch cmd.Unit {
	case command.UnitChar:
		sel.MoveByChar(doc, cmd.Dir, cmd.Extend)
	case command.UnitWord:
		sel.MoveByWord(doc, cmd.Dir, cmd.Extend)
	case command.UnitLine:
		sel.MoveByLine(doc, cmd.Dir, cmd.Extend)
	case command.UnitPage:
		sel.MoveByPage(doc, cmd.Dir, t.View.Rows, cmd.Extend)
	case command.UnitLineEdge:
		sel.MoveLineEdge(doc, cmd.Dir, cmd.Extend)
	case command.UnitDoc:
		sel.MoveDocEdge(doc, cmd.Dir, cmd.Extend)
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// insertText replaces the selection, if any, with text and leaves the
// cursor after it.
func (r *Runner) insertText(t *tabs.Tab, text string) {
	if text == "" {
		return
	}
	doc, sel := t.Buffer, t.Cursor
	start := sel.Head()
	var err error
	if rng, ok := sel.Range(); ok {
		start = rng.Start
		err = doc.Replace(rng, text)
	} else {
		err = doc.Insert(start, text)
	}
	if err != nil {
		r.message = err.Error()
		sel.Clamp(doc)
		return
	}
	sel.MoveTo(doc, start+utf8.RuneCountInString(text))
}

// deleteRange removes rng and puts the cursor at its start.
func (r *Runner) deleteRange(t *tabs.Tab, rng buffer.Range) {
	if rng.Empty() {
		return
	}
	if err := t.Buffer.Delete(rng); err != nil {
		r.message = err.Error()
		return
	}
	t.Cursor.MoveTo(t.Buffer, rng.Start)
}

// deleteUnit deletes the selection, or one unit before (dir < 0) or after
// the cursor.
func (r *Runner) deleteUnit(t *tabs.Tab, unit command.Unit, dir int) {
	doc, sel := t.Buffer, t.Cursor
	if rng, ok := sel.Range(); ok {
		r.deleteRange(t, rng)
		return
	}
	head := sel.Head()
	scan := cursor.Selection{}
	scan.MoveTo(doc, head)
	switch unit {
	case command.UnitWord:
		scan.MoveByWord(doc, dir, false)
	default:
		scan.MoveByChar(doc, dir, false)
	}
	lo, hi := head, scan.Head()
	if lo > hi {
		lo, hi = hi, lo
	}
	r.deleteRange(t, buffer.Range{Start: lo, End: hi})
}

// action runs a named keymap action.
func (r *Runner) action(a keymap.Action) {
	switch a {
	case keymap.Quit:
		r.requestQuit()
		return
	case keymap.NewTab:
		t := r.Tabs.Open("", "")
		r.layoutTab(t)
		return
	case keymap.OpenFile:
		r.openFinder()
		return
	case keymap.Help:
		r.showHelp = true
		return
	}
	t := r.Tabs.Active()
	if t == nil {
		return
	}
	doc, sel := t.Buffer, t.Cursor
	switch a {
	case keymap.CloseTab:
		r.closeTab(t)
		return
	case keymap.Save:
		r.save(t)
	case keymap.SaveAs:
		r.openPrompt(promptSaveAs, t.Path)
	case keymap.NextTab:
		t = r.Tabs.Next()
	case keymap.PrevTab:
		t = r.Tabs.Previous()
	case keymap.SelectAll:
		sel.SelectAll(doc)
	case keymap.Copy:
		r.copySelection(t, false)
	case keymap.Cut:
		r.copySelection(t, true)
	case keymap.CutLine:
		line, _ := doc.LineAt(sel.Head())
		sel.SelectLineAt(doc, line)
		r.copySelection(t, true)
	case keymap.Paste:
		text, err := r.Clipboard.ReadText()
		if err != nil {
			r.message = "Clipboard is empty"
			return
		}
		r.insertText(t, normalizeNewlines(text))
	case keymap.Undo:
		r.step(t, doc.Undo, "undo")
	case keymap.Redo:
		r.step(t, doc.Redo, "redo")
	case keymap.Find:
		r.openPrompt(promptFind, r.lastQuery)
	case keymap.FindNext:
		r.findNext(t)
	case keymap.GotoLine:
		r.openPrompt(promptGoto, "")
	case keymap.ToggleWrap:
		if t.View.Wrap == viewport.WrapNone {
			t.View.Wrap = r.Config.WrapMode()
			if t.View.Wrap == viewport.WrapNone {
				t.View.Wrap = viewport.WrapWord
			}
		} else {
			t.View.Wrap = viewport.WrapNone
		}
		t.View.Left = 0
		r.message = "wrap: " + t.View.Wrap.String()
	default:
		// motion and deletion actions arrive as Move and Delete commands
		return
	}
	r.layoutTab(t)
	r.follow(t)
}

// step applies one undo or redo and moves the cursor to the end of the
// restored text.
func (r *Runner) step(t *tabs.Tab, step func() (history.Edit, error), name string) {
	e, err := step()
	if errors.Is(err, buffer.ErrEmptyHistory) {
		r.message = "Nothing to " + name
		return
	}
	if err != nil {
		r.message = err.Error()
		return
	}
	t.Cursor.MoveTo(t.Buffer, e.End())
}

// copySelection copies the selection, or the current line without a
// selection, and optionally removes it.
func (r *Runner) copySelection(t *tabs.Tab, cut bool) {
	doc, sel := t.Buffer, t.Cursor
	rng, ok := sel.Range()
	if !ok {
		line, _ := doc.LineAt(sel.Head())
		sel.SelectLineAt(doc, line)
		rng, _ = sel.Range()
	}
	text, err := doc.Slice(rng)
	if err != nil || text == "" {
		sel.ClearSelection()
		return
	}
	if err := r.Clipboard.WriteText(text); err != nil {
		r.message = "clipboard: " + err.Error()
	}
	if cut {
		r.deleteRange(t, rng)
		return
	}
	if !ok {
		sel.ClearSelection()
	}
}

func (r *Runner) save(t *tabs.Tab) {
	if t.Path == "" {
		r.openPrompt(promptSaveAs, "")
		return
	}
	if err := r.Tabs.Save(t.ID); err != nil {
		r.Logger.Event("save_file", map[string]any{"file": t.Path, "error": err.Error()})
		r.message = err.Error()
		return
	}
	r.Logger.Event("save_file", map[string]any{"file": t.Path, "runes": t.Buffer.Len()})
	r.message = "Saved " + t.Path
}

func (r *Runner) closeTab(t *tabs.Tab) {
	err := r.Tabs.Close(t.ID, false)
	if errors.Is(err, tabs.ErrUnsavedCloseBlocked) {
		r.Logger.Event("close_blocked", map[string]any{"tab": t.ID, "title": t.Title})
		id := t.ID
		r.askConfirm(fmt.Sprintf("%s has unsaved changes. Close without saving? (y/n)", t.Title), func() {
			if err := r.Tabs.Close(id, true); err != nil {
				r.message = err.Error()
			}
		})
		return
	}
	if err != nil {
		r.message = err.Error()
	}
}

func (r *Runner) requestQuit() {
	if !r.Tabs.AnyDirty() {
		r.quit = true
		return
	}
	r.askConfirm("Unsaved changes. Quit without saving? (y/n)", func() { r.quit = true })
}

// findNext selects the next match of the last query after the cursor.
func (r *Runner) findNext(t *tabs.Tab) {
	if r.lastQuery == "" {
		r.openPrompt(promptFind, "")
		return
	}
	r.find(t, r.lastQuery, t.Cursor.Head())
}

func (r *Runner) clickTabBar(x int) {
	for _, s := range r.tabSpans {
		if x >= s.x0 && x < s.x1 {
			_ = r.Tabs.SwitchTo(s.id)
			return
		}
	}
}
