package app

import (
	"fmt"
	"strconv"
	"strings"

	"example.com/tabedit/pkg/buffer"
	"example.com/tabedit/pkg/command"
	"example.com/tabedit/pkg/search"
	"example.com/tabedit/pkg/tabs"
)

type promptKind int

const (
	promptFind promptKind = iota
	promptSaveAs
	promptGoto
)

// promptState is the single line input shown on the message line.
type promptState struct {
	kind  promptKind
	input []rune
	err   string
}

func (p promptState) label() string {
	switch p.kind {
	case promptSaveAs:
		return "Save As: "
	case promptGoto:
		return "Go to line: "
	}
	return "Find: "
}

func (r *Runner) openPrompt(kind promptKind, prefill string) {
	r.prompt = promptState{kind: kind, input: []rune(prefill)}
	r.mode = command.ModePrompt
}

func (r *Runner) closePrompt() {
	r.prompt = promptState{}
	r.mode = command.ModeEdit
}

func (r *Runner) promptCommand(cmd command.Command) {
	p := &r.prompt
	switch cmd.Kind {
	case command.PromptInput:
		p.input = append(p.input, []rune(cmd.Text)...)
		p.err = ""
	case command.PromptBackspace:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
		p.err = ""
	case command.PromptCancel:
		r.closePrompt()
	case command.PromptAccept:
		r.acceptPrompt()
	}
}

func (r *Runner) acceptPrompt() {
	text := string(r.prompt.input)
	t := r.Tabs.Active()
	switch r.prompt.kind {
	case promptFind:
		r.closePrompt()
		if text == "" || t == nil {
			return
		}
		r.lastQuery = text
		from := t.Cursor.Head()
		if rng, ok := t.Cursor.Range(); ok {
			from = rng.Start
		}
		r.find(t, text, from)
	case promptSaveAs:
		if text == "" {
			r.prompt.err = "path required"
			return
		}
		if t == nil {
			r.closePrompt()
			return
		}
		if err := r.Tabs.SaveAs(t.ID, text); err != nil {
			r.Logger.Event("save_file", map[string]any{"file": text, "error": err.Error()})
			r.prompt.err = err.Error()
			return
		}
		r.Logger.Event("save_file", map[string]any{"file": t.Path, "runes": t.Buffer.Len()})
		r.closePrompt()
		r.message = "Saved " + t.Path
	case promptGoto:
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || n <= 0 {
			// invalid number; keep prompt open
			r.prompt.err = "line number required"
			return
		}
		r.closePrompt()
		if t == nil {
			return
		}
		if last := t.Buffer.LineCount(); n > last {
			n = last
		}
		off, _ := t.Buffer.OffsetOf(n-1, 0)
		t.Cursor.MoveTo(t.Buffer, off)
		r.layoutTab(t)
		r.reveal(t)
	}
}

// matchCache holds the matches of the last find for one buffer version.
type matchCache struct {
	tab     int
	version uint64
	query   string
	ranges  []buffer.Range
	valid   bool
}

// matchesFor returns the matches of query in t, rescanning only when the
// buffer changed since the last call.
func (r *Runner) matchesFor(t *tabs.Tab, query string) []buffer.Range {
	c := &r.found
	if c.valid && c.tab == t.ID && c.version == t.Buffer.Version() && c.query == query {
		return c.ranges
	}
	*c = matchCache{
		tab:     t.ID,
		version: t.Buffer.Version(),
		query:   query,
		ranges:  search.FindAll(t.Buffer.String(), query),
		valid:   true,
	}
	return c.ranges
}

// find selects the first match of query at or after from, wrapping
// around the document.
func (r *Runner) find(t *tabs.Tab, query string, from int) {
	matches := r.matchesFor(t, query)
	i := search.Next(matches, from)
	if i < 0 {
		r.message = "Not found: " + query
		return
	}
	m := matches[i]
	t.Cursor.MoveTo(t.Buffer, m.Start)
	t.Cursor.ExtendSelection(t.Buffer, m.End)
	r.message = fmt.Sprintf("Match %d of %d", i+1, len(matches))
	r.layoutTab(t)
	r.reveal(t)
}
