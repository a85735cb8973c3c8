package app

import (
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"example.com/tabedit/pkg/command"
	"example.com/tabedit/pkg/fuzzy"
)

// finderState is the open-file overlay.
type finderState struct {
	query      []rune
	candidates []string
	results    []fuzzy.Result
	selected   int
	top        int
}

// finderEvent carries background match results into the event loop.
type finderEvent struct {
	tcell.EventTime
	res fuzzy.Results
}

func (r *Runner) openFinder() {
	cands, err := fuzzy.Candidates(r.Root, r.Config.FinderDepth)
	if err != nil {
		r.message = err.Error()
		return
	}
	r.finder = finderState{candidates: cands}
	r.mode = command.ModeFinder
	r.refreshFinder()
}

func (r *Runner) closeFinder() {
	r.searcher.Cancel()
	r.finder = finderState{}
	r.mode = command.ModeEdit
}

// refreshFinder matches the current query. With a screen the match runs in
// the background and lands as a finderEvent.
func (r *Runner) refreshFinder() {
	f := &r.finder
	query := string(f.query)
	if r.Screen == nil {
		r.searcher.Cancel()
		r.showResults(query, fuzzy.Match(query, f.candidates))
		return
	}
	s := r.Screen
	r.searcher.Search(query, f.candidates, func(res fuzzy.Results) {
		ev := &finderEvent{res: res}
		ev.SetEventNow()
		_ = s.PostEvent(ev)
	})
}

func (r *Runner) finderResults(res fuzzy.Results) {
	if r.mode != command.ModeFinder || res.Seq != r.searcher.Current() {
		return
	}
	r.showResults(res.Query, res.Matches)
}

func (r *Runner) showResults(query string, matches []fuzzy.Result) {
	r.finder.results = matches
	r.finder.selected = 0
	r.finder.top = 0
	r.Logger.Debug("finder_results", map[string]any{"query": query, "count": len(matches)})
}

// finderRows is how many results fit under the query line.
func (r *Runner) finderRows() int {
	if n := r.textRows() - 1; n > 0 {
		return n
	}
	return 1
}

func (r *Runner) finderCommand(cmd command.Command) {
	f := &r.finder
	switch cmd.Kind {
	case command.PromptInput:
		f.query = append(f.query, []rune(cmd.Text)...)
		r.refreshFinder()
	case command.PromptBackspace:
		if len(f.query) > 0 {
			f.query = f.query[:len(f.query)-1]
			r.refreshFinder()
		}
	case command.PromptMove:
		f.selected += cmd.Dir
		if f.selected >= len(f.results) {
			f.selected = len(f.results) - 1
		}
		if f.selected < 0 {
			f.selected = 0
		}
		rows := r.finderRows()
		if f.selected < f.top {
			f.top = f.selected
		} else if f.selected >= f.top+rows {
			f.top = f.selected - rows + 1
		}
	case command.PromptCancel:
		r.closeFinder()
	case command.PromptAccept:
		if len(f.results) == 0 {
			return
		}
		path := filepath.Join(r.Root, filepath.FromSlash(f.results[f.selected].Path))
		r.closeFinder()
		if r.openPath(path) {
			r.reveal(r.Tabs.Active())
		}
	}
}
