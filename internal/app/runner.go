package app

import (
	"errors"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"example.com/tabedit/pkg/buffer"
	"example.com/tabedit/pkg/clipboard"
	"example.com/tabedit/pkg/command"
	"example.com/tabedit/pkg/config"
	"example.com/tabedit/pkg/fuzzy"
	"example.com/tabedit/pkg/input"
	"example.com/tabedit/pkg/keymap"
	"example.com/tabedit/pkg/logs"
	"example.com/tabedit/pkg/tabs"
)

// Screen rows outside the text area: the tab bar on top, the message line
// and the status bar at the bottom.
const (
	tabBarRows = 1
	footerRows = 2
)

// Runner owns the terminal lifecycle and the event loop. Every event is
// normalized, dispatched and applied before the next one is read.
type Runner struct {
	Screen    tcell.Screen
	Tabs      *tabs.Registry
	Keys      *keymap.Keymap
	Dispatch  *command.Dispatcher
	Input     *input.Normalizer
	Clipboard clipboard.Clipboard
	Logger    *logs.Logger
	Config    *config.Config
	Theme     config.Theme
	// Root is the directory the file finder lists.
	Root string

	mode      command.Mode
	message   string
	showHelp  bool
	quit      bool
	finder    finderState
	prompt    promptState
	confirm   confirmState
	searcher  fuzzy.Searcher
	lastQuery string
	found     matchCache
	tabSpans  []tabSpan

	// pressInText is set while a mouse press that started on text is held.
	pressInText bool
}

// New creates a Runner with no open tabs. A nil cfg means defaults.
func New(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	keys, err := cfg.Keys()
	if err != nil {
		return nil, err
	}
	theme, err := cfg.ResolveTheme()
	if err != nil {
		return nil, err
	}
	norm := input.NewNormalizer()
	norm.DoubleClick = cfg.DoubleClick()
	reg := tabs.New(tabs.Options{
		Buffer:   buffer.Options{HistoryLimit: cfg.HistoryLimit},
		Wrap:     cfg.WrapMode(),
		TabWidth: cfg.TabWidth,
	})
	return &Runner{
		Tabs:      reg,
		Keys:      keys,
		Dispatch:  command.NewDispatcher(keys),
		Input:     norm,
		Clipboard: clipboard.NewSystem(),
		Config:    cfg,
		Theme:     theme,
		Root:      ".",
	}, nil
}

// OpenFiles opens each path in its own tab. A path that fails to open is
// reported on the message line and skipped.
func (r *Runner) OpenFiles(paths ...string) {
	for _, p := range paths {
		r.openPath(p)
	}
}

func (r *Runner) openPath(path string) bool {
	t, err := r.Tabs.OpenFile(path)
	if err != nil {
		r.Logger.Event("open_file", map[string]any{"file": path, "error": err.Error()})
		r.message = err.Error()
		return false
	}
	r.Logger.Event("open_file", map[string]any{"file": t.Path, "tab": t.ID, "runes": t.Buffer.Len()})
	r.layoutTab(t)
	return true
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	r.searcher.Cancel()
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
	r.Logger.Close()
}

// Run starts the event loop. It will initialize the screen if needed and
// return when the user quits.
func (r *Runner) Run() error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	r.Screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	r.Screen.EnablePaste()

	// Initialize logger from env (no-op if disabled)
	if r.Logger == nil {
		r.Logger = logs.NewFromEnv()
	}
	r.Logger.Event("run_start", map[string]any{"tabs": r.Tabs.Len()})
	defer r.Logger.Event("run_end", nil)

	r.resize()
	r.draw()
	for {
		ev := r.Screen.PollEvent()
		if ev == nil {
			return nil
		}
		r.handleEvent(ev)
		if r.quit {
			return nil
		}
		r.draw()
	}
}

// handleEvent runs one event through normalize, dispatch and apply.
func (r *Runner) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		if r.Screen != nil {
			r.Screen.Sync()
		}
		r.resize()
		return
	case *finderEvent:
		r.finderResults(ev.res)
		return
	}
	ce, err := r.Input.Normalize(ev)
	if err != nil {
		if errors.Is(err, input.ErrUnrecognized) {
			r.Logger.Debug("input_dropped", map[string]any{"error": err.Error()})
		}
		return
	}
	if ce.Kind == input.KindNone {
		return
	}
	if r.showHelp {
		// any key or click dismisses help
		if ce.Kind != input.KindScroll && ce.Kind != input.KindRelease {
			r.showHelp = false
		}
		return
	}
	r.execute(r.Dispatch.Dispatch(ce, r.mode))
}

func (r *Runner) execute(cmd command.Command) {
	if cmd.Kind == command.None {
		return
	}
	switch r.mode {
	case command.ModeFinder:
		r.finderCommand(cmd)
	case command.ModePrompt:
		r.promptCommand(cmd)
	case command.ModeConfirm:
		r.confirmCommand(cmd)
	default:
		r.apply(cmd)
	}
}

func (r *Runner) size() (int, int) {
	if r.Screen == nil {
		return 80, 24
	}
	return r.Screen.Size()
}

func (r *Runner) textRows() int {
	_, h := r.size()
	if n := h - tabBarRows - footerRows; n > 0 {
		return n
	}
	return 1
}

func gutterWidth(lines int) int {
	w := len(strconv.Itoa(lines)) + 1
	if w < 3 {
		w = 3
	}
	return w
}

// layoutTab brings a tab's viewport in line with the screen size and its
// line count.
func (r *Runner) layoutTab(t *tabs.Tab) {
	w, _ := r.size()
	t.View.Resize(r.textRows(), w)
	t.View.AutoFollow = r.Config.AutoFollow
	t.View.Gutter = 0
	if r.Config.LineNumbers {
		t.View.Gutter = gutterWidth(t.Buffer.LineCount())
	}
}

func (r *Runner) resize() {
	w, _ := r.size()
	r.Tabs.Resize(r.textRows(), w)
	for _, t := range r.Tabs.Tabs() {
		r.layoutTab(t)
		r.follow(t)
	}
}

// follow keeps the cursor on screen when the tab auto-follows.
func (r *Runner) follow(t *tabs.Tab) {
	if t.View.AutoFollow {
		r.reveal(t)
	}
}

// reveal scrolls t so its cursor is on screen. Jumps to a search match or
// a line use it regardless of auto-follow.
func (r *Runner) reveal(t *tabs.Tab) {
	src, err := r.Tabs.Source(t.View.TabID)
	if err != nil {
		return
	}
	t.View.EnsureVisible(src, t.Cursor.Head())
}

// Mode reports the current interaction mode.
func (r *Runner) Mode() command.Mode { return r.mode }

// Message is the text on the message line.
func (r *Runner) Message() string { return r.message }
