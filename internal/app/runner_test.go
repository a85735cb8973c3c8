package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"example.com/tabedit/pkg/clipboard"
	"example.com/tabedit/pkg/command"
	"example.com/tabedit/pkg/config"
	"example.com/tabedit/pkg/cursor"
	"example.com/tabedit/pkg/tabs"
)

func newRunner(t *testing.T) *Runner {
	t.Helper()
	r, err := New(nil)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	r.Clipboard = &clipboard.Ring{}
	return r
}

func openText(t *testing.T, r *Runner, text string) *tabs.Tab {
	t.Helper()
	tab := r.Tabs.Open("scratch", text)
	r.layoutTab(tab)
	return tab
}

func press(r *Runner, k tcell.Key, mod tcell.ModMask) {
	r.handleEvent(tcell.NewEventKey(k, 0, mod))
}

func ctrl(r *Runner, ch rune) {
	r.handleEvent(tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModCtrl))
}

func typeText(r *Runner, s string) {
	for _, ch := range s {
		if ch == '\n' {
			press(r, tcell.KeyEnter, tcell.ModNone)
			continue
		}
		r.handleEvent(tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModNone))
	}
}

func TestTypingAndUndo(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "")
	typeText(r, "hello\nworld")
	if got := tab.Buffer.String(); got != "hello\nworld" {
		t.Fatalf("expected typed text, got %q", got)
	}
	ctrl(r, 'z')
	if got := tab.Buffer.String(); got != "hello\nworl" {
		t.Fatalf("expected one undo step, got %q", got)
	}
	ctrl(r, 'y')
	if got := tab.Buffer.String(); got != "hello\nworld" || tab.Cursor.Head() != 11 {
		t.Fatalf("expected redo, got %q at %d", got, tab.Cursor.Head())
	}
	press(r, tcell.KeyBackspace2, tcell.ModNone)
	press(r, tcell.KeyBackspace2, tcell.ModAlt)
	if got := tab.Buffer.String(); got != "hello\n" {
		t.Fatalf("expected word deleted, got %q", got)
	}
}

func TestUndoEmptyHistoryIsNotFatal(t *testing.T) {
	r := newRunner(t)
	openText(t, r, "abc")
	ctrl(r, 'z')
	if !strings.Contains(r.Message(), "Nothing to undo") {
		t.Fatalf("expected notice, got %q", r.Message())
	}
}

func TestWordMoveEncodingsAgree(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "say hello world")
	press(r, tcell.KeyEnd, tcell.ModCtrl)
	press(r, tcell.KeyLeft, tcell.ModAlt)
	if tab.Cursor.Head() != 10 {
		t.Fatalf("expected 10 after alt+left, got %d", tab.Cursor.Head())
	}
	r.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModAlt))
	if tab.Cursor.Head() != 9 {
		t.Fatalf("expected 9 after ESC b, got %d", tab.Cursor.Head())
	}
	press(r, tcell.KeyLeft, tcell.ModCtrl)
	if tab.Cursor.Head() != 4 {
		t.Fatalf("expected 4 after ctrl+left, got %d", tab.Cursor.Head())
	}
	press(r, tcell.KeyHome, tcell.ModCtrl)
	press(r, tcell.KeyRight, tcell.ModAlt|tcell.ModShift)
	if rng, ok := tab.Cursor.Range(); !ok || rng.End != 3 {
		t.Fatalf("expected selection to 3, got %+v", rng)
	}
}

func TestDoubleClickSelectsWordThenCollapses(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "say hello world")
	x := tab.View.Gutter + 6
	y := tabBarRows
	r.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	r.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	r.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	r.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	rng, ok := tab.Cursor.Range()
	if !ok || rng.Start != 4 || rng.End != 9 {
		t.Fatalf("expected hello selected, got %+v", rng)
	}
	if g := tab.Cursor.Granularity().String(); g != "word" {
		t.Fatalf("expected word granularity, got %s", g)
	}
	press(r, tcell.KeyRight, tcell.ModNone)
	if tab.Cursor.Active() || tab.Cursor.Head() != 10 {
		t.Fatalf("expected collapsed cursor at 10, got head %d", tab.Cursor.Head())
	}
}

func TestDragSelects(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "abcdef\nghijkl")
	g := tab.View.Gutter
	r.handleEvent(tcell.NewEventMouse(g+1, tabBarRows, tcell.Button1, tcell.ModNone))
	r.handleEvent(tcell.NewEventMouse(g+3, tabBarRows+1, tcell.Button1, tcell.ModNone))
	r.handleEvent(tcell.NewEventMouse(g+3, tabBarRows+1, tcell.ButtonNone, tcell.ModNone))
	rng, ok := tab.Cursor.Range()
	if !ok || rng.Start != 1 || rng.End != 10 {
		t.Fatalf("expected 1-10 selected, got %+v", rng)
	}
}

func mouse(r *Runner, x, y int, btn tcell.ButtonMask, mod tcell.ModMask) {
	r.handleEvent(tcell.NewEventMouse(x, y, btn, mod))
}

func TestGutterClickSelectsLine(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "abc\ndefg\nhi")
	mouse(r, 0, tabBarRows+1, tcell.Button1, tcell.ModNone)
	mouse(r, 0, tabBarRows+1, tcell.ButtonNone, tcell.ModNone)
	rng, ok := tab.Cursor.Range()
	if !ok || rng.Start != 4 || rng.End != 9 || tab.Cursor.Granularity() != cursor.Line {
		t.Fatalf("expected line 2 selected by line, got %+v %s", rng, tab.Cursor.Granularity())
	}
	mouse(r, 1, tabBarRows+2, tcell.Button1, tcell.ModShift)
	mouse(r, 1, tabBarRows+2, tcell.ButtonNone, tcell.ModNone)
	if rng, _ := tab.Cursor.Range(); rng.Start != 4 || rng.End != 11 {
		t.Fatalf("expected shift+click to extend by lines, got %+v", rng)
	}
}

func TestGutterShiftClickExtendsFromCursorLine(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "abc\ndefg\nhi")
	mouse(r, tab.View.Gutter+1, tabBarRows, tcell.Button1, tcell.ModNone)
	mouse(r, tab.View.Gutter+1, tabBarRows, tcell.ButtonNone, tcell.ModNone)
	mouse(r, 0, tabBarRows+1, tcell.Button1, tcell.ModShift)
	rng, ok := tab.Cursor.Range()
	if !ok || rng.Start != 0 || rng.End != 9 || tab.Cursor.Granularity() != cursor.Line {
		t.Fatalf("expected lines 1-2 selected, got %+v %s", rng, tab.Cursor.Granularity())
	}
}

func TestGutterDragSelectsLines(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "abc\ndefg\nhi")
	mouse(r, 0, tabBarRows, tcell.Button1, tcell.ModNone)
	mouse(r, 1, tabBarRows+2, tcell.Button1, tcell.ModNone)
	mouse(r, 1, tabBarRows+2, tcell.ButtonNone, tcell.ModNone)
	if rng, ok := tab.Cursor.Range(); !ok || rng.Start != 0 || rng.End != 11 {
		t.Fatalf("expected all lines selected, got %+v", rng)
	}
}

func TestTripleClickSelectsLineThenDragSnapsToLines(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "say hello world\nnext line")
	x := tab.View.Gutter + 6
	for i := 0; i < 3; i++ {
		if i > 0 {
			mouse(r, x, tabBarRows, tcell.ButtonNone, tcell.ModNone)
		}
		mouse(r, x, tabBarRows, tcell.Button1, tcell.ModNone)
	}
	rng, ok := tab.Cursor.Range()
	if !ok || rng.Start != 0 || rng.End != 16 || tab.Cursor.Granularity() != cursor.Line {
		t.Fatalf("expected first line selected by line, got %+v %s", rng, tab.Cursor.Granularity())
	}
	mouse(r, tab.View.Gutter+2, tabBarRows+1, tcell.Button1, tcell.ModNone)
	mouse(r, tab.View.Gutter+2, tabBarRows+1, tcell.ButtonNone, tcell.ModNone)
	if rng, _ := tab.Cursor.Range(); rng.Start != 0 || rng.End != 25 {
		t.Fatalf("expected drag to extend to whole second line, got %+v", rng)
	}
}

func TestDoubleClickDragSnapsToWords(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "say hello world")
	x := tab.View.Gutter + 6
	mouse(r, x, tabBarRows, tcell.Button1, tcell.ModNone)
	mouse(r, x, tabBarRows, tcell.ButtonNone, tcell.ModNone)
	mouse(r, x, tabBarRows, tcell.Button1, tcell.ModNone)
	mouse(r, tab.View.Gutter+12, tabBarRows, tcell.Button1, tcell.ModNone)
	rng, ok := tab.Cursor.Range()
	if !ok || rng.Start != 4 || rng.End != 15 || tab.Cursor.Granularity() != cursor.Word {
		t.Fatalf("expected hello world selected by word, got %+v %s", rng, tab.Cursor.Granularity())
	}
}

func TestAutoFollowOffKeepsViewport(t *testing.T) {
	cfg := config.Default()
	cfg.AutoFollow = false
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	r.Clipboard = &clipboard.Ring{}
	tab := openText(t, r, strings.Repeat("line\n", 100))
	for i := 0; i < 60; i++ {
		press(r, tcell.KeyDown, tcell.ModNone)
	}
	press(r, tcell.KeyEnd, tcell.ModCtrl)
	if tab.View.Top != 0 || tab.Cursor.Head() != 500 {
		t.Fatalf("expected viewport to stay at top, got top %d head %d", tab.View.Top, tab.Cursor.Head())
	}
	ctrl(r, 'g')
	typeText(r, "50")
	press(r, tcell.KeyEnter, tcell.ModNone)
	if tab.View.Top == 0 {
		t.Fatalf("expected go to line to scroll the target into view")
	}
}

func TestFindNextSeesEdits(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "one two one")
	ctrl(r, 'f')
	typeText(r, "one")
	press(r, tcell.KeyEnter, tcell.ModNone)
	typeText(r, "X")
	if tab.Buffer.String() != "X two one" {
		t.Fatalf("expected match replaced, got %q", tab.Buffer.String())
	}
	press(r, tcell.KeyF3, tcell.ModNone)
	if rng, ok := tab.Cursor.Range(); !ok || rng.Start != 6 || rng.End != 9 {
		t.Fatalf("expected match in edited text, got %+v", rng)
	}
}

func TestDirtyCloseNeedsConfirmation(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "")
	typeText(r, "x")
	ctrl(r, 'w')
	if r.Mode() != command.ModeConfirm || r.Tabs.Len() != 1 || !tab.Buffer.Dirty() {
		t.Fatalf("expected blocked close awaiting confirmation")
	}
	typeText(r, "n")
	if r.Mode() != command.ModeEdit || r.Tabs.Len() != 1 || !tab.Buffer.Dirty() {
		t.Fatalf("expected tab kept after declining")
	}
	if tab.Buffer.String() != "x" {
		t.Fatalf("expected answer not typed into buffer, got %q", tab.Buffer.String())
	}
	ctrl(r, 'w')
	typeText(r, "y")
	if r.Tabs.Len() != 0 {
		t.Fatalf("expected tab closed after confirming")
	}
}

func TestQuit(t *testing.T) {
	r := newRunner(t)
	openText(t, r, "")
	typeText(r, "x")
	ctrl(r, 'q')
	if r.quit || r.Mode() != command.ModeConfirm {
		t.Fatalf("expected quit to wait for confirmation")
	}
	press(r, tcell.KeyEsc, tcell.ModNone)
	if r.quit || r.Mode() != command.ModeEdit {
		t.Fatalf("expected esc to cancel quit")
	}
	ctrl(r, 'q')
	typeText(r, "y")
	if !r.quit {
		t.Fatalf("expected quit after confirming")
	}

	clean := newRunner(t)
	ctrl(clean, 'q')
	if !clean.quit {
		t.Fatalf("expected immediate quit without changes")
	}
}

func TestCopyCutPaste(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "one\ntwo\n")
	ctrl(r, 'a')
	ctrl(r, 'c')
	ctrl(r, 'n')
	other := r.Tabs.Active()
	if other == tab {
		t.Fatalf("expected a new tab")
	}
	ctrl(r, 'v')
	if other.Buffer.String() != "one\ntwo\n" {
		t.Fatalf("expected pasted text, got %q", other.Buffer.String())
	}
	press(r, tcell.KeyHome, tcell.ModCtrl)
	ctrl(r, 'k')
	if other.Buffer.String() != "two\n" {
		t.Fatalf("expected first line cut, got %q", other.Buffer.String())
	}
	if got, _ := r.Clipboard.ReadText(); got != "one\n" {
		t.Fatalf("expected cut line on clipboard, got %q", got)
	}
}

func TestBracketedPaste(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "")
	r.handleEvent(tcell.NewEventPaste(true))
	typeText(r, "a\nb")
	r.handleEvent(tcell.NewEventPaste(false))
	if tab.Buffer.String() != "a\nb" {
		t.Fatalf("expected pasted text, got %q", tab.Buffer.String())
	}
	ctrl(r, 'z')
	if tab.Buffer.String() != "" {
		t.Fatalf("expected paste undone in one step, got %q", tab.Buffer.String())
	}
}

func TestSaveAndSaveAs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}
	r := newRunner(t)
	r.OpenFiles(path)
	tab := r.Tabs.Active()
	press(r, tcell.KeyEnd, tcell.ModCtrl)
	typeText(r, "!")
	ctrl(r, 's')
	data, _ := os.ReadFile(path)
	if string(data) != "hi!" || tab.Buffer.Dirty() {
		t.Fatalf("expected saved file, got %q", data)
	}

	ctrl(r, 'n')
	typeText(r, "new")
	ctrl(r, 's')
	if r.Mode() != command.ModePrompt {
		t.Fatalf("expected save-as prompt for untitled tab")
	}
	press(r, tcell.KeyEnter, tcell.ModNone)
	if r.prompt.err == "" {
		t.Fatalf("expected error for empty path")
	}
	target := filepath.Join(dir, "b.txt")
	typeText(r, target)
	press(r, tcell.KeyEnter, tcell.ModNone)
	if r.Mode() != command.ModeEdit {
		t.Fatalf("expected prompt closed, error %q", r.prompt.err)
	}
	data, _ = os.ReadFile(target)
	if string(data) != "new" || r.Tabs.Active().Title != "b.txt" {
		t.Fatalf("expected b.txt written, got %q", data)
	}
}

func TestOpenMissingDirectoryReportsError(t *testing.T) {
	r := newRunner(t)
	r.OpenFiles(t.TempDir())
	if r.Tabs.Len() != 0 || r.Message() == "" {
		t.Fatalf("expected error message for directory, got %d tabs", r.Tabs.Len())
	}
}

func TestFindAndFindNext(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "one two one")
	ctrl(r, 'f')
	typeText(r, "one")
	press(r, tcell.KeyEnter, tcell.ModNone)
	if rng, ok := tab.Cursor.Range(); !ok || rng.Start != 0 || rng.End != 3 {
		t.Fatalf("expected first match, got %+v", rng)
	}
	press(r, tcell.KeyF3, tcell.ModNone)
	if rng, _ := tab.Cursor.Range(); rng.Start != 8 {
		t.Fatalf("expected second match, got %+v", rng)
	}
	press(r, tcell.KeyF3, tcell.ModNone)
	if rng, _ := tab.Cursor.Range(); rng.Start != 0 {
		t.Fatalf("expected wrap to first match, got %+v", rng)
	}
}

func TestGotoLine(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "a\nb\nc")
	ctrl(r, 'g')
	typeText(r, "3")
	press(r, tcell.KeyEnter, tcell.ModNone)
	if tab.Cursor.Head() != 4 {
		t.Fatalf("expected cursor on line 3, got %d", tab.Cursor.Head())
	}
}

func TestFinderOpensSelection(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"main.go", "pkg/util.go", "README.md"} {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(f), 0644); err != nil {
			t.Fatal(err)
		}
	}
	r := newRunner(t)
	r.Root = root
	ctrl(r, 'p')
	if r.Mode() != command.ModeFinder || len(r.finder.results) != 3 {
		t.Fatalf("expected finder with all files, got %d", len(r.finder.results))
	}
	press(r, tcell.KeyDown, tcell.ModNone)
	press(r, tcell.KeyDown, tcell.ModNone)
	press(r, tcell.KeyDown, tcell.ModNone)
	press(r, tcell.KeyUp, tcell.ModNone)
	if r.finder.selected != 1 {
		t.Fatalf("expected selection 1 after moves, got %d", r.finder.selected)
	}
	typeText(r, "util")
	if len(r.finder.results) != 1 || r.finder.results[0].Path != "pkg/util.go" {
		t.Fatalf("expected util.go, got %+v", r.finder.results)
	}
	press(r, tcell.KeyEnter, tcell.ModNone)
	if r.Mode() != command.ModeEdit || r.Tabs.Active() == nil || r.Tabs.Active().Title != "util.go" {
		t.Fatalf("expected util.go opened")
	}
}

func TestFinderCancel(t *testing.T) {
	r := newRunner(t)
	r.Root = t.TempDir()
	ctrl(r, 'p')
	press(r, tcell.KeyEsc, tcell.ModNone)
	if r.Mode() != command.ModeEdit || r.Tabs.Len() != 0 {
		t.Fatalf("expected finder closed without opening")
	}
}

func TestUnrecognizedInputIsDropped(t *testing.T) {
	r := newRunner(t)
	tab := openText(t, r, "abc")
	r.handleEvent(tcell.NewEventKey(tcell.KeyRune, '\u200b', tcell.ModNone))
	r.handleEvent(tcell.NewEventMouse(0, 1, tcell.Button3, tcell.ModNone))
	if tab.Buffer.String() != "abc" || tab.Buffer.Dirty() {
		t.Fatalf("expected buffer untouched, got %q", tab.Buffer.String())
	}
}

func TestCursorFollowsAndScrolls(t *testing.T) {
	r := newRunner(t)
	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("line\n")
	}
	tab := openText(t, r, b.String())
	press(r, tcell.KeyEnd, tcell.ModCtrl)
	if tab.View.Top == 0 {
		t.Fatalf("expected viewport to scroll to the end")
	}
	src, _ := r.Tabs.Source(tab.ID)
	if _, _, ok := tab.View.BufferToScreen(src, tab.Cursor.Head()); !ok {
		t.Fatalf("expected cursor visible")
	}
	top := tab.View.Top
	r.handleEvent(tcell.NewEventMouse(5, 5, tcell.WheelUp, tcell.ModNone))
	if tab.View.Top != top-3 {
		t.Fatalf("expected wheel to scroll up 3, got %d from %d", tab.View.Top, top)
	}
}

func TestTabCycling(t *testing.T) {
	r := newRunner(t)
	a := openText(t, r, "a")
	b := openText(t, r, "b")
	press(r, tcell.KeyPgDn, tcell.ModCtrl)
	if r.Tabs.Active() != a {
		t.Fatalf("expected wrap to first tab")
	}
	press(r, tcell.KeyPgUp, tcell.ModCtrl)
	if r.Tabs.Active() != b {
		t.Fatalf("expected previous tab")
	}
}
