// Package tabs keeps the ordered set of open documents and which one is
// active.
package tabs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"example.com/tabedit/pkg/buffer"
	"example.com/tabedit/pkg/cursor"
	"example.com/tabedit/pkg/viewport"
)

var (
	// ErrUnsavedCloseBlocked is returned when closing a dirty tab without
	// confirmation. Nothing is changed.
	ErrUnsavedCloseBlocked = errors.New("tabs: unsaved changes, close needs confirmation")
	// ErrUnknownTab is returned for ids that are not open.
	ErrUnknownTab = errors.New("tabs: unknown tab")
	// ErrNoPath is returned when saving a tab that has never been saved.
	ErrNoPath = errors.New("tabs: tab has no file path")
)

// Tab is one open document.
type Tab struct {
	ID         int
	Title      string
	Path       string
	LineEnding string
	Buffer     *buffer.Buffer
	Cursor     *cursor.Selection
	View       *viewport.Viewport
}

// DisplayName is the title shown in the tab bar, marked when dirty.
func (t *Tab) DisplayName() string {
	if t.Buffer.Dirty() {
		return t.Title + "*"
	}
	return t.Title
}

// Options are applied to every tab the registry creates.
type Options struct {
	Buffer   buffer.Options
	Rows     int
	Cols     int
	Wrap     viewport.WrapMode
	TabWidth int
	Gutter   int
}

// Registry owns the open tabs in insertion order.
type Registry struct {
	tabs   []*Tab
	active int
	nextID int
	opts   Options
}

// New returns an empty registry.
func New(opts Options) *Registry {
	return &Registry{opts: opts, nextID: 1}
}

// Open adds a tab holding content and makes it active.
func (r *Registry) Open(title, content string) *Tab {
	if title == "" {
		title = "untitled"
	}
	text, eol := normalizeEOL(content)
	return r.add(title, "", eol, text)
}

// OpenFile opens path in a new tab, or activates the tab already showing
// it. A path that does not exist yet opens as an empty document that will
// be created on save.
func (r *Registry) OpenFile(path string) (*Tab, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	for _, t := range r.tabs {
		if t.Path == abs {
			r.active = t.ID
			return t, nil
		}
	}
	data, err := os.ReadFile(abs)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	text, eol := normalizeEOL(string(data))
	return r.add(filepath.Base(abs), abs, eol, text), nil
}

func (r *Registry) add(title, path, eol, text string) *Tab {
	id := r.nextID
	r.nextID++
	v := viewport.New(id, r.opts.Rows, r.opts.Cols)
	v.Wrap = r.opts.Wrap
	v.Gutter = r.opts.Gutter
	if r.opts.TabWidth > 0 {
		v.TabWidth = r.opts.TabWidth
	}
	t := &Tab{
		ID:         id,
		Title:      title,
		Path:       path,
		LineEnding: eol,
		Buffer:     buffer.New(text, r.opts.Buffer),
		Cursor:     &cursor.Selection{},
		View:       v,
	}
	r.tabs = append(r.tabs, t)
	r.active = id
	return t
}

// normalizeEOL converts CRLF text to LF. Text is only converted when every
// line break is CRLF; mixed endings are kept as they are.
func normalizeEOL(s string) (string, string) {
	crlf := strings.Count(s, "\r\n")
	if crlf > 0 && crlf == strings.Count(s, "\n") {
		return strings.ReplaceAll(s, "\r\n", "\n"), "\r\n"
	}
	return s, "\n"
}

func (r *Registry) index(id int) int {
	for i, t := range r.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the tab with id.
func (r *Registry) Get(id int) (*Tab, error) {
	i := r.index(id)
	if i < 0 {
		return nil, fmt.Errorf("tab %d: %w", id, ErrUnknownTab)
	}
	return r.tabs[i], nil
}

// Source gives a viewport the line data of the tab it belongs to.
func (r *Registry) Source(id int) (viewport.Lines, error) {
	t, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return t.Buffer, nil
}

// Active returns the active tab, or nil when the registry is empty.
func (r *Registry) Active() *Tab {
	if i := r.index(r.active); i >= 0 {
		return r.tabs[i]
	}
	return nil
}

// ActiveIndex is the position of the active tab, or -1.
func (r *Registry) ActiveIndex() int { return r.index(r.active) }

// Tabs returns the open tabs in order.
func (r *Registry) Tabs() []*Tab { return append([]*Tab(nil), r.tabs...) }

// Len is the number of open tabs.
func (r *Registry) Len() int { return len(r.tabs) }

// SwitchTo activates the tab with id.
func (r *Registry) SwitchTo(id int) error {
	if r.index(id) < 0 {
		return fmt.Errorf("switch to tab %d: %w", id, ErrUnknownTab)
	}
	r.active = id
	return nil
}

// Next activates the following tab, wrapping around.
func (r *Registry) Next() *Tab { return r.cycle(1) }

// Previous activates the preceding tab, wrapping around.
func (r *Registry) Previous() *Tab { return r.cycle(-1) }

func (r *Registry) cycle(step int) *Tab {
	n := len(r.tabs)
	if n == 0 {
		return nil
	}
	i := r.index(r.active)
	if i < 0 {
		i = 0
	} else {
		i = (i + step + n) % n
	}
	r.active = r.tabs[i].ID
	return r.tabs[i]
}

// Close removes the tab with id. A dirty tab is only closed when
// confirmed is true. Closing the active tab activates the tab after it, or
// the new last tab.
func (r *Registry) Close(id int, confirmed bool) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("close tab %d: %w", id, ErrUnknownTab)
	}
	if r.tabs[i].Buffer.Dirty() && !confirmed {
		return fmt.Errorf("close %s: %w", r.tabs[i].Title, ErrUnsavedCloseBlocked)
	}
	r.tabs = append(r.tabs[:i], r.tabs[i+1:]...)
	if id != r.active {
		return nil
	}
	switch {
	case len(r.tabs) == 0:
		r.active = 0
	case i < len(r.tabs):
		r.active = r.tabs[i].ID
	default:
		r.active = r.tabs[len(r.tabs)-1].ID
	}
	return nil
}

// AnyDirty reports whether any tab has unsaved changes.
func (r *Registry) AnyDirty() bool {
	for _, t := range r.tabs {
		if t.Buffer.Dirty() {
			return true
		}
	}
	return false
}

// Save writes the tab to its path with its original line endings. The
// dirty flag is only cleared when the write succeeds.
func (r *Registry) Save(id int) error {
	t, err := r.Get(id)
	if err != nil {
		return err
	}
	if t.Path == "" {
		return fmt.Errorf("save %s: %w", t.Title, ErrNoPath)
	}
	data := t.Buffer.Bytes()
	if t.LineEnding == "\r\n" {
		data = bytes.ReplaceAll(data, []byte("\n"), []byte("\r\n"))
	}
	if err := os.WriteFile(t.Path, data, 0644); err != nil {
		return fmt.Errorf("save %s: %w", t.Title, err)
	}
	t.Buffer.MarkSaved()
	return nil
}

// SaveAs binds the tab to path and saves it. On failure the tab keeps its
// previous path.
func (r *Registry) SaveAs(id int, path string) error {
	t, err := r.Get(id)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("save as %s: %w", path, err)
	}
	oldPath, oldTitle := t.Path, t.Title
	t.Path, t.Title = abs, filepath.Base(abs)
	if err := r.Save(id); err != nil {
		t.Path, t.Title = oldPath, oldTitle
		return err
	}
	return nil
}

// Resize applies a new text area size to every tab's viewport.
func (r *Registry) Resize(rows, cols int) {
	r.opts.Rows, r.opts.Cols = rows, cols
	for _, t := range r.tabs {
		t.View.Resize(rows, cols)
	}
}
