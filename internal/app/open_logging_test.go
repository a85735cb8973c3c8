package app

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"example.com/tabedit/pkg/logs"
)

func readEvents(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("bad log line %q: %v", sc.Text(), err)
		}
		out = append(out, rec)
	}
	return out
}

func hasEvent(events []map[string]any, name string, match func(map[string]any) bool) bool {
	for _, e := range events {
		if e["event"] == name && (match == nil || match(e)) {
			return true
		}
	}
	return false
}

func TestOpenSaveClose_EmitsLoggingEvents(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "events.jsonl")
	t.Setenv("TABEDIT_LOG_FILE", logPath)
	t.Setenv("TABEDIT_LOG", "debug")

	r := newRunner(t)
	r.Logger = logs.NewFromEnv()

	r.OpenFiles(dir)
	file := filepath.Join(dir, "a.txt")
	r.OpenFiles(file)
	typeText(r, "x")
	ctrl(r, 's')
	ctrl(r, 'n')
	typeText(r, "y")
	ctrl(r, 'w')
	r.handleEvent(tcell.NewEventKey(tcell.KeyRune, '\u200b', tcell.ModNone))
	r.Logger.Close()

	events := readEvents(t, logPath)
	if !hasEvent(events, "open_file", func(e map[string]any) bool { return e["error"] != nil }) {
		t.Fatalf("expected open_file error event, got %v", events)
	}
	if !hasEvent(events, "open_file", func(e map[string]any) bool { return e["file"] == file }) {
		t.Fatalf("expected open_file event for %s, got %v", file, events)
	}
	if !hasEvent(events, "save_file", func(e map[string]any) bool { return e["file"] == file && e["error"] == nil }) {
		t.Fatalf("expected save_file event, got %v", events)
	}
	if !hasEvent(events, "action", func(e map[string]any) bool { return e["name"] == "new-tab" }) {
		t.Fatalf("expected new-tab action event, got %v", events)
	}
	if !hasEvent(events, "close_blocked", nil) {
		t.Fatalf("expected close_blocked event, got %v", events)
	}
	if !hasEvent(events, "input_dropped", nil) {
		t.Fatalf("expected input_dropped debug event, got %v", events)
	}
}

func TestLogging_DisabledByDefault(t *testing.T) {
	t.Setenv("TABEDIT_LOG_FILE", "")
	t.Setenv("TABEDIT_LOG", "")
	r := newRunner(t)
	r.Logger = logs.NewFromEnv()
	r.OpenFiles(filepath.Join(t.TempDir(), "a.txt"))
	r.Logger.Close()
	if _, err := os.Stat("tabedit.log"); err == nil {
		t.Fatalf("expected no default log file when logging is disabled")
	}
}
