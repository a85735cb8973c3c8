package logs

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes JSON lines with a timestamp and event fields. A nil or
// disabled Logger discards everything.
type Logger struct {
	mu      sync.Mutex
	w       *bufio.Writer
	c       io.Closer
	enabled bool
	debug   bool
}

// NewFromEnv returns a logger if TABEDIT_LOG is set to a truthy value
// or if TABEDIT_LOG_FILE is provided. Otherwise it returns a disabled logger.
// TABEDIT_LOG=debug also enables debug events. When enabled and no file is
// specified, it writes to ./tabedit.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("TABEDIT_LOG_FILE")
	v := os.Getenv("TABEDIT_LOG")
	enabled := lf != "" || (v != "" && v != "0" && v != "false")
	if !enabled {
		return &Logger{}
	}
	if lf == "" {
		lf = filepath.Join(".", "tabedit.log")
	}
	f, err := os.OpenFile(lf, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		// If we cannot open the requested file, disable logging silently.
		return &Logger{}
	}
	l := New(f, v == "debug")
	l.c = f
	return l
}

// New returns an enabled logger writing to w.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{w: bufio.NewWriter(w), enabled: true, debug: debug}
}

// Close flushes and closes the underlying file if enabled.
func (l *Logger) Close() {
	if l == nil || !l.enabled {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.w.Flush()
	if l.c != nil {
		_ = l.c.Close()
	}
	l.enabled = false
}

// Event writes a JSON line with the event name and fields.
// Common fields: action, tab, file, error, query.
func (l *Logger) Event(event string, fields map[string]any) {
	if l == nil || !l.enabled {
		return
	}
	rec := map[string]any{
		"time":  time.Now().Format(time.RFC3339Nano),
		"event": event,
	}
	for k, v := range fields {
		rec[k] = v
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	enc := json.NewEncoder(l.w)
	_ = enc.Encode(rec)
	_ = l.w.Flush()
}

// Debug is Event for high volume records, written only in debug mode.
func (l *Logger) Debug(event string, fields map[string]any) {
	if l == nil || !l.debug {
		return
	}
	l.Event(event, fields)
}
