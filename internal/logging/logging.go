// Package logging writes one JSON object per line, the format used by every
// component of the service (request logs, migrations, tracing setup, upload failures).
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	enc *json.Encoder
	loc *time.Location
}

// New returns a Logger writing to w with timestamps in loc (UTC when nil).
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{enc: json.NewEncoder(w), loc: loc}
}

// Stdout returns a Logger writing to standard output.
func Stdout(loc *time.Location) *Logger {
	return New(os.Stdout, loc)
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return New(io.Discard, time.UTC)
}

// Log writes a copy of fields as a single line; fields itself is never
// modified and may be nil. "ts" is always set; "level" defaults to "error"
// when status is "error" and to "info" otherwise.
func (l *Logger) Log(fields map[string]any) {
	data := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		data[k] = v
	}
	data["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(data)
}

// Info logs msg with optional fields.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.Log(withMsg(fields, "info", msg))
}

// Warn logs msg with optional fields.
func (l *Logger) Warn(msg string, fields map[string]any) {
	l.Log(withMsg(fields, "warn", msg))
}

// Error logs msg together with err.
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	data := withMsg(fields, "error", msg)
	if err != nil {
		data["error"] = err.Error()
	}
	l.Log(data)
}

// Location returns the timezone used for timestamps.
func (l *Logger) Location() *time.Location { return l.loc }

func withMsg(fields map[string]any, level, msg string) map[string]any {
	data := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		data[k] = v
	}
	data["level"] = level
	data["msg"] = msg
	return data
}
