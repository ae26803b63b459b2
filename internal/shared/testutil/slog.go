package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// LogRecord is a captured log record.
type LogRecord struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler collects log records so tests can assert on them.
type CaptureHandler struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewTestLogger returns a logger whose output is captured.
func NewTestLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	t.Helper()
	h := &CaptureHandler{}
	return slog.New(h), h
}

// Handle implements slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, LogRecord{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// Enabled implements slog.Handler. Tests capture every level.
func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

// WithAttrs implements slog.Handler.
func (h *CaptureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

// WithGroup implements slog.Handler.
func (h *CaptureHandler) WithGroup(_ string) slog.Handler { return h }

// Records returns a copy of the captured records.
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// ContainsMessage reports whether any record's message contains the substring.
func (h *CaptureHandler) ContainsMessage(message string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if strings.Contains(r.Message, message) {
			return true
		}
	}
	return false
}
