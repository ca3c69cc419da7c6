package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stdout)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// SetOutput redirects log lines to w and returns a function restoring the previous logger.
func SetOutput(w io.Writer) func() {
	mu.Lock()
	prev := logger
	logger = newLogger(w)
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	}
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	write(slog.LevelInfo, msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	write(slog.LevelWarn, msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	write(slog.LevelError, msg, fields)
}

func write(level slog.Level, msg string, fields map[string]any) {
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.LogAttrs(context.Background(), level, msg, attrs...)
}
