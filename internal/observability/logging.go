// Package observability provides structured logging for the application.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a JSON slog logger writing to w. A nil w defaults to
// stdout.
func NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// StoreLogger provides structured logging for persistence operations.
type StoreLogger struct {
	key    string
	logger *slog.Logger
}

// NewStoreLogger creates a StoreLogger scoped to one persisted key.
func NewStoreLogger(logger *slog.Logger, key string) *StoreLogger {
	if logger == nil {
		logger = NewLogger(nil)
	}
	return &StoreLogger{key: key, logger: logger}
}

// LogSave logs a persistence write at debug level.
func (l *StoreLogger) LogSave(size int) {
	l.logger.Debug("persisted value",
		slog.String("key", l.key),
		slog.String("operation", "save"),
		slog.Int("bytes", size),
	)
}

// LogError logs a persistence failure. Persistence is best-effort, so the
// error is recorded here and not propagated.
func (l *StoreLogger) LogError(err error, operation string) {
	l.logger.Error("persistence error",
		slog.String("key", l.key),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}
