// Package logger provides a simple wrapper around slog for structured logging.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the global logger instance. It discards output by default:
// the application owns the terminal while the TUI runs, so logs only go
// somewhere when LOG_PATH points at a file.
var Logger = newDefault()

func newDefault() *slog.Logger {
	path := os.Getenv("LOG_PATH")
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(f, nil))
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
