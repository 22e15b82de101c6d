// Package logger provides structured logging for analysis runs.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger provides structured logging functionality.
type Logger struct {
	internal *slog.Logger
}

// Options configures a Logger.
type Options struct {
	Level  string
	Format string
	// Writer defaults to os.Stderr so stdout stays free for report tables.
	Writer io.Writer
}

// New creates a logger from options.
func New(opts Options) *Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, FormatJSON) {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return &Logger{internal: slog.New(handler)}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return New(Options{Writer: io.Discard})
}

// ParseLevel maps debug|info|warn|error to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Info logs an info level message.
func (l *Logger) Info(msg string, args ...any) {
	l.internal.Info(msg, args...)
}

// Error logs an error level message.
func (l *Logger) Error(msg string, args ...any) {
	l.internal.Error(msg, args...)
}

// Debug logs a debug level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.internal.Debug(msg, args...)
}

// Warn logs a warning level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.internal.Warn(msg, args...)
}

// With creates a child logger with the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{internal: l.internal.With(args...)}
}
