// Package logging builds the structured slog logger used across tl.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DebugEnvVar forces debug level logging when set to any non-empty value.
const DebugEnvVar = "TL_DEBUG"

// Logger is a wrapper around the standard slog.Logger that owns its output.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// Options holds the configurable logger settings.
type Options struct {
	Level  string // debug, info, warn or error
	Format string // "json" or "text"
	Output string // stderr, stdout, discard or a file path
}

// DebugEnabled returns true if debug mode is enabled via TL_DEBUG
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// New creates a Logger from opts. A file output is opened for appending and
// released by Close.
func New(opts Options) (*Logger, error) {
	output, closer, err := openOutput(opts.Output)
	if err != nil {
		return nil, err
	}

	level := ParseLevel(opts.Level)
	if DebugEnabled() {
		level = slog.LevelDebug
	}

	return &Logger{
		Logger: slog.New(newHandler(output, opts.Format, level)),
		closer: closer,
	}, nil
}

// NewWithWriter creates a Logger writing to w. Used by tests and callers that
// already own a stream.
func NewWithWriter(w io.Writer, opts Options) *Logger {
	level := ParseLevel(opts.Level)
	if DebugEnabled() {
		level = slog.LevelDebug
	}
	return &Logger{Logger: slog.New(newHandler(w, opts.Format, level))}
}

// Close releases a file output, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// ErrorContextf logs an error message with formatting
func (l *Logger) ErrorContextf(ctx context.Context, format string, args ...any) {
	l.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

// ParseLevel maps a level name to a slog level. Unknown names mean warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// IsTerminalOutput reports whether output names one of the process streams.
func IsTerminalOutput(output string) bool {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "stderr", "stdout":
		return true
	}
	return false
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, handlerOpts)
	default:
		return slog.NewTextHandler(w, handlerOpts)
	}
}

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "stderr":
		return os.Stderr, nil, nil
	case "stdout":
		return os.Stdout, nil, nil
	case "discard":
		return io.Discard, nil, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", output, err)
	}
	return f, f, nil
}
