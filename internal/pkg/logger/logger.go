// Package logger provides the slog-backed implementation of ports.Logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sort"
)

// Logger routes application log calls to a slog.Logger. It is built once per
// invocation and handed to the services that need it.
type Logger struct {
	slog *slog.Logger
}

// NewStd creates a Logger writing text records to stderr. Only errors are
// emitted unless verbose is set.
func NewStd(verbose bool) *Logger {
	return New(os.Stderr, verbose)
}

// New creates a Logger writing text records to w.
func New(w io.Writer, verbose bool) *Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return NewWithHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewWithHandler wraps an arbitrary slog handler.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{slog: slog.New(h)}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.slog.Debug(msg, attrs(fields)...)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.slog.Info(msg, attrs(fields)...)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.slog.Warn(msg, attrs(fields)...)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	args := attrs(fields)
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	l.slog.Error(msg, args...)
}

// attrs converts the field map in key order so output is stable.
func attrs(fields map[string]interface{}) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, fields[k]))
	}
	return out
}
