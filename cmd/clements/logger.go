package main

import (
	"fmt"
	"io"
	"log/slog"
)

// Logger wraps slog.Logger with the CLI's field names.
type Logger struct {
	*slog.Logger
}

// NewLogger builds a text or JSON logger on w. verbose lowers the level to debug.
func NewLogger(w io.Writer, format string, verbose bool) (*Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}

	return &Logger{Logger: slog.New(handler)}, nil
}

// WithCommand tags every record with the running subcommand.
func (l *Logger) WithCommand(name string) *Logger {
	return &Logger{Logger: l.Logger.With("command", name)}
}

// WithModes adds the mode count field.
func (l *Logger) WithModes(d int) *Logger {
	return &Logger{Logger: l.Logger.With("modes", d)}
}
