// Package logging sets up the process logger.
// Warnings and errors go to the terminal, and a JSON log file can capture everything for troubleshooting.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Options controls where log records are written.
type Options struct {
	Debug  bool      // Debug lowers the terminal level to debug.
	Output io.Writer // Output is the terminal destination, os.Stderr if nil.
	File   string    // File is an optional path that receives every record as JSON.
}

// New creates a logger from opts.
// The returned close function must be called to flush and release the log file, and is safe to call when no file is used.
func New(opts Options) (*slog.Logger, func() error, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}
	terminal := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	if len(opts.File) == 0 {
		return slog.New(terminal), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(Merge(terminal, file)), f.Close, nil
}

var _ slog.Handler = (*joined)(nil)

type joined struct {
	handlers []slog.Handler
}

// Merge fans records out to every handler that is enabled for the record's level.
func Merge(handlers ...slog.Handler) slog.Handler {
	if len(handlers) == 0 {
		panic("no handlers to merge")
	}
	if len(handlers) == 1 {
		return handlers[0]
	}
	return &joined{handlers: handlers}
}

func (h *joined) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *joined) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		errs = append(errs, handler.Handle(ctx, record.Clone()))
	}
	return errors.Join(errs...)
}

func (h *joined) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &joined{handlers: next}
}

func (h *joined) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &joined{handlers: next}
}
