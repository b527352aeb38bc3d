package stockfishbridge

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output.
// This is the default when no logger is configured.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewTextLogger returns a text logger writing records at or above level to w.
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
