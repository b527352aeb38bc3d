package stockfishbridge

import (
	"log/slog"
	"time"
)

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// ===== Basic Configuration =====

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithStockfishPath sets the initial engine path override.
// It can be changed later with Bridge.SetStockfishPath.
func WithStockfishPath(path string) Option {
	return func(o *Options) {
		o.StockfishPath = path
	}
}

// ===== Path Resolution =====

// WithLookupEnv replaces os.LookupEnv for the STOCKFISH_PATH lookup.
func WithLookupEnv(lookup func(key string) (string, bool)) Option {
	return func(o *Options) {
		o.LookupEnv = lookup
	}
}

// WithSidecarDir sets the directory searched for stockfish_path.txt.
// If not set, the directory of the running executable is used.
func WithSidecarDir(dir string) Option {
	return func(o *Options) {
		o.SidecarDir = dir
	}
}

// WithFallbackPath replaces the built-in last-resort engine path.
func WithFallbackPath(path string) Option {
	return func(o *Options) {
		o.FallbackPath = path
	}
}

// ===== Protocol =====

// WithTimeouts sets the protocol phase deadlines. Zero fields keep their defaults.
func WithTimeouts(timeouts Timeouts) Option {
	return func(o *Options) {
		o.Timeouts = timeouts
	}
}

// WithMoveTime sets the search time sent with "go movetime".
func WithMoveTime(d time.Duration) Option {
	return func(o *Options) {
		o.MoveTime = d
	}
}
