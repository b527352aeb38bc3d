package config

import (
	"log/slog"
	"time"
)

// Default protocol windows. Together they bound a call to roughly 16.5s.
const (
	// DefaultEngineReadyTimeout bounds the wait for "uciok".
	DefaultEngineReadyTimeout = 3000 * time.Millisecond
	// DefaultSearchReadyTimeout bounds the wait for "readyok".
	DefaultSearchReadyTimeout = 3000 * time.Millisecond
	// DefaultAnswerTimeout bounds the wait for "bestmove".
	DefaultAnswerTimeout = 10000 * time.Millisecond
	// DefaultShutdownGrace bounds the wait for the engine to exit after "quit".
	DefaultShutdownGrace = 500 * time.Millisecond
	// DefaultPollInterval is the sleep between unsuccessful polls.
	DefaultPollInterval = 10 * time.Millisecond
	// DefaultMoveTime is passed to "go movetime".
	DefaultMoveTime = 3000 * time.Millisecond
)

// Timeouts holds the per-phase deadlines of a single GetBestMove call.
// Zero fields fall back to the defaults above.
type Timeouts struct {
	EngineReady   time.Duration
	SearchReady   time.Duration
	Answer        time.Duration
	ShutdownGrace time.Duration
	PollInterval  time.Duration
}

// WithDefaults returns a copy of t with every zero field replaced by its default.
func (t Timeouts) WithDefaults() Timeouts {
	if t.EngineReady <= 0 {
		t.EngineReady = DefaultEngineReadyTimeout
	}

	if t.SearchReady <= 0 {
		t.SearchReady = DefaultSearchReadyTimeout
	}

	if t.Answer <= 0 {
		t.Answer = DefaultAnswerTimeout
	}

	if t.ShutdownGrace <= 0 {
		t.ShutdownGrace = DefaultShutdownGrace
	}

	if t.PollInterval <= 0 {
		t.PollInterval = DefaultPollInterval
	}

	return t
}

// CallBudget is the longest a single call can take with these timeouts:
// every phase window plus the shutdown grace. Zero fields count at their
// defaults.
func (t Timeouts) CallBudget() time.Duration {
	t = t.WithDefaults()

	return t.EngineReady + t.SearchReady + t.Answer + t.ShutdownGrace
}

// Options configures a Bridge.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// StockfishPath is the explicit engine path override.
	// It takes precedence over every other resolution source.
	StockfishPath string

	// LookupEnv reads environment variables during path resolution.
	// If nil, os.LookupEnv is used.
	LookupEnv func(key string) (string, bool)

	// SidecarDir is the directory searched for stockfish_path.txt.
	// If empty, the directory of the running executable is used.
	SidecarDir string

	// FallbackPath replaces the built-in last-resort engine path.
	FallbackPath string

	// Timeouts controls the protocol phase deadlines.
	Timeouts Timeouts

	// MoveTime is the search time passed to "go movetime".
	// If zero, DefaultMoveTime is used.
	MoveTime time.Duration
}
