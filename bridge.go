package stockfishbridge

import (
	"context"
	"log/slog"
	"sync"

	"github.com/wagiedev/stockfish-bridge-go/internal/discovery"
	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
	"github.com/wagiedev/stockfish-bridge-go/internal/protocol"
)

// Bridge asks an external UCI engine for moves. Every call spawns a fresh
// engine process and tears it down before returning; nothing is pooled.
//
// A Bridge is safe for concurrent use. Concurrent calls each own their own
// process and pipes. The path override is last-writer-wins.
type Bridge struct {
	log     *slog.Logger
	options *Options
	driver  *protocol.Driver

	mu       sync.RWMutex
	override string
}

// New creates a Bridge.
//
// By default, logging is disabled. Use WithLogger to enable logging:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	bridge := stockfishbridge.New(stockfishbridge.WithLogger(logger))
func New(opts ...Option) *Bridge {
	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	return &Bridge{
		log:      log.With("component", "bridge"),
		options:  options,
		driver:   protocol.NewDriver(log, options.Timeouts, options.MoveTime),
		override: options.StockfishPath,
	}
}

// SetStockfishPath sets the explicit engine path. An empty path clears the
// override so resolution falls through to the environment, sidecar file and
// fallback.
func (b *Bridge) SetStockfishPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.override = path
}

// ResolvePath returns the engine path the next call would use and where it
// came from.
func (b *Bridge) ResolvePath() (string, PathSource) {
	b.mu.RLock()
	override := b.override
	b.mu.RUnlock()

	return discovery.NewResolver(&discovery.Config{
		Override:     override,
		LookupEnv:    b.options.LookupEnv,
		SidecarDir:   b.options.SidecarDir,
		FallbackPath: b.options.FallbackPath,
		Logger:       b.log,
	}).Resolve()
}

// Timeouts returns the effective phase deadlines.
func (b *Bridge) Timeouts() Timeouts {
	return b.driver.Timeouts()
}

// BestMove resolves the engine path, runs one engine session and returns
// the suggested move.
//
// Errors are the typed errors of this package (or wrap ErrNoMove); use
// ResultCodeOf to obtain the matching sentinel code. Cancelling ctx ends
// the current polling phase early; the engine is released either way.
func (b *Bridge) BestMove(ctx context.Context, position string) (string, error) {
	path, source := b.ResolvePath()
	b.log.Debug("Resolved engine path", "path", path, "source", source)

	return b.driver.Run(ctx, path, position)
}

// GetBestMove returns the engine's move for position, or one of the
// sentinel result codes (bad_path, pipe_fail, launch_failed, write_fail,
// no_move, bad_move). It never blocks longer than the sum of the phase
// deadlines and never leaks the engine process.
func (b *Bridge) GetBestMove(position string) string {
	move, err := b.BestMove(context.Background(), position)
	if err != nil {
		return errors.CodeOf(err).String()
	}

	return move
}

var defaultBridge = New()

// GetBestMove asks the default bridge for a move. See Bridge.GetBestMove.
func GetBestMove(position string) string {
	return defaultBridge.GetBestMove(position)
}

// SetStockfishPath sets the default bridge's engine path override.
// An empty path clears it.
func SetStockfishPath(path string) {
	defaultBridge.SetStockfishPath(path)
}
