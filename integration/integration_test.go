//go:build integration

package integration

import (
	"errors"
	"testing"

	stockfishbridge "github.com/wagiedev/stockfish-bridge-go"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// newBridge returns a bridge for the real engine, skipping the test when the
// resolved engine path is unusable on this machine.
func newBridge(t *testing.T, opts ...stockfishbridge.Option) *stockfishbridge.Bridge {
	t.Helper()

	bridge := stockfishbridge.New(opts...)

	path, source := bridge.ResolvePath()

	_, err := bridge.BestMove(t.Context(), startFEN)
	if _, ok := errors.AsType[*stockfishbridge.PathInvalidError](err); ok {
		t.Skipf("No engine at %s (from %s)", path, source)
	}

	return bridge
}
