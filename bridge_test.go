package stockfishbridge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// writeEngine writes a shell engine that answers the handshake and replies
// to "go" with the given shell snippet.
func writeEngine(t *testing.T, onGo string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("Mock engines are POSIX shell scripts")
	}

	path := filepath.Join(t.TempDir(), "mockfish")
	script := fmt.Sprintf(`#!/bin/sh
while IFS= read -r line; do
  case "$line" in
    uci) echo uciok ;;
    isready) echo readyok ;;
    go*) %s ;;
    quit) exit 0 ;;
  esac
done
`, onGo)

	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	return path
}

func noEnv(string) (string, bool) { return "", false }

// newTestBridge builds a bridge that never consults the real environment.
func newTestBridge(t *testing.T, opts ...Option) *Bridge {
	t.Helper()

	base := []Option{
		WithLookupEnv(noEnv),
		WithSidecarDir(t.TempDir()),
		WithFallbackPath(filepath.Join(t.TempDir(), "no-engine-here")),
		WithTimeouts(Timeouts{
			EngineReady:   500 * time.Millisecond,
			SearchReady:   500 * time.Millisecond,
			Answer:        time.Second,
			ShutdownGrace: 200 * time.Millisecond,
			PollInterval:  5 * time.Millisecond,
		}),
		WithMoveTime(50 * time.Millisecond),
	}

	return New(append(base, opts...)...)
}

func TestNew_Defaults(t *testing.T) {
	bridge := New()

	timeouts := bridge.Timeouts()
	require.Equal(t, 3*time.Second, timeouts.EngineReady)
	require.Equal(t, 3*time.Second, timeouts.SearchReady)
	require.Equal(t, 10*time.Second, timeouts.Answer)
}

// TestResolvePath_OverridePrecedence tests that the override beats the
// environment and that clearing it falls back again.
func TestResolvePath_OverridePrecedence(t *testing.T) {
	bridge := newTestBridge(t, WithLookupEnv(func(key string) (string, bool) {
		if key == "STOCKFISH_PATH" {
			return "/env/stockfish", true
		}

		return "", false
	}))

	path, source := bridge.ResolvePath()
	require.Equal(t, "/env/stockfish", path)
	require.Equal(t, PathSourceEnv, source)

	bridge.SetStockfishPath("/explicit/stockfish")

	path, source = bridge.ResolvePath()
	require.Equal(t, "/explicit/stockfish", path)
	require.Equal(t, PathSourceOverride, source)

	bridge.SetStockfishPath("")

	path, source = bridge.ResolvePath()
	require.Equal(t, "/env/stockfish", path)
	require.Equal(t, PathSourceEnv, source)
}

func TestResolvePath_Sidecar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stockfish_path.txt"), []byte("/sidecar/stockfish\n"), 0o600))

	bridge := newTestBridge(t, WithSidecarDir(dir))

	path, source := bridge.ResolvePath()
	require.Equal(t, "/sidecar/stockfish", path)
	require.Equal(t, PathSourceSidecar, source)
}

func TestGetBestMove_Move(t *testing.T) {
	bridge := newTestBridge(t, WithStockfishPath(writeEngine(t, "echo 'bestmove e2e4 ponder e7e5'")))

	require.Equal(t, "e2e4", bridge.GetBestMove(startFEN))
}

func TestGetBestMove_SentinelCodes(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want ResultCode
	}{
		{
			name: "missing engine",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "stockfish") },
			want: ResultBadPath,
		},
		{
			name: "directory",
			path: func(t *testing.T) string { return t.TempDir() },
			want: ResultBadPath,
		},
		{
			name: "silent search",
			path: func(t *testing.T) string { return writeEngine(t, ":") },
			want: ResultNoMove,
		},
		{
			name: "implausible token",
			path: func(t *testing.T) string { return writeEngine(t, "echo 'bestmove x'") },
			want: ResultBadMove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := newTestBridge(t, WithStockfishPath(tt.path(t)))

			require.Equal(t, tt.want.String(), bridge.GetBestMove(startFEN))
		})
	}
}

func TestGetBestMove_NotExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Execute permission bits are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "stockfish")
	require.NoError(t, os.WriteFile(path, []byte("not a program"), 0o600))

	bridge := newTestBridge(t, WithStockfishPath(path))

	require.Equal(t, ResultLaunchFailed.String(), bridge.GetBestMove(startFEN))
}

func TestBestMove_TypedError(t *testing.T) {
	bridge := newTestBridge(t)

	move, err := bridge.BestMove(context.Background(), startFEN)

	require.Empty(t, move)

	pathErr, ok := errors.AsType[*PathInvalidError](err)
	require.True(t, ok)
	require.Equal(t, ResultBadPath, pathErr.ResultCode())
}

func TestBestMoves_KeepsInputOrder(t *testing.T) {
	bridge := newTestBridge(t, WithStockfishPath(writeEngine(t, "echo 'bestmove g1f3'")))

	positions := []string{startFEN, startFEN, startFEN, startFEN}

	results, err := bridge.BestMoves(context.Background(), positions, 2)

	require.NoError(t, err)
	require.Equal(t, []string{"g1f3", "g1f3", "g1f3", "g1f3"}, results)
}

func TestBestMoves_MixedResults(t *testing.T) {
	bridge := newTestBridge(t)
	bridge.SetStockfishPath(filepath.Join(t.TempDir(), "missing"))

	results, err := bridge.BestMoves(context.Background(), []string{startFEN, startFEN}, 0)

	require.NoError(t, err)
	require.Equal(t, []string{"bad_path", "bad_path"}, results)
}

func TestBestMoves_CancelledStartsNoEngine(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Mock engines are POSIX shell scripts")
	}

	dir := t.TempDir()
	started := filepath.Join(dir, "started")
	path := filepath.Join(dir, "mockfish")
	script := fmt.Sprintf("#!/bin/sh\necho run >> %q\nexit 0\n", started)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	bridge := newTestBridge(t, WithStockfishPath(path))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := bridge.BestMoves(ctx, []string{startFEN, startFEN, startFEN}, 1)

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []string{"", "", ""}, results)
	require.NoFileExists(t, started)
}

func TestPackageLevel_SetStockfishPath(t *testing.T) {
	t.Cleanup(func() { SetStockfishPath("") })

	missing := filepath.Join(t.TempDir(), "stockfish")
	SetStockfishPath(missing)

	path, source := defaultBridge.ResolvePath()
	require.Equal(t, missing, path)
	require.Equal(t, PathSourceOverride, source)

	require.Equal(t, ResultBadPath.String(), GetBestMove(startFEN))
}
