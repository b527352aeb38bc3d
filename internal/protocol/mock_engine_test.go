package protocol

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockEngine describes a shell-script stand-in for a UCI engine.
// Empty replies mean the engine stays silent for that command.
type mockEngine struct {
	OnUCI     string
	OnIsReady string
	OnGo      string
	// IgnoreQuit keeps the script running after "quit".
	IgnoreQuit bool
}

// cooperativeEngine answers every phase and suggests e2e4.
func cooperativeEngine() mockEngine {
	return mockEngine{
		OnUCI:     "echo 'id name MockFish'; echo 'id author test'; echo uciok",
		OnIsReady: "echo readyok",
		OnGo:      "echo 'info depth 1 score cp 20 pv e2e4'; echo 'bestmove e2e4 ponder e7e5'",
	}
}

type mockInstall struct {
	Path    string
	LogPath string
	PidPath string
}

// Received returns every line the engine read from stdin so far.
func (m mockInstall) Received(t *testing.T) []string {
	t.Helper()

	data, err := os.ReadFile(m.LogPath)
	if os.IsNotExist(err) {
		return nil
	}

	require.NoError(t, err)

	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

// install writes the script into a temp dir.
func (m mockEngine) install(t *testing.T) mockInstall {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("Mock engines are POSIX shell scripts")
	}

	dir := t.TempDir()
	inst := mockInstall{
		Path:    filepath.Join(dir, "mockfish"),
		LogPath: filepath.Join(dir, "received.log"),
		PidPath: filepath.Join(dir, "engine.pid"),
	}

	quit := "exit 0"
	if m.IgnoreQuit {
		quit = ":"
	}

	script := fmt.Sprintf(`#!/bin/sh
echo $$ > '%s'
while IFS= read -r line; do
  echo "$line" >> '%s'
  case "$line" in
    uci) %s ;;
    isready) %s ;;
    go*) %s ;;
    quit) %s ;;
  esac
done
`, inst.PidPath, inst.LogPath, or(m.OnUCI, ":"), or(m.OnIsReady, ":"), or(m.OnGo, ":"), quit)

	require.NoError(t, os.WriteFile(inst.Path, []byte(script), 0o755))

	return inst
}

// installScript writes an arbitrary shell script as the engine.
func installScript(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("Mock engines are POSIX shell scripts")
	}

	path := filepath.Join(t.TempDir(), "mockfish")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	return path
}
