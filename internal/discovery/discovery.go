package discovery

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
)

const (
	// EnvVar is the environment variable consulted after the explicit override.
	EnvVar = "STOCKFISH_PATH"

	// SidecarFile is the file read from the sidecar directory.
	SidecarFile = "stockfish_path.txt"

	// WindowsFallbackPath is the last-resort engine location on windows.
	WindowsFallbackPath = `C:\ChessEngines\Stockfish\stockfish.exe`

	// UnixFallbackPath is the last-resort engine location everywhere else.
	UnixFallbackPath = "/usr/local/bin/stockfish"
)

// Source identifies where a resolved path came from.
type Source string

const (
	SourceOverride Source = "override"
	SourceEnv      Source = "env"
	SourceSidecar  Source = "sidecar"
	SourceFallback Source = "fallback"
)

// Config holds configuration for engine path resolution.
type Config struct {
	// Override is the explicit path set by the caller. It wins over every other source.
	Override string

	// LookupEnv reads environment variables. If nil, os.LookupEnv is used.
	LookupEnv func(key string) (string, bool)

	// SidecarDir is the directory holding stockfish_path.txt.
	// If empty, the directory of the running executable is used.
	SidecarDir string

	// FallbackPath replaces the built-in fallback constant when set.
	FallbackPath string

	// Logger is an optional logger for resolution steps.
	// If nil, a default no-op logger is used.
	Logger *slog.Logger
}

// Resolver yields the engine executable path.
type Resolver interface {
	// Resolve returns the first non-empty path by precedence and the source it came from.
	// It never fails: the fallback constant is always available.
	Resolve() (string, Source)
}

// resolver implements the Resolver interface.
type resolver struct {
	cfg *Config
	log *slog.Logger
}

// Compile-time verification that resolver implements Resolver.
var _ Resolver = (*resolver)(nil)

// NewResolver creates a new path resolver with the given configuration.
func NewResolver(cfg *Config) Resolver {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	}

	return &resolver{
		cfg: cfg,
		log: log,
	}
}

// Resolve walks override, environment, sidecar file and fallback in that order.
func (r *resolver) Resolve() (string, Source) {
	if r.cfg.Override != "" {
		r.log.Debug("Using explicit engine path", "path", r.cfg.Override)

		return r.cfg.Override, SourceOverride
	}

	lookup := r.cfg.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvVar); ok && v != "" {
		r.log.Debug("Using engine path from environment", "env", EnvVar, "path", v)

		return v, SourceEnv
	}

	if p := r.readSidecar(); p != "" {
		r.log.Debug("Using engine path from sidecar file", "path", p)

		return p, SourceSidecar
	}

	fallback := r.cfg.FallbackPath
	if fallback == "" {
		fallback = DefaultFallbackPath()
	}

	r.log.Debug("Using fallback engine path", "path", fallback)

	return fallback, SourceFallback
}

// readSidecar returns the trimmed first line of the sidecar file, or "".
func (r *resolver) readSidecar() string {
	dir := r.cfg.SidecarDir
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			r.log.Debug("Cannot locate executable for sidecar lookup", "error", err)

			return ""
		}

		dir = filepath.Dir(exe)
	}

	name := filepath.Join(dir, SidecarFile)

	f, err := os.Open(name)
	if err != nil {
		r.log.Debug("No sidecar file", "path", name)

		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ""
	}

	return strings.Trim(scanner.Text(), " \t\r\n")
}

// DefaultFallbackPath returns the built-in fallback for the current OS.
func DefaultFallbackPath() string {
	if runtime.GOOS == "windows" {
		return WindowsFallbackPath
	}

	return UnixFallbackPath
}

// Validate checks that path exists and is not a directory.
func Validate(path string) error {
	if path == "" {
		return &errors.PathInvalidError{Path: path, Reason: "empty path"}
	}

	info, err := os.Stat(path)
	if err != nil {
		return &errors.PathInvalidError{Path: path, Reason: fmt.Sprintf("stat: %v", err)}
	}

	if info.IsDir() {
		return &errors.PathInvalidError{Path: path, Reason: "is a directory"}
	}

	return nil
}
