// Command stockfishbridge asks a UCI engine for moves from the command line,
// or serves the bridge over HTTP or MCP.
//
// Usage:
//
//	stockfishbridge [move] [-fen FEN] [-moves "e2e4 e7e5"] [-engine PATH] [-san]
//	stockfishbridge http [-addr :8080] [-engine PATH]
//	stockfishbridge mcp [-engine PATH]
//
// A .env file in the working directory is loaded first, so STOCKFISH_PATH
// and LOG_LEVEL can live there.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	stockfishbridge "github.com/wagiedev/stockfish-bridge-go"
	"github.com/wagiedev/stockfish-bridge-go/internal/httpapi"
	"github.com/wagiedev/stockfish-bridge-go/internal/mcp"
	"github.com/wagiedev/stockfish-bridge-go/internal/position"
)

const version = "0.1.0"

// Exit codes.
const (
	exitOK       = 0
	exitSentinel = 1
	exitUsage    = 2
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log := stockfishbridge.NewTextLogger(stderr, logLevel())

	cmd := "move"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "move":
		return runMove(ctx, log, args, stdout, stderr)
	case "http":
		return runHTTP(ctx, log, args, stderr)
	case "mcp":
		return runMCP(ctx, log, args, stderr)
	case "version":
		fmt.Fprintln(stdout, version)

		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q (want move, http, mcp or version)\n", cmd)

		return exitUsage
	}
}

// logLevel reads LOG_LEVEL (debug, info, warn, error); the default is warn
// so that stdout and stderr stay quiet for scripting.
func logLevel() slog.Level {
	level := slog.LevelWarn

	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			level = slog.LevelWarn
		}
	}

	return level
}

// engineFlags registers the flags shared by every subcommand.
type engineFlags struct {
	engine   string
	moveTime time.Duration
}

func (f *engineFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.engine, "engine", "", "engine executable (overrides STOCKFISH_PATH)")
	fs.DurationVar(&f.moveTime, "movetime", 0, "search time per move (default 3s)")
}

func (f *engineFlags) bridge(log *slog.Logger) *stockfishbridge.Bridge {
	return stockfishbridge.New(
		stockfishbridge.WithLogger(log),
		stockfishbridge.WithStockfishPath(f.engine),
		stockfishbridge.WithMoveTime(f.moveTime),
	)
}

func runMove(ctx context.Context, log *slog.Logger, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		ef    engineFlags
		fen   = fs.String("fen", "", "position in FEN (default: the starting position)")
		moves = fs.String("moves", "", "UCI moves to play first, separated by spaces or commas")
		san   = fs.Bool("san", false, "also print the move in SAN")
	)

	ef.register(fs)

	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}

	target := *fen
	if target == "" {
		target = position.StartFEN
	}

	if *moves != "" {
		var err error

		if *fen == "" {
			target, err = position.FromMoves(splitMoves(*moves))
		} else {
			target, err = position.Apply(*fen, splitMoves(*moves))
		}

		if err != nil {
			fmt.Fprintf(stderr, "invalid -moves: %v\n", err)

			return exitUsage
		}
	}

	bridge := ef.bridge(log)

	path, source := bridge.ResolvePath()
	log.Info("Using engine", "path", path, "source", source)

	move, err := bridge.BestMove(ctx, target)
	if err != nil {
		log.Error("Engine call failed", "error", err)
		fmt.Fprintln(stdout, stockfishbridge.ResultCodeOf(err))

		return exitSentinel
	}

	if !*san {
		fmt.Fprintln(stdout, move)

		return exitOK
	}

	notation, err := position.SAN(target, move)
	if err != nil {
		log.Warn("Could not render SAN", "move", move, "error", err)
		fmt.Fprintln(stdout, move)

		return exitOK
	}

	fmt.Fprintf(stdout, "%s %s\n", move, notation)

	return exitOK
}

func runHTTP(ctx context.Context, log *slog.Logger, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("http", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var ef engineFlags

	addr := fs.String("addr", envOr("BRIDGE_ADDR", ":8080"), "listen address")
	batchLimit := fs.Int("batch-limit", httpapi.DefaultBatchLimit, "engines run at once for POST /bestmoves")

	ef.register(fs)

	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}

	srv := httpapi.New(log, ef.bridge(log), *batchLimit)

	if err := srv.ListenAndServe(ctx, *addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("HTTP server exited", "error", err)

		return exitSentinel
	}

	return exitOK
}

func runMCP(ctx context.Context, log *slog.Logger, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var ef engineFlags

	ef.register(fs)

	if err := fs.Parse(args); err != nil {
		return parseExit(err)
	}

	srv := mcp.NewServer(log, ef.bridge(log), version)

	if err := srv.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("MCP server exited", "error", err)

		return exitSentinel
	}

	return exitOK
}

// parseExit maps a flag parse error to an exit code; -h is not a failure.
func parseExit(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}

	return exitUsage
}

func splitMoves(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
