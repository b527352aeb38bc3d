// Package stockfishbridge asks an external UCI chess engine (typically
// Stockfish) for the best move in a position.
//
// Every call is self-contained: it spawns a fresh engine process, performs the
// uci/isready handshake, sends the position with a fixed move time, waits for
// the "bestmove" line, asks the engine to quit and releases every pipe and the
// process before returning. Nothing is pooled between calls.
//
// # Basic Usage
//
// GetBestMove returns either a move token or one of the sentinel result codes:
//
//	stockfishbridge.SetStockfishPath("/usr/local/bin/stockfish")
//
//	result := stockfishbridge.GetBestMove("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
//	if !stockfishbridge.IsMove(result) {
//	    log.Fatalf("engine failed: %s", result)
//	}
//
//	fmt.Println(result) // e.g. "e2e4"
//
// # Typed Errors
//
// Bridge.BestMove returns the same outcome as a Go error. Use errors.As (or
// ResultCodeOf) to tell failures apart:
//
//	bridge := stockfishbridge.New(
//	    stockfishbridge.WithLogger(logger),
//	    stockfishbridge.WithMoveTime(time.Second),
//	)
//
//	move, err := bridge.BestMove(ctx, fen)
//	if _, ok := errors.AsType[*stockfishbridge.PathInvalidError](err); ok {
//	    // fix the engine path
//	}
//
// # Engine Path
//
// The engine path is resolved on every call, first match wins:
//
//  1. The path set with SetStockfishPath (or WithStockfishPath)
//  2. The STOCKFISH_PATH environment variable
//  3. The first line of stockfish_path.txt beside the running executable
//  4. A platform fallback (C:\ChessEngines\Stockfish\stockfish.exe on windows,
//     /usr/local/bin/stockfish elsewhere)
//
// # Result Codes
//
//   - bad_path: the resolved path does not exist or is a directory
//   - pipe_fail: the OS could not allocate or configure a pipe
//   - launch_failed: the engine process could not be started
//   - write_fail: a command could not be written to the engine in full
//   - no_move: the engine did not answer "bestmove" in time
//   - bad_move: the engine answered with a token of implausible length
package stockfishbridge
