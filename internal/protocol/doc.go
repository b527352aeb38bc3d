// Package protocol drives one UCI engine call end to end.
//
// A call moves through fixed phases, each bounded by its own deadline:
//
//	validate     resolved path exists and is not a directory   -> bad_path
//	spawn        two pipes, engine launched on them            -> pipe_fail / launch_failed
//	engine-ready "uci"      until "uciok"    (3s, best effort)
//	search-ready "isready"  until "readyok"  (3s, best effort)
//	query        "position fen <pos>" + "go movetime 3000"     -> write_fail
//	answer       until "bestmove <token>"   (10s)              -> no_move / bad_move
//	shutdown     "quit", wait up to 500ms
//	cleanup      every handle released, always
//
// Polling never blocks on the pipe: each attempt peeks for pending bytes,
// reads at most one chunk and sleeps ~10ms when the marker is still missing.
//
// Example usage:
//
//	driver := protocol.NewDriver(log, config.Timeouts{}, 0)
//	move, err := driver.Run(ctx, "/usr/local/bin/stockfish", fen)
//	code := errors.CodeOf(err) // when err != nil
package protocol
