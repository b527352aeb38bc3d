// Package httpapi exposes the engine bridge over HTTP.
//
// Routes:
//   - GET  /health              liveness check
//   - GET  /bestmove?fen=...    one engine call
//   - POST /bestmoves           {"positions":[...]} analysed concurrently, at most 16
//
// A sentinel result (bad_path, no_move, ...) is answered with 422 and the
// code in the "result" field, so clients never have to parse error text.
//
// Positions are screened before any engine starts: control characters or an
// unparseable FEN answer 400 with "invalid_fen" (and the offending "index"
// for a batch).
//
// Each request is bounded by the engine's worst-case call budget times the
// number of sequential waves it needs, plus a small slack. A request that
// overruns it answers 504 rather than reporting partial results.
package httpapi
