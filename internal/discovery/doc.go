// Package discovery resolves and validates the path of the UCI engine executable.
//
// The Resolver returns the first non-empty candidate in the following order:
//  1. The explicit override in Config.Override (set by SetStockfishPath)
//  2. The STOCKFISH_PATH environment variable
//  3. The first line of stockfish_path.txt beside the running executable
//  4. A fallback constant (C:\ChessEngines\Stockfish\stockfish.exe on windows,
//     /usr/local/bin/stockfish elsewhere)
//
// Usage:
//
//	resolver := discovery.NewResolver(&discovery.Config{
//	    Override: "",           // Optional explicit path
//	    Logger:   slog.Default(),
//	})
//	path, source := resolver.Resolve()
//	if err := discovery.Validate(path); err != nil {
//	    // bad_path
//	}
//
// Resolution itself never touches the candidate file; Validate is the single
// place where existence is checked, and it always checks the resolved path.
package discovery
