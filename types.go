package stockfishbridge

import (
	"github.com/wagiedev/stockfish-bridge-go/internal/config"
	"github.com/wagiedev/stockfish-bridge-go/internal/discovery"
	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
)

// Re-export types from internal packages

// ===== Options and Configuration =====

// Options configures a Bridge.
type Options = config.Options

// Timeouts holds the per-phase deadlines of a single call.
type Timeouts = config.Timeouts

// PathSource identifies where a resolved engine path came from.
type PathSource = discovery.Source

// Path sources, in precedence order.
const (
	PathSourceOverride = discovery.SourceOverride
	PathSourceEnv      = discovery.SourceEnv
	PathSourceSidecar  = discovery.SourceSidecar
	PathSourceFallback = discovery.SourceFallback
)

// ===== Result Codes =====

// ResultCode is either a sentinel failure code or a literal move token.
type ResultCode = errors.ResultCode

// Sentinel result codes returned by GetBestMove in place of a move.
const (
	ResultBadPath      = errors.CodeBadPath
	ResultPipeFail     = errors.CodePipeFail
	ResultLaunchFailed = errors.CodeLaunchFailed
	ResultWriteFail    = errors.CodeWriteFail
	ResultNoMove       = errors.CodeNoMove
	ResultBadMove      = errors.CodeBadMove
)

// ResultCodeOf maps an error returned by BestMove to the code GetBestMove would return.
func ResultCodeOf(err error) ResultCode {
	return errors.CodeOf(err)
}

// IsMove reports whether result is a move token rather than a sentinel code.
func IsMove(result string) bool {
	return result != "" && !ResultCode(result).IsSentinel()
}
