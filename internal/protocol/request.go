package protocol

import (
	"strconv"
	"strings"
	"time"

	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
)

// Commands written to the engine.
const (
	CmdUCI     = "uci\n"
	CmdIsReady = "isready\n"
	CmdQuit    = "quit\n"
)

// Markers searched for in the engine output.
const (
	MarkerUCIOK    = "uciok"
	MarkerReadyOK  = "readyok"
	MarkerBestMove = "bestmove "
)

// Move token bounds. The upper bound matches a 64-byte result buffer less
// its terminator and one byte of slack.
const (
	MinMoveLen = 2
	MaxMoveLen = 62
)

// QueryCommand builds the combined position-and-search command.
// The position string is passed through untouched.
func QueryCommand(position string, moveTime time.Duration) string {
	var b strings.Builder

	b.WriteString("position fen ")
	b.WriteString(position)
	b.WriteString("\n")
	b.WriteString("go movetime ")
	b.WriteString(strconv.FormatInt(moveTime.Milliseconds(), 10))
	b.WriteString("\n")

	return b.String()
}

// FindBestMove looks for the answer marker in output.
//
// found reports whether the marker is present. complete reports whether the
// token after it has been terminated by a space, CR or LF; an unterminated
// token may still be growing.
func FindBestMove(output string) (token string, found, complete bool) {
	idx := strings.Index(output, MarkerBestMove)
	if idx < 0 {
		return "", false, false
	}

	rest := output[idx+len(MarkerBestMove):]

	end := strings.IndexAny(rest, " \r\n")
	if end < 0 {
		return rest, true, false
	}

	return rest[:end], true, true
}

// ValidateMove enforces the token length bound.
func ValidateMove(token string) (string, error) {
	if len(token) < MinMoveLen || len(token) > MaxMoveLen {
		return "", &errors.MalformedMoveError{Token: token}
	}

	return token, nil
}
