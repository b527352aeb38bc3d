package stockfishbridge

import "github.com/wagiedev/stockfish-bridge-go/internal/errors"

// Re-export error types from internal package

// PathInvalidError indicates the resolved engine path is missing or is a directory.
type PathInvalidError = errors.PathInvalidError

// PipeCreationError indicates the OS could not allocate a pipe.
type PipeCreationError = errors.PipeCreationError

// LaunchError indicates the engine process could not be started.
type LaunchError = errors.LaunchError

// WriteError indicates a command could not be written to the engine in full.
type WriteError = errors.WriteError

// MalformedMoveError indicates the engine answered with an out-of-bounds token.
type MalformedMoveError = errors.MalformedMoveError

// BridgeError is the base interface for all bridge errors.
type BridgeError = errors.BridgeError

// Re-export sentinel errors from internal package.
var (
	// ErrNoMove indicates the engine did not answer before the deadline.
	ErrNoMove = errors.ErrNoMove

	// ErrPipeClosed indicates the engine side of a pipe has gone away.
	ErrPipeClosed = errors.ErrPipeClosed
)
