package errors

import (
	"errors"
	"fmt"
)

// BridgeError is the base interface for all bridge errors.
type BridgeError interface {
	error
	IsBridgeError() bool
	ResultCode() ResultCode
}

// Compile-time verification that all error types implement BridgeError.
var (
	_ BridgeError = (*PathInvalidError)(nil)
	_ BridgeError = (*PipeCreationError)(nil)
	_ BridgeError = (*LaunchError)(nil)
	_ BridgeError = (*WriteError)(nil)
	_ BridgeError = (*MalformedMoveError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNoMove indicates the engine did not produce a bestmove before the answer deadline.
	ErrNoMove = errors.New("no bestmove received")

	// ErrPipeClosed indicates the engine side of a pipe has gone away.
	ErrPipeClosed = errors.New("pipe closed")
)

// PathInvalidError indicates the resolved engine path is missing or is a directory.
type PathInvalidError struct {
	Path   string
	Reason string
}

func (e *PathInvalidError) Error() string {
	return fmt.Sprintf("invalid engine path %q: %s", e.Path, e.Reason)
}

// IsBridgeError implements BridgeError.
func (e *PathInvalidError) IsBridgeError() bool { return true }

// ResultCode implements BridgeError.
func (e *PathInvalidError) ResultCode() ResultCode { return CodeBadPath }

// PipeCreationError indicates the OS could not allocate a pipe.
type PipeCreationError struct {
	Err error
}

func (e *PipeCreationError) Error() string {
	return fmt.Sprintf("create pipe: %v", e.Err)
}

func (e *PipeCreationError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *PipeCreationError) IsBridgeError() bool { return true }

// ResultCode implements BridgeError.
func (e *PipeCreationError) ResultCode() ResultCode { return CodePipeFail }

// LaunchError indicates the engine process could not be started.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch engine %q: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *LaunchError) IsBridgeError() bool { return true }

// ResultCode implements BridgeError.
func (e *LaunchError) ResultCode() ResultCode { return CodeLaunchFailed }

// WriteError indicates a command could not be written to the engine in full.
// Partial delivery is never assumed.
type WriteError struct {
	Command string
	Written int
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q to engine (%d bytes written): %v", e.Command, e.Written, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsBridgeError implements BridgeError.
func (e *WriteError) IsBridgeError() bool { return true }

// ResultCode implements BridgeError.
func (e *WriteError) ResultCode() ResultCode { return CodeWriteFail }

// MalformedMoveError indicates the token after "bestmove" is outside the valid length bound.
type MalformedMoveError struct {
	Token string
}

func (e *MalformedMoveError) Error() string {
	return fmt.Sprintf("malformed bestmove token (%d chars)", len(e.Token))
}

// IsBridgeError implements BridgeError.
func (e *MalformedMoveError) IsBridgeError() bool { return true }

// ResultCode implements BridgeError.
func (e *MalformedMoveError) ResultCode() ResultCode { return CodeBadMove }
