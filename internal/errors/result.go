package errors

import "errors"

// ResultCode is the string handed back across the GetBestMove boundary.
// It is either one of the sentinel codes below or a literal move token.
type ResultCode string

// Sentinel result codes.
const (
	CodeBadPath      ResultCode = "bad_path"
	CodePipeFail     ResultCode = "pipe_fail"
	CodeLaunchFailed ResultCode = "launch_failed"
	CodeWriteFail    ResultCode = "write_fail"
	CodeNoMove       ResultCode = "no_move"
	CodeBadMove      ResultCode = "bad_move"
)

// sentinels lists every non-move code.
var sentinels = map[ResultCode]struct{}{
	CodeBadPath:      {},
	CodePipeFail:     {},
	CodeLaunchFailed: {},
	CodeWriteFail:    {},
	CodeNoMove:       {},
	CodeBadMove:      {},
}

// IsSentinel reports whether code is a failure code rather than a move token.
func (c ResultCode) IsSentinel() bool {
	_, ok := sentinels[c]

	return ok
}

// String returns the code as a plain string.
func (c ResultCode) String() string { return string(c) }

// CodeOf maps an error produced by the bridge to its result code.
//
// Errors that carry no code of their own (including ErrNoMove and context
// errors ending the answer phase) map to CodeNoMove.
func CodeOf(err error) ResultCode {
	if err == nil {
		return ""
	}

	if be, ok := errors.AsType[BridgeError](err); ok {
		return be.ResultCode()
	}

	return CodeNoMove
}
