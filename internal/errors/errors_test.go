package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathInvalidError(t *testing.T) {
	err := &PathInvalidError{Path: "/opt/stockfish", Reason: "is a directory"}

	require.Equal(t, `invalid engine path "/opt/stockfish": is a directory`, err.Error())
	require.True(t, err.IsBridgeError())
	require.Equal(t, CodeBadPath, err.ResultCode())
}

func TestPipeCreationError(t *testing.T) {
	root := errors.New("too many open files")
	err := &PipeCreationError{Err: root}

	require.Equal(t, "create pipe: too many open files", err.Error())
	require.ErrorIs(t, err, root)
	require.Equal(t, CodePipeFail, err.ResultCode())
}

func TestLaunchError(t *testing.T) {
	root := errors.New("exec format error")
	err := &LaunchError{Path: "/tmp/engine", Err: root}

	require.Equal(t, `launch engine "/tmp/engine": exec format error`, err.Error())
	require.ErrorIs(t, err, root)
	require.Equal(t, CodeLaunchFailed, err.ResultCode())
}

func TestWriteError(t *testing.T) {
	root := errors.New("broken pipe")
	err := &WriteError{Command: "uci", Written: 0, Err: root}

	require.Equal(t, `write "uci" to engine (0 bytes written): broken pipe`, err.Error())
	require.ErrorIs(t, err, root)
	require.Equal(t, CodeWriteFail, err.ResultCode())
}

func TestMalformedMoveError(t *testing.T) {
	err := &MalformedMoveError{Token: "x"}

	require.Equal(t, "malformed bestmove token (1 chars)", err.Error())
	require.Equal(t, CodeBadMove, err.ResultCode())
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ResultCode
	}{
		{name: "nil", err: nil, want: ""},
		{name: "path", err: &PathInvalidError{Path: "x"}, want: CodeBadPath},
		{name: "wrapped write", err: fmt.Errorf("engine-ready: %w", &WriteError{Command: "uci"}), want: CodeWriteFail},
		{name: "no move", err: fmt.Errorf("answer: %w", ErrNoMove), want: CodeNoMove},
		{name: "malformed", err: &MalformedMoveError{Token: "z"}, want: CodeBadMove},
		{name: "unknown", err: errors.New("surprise"), want: CodeNoMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestResultCode_IsSentinel(t *testing.T) {
	for _, code := range []ResultCode{
		CodeBadPath, CodePipeFail, CodeLaunchFailed, CodeWriteFail, CodeNoMove, CodeBadMove,
	} {
		require.True(t, code.IsSentinel(), code)
	}

	require.False(t, ResultCode("e2e4").IsSentinel())
	require.False(t, ResultCode("e7e8q").IsSentinel())
}
