//go:build linux

package subprocess

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func cloexecFlag(t *testing.T, e *Endpoint) int {
	t.Helper()

	rc, err := e.File().SyscallConn()
	require.NoError(t, err)

	var (
		flags    int
		fcntlErr error
	)

	require.NoError(t, rc.Control(func(fd uintptr) {
		flags, fcntlErr = unix.FcntlInt(fd, unix.F_GETFD, 0)
	}))
	require.NoError(t, fcntlErr)

	return flags & unix.FD_CLOEXEC
}

func TestEndpoint_MarkNonInheritableSetsCloexec(t *testing.T) {
	p := newTestPipe(t)

	// Start from an inheritable descriptor so the flag is set by us.
	rc, err := p.Read.File().SyscallConn()
	require.NoError(t, err)
	require.NoError(t, rc.Control(func(fd uintptr) {
		_, err = unix.FcntlInt(fd, unix.F_SETFD, 0)
	}))
	require.NoError(t, err)
	require.Zero(t, cloexecFlag(t, p.Read))

	require.NoError(t, p.Read.MarkNonInheritable())

	require.NotZero(t, cloexecFlag(t, p.Read))
	require.False(t, p.Read.Inheritable())
}

// TestClearInherit_ReportsFailure tests that an fcntl failure is surfaced.
func TestClearInherit_ReportsFailure(t *testing.T) {
	err := clearInherit(1 << 20)

	require.ErrorIs(t, err, unix.EBADF)
}
