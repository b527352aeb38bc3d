//go:build unix

package subprocess

import (
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
)

// clearInherit sets FD_CLOEXEC on fd.
func clearInherit(fd uintptr) error {
	_, err := unix.FcntlInt(fd, unix.F_SETFD, unix.FD_CLOEXEC)

	return err
}

// bytesAvailable reports how many bytes can be read from fd without blocking.
// A hung-up pipe with nothing left to read is reported as ErrPipeClosed.
func bytesAvailable(fd uintptr) (int, error) {
	n, err := unix.IoctlGetInt(int(fd), unix.FIONREAD)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		return n, nil
	}

	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	if _, err := unix.Poll(fds, 0); err != nil {
		if err == unix.EINTR {
			return 0, nil
		}

		return 0, err
	}

	if fds[0].Revents == 0 {
		return 0, nil
	}

	// Data may have landed between the ioctl and the poll.
	if n, err = unix.IoctlGetInt(int(fd), unix.FIONREAD); err == nil && n > 0 {
		return n, nil
	}

	// Readable with zero bytes buffered means EOF.
	return 0, errors.ErrPipeClosed
}

// configureCommand applies platform process attributes. Nothing is needed on unix.
func configureCommand(_ *exec.Cmd) {}
