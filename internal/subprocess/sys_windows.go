//go:build windows

package subprocess

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
)

// clearInherit clears HANDLE_FLAG_INHERIT on the handle.
func clearInherit(fd uintptr) error {
	return windows.SetHandleInformation(windows.Handle(fd), windows.HANDLE_FLAG_INHERIT, 0)
}

// bytesAvailable peeks the pipe without consuming data.
func bytesAvailable(fd uintptr) (int, error) {
	var avail uint32

	err := windows.PeekNamedPipe(windows.Handle(fd), nil, 0, nil, &avail, nil)
	if err != nil {
		if err == windows.ERROR_BROKEN_PIPE {
			return 0, errors.ErrPipeClosed
		}

		return 0, err
	}

	return int(avail), nil
}

// configureCommand keeps the engine from opening a console window.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}
