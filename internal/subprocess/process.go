package subprocess

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
)

// State is the liveness of an engine process.
type State int32

const (
	// StateRunning means the process has been started and not yet reaped.
	StateRunning State = iota
	// StateExited means the process has exited and been reaped.
	StateExited
)

func (s State) String() string {
	if s == StateExited {
		return "exited"
	}

	return "running"
}

// EngineProcess is a spawned engine child. Only the call that spawned it owns it.
type EngineProcess struct {
	log     *slog.Logger
	cmd     *exec.Cmd
	state   atomic.Int32
	exited  chan struct{}
	waitErr error

	releaseOnce sync.Once
	releaseErr  error
}

// StartEngine launches path with stdin wired to stdin and both stdout and
// stderr wired to output. The caller keeps ownership of the endpoints and
// must close its copies of them once StartEngine returns.
func StartEngine(log *slog.Logger, path string, stdin, output *Endpoint) (*EngineProcess, error) {
	//nolint:gosec // G204: launching the configured engine binary is the whole point
	cmd := exec.Command(path)
	cmd.Stdin = stdin.File()
	cmd.Stdout = output.File()
	cmd.Stderr = output.File()
	configureCommand(cmd)

	if err := cmd.Start(); err != nil {
		log.Error("Failed to start engine process", "path", path, "error", err)

		return nil, &errors.LaunchError{Path: path, Err: err}
	}

	p := &EngineProcess{
		log:    log,
		cmd:    cmd,
		exited: make(chan struct{}),
	}

	go p.reap()

	log.Debug("Engine process started", "pid", cmd.Process.Pid)

	return p, nil
}

// reap waits for the process and records its exit. Wait also releases the
// OS process handle.
func (p *EngineProcess) reap() {
	p.waitErr = p.cmd.Wait()
	p.state.Store(int32(StateExited))
	close(p.exited)
}

// Pid returns the OS process id.
func (p *EngineProcess) Pid() int {
	return p.cmd.Process.Pid
}

// State returns the current liveness state.
func (p *EngineProcess) State() State {
	return State(p.state.Load())
}

// Exited is closed once the process has been reaped.
func (p *EngineProcess) Exited() <-chan struct{} {
	return p.exited
}

// WaitExit waits up to timeout for the process to exit on its own.
func (p *EngineProcess) WaitExit(timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.exited:
		return true
	case <-timer.C:
		return false
	}
}

// ExitError returns the result of Wait. It is only meaningful after Exited is closed.
func (p *EngineProcess) ExitError() error {
	select {
	case <-p.exited:
		return p.waitErr
	default:
		return nil
	}
}

// Release kills the process if it is still running and waits until it has
// been reaped. Calling it again is a no-op.
func (p *EngineProcess) Release() error {
	p.releaseOnce.Do(func() {
		if p.State() == StateRunning {
			p.log.Debug("Killing engine process", "pid", p.Pid())

			if err := p.cmd.Process.Kill(); err != nil && !stderrors.Is(err, os.ErrProcessDone) {
				p.releaseErr = fmt.Errorf("kill engine process (pid %d): %w", p.Pid(), err)

				return
			}
		}

		<-p.exited
	})

	return p.releaseErr
}
