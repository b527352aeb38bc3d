package subprocess

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
)

// ReadChunkSize caps a single read from the engine output pipe.
const ReadChunkSize = 2048

// Endpoint is one end of a pipe. Close is idempotent.
type Endpoint struct {
	name string
	file *os.File

	mu          sync.Mutex
	closed      bool
	inheritable bool
}

func newEndpoint(name string, f *os.File) *Endpoint {
	return &Endpoint{name: name, file: f, inheritable: true}
}

// Name returns the diagnostic name of the endpoint (e.g. "stdin.write").
func (e *Endpoint) Name() string { return e.name }

// File returns the underlying file. It is only meant for handing the child
// end to exec.Cmd.
func (e *Endpoint) File() *os.File { return e.file }

// Inheritable reports whether the endpoint may still be captured by a child.
func (e *Endpoint) Inheritable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.inheritable
}

// Closed reports whether Close has been called.
func (e *Endpoint) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.closed
}

// Close releases the endpoint. Calling it again is a no-op.
func (e *Endpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.file == nil {
		return nil
	}

	e.closed = true

	if err := e.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", e.name, err)
	}

	return nil
}

// MarkNonInheritable clears the inherit flag so later spawns in this process
// do not duplicate the endpoint. Only parent-retained ends are marked.
func (e *Endpoint) MarkNonInheritable() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("mark %s non-inheritable: %w", e.name, os.ErrClosed)
	}

	rc, err := e.file.SyscallConn()
	if err != nil {
		return fmt.Errorf("mark %s non-inheritable: %w", e.name, err)
	}

	var opErr error

	if err := rc.Control(func(fd uintptr) { opErr = clearInherit(fd) }); err != nil {
		return fmt.Errorf("mark %s non-inheritable: %w", e.name, err)
	}

	if opErr != nil {
		return fmt.Errorf("mark %s non-inheritable: %w", e.name, opErr)
	}

	e.inheritable = false

	return nil
}

// Write performs one blocking write of the whole buffer.
// A short write is reported as a WriteError; nothing is retried.
func (e *Endpoint) Write(data []byte) error {
	command := strings.TrimSpace(string(data))

	if e.Closed() {
		return &errors.WriteError{Command: command, Err: os.ErrClosed}
	}

	n, err := e.file.Write(data)
	if err == nil && n != len(data) {
		err = io.ErrShortWrite
	}

	if err != nil {
		return &errors.WriteError{Command: command, Written: n, Err: err}
	}

	return nil
}

// WriteString is Write for string commands.
func (e *Endpoint) WriteString(s string) error {
	return e.Write([]byte(s))
}

// ReadAvailableAppend appends whatever the pipe holds right now to acc.
//
// It never blocks: when no bytes are buffered it returns nil and leaves acc
// untouched. Otherwise it performs a single read of at most ReadChunkSize
// bytes. A non-nil error means the pipe is broken or closed, not that data
// is merely absent.
func (e *Endpoint) ReadAvailableAppend(acc *bytes.Buffer) error {
	if e.Closed() {
		return fmt.Errorf("read %s: %w", e.name, errors.ErrPipeClosed)
	}

	rc, err := e.file.SyscallConn()
	if err != nil {
		return fmt.Errorf("read %s: %w", e.name, err)
	}

	var (
		avail int
		opErr error
	)

	if err := rc.Control(func(fd uintptr) { avail, opErr = bytesAvailable(fd) }); err != nil {
		return fmt.Errorf("peek %s: %w", e.name, err)
	}

	if opErr != nil {
		return fmt.Errorf("peek %s: %w", e.name, opErr)
	}

	if avail == 0 {
		return nil
	}

	buf := make([]byte, min(avail, ReadChunkSize))

	n, err := e.file.Read(buf)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return fmt.Errorf("read %s: %w", e.name, errors.ErrPipeClosed)
		}

		return fmt.Errorf("read %s: %w", e.name, err)
	}

	acc.Write(buf[:n])

	return nil
}

// Pipe is a unidirectional byte channel.
type Pipe struct {
	Read  *Endpoint
	Write *Endpoint
}

// NewPipe allocates one OS pipe. Both ends start out inheritable.
func NewPipe(name string) (*Pipe, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, &errors.PipeCreationError{Err: fmt.Errorf("%s: %w", name, err)}
	}

	return &Pipe{
		Read:  newEndpoint(name+".read", r),
		Write: newEndpoint(name+".write", w),
	}, nil
}

// Close closes both ends.
func (p *Pipe) Close() error {
	return stderrors.Join(p.Write.Close(), p.Read.Close())
}
