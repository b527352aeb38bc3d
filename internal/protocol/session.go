package protocol

import (
	stderrors "errors"
	"log/slog"

	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
	"github.com/wagiedev/stockfish-bridge-go/internal/subprocess"
)

// session holds every OS resource acquired by one call. Each acquisition
// registers its release; release runs them in reverse order exactly once.
type session struct {
	log       *slog.Logger
	stdin     *subprocess.Pipe
	stdout    *subprocess.Pipe
	proc      *subprocess.EngineProcess
	releasers []func() error
}

// openSession creates both pipes, marks the parent ends non-inheritable,
// spawns the engine and closes the child ends in the parent. On failure
// everything acquired so far is already released.
func openSession(log *slog.Logger, path string) (_ *session, err error) {
	s := &session{log: log}

	defer func() {
		if err != nil {
			s.release()
		}
	}()

	s.stdin, err = subprocess.NewPipe("stdin")
	if err != nil {
		log.Error("Failed to create stdin pipe", "error", err)

		return nil, err
	}

	s.track(s.stdin.Close)

	s.stdout, err = subprocess.NewPipe("stdout")
	if err != nil {
		log.Error("Failed to create stdout pipe", "error", err)

		return nil, err
	}

	s.track(s.stdout.Close)

	for _, end := range []*subprocess.Endpoint{s.stdin.Write, s.stdout.Read} {
		if err = end.MarkNonInheritable(); err != nil {
			log.Error("Failed to mark pipe end non-inheritable", "endpoint", end.Name(), "error", err)

			return nil, &errors.PipeCreationError{Err: err}
		}
	}

	s.proc, err = subprocess.StartEngine(log, path, s.stdin.Read, s.stdout.Write)
	if err != nil {
		return nil, err
	}

	s.track(s.proc.Release)

	// The child owns these now.
	for _, end := range []*subprocess.Endpoint{s.stdin.Read, s.stdout.Write} {
		if closeErr := end.Close(); closeErr != nil {
			log.Warn("Failed to close child end in parent", "endpoint", end.Name(), "error", closeErr)
		}
	}

	return s, nil
}

func (s *session) track(release func() error) {
	s.releasers = append(s.releasers, release)
}

// send writes one command to the engine.
func (s *session) send(command string) error {
	s.log.Debug("Sending command to engine", "command", command)

	return s.stdin.Write.WriteString(command)
}

// release frees every tracked resource. Calling it again is a no-op.
func (s *session) release() {
	var errs []error

	for i := len(s.releasers) - 1; i >= 0; i-- {
		if err := s.releasers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	s.releasers = nil

	if err := stderrors.Join(errs...); err != nil {
		s.log.Warn("Errors while releasing engine resources", "error", err)
	}
}
