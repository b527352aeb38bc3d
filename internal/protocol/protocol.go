package protocol

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/stockfish-bridge-go/internal/config"
	"github.com/wagiedev/stockfish-bridge-go/internal/discovery"
	"github.com/wagiedev/stockfish-bridge-go/internal/errors"
)

// Phase names used in logs and error wrapping.
const (
	PhaseEngineReady = "engine-ready"
	PhaseSearchReady = "search-ready"
	PhaseQuery       = "query"
	PhaseAnswer      = "answer"
)

// Driver runs the UCI handshake-and-query sequence against a fresh engine
// process per call. A Driver holds no per-call state and is safe for
// concurrent use; every Run owns its own process and pipes.
type Driver struct {
	log      *slog.Logger
	timeouts config.Timeouts
	moveTime time.Duration
}

// NewDriver creates a protocol driver. Zero timeouts and move time fall
// back to the config defaults.
func NewDriver(log *slog.Logger, timeouts config.Timeouts, moveTime time.Duration) *Driver {
	if moveTime <= 0 {
		moveTime = config.DefaultMoveTime
	}

	return &Driver{
		log:      log.With("component", "protocol"),
		timeouts: timeouts.WithDefaults(),
		moveTime: moveTime,
	}
}

// Timeouts returns the effective phase deadlines.
func (d *Driver) Timeouts() config.Timeouts { return d.timeouts }

// Run validates path, spawns the engine, performs the handshake, submits
// position and waits for the answer.
//
// The returned error is one of the typed errors from internal/errors (or
// wraps ErrNoMove); use errors.CodeOf to map it to a result code. Engine
// resources are released before Run returns on every path.
//
// Cancelling ctx ends the current polling phase early, exactly as its
// deadline would.
func (d *Driver) Run(ctx context.Context, path, position string) (string, error) {
	log := d.log.With("call_id", ulid.Make().String())

	if err := discovery.Validate(path); err != nil {
		log.Warn("Engine path rejected", "path", path, "error", err)

		return "", err
	}

	s, err := openSession(log, path)
	if err != nil {
		return "", err
	}
	defer s.release()

	log.Info("Engine started", "path", path, "pid", s.proc.Pid())

	if err := d.handshake(ctx, s, PhaseEngineReady, CmdUCI, MarkerUCIOK, d.timeouts.EngineReady); err != nil {
		return "", err
	}

	if err := d.handshake(ctx, s, PhaseSearchReady, CmdIsReady, MarkerReadyOK, d.timeouts.SearchReady); err != nil {
		return "", err
	}

	if err := s.send(QueryCommand(position, d.moveTime)); err != nil {
		log.Error("Failed to submit query", "error", err)

		return "", fmt.Errorf("%s: %w", PhaseQuery, err)
	}

	move, err := d.awaitAnswer(ctx, s)

	d.shutdown(s)

	if err != nil {
		log.Warn("No usable answer from engine", "result", errors.CodeOf(err), "error", err)

		return "", err
	}

	log.Info("Engine answered", "move", move)

	return move, nil
}

// handshake writes command and waits for marker. Only a write failure is
// fatal; a missing marker is logged and the sequence carries on.
func (d *Driver) handshake(
	ctx context.Context,
	s *session,
	phase, command, marker string,
	timeout time.Duration,
) error {
	if err := s.send(command); err != nil {
		s.log.Error("Handshake write failed", "phase", phase, "error", err)

		return fmt.Errorf("%s: %w", phase, err)
	}

	st := NewHandshakeState(phase, timeout)
	if d.poll(ctx, s, st, func(st *HandshakeState) bool { return st.Contains(marker) }) {
		s.log.Debug("Handshake phase complete", "phase", phase)

		return nil
	}

	s.log.Warn("Handshake marker not seen, continuing", "phase", phase, "marker", marker)

	return nil
}

// awaitAnswer polls for "bestmove <token>" until the answer deadline.
func (d *Driver) awaitAnswer(ctx context.Context, s *session) (string, error) {
	st := NewHandshakeState(PhaseAnswer, d.timeouts.Answer)

	// A token without its terminator keeps polling: an engine that stays
	// alive after "bestmove e2e4" with no newline costs the whole window.
	d.poll(ctx, s, st, func(st *HandshakeState) bool {
		_, found, complete := FindBestMove(st.String())

		return found && complete
	})

	// An unterminated token is taken as it stands once polling has stopped.
	token, found, _ := FindBestMove(st.String())
	if !found {
		return "", fmt.Errorf("%s: %w", PhaseAnswer, errors.ErrNoMove)
	}

	return ValidateMove(token)
}

// shutdown asks the engine to quit and gives it a short grace period.
// Both steps are best effort; release kills whatever is left.
func (d *Driver) shutdown(s *session) {
	if err := s.send(CmdQuit); err != nil {
		s.log.Debug("Quit command not delivered", "error", err)
	}

	if !s.proc.WaitExit(d.timeouts.ShutdownGrace) {
		s.log.Debug("Engine still running after grace period", "grace", d.timeouts.ShutdownGrace)
	}
}

// poll appends engine output to st until done reports true, the phase
// deadline passes, ctx ends or the output pipe fails. It reports whether
// done was satisfied.
func (d *Driver) poll(
	ctx context.Context,
	s *session,
	st *HandshakeState,
	done func(*HandshakeState) bool,
) bool {
	for !st.Expired() {
		if err := s.stdout.Read.ReadAvailableAppend(st.Buffer()); err != nil {
			s.log.Debug("Stopped polling after read error", "phase", st.Phase(), "error", err)

			return false
		}

		if done(st) {
			return true
		}

		if !sleepCtx(ctx, d.timeouts.PollInterval) {
			s.log.Debug("Polling interrupted by context", "phase", st.Phase(), "error", ctx.Err())

			return false
		}
	}

	return false
}

// sleepCtx sleeps for d or until ctx is done. It reports whether the full
// sleep elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
