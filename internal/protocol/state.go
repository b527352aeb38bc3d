package protocol

import (
	"bytes"
	"strings"
	"time"
)

// HandshakeState accumulates engine output for one polling phase.
type HandshakeState struct {
	phase    string
	buf      bytes.Buffer
	deadline time.Time
}

// NewHandshakeState starts a phase that expires after timeout.
func NewHandshakeState(phase string, timeout time.Duration) *HandshakeState {
	return &HandshakeState{
		phase:    phase,
		deadline: time.Now().Add(timeout),
	}
}

// Phase returns the phase name.
func (h *HandshakeState) Phase() string { return h.phase }

// Expired reports whether the deadline has passed.
func (h *HandshakeState) Expired() bool {
	return !time.Now().Before(h.deadline)
}

// Buffer exposes the accumulator for appending reads.
func (h *HandshakeState) Buffer() *bytes.Buffer { return &h.buf }

// String returns everything accumulated so far.
func (h *HandshakeState) String() string { return h.buf.String() }

// Contains reports whether marker has been seen.
func (h *HandshakeState) Contains(marker string) bool {
	return strings.Contains(h.buf.String(), marker)
}
