// Package synth abstracts text-to-speech over multiple backends
// (a native daemon/API, PowerShell+SAPI, and PulseAudio+espeak) and
// selects among them by platform, falling through to a silent no-op
// backend if every candidate fails to initialize.
package synth

import (
	"context"
	"time"
)

// Interruption controls how a new utterance interacts with one already
// speaking.
type Interruption int

const (
	Interrupt Interruption = iota
	Append
)

// InitTimeout bounds how long a backend gets to prove it works before
// selection falls through to the next candidate.
var InitTimeout = 2 * time.Second

// CancelDeadline is the latency budget for Cancel to take effect.
const CancelDeadline = 50 * time.Millisecond

// Backend is one text-to-speech implementation. The state bridge calls
// it under its own mutex, from the event loop goroutine and from the
// cursor-settle timer's goroutine, so calls never overlap but do not
// all come from one goroutine. A Backend may own at most one worker
// goroutine or subprocess internally.
type Backend interface {
	// Name identifies the backend for debug logging.
	Name() string
	// Probe returns nil if the backend is usable on this machine. It
	// must return within InitTimeout or callers will treat it as
	// failed; implementations should respect the passed context.
	Probe(ctx context.Context) error
	Speak(utterance string, mode Interruption) error
	Cancel() error
	SetRate(pct int) error
	SetVolume(pct int) error
	SetVoice(idx int) error
	ListVoices() ([]string, error)
	Close() error
}

// Synth wraps the selected Backend, falling back to silence if none of
// the candidates probed successfully.
type Synth struct {
	backend Backend
	silent  bool
}

// Select probes candidates in order and keeps the first that succeeds.
// If every candidate fails, the returned Synth runs silent: Speak and
// friends are no-ops that return nil.
func Select(candidates []Backend) *Synth {
	for _, b := range candidates {
		ctx, cancel := context.WithTimeout(context.Background(), InitTimeout)
		err := b.Probe(ctx)
		cancel()
		if err == nil {
			return &Synth{backend: b}
		}
	}
	return &Synth{silent: true}
}

// BackendName reports the selected backend's name, or "silent".
func (s *Synth) BackendName() string {
	if s.silent {
		return "silent"
	}
	return s.backend.Name()
}

func (s *Synth) Speak(utterance string, mode Interruption) error {
	if s.silent || utterance == "" {
		return nil
	}
	return s.backend.Speak(utterance, mode)
}

func (s *Synth) Cancel() error {
	if s.silent {
		return nil
	}
	return s.backend.Cancel()
}

func (s *Synth) SetRate(pct int) error {
	if s.silent {
		return nil
	}
	return s.backend.SetRate(clampPct(pct))
}

func (s *Synth) SetVolume(pct int) error {
	if s.silent {
		return nil
	}
	return s.backend.SetVolume(clampPct(pct))
}

func (s *Synth) SetVoice(idx int) error {
	if s.silent {
		return nil
	}
	return s.backend.SetVoice(idx)
}

func (s *Synth) ListVoices() ([]string, error) {
	if s.silent {
		return nil, nil
	}
	return s.backend.ListVoices()
}

func (s *Synth) Close() error {
	if s.silent {
		return nil
	}
	return s.backend.Close()
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
