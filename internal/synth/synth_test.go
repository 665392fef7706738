package synth

import (
	"context"
	"errors"
	"testing"
)

type fakeBackend struct {
	name       string
	probeErr   error
	speakCalls []string
	cancelled  bool
}

func (f *fakeBackend) Name() string { return f.name }
func (f *fakeBackend) Probe(ctx context.Context) error { return f.probeErr }
func (f *fakeBackend) Speak(u string, mode Interruption) error {
	f.speakCalls = append(f.speakCalls, u)
	return nil
}
func (f *fakeBackend) Cancel() error                { f.cancelled = true; return nil }
func (f *fakeBackend) SetRate(pct int) error         { return nil }
func (f *fakeBackend) SetVolume(pct int) error       { return nil }
func (f *fakeBackend) SetVoice(idx int) error        { return nil }
func (f *fakeBackend) ListVoices() ([]string, error) { return nil, nil }
func (f *fakeBackend) Close() error                  { return nil }

func TestSelectFirstSuccessWins(t *testing.T) {
	a := &fakeBackend{name: "a", probeErr: errors.New("nope")}
	b := &fakeBackend{name: "b"}
	c := &fakeBackend{name: "c"}
	s := Select([]Backend{a, b, c})
	if s.BackendName() != "b" {
		t.Errorf("got %q, want b", s.BackendName())
	}
}

func TestSelectAllFailIsSilent(t *testing.T) {
	a := &fakeBackend{name: "a", probeErr: errors.New("nope")}
	s := Select([]Backend{a})
	if s.BackendName() != "silent" {
		t.Errorf("got %q, want silent", s.BackendName())
	}
	if err := s.Speak("hello", Interrupt); err != nil {
		t.Errorf("silent speak should be a no-op, got %v", err)
	}
}

func TestSpeakReachesSelectedBackend(t *testing.T) {
	b := &fakeBackend{name: "b"}
	s := Select([]Backend{b})
	s.Speak("hi there", Interrupt)
	if len(b.speakCalls) != 1 || b.speakCalls[0] != "hi there" {
		t.Errorf("speakCalls = %v", b.speakCalls)
	}
}

func TestEmptyUtteranceSkipsBackend(t *testing.T) {
	b := &fakeBackend{name: "b"}
	s := Select([]Backend{b})
	s.Speak("", Interrupt)
	if len(b.speakCalls) != 0 {
		t.Errorf("expected empty utterance to be skipped, got %v", b.speakCalls)
	}
}

func TestClampPct(t *testing.T) {
	cases := map[int]int{-5: 0, 0: 0, 50: 50, 100: 100, 200: 100}
	for in, want := range cases {
		if got := clampPct(in); got != want {
			t.Errorf("clampPct(%d) = %d, want %d", in, got, want)
		}
	}
}
