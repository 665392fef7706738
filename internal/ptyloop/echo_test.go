package ptyloop

import "testing"

func TestMatchLenSuppressesEchoedPrefix(t *testing.T) {
	var e echoSuppressor
	e.NoteStdin([]byte("ab"))
	n := e.MatchLen([]byte("abcdef"))
	if n != 2 {
		t.Errorf("matched = %d, want 2", n)
	}
}

func TestMatchLenNoMatch(t *testing.T) {
	var e echoSuppressor
	e.NoteStdin([]byte("xy"))
	n := e.MatchLen([]byte("abc"))
	if n != 0 {
		t.Errorf("matched = %d, want 0", n)
	}
}

func TestMatchLenConsumesPending(t *testing.T) {
	var e echoSuppressor
	e.NoteStdin([]byte("ab"))
	e.MatchLen([]byte("ab"))
	if len(e.pending) != 0 {
		t.Errorf("pending = %q, want empty after full match", e.pending)
	}
}

func TestMatchLenCapsPendingSize(t *testing.T) {
	var e echoSuppressor
	big := make([]byte, maxPending+10)
	for i := range big {
		big[i] = 'x'
	}
	e.NoteStdin(big)
	if len(e.pending) != maxPending {
		t.Errorf("pending len = %d, want capped at %d", len(e.pending), maxPending)
	}
}
