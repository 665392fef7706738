package ptyloop

// echoSuppressor implements key_echo == false by comparing PTY output
// against a short rolling buffer of recently-transmitted stdin bytes
// and skipping the matching prefix of the output - the terminal's own
// echo of what the user just typed - so it never reaches the terminal
// performer's speech side channel twice.
type echoSuppressor struct {
	pending []byte
}

// maxPending caps how much unconfirmed stdin the suppressor tracks at
// once; echoes arrive promptly, so this only needs to cover a burst of
// typed characters between one PTY read and the next.
const maxPending = 256

// NoteStdin records bytes just written to the PTY master so a matching
// echo can be recognized and suppressed.
func (e *echoSuppressor) NoteStdin(b []byte) {
	e.pending = append(e.pending, b...)
	if len(e.pending) > maxPending {
		e.pending = e.pending[len(e.pending)-maxPending:]
	}
}

// MatchLen reports how many leading bytes of out match pending stdin
// bytes still awaiting their echo, consuming that prefix from pending.
// The caller still feeds all of out to the screen (it is real terminal
// content either way) but should suppress the speech side channel for
// the first MatchLen bytes.
func (e *echoSuppressor) MatchLen(out []byte) int {
	if len(e.pending) == 0 || len(out) == 0 {
		return 0
	}
	n := 0
	for n < len(out) && n < len(e.pending) && out[n] == e.pending[n] {
		n++
	}
	e.pending = e.pending[n:]
	return n
}
