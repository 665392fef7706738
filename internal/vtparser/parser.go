// Package vtparser adapts github.com/danielgatis/go-vte's byte-level
// VT/ANSI tokenizer to the narrower Performer callback shape
// internal/terminal builds its screen/speech semantics on. The state
// machine itself - ground/escape/CSI/OSC/DCS transitions, UTF-8
// decoding, parameter accumulation - belongs to go-vte; this package
// only translates its callback shape into ours and drops the DCS
// payload callbacks nothing here needs.
package vtparser

import "github.com/danielgatis/go-vte/vte"

// Parser decodes a byte stream into calls on a Performer. It
// implements go-vte's own Performer interface so it can be driven
// directly by vte.Parser.Advance; it is not safe for concurrent use,
// matching go-vte's own single-writer assumption.
type Parser struct {
	perf Performer
	vte  *vte.Parser
}

// New creates a Parser that calls back into perf.
func New(perf Performer) *Parser {
	return &Parser{perf: perf, vte: vte.NewParser()}
}

// Write feeds a byte slice to the parser.
func (p *Parser) Write(data []byte) {
	for _, b := range data {
		p.vte.Advance(p, b)
	}
}

// Print implements vte.Performer.
func (p *Parser) Print(c rune) {
	p.perf.Print(c)
}

// Execute implements vte.Performer.
func (p *Parser) Execute(b byte) {
	p.perf.Execute(b)
}

// CsiDispatch implements vte.Performer. ignore is set by go-vte when a
// sequence overran its parameter or intermediate limits; such
// sequences are dropped rather than guessed at.
func (p *Parser) CsiDispatch(params []int64, intermediates []byte, ignore bool, c rune) {
	if ignore {
		return
	}
	private := len(intermediates) > 0 && intermediates[0] >= 0x3C && intermediates[0] <= 0x3F
	ours := make([]int, len(params))
	for i, v := range params {
		ours[i] = int(v)
	}
	p.perf.CSIDispatch(ours, intermediates, private, byte(c))
}

// EscDispatch implements vte.Performer.
func (p *Parser) EscDispatch(intermediates []byte, ignore bool, b byte) {
	if ignore {
		return
	}
	p.perf.EscDispatch(intermediates, b)
}

// OscDispatch implements vte.Performer. go-vte splits the OSC payload
// on ';' before handing it over; our own OSCDispatch wants the raw
// ';'-joined bytes it would have seen off the wire, so rejoin them.
func (p *Parser) OscDispatch(params [][]byte, bellTerminated bool) {
	if len(params) == 0 {
		p.perf.OSCDispatch(nil)
		return
	}
	joined := append([]byte{}, params[0]...)
	for _, seg := range params[1:] {
		joined = append(joined, ';')
		joined = append(joined, seg...)
	}
	p.perf.OSCDispatch(joined)
}

// Hook, Put and Unhook implement vte.Performer's DCS callbacks. DCS
// payloads have no semantic use for the screen grid or speech (spec
// treats them as a no-op), so they're dropped here rather than
// threaded through to our own Performer.
func (p *Parser) Hook(params []int64, intermediates []byte, ignore bool, c rune) {}
func (p *Parser) Put(b byte)                                                    {}
func (p *Parser) Unhook()                                                       {}
