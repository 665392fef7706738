// Package terminal wires a vtparser.Parser's callbacks to a screen.Screen
// and, as a side channel, to the speech pipeline. This is the "Terminal
// Performer" leaf: it owns no I/O of its own.
package terminal

import (
	"github.com/tdsr-go/tdsr/internal/screen"
	"github.com/tdsr-go/tdsr/internal/vtparser"
)

// Hooks lets the owner (the state/config bridge) observe performer
// activity without the performer holding a reference back to it -
// avoiding the cyclic State <-> Performer references the design notes
// call out.
type Hooks struct {
	// AppendSpeech appends text to the pending speech buffer. Skipped
	// entirely while Suppressed is true (echo suppression).
	AppendSpeech func(text string)
	// PopSpeech removes the last pending codepoint (backspace).
	PopSpeech func()
	// LinePause reports whether LF should flush the speech buffer as a
	// complete utterance instead of inserting a space.
	LinePause func() bool
	// FlushSpeech flushes the pending buffer for the given reason.
	FlushSpeech func(reason int)
}

// Flush reasons forwarded to Hooks.FlushSpeech. These are this
// package's own values, not speech.FlushReason's; the owner of the
// Hooks translates them, keeping this package free of a speech import.
const (
	FlushLF = iota
	FlushBell
)

// Performer implements vtparser.Performer over a screen.Screen.
type Performer struct {
	Screen *screen.Screen
	Hooks  Hooks

	// Suppressed is set by the echo filter in the event loop for the
	// duration of feeding bytes that are an echo of locally-originated
	// input; Print still updates the Screen but skips the speech side
	// channel while this is true.
	Suppressed bool
}

// New creates a Performer over the given screen.
func New(s *screen.Screen, hooks Hooks) *Performer {
	return &Performer{Screen: s, Hooks: hooks}
}

func (p *Performer) Print(r rune) {
	p.Screen.Put(r)
	if !p.Suppressed && p.Hooks.AppendSpeech != nil {
		p.Hooks.AppendSpeech(string(r))
	}
}

func (p *Performer) Execute(b byte) {
	switch b {
	case 0x08: // BS
		p.Screen.Backspace()
		if p.Hooks.PopSpeech != nil {
			p.Hooks.PopSpeech()
		}
	case 0x09: // HT
		p.tab()
	case 0x0A: // LF
		p.Screen.Newline()
		if !p.Suppressed {
			linePause := p.Hooks.LinePause != nil && p.Hooks.LinePause()
			if linePause {
				if p.Hooks.FlushSpeech != nil {
					p.Hooks.FlushSpeech(FlushLF)
				}
			} else if p.Hooks.AppendSpeech != nil {
				p.Hooks.AppendSpeech(" ")
			}
		}
	case 0x0D: // CR
		p.Screen.CarriageReturn()
	case 0x07: // BEL
		if p.Hooks.FlushSpeech != nil {
			p.Hooks.FlushSpeech(FlushBell)
		}
	case 0x0E, 0x0F: // SO, SI
		// ignored
	}
}

func (p *Performer) tab() {
	next := ((p.Screen.CursorX / 8) + 1) * 8
	if next >= p.Screen.Cols {
		next = p.Screen.Cols - 1
	}
	p.Screen.CursorX = next
}

func (p *Performer) CSIDispatch(params []int, intermediates []byte, private bool, final byte) {
	s := p.Screen
	arg := func(i, def int) int { return vtparser.Param(params, i, def) }

	switch final {
	case 'A':
		s.CursorY -= clampPositive(arg(0, 1))
		clamp(s)
	case 'B':
		s.CursorY += clampPositive(arg(0, 1))
		clamp(s)
	case 'C':
		s.CursorX += clampPositive(arg(0, 1))
		clamp(s)
	case 'D':
		s.CursorX -= clampPositive(arg(0, 1))
		clamp(s)
	case 'E':
		s.CursorY += clampPositive(arg(0, 1))
		s.CursorX = 0
		clamp(s)
	case 'F':
		s.CursorY -= clampPositive(arg(0, 1))
		s.CursorX = 0
		clamp(s)
	case 'G':
		s.CursorX = arg(0, 1) - 1
		clamp(s)
	case 'H', 'f':
		s.CursorY = arg(0, 1) - 1
		s.CursorX = arg(1, 1) - 1
		clamp(s)
	case 'J':
		s.EraseInDisplay(eraseMode(arg(0, 0)))
	case 'K':
		s.EraseInLine(eraseMode(arg(0, 0)))
	case 'L':
		s.InsertLines(clampPositive(arg(0, 1)))
	case 'M':
		s.DeleteLines(clampPositive(arg(0, 1)))
	case 'P':
		s.DeleteChars(clampPositive(arg(0, 1)))
	case '@':
		s.InsertChars(clampPositive(arg(0, 1)))
	case 'S':
		s.ScrollUp(clampPositive(arg(0, 1)))
	case 'T':
		s.ScrollDown(clampPositive(arg(0, 1)))
	case 'd':
		s.CursorY = arg(0, 1) - 1
		clamp(s)
	case 'r':
		top := arg(0, 1) - 1
		bottom := arg(1, s.Rows) - 1
		s.SetScrollRegion(top, bottom)
	case 'm':
		// SGR: colors tracked or ignored; no semantic use for speech.
	case 'h', 'l':
		// DEC private modes (e.g. ?25 cursor visibility) are informational.
	default:
		// Unknown CSI sequences are ignored.
	}
}

func clampPositive(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func eraseMode(n int) screen.EraseMode {
	switch n {
	case 1:
		return screen.EraseToStart
	case 2:
		return screen.EraseAll
	default:
		return screen.EraseToEnd
	}
}

func clamp(s *screen.Screen) {
	if s.CursorX < 0 {
		s.CursorX = 0
	}
	if s.CursorX >= s.Cols {
		s.CursorX = s.Cols - 1
	}
	if s.CursorY < 0 {
		s.CursorY = 0
	}
	if s.CursorY >= s.Rows {
		s.CursorY = s.Rows - 1
	}
}

func (p *Performer) EscDispatch(intermediates []byte, final byte) {
	s := p.Screen
	switch final {
	case '7': // DECSC
		s.SaveCursor()
	case '8': // DECRC
		s.RestoreCursor()
	case 'M': // reverse index
		if s.CursorY == s.ScrollTop {
			s.ScrollDown(1)
		} else {
			s.CursorY--
			clamp(s)
		}
	case 'D': // index
		if s.CursorY == s.ScrollBottom {
			s.ScrollUp(1)
		} else {
			s.CursorY++
			clamp(s)
		}
	case 'E': // next line
		s.CarriageReturn()
		if s.CursorY == s.ScrollBottom {
			s.ScrollUp(1)
		} else {
			s.CursorY++
			clamp(s)
		}
	case 'c': // RIS
		*s = *screen.New(s.Cols, s.Rows)
	default:
		// Unknown escapes are ignored.
	}
}

func (p *Performer) OSCDispatch(data []byte) {
	// No semantic use for speech or the grid; OSC is a no-op.
	_ = data
}
