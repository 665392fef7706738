package terminal

import (
	"testing"

	"github.com/tdsr-go/tdsr/internal/screen"
)

func newTestPerformer() (*Performer, *[]string, *int) {
	s := screen.New(10, 5)
	var spoken []string
	popCount := 0
	p := New(s, Hooks{
		AppendSpeech: func(text string) { spoken = append(spoken, text) },
		PopSpeech:    func() { popCount++ },
	})
	return p, &spoken, &popCount
}

func TestPrintUpdatesScreenAndSpeech(t *testing.T) {
	p, spoken, _ := newTestPerformer()
	p.Print('h')
	p.Print('i')
	if got := p.Screen.RowText(0); got != "hi" {
		t.Errorf("RowText(0) = %q, want %q", got, "hi")
	}
	if len(*spoken) != 2 || (*spoken)[0] != "h" || (*spoken)[1] != "i" {
		t.Errorf("spoken = %v", *spoken)
	}
}

func TestPrintSuppressedSkipsSpeechButNotScreen(t *testing.T) {
	p, spoken, _ := newTestPerformer()
	p.Suppressed = true
	p.Print('x')
	if got := p.Screen.RowText(0); got != "x" {
		t.Errorf("RowText(0) = %q, want %q", got, "x")
	}
	if len(*spoken) != 0 {
		t.Errorf("spoken = %v, want none while suppressed", *spoken)
	}
}

func TestExecuteBackspacePopsSpeech(t *testing.T) {
	p, _, popCount := newTestPerformer()
	p.Print('a')
	p.Execute(0x08)
	if *popCount != 1 {
		t.Errorf("popCount = %d, want 1", *popCount)
	}
	if p.Screen.CursorX != 0 {
		t.Errorf("CursorX = %d, want 0 after backspace", p.Screen.CursorX)
	}
}

func TestExecuteLinefeedAppendsSpaceWithoutLinePause(t *testing.T) {
	p, spoken, _ := newTestPerformer()
	p.Execute(0x0A)
	if len(*spoken) != 1 || (*spoken)[0] != " " {
		t.Errorf("spoken = %v, want a single space", *spoken)
	}
}

func TestExecuteLinefeedFlushesWithLinePause(t *testing.T) {
	s := screen.New(10, 5)
	var flushedReason = -1
	p := New(s, Hooks{
		LinePause:   func() bool { return true },
		FlushSpeech: func(reason int) { flushedReason = reason },
	})
	p.Execute(0x0A)
	if flushedReason != FlushLF {
		t.Errorf("flushedReason = %d, want FlushLF", flushedReason)
	}
}

func TestExecuteBellFlushes(t *testing.T) {
	s := screen.New(10, 5)
	var flushedReason = -1
	p := New(s, Hooks{FlushSpeech: func(reason int) { flushedReason = reason }})
	p.Execute(0x07)
	if flushedReason != FlushBell {
		t.Errorf("flushedReason = %d, want FlushBell", flushedReason)
	}
}

func TestCSICursorMovementClampsToScreen(t *testing.T) {
	p, _, _ := newTestPerformer()
	p.CSIDispatch([]int{100}, nil, false, 'B')
	if p.Screen.CursorY != p.Screen.Rows-1 {
		t.Errorf("CursorY = %d, want clamped to %d", p.Screen.CursorY, p.Screen.Rows-1)
	}
}

func TestCSICursorPosition(t *testing.T) {
	p, _, _ := newTestPerformer()
	p.CSIDispatch([]int{3, 5}, nil, false, 'H')
	if p.Screen.CursorY != 2 || p.Screen.CursorX != 4 {
		t.Errorf("cursor = (%d,%d), want (4,2)", p.Screen.CursorX, p.Screen.CursorY)
	}
}

func TestCSIEraseInLine(t *testing.T) {
	p, _, _ := newTestPerformer()
	p.Print('a')
	p.Print('b')
	p.Print('c')
	p.Screen.CursorX = 0
	p.CSIDispatch([]int{2}, nil, false, 'K')
	if got := p.Screen.RowText(0); got != "" {
		t.Errorf("RowText(0) = %q, want empty after erase-line", got)
	}
}

func TestEscDispatchSaveRestoreCursor(t *testing.T) {
	p, _, _ := newTestPerformer()
	p.Screen.CursorX, p.Screen.CursorY = 3, 1
	p.EscDispatch(nil, '7')
	p.Screen.CursorX, p.Screen.CursorY = 0, 0
	p.EscDispatch(nil, '8')
	if p.Screen.CursorX != 3 || p.Screen.CursorY != 1 {
		t.Errorf("cursor = (%d,%d), want (3,1) after restore", p.Screen.CursorX, p.Screen.CursorY)
	}
}

func TestTabStopsAtEveryEighthColumn(t *testing.T) {
	p, _, _ := newTestPerformer()
	p.Execute(0x09)
	if p.Screen.CursorX != 8 {
		t.Errorf("CursorX = %d, want 8 after first tab", p.Screen.CursorX)
	}
}
