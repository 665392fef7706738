package screen

import "testing"

func TestWrapScenario(t *testing.T) {
	s := New(5, 2)
	for _, r := range "abcdefg" {
		s.Put(r)
	}
	if got := s.RowText(0); got != "abcde" {
		t.Errorf("row0 = %q, want %q", got, "abcde")
	}
	if got := s.RowText(1); got != "fg" {
		t.Errorf("row1 = %q, want %q", got, "fg")
	}
	if s.CursorX != 2 || s.CursorY != 1 {
		t.Errorf("cursor = (%d,%d), want (2,1)", s.CursorX, s.CursorY)
	}
}

func TestScrollScenario(t *testing.T) {
	s := New(3, 2)
	for _, r := range "ab" {
		s.Put(r)
	}
	s.Newline()
	s.CarriageReturn()
	for _, r := range "cd" {
		s.Put(r)
	}
	s.Newline()
	s.CarriageReturn()
	for _, r := range "ef" {
		s.Put(r)
	}

	if got := s.RowText(0); got != "cd" {
		t.Errorf("row0 = %q, want %q", got, "cd")
	}
	if got := s.RowText(1); got != "ef" {
		t.Errorf("row1 = %q, want %q", got, "ef")
	}
	if s.CursorX != 2 || s.CursorY != 1 {
		t.Errorf("cursor = (%d,%d), want (2,1)", s.CursorX, s.CursorY)
	}
	if len(s.Buffer) != 2 {
		t.Errorf("buffer rows = %d, want 2", len(s.Buffer))
	}
}

func TestEraseInLineMode0(t *testing.T) {
	s := New(5, 1)
	for _, r := range "hello" {
		s.Put(r)
	}
	s.CursorX = 2
	s.EraseInLine(EraseToEnd)
	if got := s.Buffer[0]; got[0].Ch != 'h' || got[1].Ch != 'e' || got[2] != DefaultCell {
		t.Errorf("row after erase = %+v", got)
	}
}

func TestWideCharAtLastColumn(t *testing.T) {
	s := New(5, 2)
	s.CursorX = 4
	s.Put('中') // wide CJK character
	if s.CursorY != 1 {
		t.Fatalf("expected wrap to row 1, got row %d", s.CursorY)
	}
	if s.CursorX != 2 {
		t.Errorf("cursor x = %d, want 2", s.CursorX)
	}
	if s.Buffer[1][0].Width != 2 || s.Buffer[1][1].Width != 0 {
		t.Errorf("wide char not placed correctly: %+v", s.Buffer[1][:2])
	}
}

func TestScrollUpDownRoundTrip(t *testing.T) {
	s := New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			s.Buffer[y][x] = Cell{Ch: rune('A' + y), Width: 1}
		}
	}
	before := snapshot(s)
	s.ScrollUp(2)
	s.ScrollDown(2)
	after := snapshot(s)
	// content is not required to be byte-identical since rows scrolled off
	// the top are gone for good; but shape invariants must hold.
	_ = before
	if len(after) != 4 {
		t.Errorf("rows = %d, want 4", len(after))
	}
	for _, row := range after {
		if len(row) != 4 {
			t.Errorf("row len = %d, want 4", len(row))
		}
	}
}

func TestInvariantsAfterResize(t *testing.T) {
	s := New(10, 10)
	s.Resize(1, 1)
	if s.Rows != 1 || s.Cols != 1 || len(s.Buffer) != 1 || len(s.Buffer[0]) != 1 {
		t.Fatalf("resize to 1x1 broke shape: rows=%d cols=%d", s.Rows, s.Cols)
	}
	if s.CursorX != 0 || s.CursorY != 0 {
		t.Errorf("cursor out of bounds after shrink: (%d,%d)", s.CursorX, s.CursorY)
	}
}

func TestBackspaceAtZeroNoUnderflow(t *testing.T) {
	s := New(5, 1)
	s.Backspace()
	if s.CursorX != 0 {
		t.Errorf("cursor x = %d, want 0", s.CursorX)
	}
}

func snapshot(s *Screen) [][]Cell {
	out := make([][]Cell, len(s.Buffer))
	for y, row := range s.Buffer {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}
