package screen

// EraseMode selects the span an erase operation clears.
type EraseMode int

const (
	EraseToEnd EraseMode = iota
	EraseToStart
	EraseAll
)

type savedCursor struct {
	x, y        int
	pendingWrap bool
}

// Screen is a rows x cols cell grid with a cursor and a scroll region.
// It is the leaf "Cell & Screen Grid" component: it knows nothing about
// ANSI bytes, only about grid edits.
type Screen struct {
	Cols, Rows int
	Buffer     [][]Cell

	CursorX, CursorY int
	pendingWrap      bool

	saved *savedCursor

	ScrollTop, ScrollBottom int // inclusive, 0-based
}

// New creates a blank cols x rows screen with the scroll region set to
// the whole screen.
func New(cols, rows int) *Screen {
	s := &Screen{Cols: cols, Rows: rows}
	s.Buffer = makeBuffer(cols, rows)
	s.ScrollTop = 0
	s.ScrollBottom = rows - 1
	return s
}

func makeBuffer(cols, rows int) [][]Cell {
	buf := make([][]Cell, rows)
	for y := range buf {
		buf[y] = makeRow(cols)
	}
	return buf
}

func makeRow(cols int) []Cell {
	row := make([]Cell, cols)
	for x := range row {
		row[x] = DefaultCell
	}
	return row
}

func (s *Screen) clampCursor() {
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

// Put writes r at the cursor, handling wide-character wrap and the
// pending-wrap flag left by a previous write that landed on the last
// column.
func (s *Screen) Put(r rune) {
	w := RuneWidth(r)

	if s.pendingWrap {
		s.pendingWrap = false
		s.Newline()
		s.CarriageReturn()
	}

	if w == 2 && s.CursorX == s.Cols-1 {
		s.Newline()
		s.CarriageReturn()
	}

	row := s.Buffer[s.CursorY]
	if w == 2 {
		row[s.CursorX] = Cell{Ch: r, Width: 2}
		if s.CursorX+1 < s.Cols {
			row[s.CursorX+1] = Cell{Ch: 0, Width: 0}
		}
		s.CursorX += 2
	} else {
		row[s.CursorX] = Cell{Ch: r, Width: 1}
		s.CursorX++
	}

	if s.CursorX >= s.Cols {
		s.CursorX = s.Cols - 1
		s.pendingWrap = true
	}
}

// Newline moves the cursor down one row, scrolling the region if the
// cursor sits on the bottom scroll-region row. Column is unchanged.
func (s *Screen) Newline() {
	s.pendingWrap = false
	if s.CursorY == s.ScrollBottom {
		s.ScrollUp(1)
		return
	}
	if s.CursorY < s.Rows-1 {
		s.CursorY++
	}
}

// CarriageReturn moves the cursor to column 0.
func (s *Screen) CarriageReturn() {
	s.pendingWrap = false
	s.CursorX = 0
}

// Backspace moves the cursor left one column, clamped at 0. It never
// mutates a cell.
func (s *Screen) Backspace() {
	s.pendingWrap = false
	if s.CursorX > 0 {
		s.CursorX--
	}
}

// ScrollUp removes n rows at the top of the scroll region and appends
// n blank rows at the bottom of it. Row count never changes.
func (s *Screen) ScrollUp(n int) {
	s.scrollRegion(n, true)
}

// ScrollDown removes n rows at the bottom of the scroll region and
// inserts n blank rows at the top of it.
func (s *Screen) ScrollDown(n int) {
	s.scrollRegion(n, false)
}

func (s *Screen) scrollRegion(n int, up bool) {
	top, bottom := s.ScrollTop, s.ScrollBottom
	height := bottom - top + 1
	if n <= 0 || height <= 0 {
		return
	}
	if n > height {
		n = height
	}

	region := s.Buffer[top : bottom+1]
	kept := region[:0:0]
	if up {
		kept = append(kept, region[n:]...)
		for i := 0; i < n; i++ {
			kept = append(kept, makeRow(s.Cols))
		}
	} else {
		for i := 0; i < n; i++ {
			kept = append(kept, makeRow(s.Cols))
		}
		kept = append(kept, region[:height-n]...)
	}
	copy(s.Buffer[top:bottom+1], kept)
}

// InsertLines inserts n blank rows at the cursor's row within the
// scroll region, pushing rows below it down and off the bottom.
func (s *Screen) InsertLines(n int) {
	if s.CursorY < s.ScrollTop || s.CursorY > s.ScrollBottom {
		return
	}
	top := s.ScrollTop
	s.ScrollTop = s.CursorY
	s.ScrollDown(n)
	s.ScrollTop = top
}

// DeleteLines deletes n rows at the cursor's row within the scroll
// region, pulling rows below it up and filling the bottom with blanks.
func (s *Screen) DeleteLines(n int) {
	if s.CursorY < s.ScrollTop || s.CursorY > s.ScrollBottom {
		return
	}
	top := s.ScrollTop
	s.ScrollTop = s.CursorY
	s.ScrollUp(n)
	s.ScrollTop = top
}

// InsertChars shifts the cells from the cursor to the end of the row
// right by n, filling the gap with blanks. Cells shifted off the right
// edge are dropped. A wide character wholly right of the cursor shifts
// with its continuation cell; a wide character split by the cursor
// column or by the right edge is not repaired, so its halves can end
// up apart.
func (s *Screen) InsertChars(n int) {
	if n <= 0 {
		return
	}
	row := s.Buffer[s.CursorY]
	x := s.CursorX
	if n > s.Cols-x {
		n = s.Cols - x
	}
	copy(row[x+n:], row[x:s.Cols-n])
	for i := x; i < x+n; i++ {
		row[i] = DefaultCell
	}
}

// DeleteChars shifts the cells to the right of the cursor left by n,
// filling the vacated tail with blanks.
func (s *Screen) DeleteChars(n int) {
	if n <= 0 {
		return
	}
	row := s.Buffer[s.CursorY]
	x := s.CursorX
	if n > s.Cols-x {
		n = s.Cols - x
	}
	copy(row[x:], row[x+n:])
	for i := s.Cols - n; i < s.Cols; i++ {
		row[i] = DefaultCell
	}
}

// EraseInLine clears part of the cursor's row.
func (s *Screen) EraseInLine(mode EraseMode) {
	row := s.Buffer[s.CursorY]
	switch mode {
	case EraseToEnd:
		for x := s.CursorX; x < s.Cols; x++ {
			row[x] = DefaultCell
		}
	case EraseToStart:
		for x := 0; x <= s.CursorX && x < s.Cols; x++ {
			row[x] = DefaultCell
		}
	case EraseAll:
		for x := 0; x < s.Cols; x++ {
			row[x] = DefaultCell
		}
	}
}

// EraseInDisplay clears part of the whole screen.
func (s *Screen) EraseInDisplay(mode EraseMode) {
	switch mode {
	case EraseToEnd:
		s.EraseInLine(EraseToEnd)
		for y := s.CursorY + 1; y < s.Rows; y++ {
			s.Buffer[y] = makeRow(s.Cols)
		}
	case EraseToStart:
		s.EraseInLine(EraseToStart)
		for y := 0; y < s.CursorY; y++ {
			s.Buffer[y] = makeRow(s.Cols)
		}
	case EraseAll:
		for y := 0; y < s.Rows; y++ {
			s.Buffer[y] = makeRow(s.Cols)
		}
	}
}

// SaveCursor captures the cursor position and pending-wrap flag.
func (s *Screen) SaveCursor() {
	s.saved = &savedCursor{x: s.CursorX, y: s.CursorY, pendingWrap: s.pendingWrap}
}

// RestoreCursor restores a previously saved cursor; a no-op if nothing
// was saved.
func (s *Screen) RestoreCursor() {
	if s.saved == nil {
		return
	}
	s.CursorX = s.saved.x
	s.CursorY = s.saved.y
	s.pendingWrap = s.saved.pendingWrap
	s.clampCursor()
}

// SetScrollRegion sets the scroll region, clamping out-of-range bounds
// to the screen and ignoring an inverted range.
func (s *Screen) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= s.Rows {
		bottom = s.Rows - 1
	}
	if top > bottom {
		return
	}
	s.ScrollTop = top
	s.ScrollBottom = bottom
}

// Resize truncates or pads the buffer to the new dimensions, preserving
// existing content and clamping the cursor and scroll region.
func (s *Screen) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	newBuf := make([][]Cell, rows)
	for y := 0; y < rows; y++ {
		if y < len(s.Buffer) {
			newBuf[y] = resizeRow(s.Buffer[y], cols)
		} else {
			newBuf[y] = makeRow(cols)
		}
	}

	s.Buffer = newBuf
	s.Cols = cols
	s.Rows = rows
	s.pendingWrap = false
	s.clampCursor()

	if s.ScrollBottom >= rows {
		s.ScrollBottom = rows - 1
	}
	if s.ScrollTop > s.ScrollBottom {
		s.ScrollTop = 0
	}
}

func resizeRow(row []Cell, cols int) []Cell {
	out := make([]Cell, cols)
	for x := range out {
		if x < len(row) {
			out[x] = row[x]
		} else {
			out[x] = DefaultCell
		}
	}
	// A truncated row may have cut a wide character's continuation slot
	// away from its base cell; blank the orphaned base.
	if cols > 0 && cols < len(row) && out[cols-1].Width == 2 {
		out[cols-1] = DefaultCell
	}
	return out
}

// Cell returns the cell at (x, y), or the default cell if out of range.
func (s *Screen) Cell(x, y int) Cell {
	if y < 0 || y >= s.Rows || x < 0 || x >= s.Cols {
		return DefaultCell
	}
	return s.Buffer[y][x]
}

// PendingWrap reports whether the next Put will first wrap to a new line.
func (s *Screen) PendingWrap() bool {
	return s.pendingWrap
}

// RowText returns the row's text with trailing blanks stripped and
// width-0 continuation cells skipped.
func (s *Screen) RowText(y int) string {
	if y < 0 || y >= s.Rows {
		return ""
	}
	row := s.Buffer[y]
	runes := make([]rune, 0, len(row))
	for _, c := range row {
		if c.Width == 0 {
			continue
		}
		runes = append(runes, c.Ch)
	}
	for len(runes) > 0 && runes[len(runes)-1] == ' ' {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
