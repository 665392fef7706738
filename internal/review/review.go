// Package review implements the review cursor: an independent position
// over the screen grid used to navigate and re-speak already-rendered
// text without disturbing the wrapped program.
package review

import (
	"strings"
	"time"

	"github.com/tdsr-go/tdsr/internal/screen"
	"github.com/tdsr-go/tdsr/internal/symbols"
)

// Action identifies a speak action for double-tap tracking.
type Action int

const (
	ActionLine Action = iota
	ActionWord
	ActionChar
)

// doubleTapWindow is how close two identical actions must land to elevate
// to the spelled/phonetic rendering. See spec for the 500ms figure.
const doubleTapWindow = 500 * time.Millisecond

// Cursor tracks a position over a Screen independent of the terminal's
// own cursor, plus the optional selection anchor and double-tap state.
type Cursor struct {
	Screen *screen.Screen

	X, Y int

	anchor    *point
	lastAct   Action
	lastActAt time.Time
	hasLastAt bool
}

type point struct{ x, y int }

// New creates a Cursor at the top-left of s.
func New(s *screen.Screen) *Cursor {
	return &Cursor{Screen: s}
}

func (c *Cursor) clamp() {
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y > c.Screen.Rows-1 {
		c.Y = c.Screen.Rows - 1
	}
	if c.X < 0 {
		c.X = 0
	}
	if c.X > c.Screen.Cols-1 {
		c.X = c.Screen.Cols - 1
	}
}

// MoveToCursor snaps the review cursor to the terminal's own cursor
// position, for cursor-tracking mode.
func (c *Cursor) MoveToCursor() {
	c.X, c.Y = c.Screen.CursorX, c.Screen.CursorY
	c.clamp()
}

// --- Line navigation ---

func (c *Cursor) PrevLine() {
	if c.Y > 0 {
		c.Y--
	}
}

func (c *Cursor) NextLine() {
	if c.Y < c.Screen.Rows-1 {
		c.Y++
	}
}

// --- Screen navigation ---

func (c *Cursor) Top() { c.Y = 0 }

func (c *Cursor) Bottom() { c.Y = c.Screen.Rows - 1 }

// StartOfLine moves to the first non-blank cell of the current row,
// falling back to column 0 when the row is entirely blank.
func (c *Cursor) StartOfLine() {
	row := c.Screen.RowText(c.Y)
	if row == "" {
		c.X = 0
		return
	}
	for x := 0; x < c.Screen.Cols; x++ {
		cell := c.Screen.Cell(x, c.Y)
		if cell.Width == 0 {
			continue
		}
		if cell.Ch != ' ' {
			c.X = x
			return
		}
	}
	c.X = 0
}

// EndOfLine moves to the last non-blank cell of the current row, falling
// back to the last column when the row is entirely blank.
func (c *Cursor) EndOfLine() {
	last := -1
	for x := 0; x < c.Screen.Cols; x++ {
		cell := c.Screen.Cell(x, c.Y)
		if cell.Width == 0 {
			continue
		}
		if cell.Ch != ' ' {
			last = x
		}
	}
	if last < 0 {
		c.X = c.Screen.Cols - 1
		return
	}
	c.X = last
}

// --- Char navigation ---

// baseX returns the column of x, moving left off any width-0 continuation
// cell onto its base cell.
func (c *Cursor) baseX(x int) int {
	for x > 0 && c.Screen.Cell(x, c.Y).Width == 0 {
		x--
	}
	return x
}

func (c *Cursor) PrevChar() {
	x := c.baseX(c.X)
	if x > 0 {
		x--
		x = c.baseX(x)
	}
	c.X = x
}

func (c *Cursor) NextChar() {
	x := c.baseX(c.X)
	step := c.Screen.Cell(x, c.Y).Width
	if step < 1 {
		step = 1
	}
	if x+step < c.Screen.Cols {
		c.X = x + step
	} else {
		c.X = c.Screen.Cols - 1
	}
}

// CurrentChar returns the rune under the cursor, resolved to its base
// cell if the cursor sits on a width-0 continuation slot.
func (c *Cursor) CurrentChar() rune {
	x := c.baseX(c.X)
	return c.Screen.Cell(x, c.Y).Ch
}

// --- Word navigation ---

func isWordCell(cell screen.Cell) bool {
	return cell.Width != 0 && cell.Ch != ' ' && cell.Ch != 0
}

// PrevWord moves to the start of the previous maximal run of non-blank
// cells on the current row. Does not cross row boundaries.
func (c *Cursor) PrevWord() {
	x := c.baseX(c.X)
	for x > 0 && isWordCell(c.Screen.Cell(x, c.Y)) {
		x--
	}
	for x > 0 && !isWordCell(c.Screen.Cell(x, c.Y)) {
		x--
	}
	for x > 0 && isWordCell(c.Screen.Cell(x-1, c.Y)) {
		x--
	}
	c.X = x
}

// NextWord moves to the start of the next maximal run of non-blank
// cells on the current row, stopping at the line end if none remains.
func (c *Cursor) NextWord() {
	x := c.baseX(c.X)
	cols := c.Screen.Cols
	for x < cols-1 && isWordCell(c.Screen.Cell(x, c.Y)) {
		x++
	}
	for x < cols-1 && !isWordCell(c.Screen.Cell(x, c.Y)) {
		x++
	}
	c.X = x
}

// CurrentWord returns the word cell run containing the cursor's column,
// or "" if the cursor sits on blank space.
func (c *Cursor) CurrentWord() string {
	x := c.baseX(c.X)
	if !isWordCell(c.Screen.Cell(x, c.Y)) {
		return ""
	}
	start := x
	for start > 0 && isWordCell(c.Screen.Cell(start-1, c.Y)) {
		start--
	}
	var b strings.Builder
	for i := start; i < c.Screen.Cols && isWordCell(c.Screen.Cell(i, c.Y)); i++ {
		cell := c.Screen.Cell(i, c.Y)
		if cell.Width == 0 {
			continue
		}
		b.WriteRune(cell.Ch)
	}
	return b.String()
}

// CurrentLine returns the current row's text as rendered (trailing
// blanks trimmed, width-0 cells skipped), matching screen.RowText.
func (c *Cursor) CurrentLine() string {
	return c.Screen.RowText(c.Y)
}

// --- Selection ---

// StartSelection captures the current position as the selection anchor.
func (c *Cursor) StartSelection() {
	c.anchor = &point{c.X, c.Y}
}

// HasSelection reports whether a selection anchor is pending.
func (c *Cursor) HasSelection() bool {
	return c.anchor != nil
}

// ClearSelection discards any pending anchor.
func (c *Cursor) ClearSelection() {
	c.anchor = nil
}

// EndSelection reads the linear range from the anchor to the current
// cursor in reading order and clears the anchor. Returns ("", false) if
// no selection was started.
func (c *Cursor) EndSelection() (string, bool) {
	if c.anchor == nil {
		return "", false
	}
	a, b := *c.anchor, point{c.X, c.Y}
	c.anchor = nil
	if b.y < a.y || (b.y == a.y && b.x < a.x) {
		a, b = b, a
	}

	var out strings.Builder
	for y := a.y; y <= b.y; y++ {
		startX, endX := 0, c.Screen.Cols-1
		if y == a.y {
			startX = a.x
		}
		if y == b.y {
			endX = b.x
		}
		for x := startX; x <= endX; x++ {
			cell := c.Screen.Cell(x, y)
			if cell.Width == 0 {
				continue
			}
			out.WriteRune(cell.Ch)
		}
		if y != b.y {
			out.WriteByte('\n')
		}
	}
	return out.String(), true
}

// --- Double-tap elevation ---

// Tap records an invocation of action at time now and reports whether it
// is a double-tap (same action within doubleTapWindow of the last one).
func (c *Cursor) Tap(action Action, now time.Time) bool {
	isDouble := c.hasLastAt && action == c.lastAct && now.Sub(c.lastActAt) <= doubleTapWindow
	c.lastAct = action
	c.lastActAt = now
	c.hasLastAt = true
	if isDouble {
		// Consuming the tap here means three rapid taps are
		// single-double-single, not a run of doubles.
		c.hasLastAt = false
	}
	return isDouble
}

// SpellOut renders text letter by letter, joined with spaces, for the
// word double-tap elevation (e.g. "baz" -> "b a z"). Unlike
// PhoneticChar, this is plain: no NATO substitution and no "cap"
// prefix for uppercase letters.
func SpellOut(text string) string {
	var letters []string
	for _, r := range text {
		letters = append(letters, string(r))
	}
	return strings.Join(letters, " ")
}

// PhoneticChar renders a single rune using the NATO phonetic table, for
// the character double-tap elevation.
func PhoneticChar(r rune, symbolTable map[rune]string) string {
	return symbols.Phonetic(r, symbolTable)
}
