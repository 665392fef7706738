// Package screen implements the cell grid that backs the terminal
// emulator: a rectangular matrix of cells, a cursor, a scroll region,
// and the editing operations a VT parser drives it with.
package screen

import "github.com/mattn/go-runewidth"

// Cell is one grid position: a codepoint and its display width.
// Width 0 cells are continuation slots for the column after a
// width-2 cell and carry no codepoint of their own.
type Cell struct {
	Ch    rune
	Width int
}

// DefaultCell is the blank cell new rows and erased regions fill with.
var DefaultCell = Cell{Ch: ' ', Width: 1}

// RuneWidth returns the display width of r clamped to {1, 2}. Put never
// writes a width-0 cell from caller input; width 0 only occurs on the
// continuation slot of a wide character.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	switch {
	case w <= 0:
		return 1
	case w >= 2:
		return 2
	default:
		return 1
	}
}
