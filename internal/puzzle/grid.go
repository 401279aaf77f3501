// Package puzzle holds the Letter Boxed input model: the 12 letter cells,
// the keystroke filter, and the four-sided puzzle derived from them.
package puzzle

import (
	"errors"
	"strings"
)

const (
	// CellCount is the number of letter cells on the board.
	CellCount = 12
	// SideCount is the number of sides of the square.
	SideCount = 4
	// SideLength is the number of letters on each side.
	SideLength = CellCount / SideCount
)

// ErrIncomplete is returned when a puzzle is requested from a grid with
// at least one empty cell.
var ErrIncomplete = errors.New("all 12 letters are required")

// Side names the four sides in wire order.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// SideOf returns the side a cell index belongs to.
func SideOf(index int) Side {
	return Side(index / SideLength)
}

// IsLetter reports whether r is an ASCII letter, either case.
func IsLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// AcceptKey reports whether a keystroke may reach a cell. Only a single
// ASCII letter is accepted.
func AcceptKey(key string) bool {
	runes := []rune(key)
	return len(runes) == 1 && IsLetter(runes[0])
}

// Normalize turns raw cell input into a cell value. It returns the
// upper-cased letter and true, or "" and false when the input is not
// exactly one letter. Empty input normalizes to "" and true.
func Normalize(raw string) (string, bool) {
	if raw == "" {
		return "", true
	}
	if !AcceptKey(raw) {
		return "", false
	}
	return strings.ToUpper(raw), true
}

// Grid is the ordered set of 12 letter cells plus the focused index.
// The zero value is an empty grid focused on the first cell.
type Grid struct {
	cells [CellCount]string
	focus int
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// Cell returns the value of cell i.
func (g *Grid) Cell(i int) string {
	if i < 0 || i >= CellCount {
		return ""
	}
	return g.cells[i]
}

// Cells returns a copy of all cell values in order.
func (g *Grid) Cells() []string {
	out := make([]string, CellCount)
	copy(out, g.cells[:])
	return out
}

// Focus returns the index of the focused cell.
func (g *Grid) Focus() int {
	return g.focus
}

// SetFocus moves focus to cell i, wrapping out-of-range indexes.
func (g *Grid) SetFocus(i int) {
	g.focus = wrap(i)
}

// Next moves focus one cell forward, wrapping after the last cell.
func (g *Grid) Next() int {
	g.focus = wrap(g.focus + 1)
	return g.focus
}

// Prev moves focus one cell back, wrapping before the first cell.
func (g *Grid) Prev() int {
	g.focus = wrap(g.focus - 1)
	return g.focus
}

// Set stores raw into cell i after filtering. A rejected value leaves the
// cell untouched and returns false.
func (g *Grid) Set(i int, raw string) bool {
	if i < 0 || i >= CellCount {
		return false
	}
	v, ok := Normalize(raw)
	if !ok {
		return false
	}
	g.cells[i] = v
	return true
}

// Type stores a keystroke into the focused cell and, when a letter was
// stored, advances focus. It reports whether the key was accepted.
func (g *Grid) Type(key string) bool {
	if !AcceptKey(key) {
		return false
	}
	g.cells[g.focus] = strings.ToUpper(key)
	g.Next()
	return true
}

// Erase clears the focused cell. If it was already empty, focus moves back
// one cell and that cell is cleared instead.
func (g *Grid) Erase() {
	if g.cells[g.focus] == "" {
		g.Prev()
	}
	g.cells[g.focus] = ""
}

// Clear empties every cell and refocuses the first one.
func (g *Grid) Clear() {
	g.cells = [CellCount]string{}
	g.focus = 0
}

// Complete reports whether every cell holds a letter.
func (g *Grid) Complete() bool {
	return len(g.Missing()) == 0
}

// Missing returns the indexes of empty cells.
func (g *Grid) Missing() []int {
	var missing []int
	for i, c := range g.cells {
		if c == "" {
			missing = append(missing, i)
		}
	}
	return missing
}

// Fill replaces the grid with a puzzle and refocuses the first cell.
// Letters go through the same filter as typed input.
func (g *Grid) Fill(p Puzzle) {
	g.cells = [CellCount]string{}
	for s, side := range p {
		for j, r := range side {
			if j >= SideLength {
				break
			}
			g.Set(s*SideLength+j, string(r))
		}
	}
	g.focus = 0
}

// Puzzle derives the four sides from the grid.
func (g *Grid) Puzzle() (Puzzle, error) {
	return FromLetters(g.cells[:])
}

func wrap(i int) int {
	return ((i % CellCount) + CellCount) % CellCount
}
