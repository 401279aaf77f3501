package puzzle

import (
	"fmt"
	"strconv"
	"strings"
)

// Puzzle is the four sides of the square in wire order: top, right,
// bottom, left. Each side is three upper-case letters.
type Puzzle [SideCount]string

// FromLetters builds a Puzzle from 12 cell values in order. Values are
// upper-cased; any empty value yields ErrIncomplete.
func FromLetters(letters []string) (Puzzle, error) {
	var p Puzzle
	if len(letters) != CellCount {
		return p, fmt.Errorf("expected %d letters, got %d: %w", CellCount, len(letters), ErrIncomplete)
	}
	for i, l := range letters {
		if l == "" {
			return p, ErrIncomplete
		}
		v, ok := Normalize(l)
		if !ok {
			return p, fmt.Errorf("cell %d holds %q, not a letter", i, l)
		}
		p[i/SideLength] += v
	}
	return p, nil
}

// Parse builds a Puzzle from four side strings, as typed on a command
// line. Sides are upper-cased and must be exactly three letters each.
func Parse(sides []string) (Puzzle, error) {
	var p Puzzle
	if len(sides) != SideCount {
		return p, fmt.Errorf("expected %d sides, got %d", SideCount, len(sides))
	}
	letters := make([]string, 0, CellCount)
	for i, s := range sides {
		s = strings.TrimSpace(s)
		if len(s) != SideLength {
			return p, fmt.Errorf("%s side %q must have %d letters", Side(i), s, SideLength)
		}
		for _, r := range s {
			if !IsLetter(r) {
				return p, fmt.Errorf("%s side %q must only contain letters A-Z", Side(i), s)
			}
			letters = append(letters, string(r))
		}
	}
	return FromLetters(letters)
}

// Sides returns the puzzle as a slice, the shape the solver expects.
func (p Puzzle) Sides() []string {
	return []string{p[Top], p[Right], p[Bottom], p[Left]}
}

// Letters returns all 12 letters in cell order.
func (p Puzzle) Letters() string {
	return strings.Join(p[:], "")
}

func (p Puzzle) String() string {
	return strings.Join(p[:], " ")
}

// DefaultSeparator joins the words of a solution chain.
const DefaultSeparator = " → "

// Solution is one word chain returned by the solver.
type Solution struct {
	Words []string `json:"words"`
	Score float64  `json:"score"`
}

// Chain joins the words with sep, falling back to DefaultSeparator.
func (s Solution) Chain(sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	return strings.Join(s.Words, sep)
}

// ScoreLabel renders the score as "Score: N" using the shortest decimal
// form, so 12 prints as "12" and 297.5 as "297.5".
func (s Solution) ScoreLabel() string {
	return "Score: " + strconv.FormatFloat(s.Score, 'f', -1, 64)
}
