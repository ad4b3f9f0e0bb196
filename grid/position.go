package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a 0-indexed (row, col) coordinate.
type Position struct {
	Row int
	Col int
}

// At is shorthand for Position{Row: row, Col: col}.
func At(row, col int) Position { return Position{Row: row, Col: col} }

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// ParsePosition accepts "row,col", optionally wrapped in parentheses.
func ParsePosition(s string) (Position, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")

	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("invalid position %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: row: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: col: %w", s, err)
	}
	return Position{Row: row, Col: col}, nil
}

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|. It is admissible and
// consistent for 4-directional unit-cost movement.
func Manhattan(a, b Position) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
