// Package grid models a square grid of cells with 4-directional adjacency.
// The grid holds no notion of "the" start or end; callers own those
// references and keep them consistent with cell states.
package grid

// directions in neighbor order: down, up, right, left.
var directions = [4]Position{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Grid owns dimension×dimension cells.
type Grid struct {
	dimension int
	cells     [][]*Cell
}

// New creates a grid of dimension×dimension Free cells. dimension must be
// positive.
func New(dimension int) *Grid {
	cells := make([][]*Cell, dimension)
	for r := range cells {
		cells[r] = make([]*Cell, dimension)
		for c := range cells[r] {
			cells[r][c] = &Cell{position: Position{Row: r, Col: c}}
		}
	}
	return &Grid{dimension: dimension, cells: cells}
}

// Dimension returns the number of rows (and columns).
func (g *Grid) Dimension() int { return g.dimension }

// InBounds reports whether p addresses a cell of g.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.dimension && p.Col >= 0 && p.Col < g.dimension
}

// Cell returns the cell at p, or nil when p is out of bounds.
func (g *Grid) Cell(p Position) *Cell {
	if !g.InBounds(p) {
		return nil
	}
	return g.cells[p.Row][p.Col]
}

// State returns the state at p. Out-of-bounds positions read as Barrier.
func (g *Grid) State(p Position) State {
	if !g.InBounds(p) {
		return Barrier
	}
	return g.cells[p.Row][p.Col].state
}

// SetState overwrites the state at p. Out-of-bounds positions are ignored.
func (g *Grid) SetState(p Position, state State) {
	if !g.InBounds(p) {
		return
	}
	g.cells[p.Row][p.Col].state = state
}

// Reset sets the cell at p back to Free.
func (g *Grid) Reset(p Position) { g.SetState(p, Free) }

// ClearSearch resets every Open, Closed and Path cell to Free, leaving
// barriers and endpoints untouched.
func (g *Grid) ClearSearch() {
	g.Each(func(cell *Cell) {
		if cell.state.IsSearchMark() {
			cell.state = Free
		}
	})
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(cell *Cell)) {
	for _, row := range g.cells {
		for _, cell := range row {
			fn(cell)
		}
	}
}

// Count returns how many cells currently have state.
func (g *Grid) Count(state State) int {
	n := 0
	g.Each(func(cell *Cell) {
		if cell.state == state {
			n++
		}
	})
	return n
}

// NeighborsOf returns the in-bounds, non-Barrier positions adjacent to p,
// evaluated against the current cell states, in down, up, right, left order.
func (g *Grid) NeighborsOf(p Position) []Position {
	neighbors := make([]Position, 0, len(directions))
	for _, d := range directions {
		next := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
		if g.InBounds(next) && g.cells[next.Row][next.Col].state != Barrier {
			neighbors = append(neighbors, next)
		}
	}
	return neighbors
}

// Adjacency captures the neighbor lists of every cell as of now. Later edits
// to g are not reflected in the returned value.
func (g *Grid) Adjacency() Adjacency {
	adjacency := make(Adjacency, g.dimension*g.dimension)
	g.Each(func(cell *Cell) {
		adjacency[cell.position] = g.NeighborsOf(cell.position)
	})
	return adjacency
}

// Adjacency is a snapshot of neighbor lists keyed by position.
type Adjacency map[Position][]Position

// Neighbors returns the snapshotted neighbors of p.
func (a Adjacency) Neighbors(p Position) []Position { return a[p] }
