package grid

// State is the presentation tag of a cell. Only Barrier affects adjacency;
// Open, Closed and Path are written by a search for display purposes.
type State uint8

const (
	Free State = iota
	Barrier
	Start
	End
	Open
	Closed
	Path
)

var stateNames = [...]string{
	Free:    "free",
	Barrier: "barrier",
	Start:   "start",
	End:     "end",
	Open:    "open",
	Closed:  "closed",
	Path:    "path",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// IsSearchMark reports whether s is one of the marks left by a search.
func (s State) IsSearchMark() bool {
	return s == Open || s == Closed || s == Path
}

// Cell is one grid node. Its position is fixed for its lifetime.
type Cell struct {
	position Position
	state    State
}

func (c *Cell) Position() Position { return c.position }
func (c *Cell) State() State       { return c.state }
