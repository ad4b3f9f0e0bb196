package grid

import "github.com/zyedidia/generic/mapset"

// Distance returns the length of the shortest 4-directional path from start
// to end avoiding barriers, found by breadth-first search. It is independent
// of the A* engine and serves as a cross-check.
func Distance(g *Grid, start, end Position) (int, bool) {
	if !g.InBounds(start) || !g.InBounds(end) {
		return 0, false
	}
	if start == end {
		return 0, true
	}

	visited := mapset.New[Position]()
	visited.Put(start)
	frontier := []Position{start}
	for depth := 1; len(frontier) > 0; depth++ {
		var next []Position
		for _, current := range frontier {
			for _, neighbor := range g.NeighborsOf(current) {
				if visited.Has(neighbor) {
					continue
				}
				if neighbor == end {
					return depth, true
				}
				visited.Put(neighbor)
				next = append(next, neighbor)
			}
		}
		frontier = next
	}
	return 0, false
}

// Reachable returns how many cells can be reached from start, start included.
func Reachable(g *Grid, start Position) int {
	if !g.InBounds(start) {
		return 0
	}
	visited := mapset.New[Position]()
	visited.Put(start)
	queue := []Position{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range g.NeighborsOf(current) {
			if !visited.Has(neighbor) {
				visited.Put(neighbor)
				queue = append(queue, neighbor)
			}
		}
	}
	return visited.Size()
}
