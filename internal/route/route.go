// Package route walks predecessor maps produced by a search.
package route

// Walk follows predecessor links starting at the predecessor of goal and calls
// visit for every node that has a predecessor of its own. The node without a
// predecessor (the search root) and goal itself are never visited. Walking
// stops at the first error returned by visit.
func Walk[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	goal NodeType,
	visit func(node NodeType) error,
) error {
	current, exists := cameFrom[goal]
	if !exists {
		return nil
	}
	for steps := 0; steps < len(cameFrom); steps++ {
		previousNode, exists := cameFrom[current]
		if !exists {
			return nil
		}
		if err := visit(current); err != nil {
			return err
		}
		current = previousNode
	}
	return nil
}

// Reconstruct rebuilds the ordered path from the search root to goal. The
// result holds both endpoints; a goal without a predecessor yields [goal].
func Reconstruct[NodeType comparable](
	cameFrom map[NodeType]NodeType,
	goal NodeType,
) []NodeType {
	path := []NodeType{goal}
	current := goal
	for len(path) <= len(cameFrom) {
		previousNode, exists := cameFrom[current]
		if !exists {
			break
		}
		path = append(path, previousNode)
		current = previousNode
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
