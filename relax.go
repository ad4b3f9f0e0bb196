package pathfinder

// RelaxProposal is the candidate update produced when an expanded node
// examines one of its neighbors.
type RelaxProposal[NodeType comparable] struct {
	FromNode NodeType
	ToNode   NodeType
	GScore   int
	FScore   int
}

// propose computes the relaxation of the unit-cost edge from -> to.
func propose[NodeType comparable](
	from NodeType,
	to NodeType,
	fromGScore int,
	goal NodeType,
	heuristic Heuristic[NodeType],
) RelaxProposal[NodeType] {
	tentativeG := fromGScore + 1
	return RelaxProposal[NodeType]{
		FromNode: from,
		ToNode:   to,
		GScore:   tentativeG,
		FScore:   tentativeG + heuristic(to, goal),
	}
}
