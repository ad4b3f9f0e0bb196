package pathfinder

import "context"

// Visualizer receives presentation-only state changes from a running search.
// None of these calls influence the algorithm except Step, whose error aborts
// the search.
type Visualizer[NodeType comparable] interface {
	// Open is called when a node enters the open set.
	Open(node NodeType)
	// Close is called after a node other than the start has been expanded.
	Close(node NodeType)
	// Trace is called for each intermediate node of the found path, walking
	// from the goal back toward the start.
	Trace(node NodeType)
	// Finish is called once the path has been traced so endpoints can be
	// restored over any open marks.
	Finish(start NodeType, goal NodeType)
	// Step is the suspension point of the search. It is called after every
	// expansion and after every traced node. A non-nil error stops the search.
	Step(ctx context.Context) error
}

// NoopVisualizer ignores all updates and never aborts.
type NoopVisualizer[NodeType comparable] struct{}

func (NoopVisualizer[NodeType]) Open(NodeType)              {}
func (NoopVisualizer[NodeType]) Close(NodeType)             {}
func (NoopVisualizer[NodeType]) Trace(NodeType)             {}
func (NoopVisualizer[NodeType]) Finish(NodeType, NodeType)  {}
func (NoopVisualizer[NodeType]) Step(context.Context) error { return nil }
