package pathfinder

import (
	"context"

	"github.com/pdrpinto/pathfinder/observability"
)

// Graph is generic over node type N.
// N must be comparable so it can be used in maps. Every edge has unit cost.
type Graph[NodeType comparable] interface {
	Neighbors(node NodeType) []NodeType
}

// Heuristic returns the estimated cost from node a to node b. It must never
// overestimate the true remaining cost or the optimal-path guarantee is lost.
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) int

// Outcome classifies how a search ended.
type Outcome int

const (
	// OutcomePending means the search has not finished yet.
	OutcomePending Outcome = iota
	// OutcomeFound means the goal was expanded and a path was traced.
	OutcomeFound
	// OutcomeNotFound means the open set emptied before the goal was reached.
	OutcomeNotFound
	// OutcomeAborted means the search was interrupted and is not exhaustive.
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a search
type Result[NodeType comparable] struct {
	Outcome       Outcome
	Path          []NodeType
	TotalCost     int
	ExpandedNodes int
}

// Found reports whether the search reached the goal.
func (r Result[NodeType]) Found() bool { return r.Outcome == OutcomeFound }

// Options defines parameters for the search.
type Options struct {
	Observer observability.Observer
	RunID    string
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithObserver routes search events to observer.
func WithObserver(observer observability.Observer) Option {
	return func(options *Options) { options.Observer = observer }
}

// WithRunID tags every emitted event with id instead of a generated one.
func WithRunID(id string) Option {
	return func(options *Options) { options.RunID = id }
}

// Search runs A* from startNode to goalNode until the goal is expanded, the
// open set empties, or the visualizer aborts.
//
// NotFound is reported through Result.Outcome with a nil error. An abort
// returns OutcomeAborted and an error wrapping ErrAborted. A search whose
// start equals its goal never begins and returns ErrInvalidConfiguration.
// A nil visualizer is treated as NoopVisualizer.
func Search[NodeType comparable](
	ctx context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	visualizer Visualizer[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	if startNode == goalNode {
		return Result[NodeType]{}, ErrInvalidConfiguration
	}

	stepper := NewStepper(graph, startNode, goalNode, heuristic, visualizer, options...)
	for {
		snapshot, err := stepper.Step(ctx)
		if err != nil {
			return stepper.Result(), err
		}
		if snapshot.Done {
			return stepper.Result(), nil
		}
	}
}
