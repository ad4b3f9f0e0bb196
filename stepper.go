package pathfinder

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pdrpinto/pathfinder/internal/route"
	"github.com/pdrpinto/pathfinder/observability"
)

const eventSource = "pathfinder"

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current   NodeType
	StepIndex int
	OpenCount int
	Done      bool
	Outcome   Outcome
	Path      []NodeType
}

// Stepper owns the state of one search and advances it one expansion at a
// time. A Stepper is not safe for concurrent use and cannot be restarted;
// create a new one per search.
type Stepper[NodeType comparable] struct {
	graph      Graph[NodeType]
	start      NodeType
	goal       NodeType
	heuristic  Heuristic[NodeType]
	visualizer Visualizer[NodeType]
	observer   observability.Observer
	runID      string

	openSet        PriorityQueue[NodeType]
	openMembership map[NodeType]*PriorityQueueItem[NodeType]
	gScore         map[NodeType]int
	fScore         map[NodeType]int
	cameFrom       map[NodeType]NodeType

	sequence  int
	stepCount int
	started   bool
	outcome   Outcome
	path      []NodeType
}

// NewStepper creates a stepper whose open set holds only startNode.
func NewStepper[NodeType comparable](
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	visualizer Visualizer[NodeType],
	options ...Option,
) *Stepper[NodeType] {
	opts := Options{Observer: observability.NoOpObserver{}}
	for _, o := range options {
		o(&opts)
	}
	if opts.Observer == nil {
		opts.Observer = observability.NoOpObserver{}
	}
	if opts.RunID == "" {
		opts.RunID = uuid.New().String()
	}
	if visualizer == nil {
		visualizer = NoopVisualizer[NodeType]{}
	}

	s := &Stepper[NodeType]{
		graph:          graph,
		start:          startNode,
		goal:           goalNode,
		heuristic:      heuristic,
		visualizer:     visualizer,
		observer:       opts.Observer,
		runID:          opts.RunID,
		openSet:        make(PriorityQueue[NodeType], 0),
		openMembership: make(map[NodeType]*PriorityQueueItem[NodeType]),
		gScore:         map[NodeType]int{startNode: 0},
		fScore:         make(map[NodeType]int),
		cameFrom:       make(map[NodeType]NodeType),
	}

	heap.Init(&s.openSet)
	startItem := &PriorityQueueItem[NodeType]{Node: startNode, FScore: heuristic(startNode, goalNode)}
	heap.Push(&s.openSet, startItem)
	s.openMembership[startNode] = startItem
	s.fScore[startNode] = startItem.FScore

	return s
}

// RunID returns the identifier attached to this search's events.
func (s *Stepper[NodeType]) RunID() string { return s.runID }

// Done reports whether the search has reached a final outcome.
func (s *Stepper[NodeType]) Done() bool { return s.outcome != OutcomePending }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done, Step keeps returning the final snapshot.
func (s *Stepper[NodeType]) Step(ctx context.Context) (StepSnapshot[NodeType], error) {
	var zero NodeType
	if s.Done() {
		return s.snapshot(zero), nil
	}
	if !s.started {
		s.started = true
		s.emit(ctx, observability.EventSearchStart, observability.LevelInfo, map[string]any{
			"start": fmt.Sprint(s.start),
			"goal":  fmt.Sprint(s.goal),
		})
	}
	if err := ctx.Err(); err != nil {
		return s.abort(ctx, zero, err)
	}

	if s.openSet.Len() == 0 {
		s.outcome = OutcomeNotFound
		s.emit(ctx, observability.EventSearchNotFound, observability.LevelInfo, nil)
		return s.snapshot(zero), nil
	}

	s.stepCount++
	currentItem := heap.Pop(&s.openSet).(*PriorityQueueItem[NodeType])
	current := currentItem.Node
	delete(s.openMembership, current)

	if current == s.goal {
		return s.finish(ctx, current)
	}

	currentG := s.gScore[current]
	for _, neighbor := range s.graph.Neighbors(current) {
		s.relax(propose(current, neighbor, currentG, s.goal, s.heuristic))
	}
	s.emit(ctx, observability.EventSearchExpand, observability.LevelVerbose, map[string]any{
		"node": fmt.Sprint(current),
		"g":    currentG,
		"open": s.openSet.Len(),
		"step": s.stepCount,
	})

	if err := s.visualizer.Step(ctx); err != nil {
		return s.abort(ctx, current, err)
	}
	if current != s.start {
		s.visualizer.Close(current)
	}

	return s.snapshot(current), nil
}

// relax applies a proposal when it is strictly cheaper than any known path.
// Expanded nodes are not locked: a cheaper path reopens them. A node that is
// already queued keeps its original (fScore, sequence) key.
func (s *Stepper[NodeType]) relax(p RelaxProposal[NodeType]) {
	if known, ok := s.gScore[p.ToNode]; ok && p.GScore >= known {
		return
	}
	s.cameFrom[p.ToNode] = p.FromNode
	s.gScore[p.ToNode] = p.GScore
	s.fScore[p.ToNode] = p.FScore

	if _, inOpen := s.openMembership[p.ToNode]; inOpen {
		return
	}

	s.sequence++
	item := &PriorityQueueItem[NodeType]{Node: p.ToNode, FScore: p.FScore, Sequence: s.sequence}
	heap.Push(&s.openSet, item)
	s.openMembership[p.ToNode] = item
	s.visualizer.Open(p.ToNode)
}

func (s *Stepper[NodeType]) finish(ctx context.Context, goal NodeType) (StepSnapshot[NodeType], error) {
	err := route.Walk(s.cameFrom, goal, func(node NodeType) error {
		s.visualizer.Trace(node)
		return s.visualizer.Step(ctx)
	})
	if err != nil {
		return s.abort(ctx, goal, err)
	}
	s.visualizer.Finish(s.start, goal)

	s.path = route.Reconstruct(s.cameFrom, goal)
	s.outcome = OutcomeFound
	s.emit(ctx, observability.EventSearchFound, observability.LevelInfo, map[string]any{
		"cost":   s.gScore[goal],
		"length": len(s.path),
	})
	return s.snapshot(goal), nil
}

func (s *Stepper[NodeType]) abort(ctx context.Context, current NodeType, cause error) (StepSnapshot[NodeType], error) {
	s.outcome = OutcomeAborted
	s.emit(ctx, observability.EventSearchAborted, observability.LevelWarning, map[string]any{
		"cause": cause.Error(),
	})
	return s.snapshot(current), fmt.Errorf("%w: %w", ErrAborted, cause)
}

// Result summarises the search so far. TotalCost and Path are only set once
// the goal has been found.
func (s *Stepper[NodeType]) Result() Result[NodeType] {
	result := Result[NodeType]{
		Outcome:       s.outcome,
		ExpandedNodes: s.stepCount,
	}
	if s.outcome == OutcomeFound {
		result.Path = append([]NodeType(nil), s.path...)
		result.TotalCost = s.gScore[s.goal]
	}
	return result
}

// GScore returns the best known cost from the start to node.
func (s *Stepper[NodeType]) GScore(node NodeType) (int, bool) {
	g, ok := s.gScore[node]
	return g, ok
}

// InOpenSet reports whether node is currently enqueued.
func (s *Stepper[NodeType]) InOpenSet(node NodeType) bool {
	_, ok := s.openMembership[node]
	return ok
}

// Predecessors returns a copy of the predecessor map built so far.
func (s *Stepper[NodeType]) Predecessors() map[NodeType]NodeType {
	return copyCameFrom(s.cameFrom)
}

func (s *Stepper[NodeType]) snapshot(current NodeType) StepSnapshot[NodeType] {
	snapshot := StepSnapshot[NodeType]{
		Current:   current,
		StepIndex: s.stepCount,
		OpenCount: s.openSet.Len(),
		Done:      s.Done(),
		Outcome:   s.outcome,
	}
	if s.outcome == OutcomeFound {
		snapshot.Path = append([]NodeType(nil), s.path...)
	}
	return snapshot
}

func (s *Stepper[NodeType]) emit(ctx context.Context, eventType observability.EventType, level observability.Level, data map[string]any) {
	attrs := map[string]any{
		"run_id":   s.runID,
		"expanded": s.stepCount,
	}
	for k, v := range data {
		attrs[k] = v
	}
	s.observer.OnEvent(ctx, observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    eventSource,
		Data:      attrs,
	})
}

func copyCameFrom[T comparable](m map[T]T) map[T]T {
	if m == nil {
		return nil
	}
	c := make(map[T]T, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
