package main

import (
	"context"
	"fmt"

	"github.com/pdrpinto/pathfinder/observability"
)

// runStats tallies editor and search events over a replay.
type runStats struct {
	edits    int
	resets   int
	runs     int
	expanded int
	outcomes map[observability.EventType]int
}

func newRunStats() *runStats {
	return &runStats{outcomes: make(map[observability.EventType]int)}
}

func (s *runStats) OnEvent(_ context.Context, event observability.Event) {
	switch event.Type {
	case observability.EventGridEdit:
		s.edits++
	case observability.EventGridReset:
		s.resets++
	case observability.EventSearchStart:
		s.runs++
	case observability.EventSearchFound, observability.EventSearchNotFound, observability.EventSearchAborted:
		s.outcomes[event.Type]++
		if n, ok := event.Data["expanded"].(int); ok {
			s.expanded += n
		}
	}
}

func (s *runStats) String() string {
	return fmt.Sprintf("replay: %d edits, %d resets, %d runs (%d found, %d not found, %d aborted), %d expanded",
		s.edits, s.resets, s.runs,
		s.outcomes[observability.EventSearchFound],
		s.outcomes[observability.EventSearchNotFound],
		s.outcomes[observability.EventSearchAborted],
		s.expanded)
}
