package pathfinder

import (
	"container/heap"
	"slices"
	"testing"
)

func TestPriorityQueue_OrdersByFScoreThenSequence(t *testing.T) {
	queue := make(PriorityQueue[string], 0)
	heap.Init(&queue)

	items := []*PriorityQueueItem[string]{
		{Node: "c", FScore: 5, Sequence: 2},
		{Node: "a", FScore: 3, Sequence: 4},
		{Node: "d", FScore: 5, Sequence: 1},
		{Node: "b", FScore: 3, Sequence: 3},
		{Node: "e", FScore: 7, Sequence: 0},
	}
	for _, item := range items {
		heap.Push(&queue, item)
	}

	want := []string{"b", "a", "d", "c", "e"}
	for i, node := range want {
		item := heap.Pop(&queue).(*PriorityQueueItem[string])
		if item.Node != node {
			t.Errorf("pop %d = %s, want %s", i, item.Node, node)
		}
		if item.IndexInQueue != -1 {
			t.Errorf("popped item keeps index %d", item.IndexInQueue)
		}
	}
}

// adjacency is a hand-built undirected graph keyed by node name.
type adjacency map[string][]string

func (a adjacency) Neighbors(node string) []string { return a[node] }

// detour makes c reachable first through a-d-c and then more cheaply
// through b-c, while c is still queued.
var detour = adjacency{
	"s": {"a", "b", "e"},
	"a": {"s", "d"},
	"b": {"s", "c"},
	"c": {"d", "b", "g"},
	"d": {"a", "c"},
	"e": {"s"},
	"g": {"c"},
}

var detourEstimate = map[string]int{"s": 3, "a": 0, "b": 2, "c": 1, "d": 0, "e": 3, "g": 0}

func TestStepper_ImprovedQueuedNodeKeepsKey(t *testing.T) {
	h := func(from, _ string) int { return detourEstimate[from] }
	stepper := NewStepper[string](detour, "s", "g", h, nil)

	// s, a, d, b
	for i := 0; i < 4; i++ {
		if _, err := stepper.Step(t.Context()); err != nil {
			t.Fatal(err)
		}
	}

	if g, _ := stepper.GScore("c"); g != 2 {
		t.Errorf("GScore(c) = %d, want 2 after the cheaper path via b", g)
	}
	if got := stepper.Predecessors()["c"]; got != "b" {
		t.Errorf("predecessor of c = %s, want b", got)
	}
	if got := stepper.fScore["c"]; got != 3 {
		t.Errorf("fScore(c) = %d, want 3", got)
	}
	item := stepper.openMembership["c"]
	if item == nil {
		t.Fatal("c left the open set")
	}
	if item.FScore != 4 || item.Sequence != 5 {
		t.Errorf("queued key of c = (%d, %d), want the original (4, 5)", item.FScore, item.Sequence)
	}
	if stepper.openSet.Len() != 2 {
		t.Errorf("open set holds %d entries, want 2 (e and c, no duplicate)", stepper.openSet.Len())
	}

	// e still precedes c on sequence, then c, then the goal
	for _, want := range []string{"e", "c", "g"} {
		snapshot, err := stepper.Step(t.Context())
		if err != nil {
			t.Fatal(err)
		}
		if snapshot.Current != want {
			t.Errorf("expanded %s, want %s", snapshot.Current, want)
		}
	}
	result := stepper.Result()
	if !result.Found() || result.TotalCost != 3 {
		t.Errorf("Result = %+v, want found with cost 3", result)
	}
	if want := []string{"s", "b", "c", "g"}; !slices.Equal(result.Path, want) {
		t.Errorf("Path = %v, want %v", result.Path, want)
	}
}

type line int

func (l line) Neighbors(node int) []int {
	var out []int
	if node > 0 {
		out = append(out, node-1)
	}
	if node < int(l)-1 {
		out = append(out, node+1)
	}
	return out
}

func TestStepper_FIFOAmongEqualScores(t *testing.T) {
	// zero heuristic: every neighbor of the start ties, first enqueued wins
	zero := func(from, to int) int { return 0 }
	stepper := NewStepper[int](line(5), 2, 4, zero, nil)

	if _, err := stepper.Step(t.Context()); err != nil {
		t.Fatal(err)
	}
	snapshot, err := stepper.Step(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if snapshot.Current != 1 {
		t.Errorf("second expansion = %d, want 1 (enqueued first)", snapshot.Current)
	}
}

func TestPropose(t *testing.T) {
	h := func(from, to int) int { return to - from }
	p := propose(1, 2, 4, 10, h)
	if p.GScore != 5 || p.FScore != 13 || p.FromNode != 1 || p.ToNode != 2 {
		t.Errorf("propose = %+v", p)
	}
}
