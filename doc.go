// Package pathfinder provides a single-threaded A* search engine generic over
// node type, built for step-by-step visualization of shortest-path search.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: advance the search one expansion at a time to drive UIs or debugging tools.
//
// Edges have unit cost. The open set is ordered by fScore and then by insertion
// sequence, so candidates with equal estimates are expanded first-in first-out
// and runs are fully deterministic.
//
// Presentation state is pushed to a Visualizer that the caller injects; the
// Visualizer's Step hook is the only suspension point of the search and may
// abort it by returning an error.
package pathfinder
