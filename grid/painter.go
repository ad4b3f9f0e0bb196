package grid

import "context"

// StepFunc is invoked at every suspension point of a search with the grid as
// it currently looks. Returning an error aborts the search.
type StepFunc func(ctx context.Context, g *Grid) error

// Painter records search progress as cell states on a grid. It satisfies
// pathfinder.Visualizer[Position].
type Painter struct {
	grid   *Grid
	onStep StepFunc
}

// NewPainter returns a Painter for g. onStep may be nil.
func NewPainter(g *Grid, onStep StepFunc) *Painter {
	return &Painter{grid: g, onStep: onStep}
}

func (p *Painter) Open(pos Position)  { p.grid.SetState(pos, Open) }
func (p *Painter) Close(pos Position) { p.grid.SetState(pos, Closed) }
func (p *Painter) Trace(pos Position) { p.grid.SetState(pos, Path) }

func (p *Painter) Finish(start, goal Position) {
	p.grid.SetState(goal, End)
	p.grid.SetState(start, Start)
}

func (p *Painter) Step(ctx context.Context) error {
	if p.onStep == nil {
		return nil
	}
	return p.onStep(ctx, p.grid)
}
