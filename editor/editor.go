// Package editor translates user intents into grid edits and search runs.
//
// The Editor owns the start and end references and enforces that no edit
// overwrites them, so a search is never asked to begin or end on a barrier.
package editor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/grid"
	"github.com/pdrpinto/pathfinder/observability"
)

const eventSource = "editor"

// Editor applies edits to a grid and runs searches over it. It is not safe
// for concurrent use, except for Quit which may be called from any goroutine.
type Editor struct {
	grid     *grid.Grid
	start    *grid.Position
	end      *grid.Position
	observer observability.Observer
	quit     atomic.Bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithObserver routes edit and search events to observer.
func WithObserver(observer observability.Observer) Option {
	return func(e *Editor) {
		if observer != nil {
			e.observer = observer
		}
	}
}

// New returns an Editor over a fresh dimension×dimension grid.
func New(dimension int, options ...Option) *Editor {
	e := &Editor{
		grid:     grid.New(dimension),
		observer: observability.NoOpObserver{},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Grid returns the grid currently being edited. ResetGrid replaces it.
func (e *Editor) Grid() *grid.Grid { return e.grid }

// Start returns the start position, if set.
func (e *Editor) Start() (grid.Position, bool) { return deref(e.start) }

// End returns the end position, if set.
func (e *Editor) End() (grid.Position, bool) { return deref(e.end) }

func deref(p *grid.Position) (grid.Position, bool) {
	if p == nil {
		return grid.Position{}, false
	}
	return *p, true
}

// SetStart moves the start to pos. The previous start cell becomes Free.
func (e *Editor) SetStart(ctx context.Context, pos grid.Position) error {
	if err := e.check(pos); err != nil {
		return err
	}
	if e.isEnd(pos) {
		return fmt.Errorf("start at %v: %w", pos, ErrCollision)
	}
	if e.start != nil {
		e.grid.Reset(*e.start)
	}
	e.start = &pos
	e.grid.SetState(pos, grid.Start)
	e.emit(ctx, "set_start", pos)
	return nil
}

// SetEnd moves the end to pos. The previous end cell becomes Free.
func (e *Editor) SetEnd(ctx context.Context, pos grid.Position) error {
	if err := e.check(pos); err != nil {
		return err
	}
	if e.isStart(pos) {
		return fmt.Errorf("end at %v: %w", pos, ErrCollision)
	}
	if e.end != nil {
		e.grid.Reset(*e.end)
	}
	e.end = &pos
	e.grid.SetState(pos, grid.End)
	e.emit(ctx, "set_end", pos)
	return nil
}

// ToggleBarrier turns a non-barrier cell into a barrier and a barrier back
// into a Free cell. Start and End cannot be toggled.
func (e *Editor) ToggleBarrier(ctx context.Context, pos grid.Position) error {
	if err := e.check(pos); err != nil {
		return err
	}
	if e.isStart(pos) || e.isEnd(pos) {
		return fmt.Errorf("barrier at %v: %w", pos, ErrCollision)
	}
	if e.grid.State(pos) == grid.Barrier {
		e.grid.Reset(pos)
	} else {
		e.grid.SetState(pos, grid.Barrier)
	}
	e.emit(ctx, "toggle_barrier", pos)
	return nil
}

// PlaceBarrier makes pos a barrier unless it is the Start or End.
func (e *Editor) PlaceBarrier(ctx context.Context, pos grid.Position) error {
	if err := e.check(pos); err != nil {
		return err
	}
	if e.isStart(pos) || e.isEnd(pos) {
		return fmt.Errorf("barrier at %v: %w", pos, ErrCollision)
	}
	e.grid.SetState(pos, grid.Barrier)
	e.emit(ctx, "place_barrier", pos)
	return nil
}

// ClearCell resets pos to Free and forgets it as Start or End.
func (e *Editor) ClearCell(ctx context.Context, pos grid.Position) error {
	if err := e.check(pos); err != nil {
		return err
	}
	e.grid.Reset(pos)
	if e.isStart(pos) {
		e.start = nil
	} else if e.isEnd(pos) {
		e.end = nil
	}
	e.emit(ctx, "clear", pos)
	return nil
}

// Click applies a primary click: it places the Start if none exists, then
// the End if none exists, and afterwards places barriers. Clicking the
// current Start or End does nothing.
func (e *Editor) Click(ctx context.Context, pos grid.Position) error {
	if err := e.check(pos); err != nil {
		return err
	}
	switch {
	case e.start == nil && !e.isEnd(pos):
		return e.SetStart(ctx, pos)
	case e.end == nil && !e.isStart(pos):
		return e.SetEnd(ctx, pos)
	case e.isStart(pos) || e.isEnd(pos):
		return nil
	default:
		return e.PlaceBarrier(ctx, pos)
	}
}

// ResetGrid replaces the grid with a fresh one and forgets both endpoints.
func (e *Editor) ResetGrid(ctx context.Context) {
	e.grid = grid.New(e.grid.Dimension())
	e.start, e.end = nil, nil
	e.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventGridReset,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    eventSource,
		Data:      map[string]any{"dimension": e.grid.Dimension()},
	})
}

// Quit requests that any running or future search abort at its next step.
func (e *Editor) Quit() { e.quit.Store(true) }

// QuitRequested reports whether Quit has been called.
func (e *Editor) QuitRequested() bool { return e.quit.Load() }

// Validate reports whether a search could start now.
func (e *Editor) Validate() error {
	switch {
	case e.start == nil:
		return fmt.Errorf("%w: start is not set", pathfinder.ErrInvalidConfiguration)
	case e.end == nil:
		return fmt.Errorf("%w: end is not set", pathfinder.ErrInvalidConfiguration)
	case *e.start == *e.end:
		return fmt.Errorf("%w: start and end are both %v", pathfinder.ErrInvalidConfiguration, *e.start)
	case !e.grid.InBounds(*e.start) || !e.grid.InBounds(*e.end):
		return fmt.Errorf("%w: endpoint out of bounds", pathfinder.ErrInvalidConfiguration)
	case e.grid.State(*e.start) == grid.Barrier || e.grid.State(*e.end) == grid.Barrier:
		return fmt.Errorf("%w: endpoint on a barrier", pathfinder.ErrInvalidConfiguration)
	}
	return nil
}

// Prepare validates the endpoints, clears marks left by a previous search and
// snapshots adjacency. The returned painter marks progress on the grid and
// calls onStep, aborting with ErrQuit once Quit has been requested.
func (e *Editor) Prepare(onStep grid.StepFunc) (grid.Adjacency, *grid.Painter, error) {
	if err := e.Validate(); err != nil {
		return nil, nil, err
	}
	e.grid.ClearSearch()
	e.grid.SetState(*e.start, grid.Start)
	e.grid.SetState(*e.end, grid.End)

	painter := grid.NewPainter(e.grid, func(ctx context.Context, g *grid.Grid) error {
		if e.quit.Load() {
			return ErrQuit
		}
		if onStep != nil {
			if err := onStep(ctx, g); err != nil {
				return err
			}
		}
		if e.quit.Load() {
			return ErrQuit
		}
		return nil
	})
	return e.grid.Adjacency(), painter, nil
}

// RunSearch searches from the Start to the End, painting progress on the
// grid and calling onStep at every step. It returns ErrInvalidConfiguration
// without searching when the endpoints are unusable.
func (e *Editor) RunSearch(ctx context.Context, onStep grid.StepFunc, options ...pathfinder.Option) (pathfinder.Result[grid.Position], error) {
	adjacency, painter, err := e.Prepare(onStep)
	if err != nil {
		return pathfinder.Result[grid.Position]{}, err
	}
	options = append([]pathfinder.Option{pathfinder.WithObserver(e.observer)}, options...)
	return pathfinder.Search[grid.Position](ctx, adjacency, *e.start, *e.end, grid.Manhattan, painter, options...)
}

// Stepper is like RunSearch but hands back a Stepper for the caller to drive.
func (e *Editor) Stepper(onStep grid.StepFunc, options ...pathfinder.Option) (*pathfinder.Stepper[grid.Position], error) {
	adjacency, painter, err := e.Prepare(onStep)
	if err != nil {
		return nil, err
	}
	options = append([]pathfinder.Option{pathfinder.WithObserver(e.observer)}, options...)
	return pathfinder.NewStepper[grid.Position](adjacency, *e.start, *e.end, grid.Manhattan, painter, options...), nil
}

// Barriers returns the barrier positions in row-major order.
func (e *Editor) Barriers() []grid.Position {
	var barriers []grid.Position
	e.grid.Each(func(cell *grid.Cell) {
		if cell.State() == grid.Barrier {
			barriers = append(barriers, cell.Position())
		}
	})
	return barriers
}

func (e *Editor) check(pos grid.Position) error {
	if !e.grid.InBounds(pos) {
		return fmt.Errorf("%v on %dx%d grid: %w", pos, e.grid.Dimension(), e.grid.Dimension(), ErrOutOfBounds)
	}
	return nil
}

func (e *Editor) isStart(pos grid.Position) bool { return e.start != nil && *e.start == pos }
func (e *Editor) isEnd(pos grid.Position) bool   { return e.end != nil && *e.end == pos }

func (e *Editor) emit(ctx context.Context, op string, pos grid.Position) {
	e.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventGridEdit,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    eventSource,
		Data:      map[string]any{"op": op, "position": pos.String()},
	})
}
