package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/editor"
	"github.com/pdrpinto/pathfinder/grid"
	"github.com/pdrpinto/pathfinder/internal/scenario"
	"github.com/pdrpinto/pathfinder/render"
)

// gridFlags selects a grid either from a scenario file or from flags. Flags
// given alongside a scenario override its values.
type gridFlags struct {
	size     int
	start    string
	end      string
	barriers []string
	scenario string
}

func (f *gridFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.size, "size", 0, "Grid dimension (default from config)")
	flags.StringVar(&f.start, "start", "", "Start cell as row,col")
	flags.StringVar(&f.end, "end", "", "End cell as row,col")
	flags.StringArrayVar(&f.barriers, "barrier", nil, "Barrier cell as row,col (repeatable)")
	flags.StringVar(&f.scenario, "scenario", "", "YAML scenario file")
}

func (f *gridFlags) load(defaultDimension int) (*scenario.Scenario, error) {
	sc := scenario.New(defaultDimension, nil, nil, nil)
	if f.scenario != "" {
		loaded, err := scenario.Load(f.scenario)
		if err != nil {
			return nil, err
		}
		sc = loaded
	}
	if f.size != 0 {
		sc.Dimension = f.size
	}
	if f.start != "" {
		p, err := grid.ParsePosition(f.start)
		if err != nil {
			return nil, fmt.Errorf("--start: %w", err)
		}
		sc.Start = &p
	}
	if f.end != "" {
		p, err := grid.ParsePosition(f.end)
		if err != nil {
			return nil, fmt.Errorf("--end: %w", err)
		}
		sc.End = &p
	}
	barriers := sc.Barriers
	for _, b := range f.barriers {
		p, err := grid.ParsePosition(b)
		if err != nil {
			return nil, fmt.Errorf("--barrier: %w", err)
		}
		barriers = append(barriers, p)
	}
	return scenario.New(sc.Dimension, sc.Start, sc.End, barriers), nil
}

// newEditor builds an editor for the selected grid. Every failure is invalid
// input.
func (f *gridFlags) newEditor(ctx context.Context, a *app) (*editor.Editor, error) {
	sc, err := f.load(a.cfg.Grid.Dimension)
	if err != nil {
		return nil, &exitError{code: exitInvalid, err: err}
	}
	ed, err := sc.Editor(ctx, editor.WithObserver(a.observer))
	if err != nil {
		return nil, &exitError{code: exitInvalid, err: err}
	}
	return ed, nil
}

// progressFlags controls what happens at every search step.
type progressFlags struct {
	frames  string
	animate bool
	color   bool
	delay   string
}

func (f *progressFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.frames, "frames", "", "Write PNG frames of the search into this directory")
	flags.BoolVar(&f.animate, "animate", false, "Redraw the grid in the terminal after every step")
	flags.BoolVar(&f.color, "color", false, "Use ANSI colors for terminal output")
	flags.StringVar(&f.delay, "delay", "", "Pause between steps, e.g. 20ms (default from config)")
}

// stepFunc assembles the step callback and, when frames are requested, the
// frame writer so the caller can save the final frame.
func (f *progressFlags) stepFunc(a *app, w io.Writer) (grid.StepFunc, *render.FrameWriter, error) {
	renderCfg := a.cfg.Render
	if f.delay != "" {
		renderCfg.StepDelay = f.delay
	}
	delay, err := renderCfg.ParseStepDelay()
	if err != nil {
		return nil, nil, &exitError{code: exitInvalid, err: err}
	}

	var steps []grid.StepFunc
	var frames *render.FrameWriter
	if f.frames != "" {
		frames = render.NewFrameWriter(f.frames, renderCfg.CellSize, renderCfg.FrameEvery)
		steps = append(steps, frames.Step)
	}
	if f.animate {
		steps = append(steps, render.Animator(w, f.color))
	}
	if delay > 0 {
		steps = append(steps, pause(delay))
	}
	if len(steps) == 0 {
		return nil, nil, nil
	}
	return render.Chain(steps...), frames, nil
}

// pause waits d after every step unless ctx is cancelled first.
func pause(d time.Duration) grid.StepFunc {
	return func(ctx context.Context, _ *grid.Grid) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}

type searchFlags struct {
	gridFlags
	progressFlags
	show   bool
	verify bool
}

func newSearchCmd(a *app) *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one search and print the path",
		Long: `Run one A* search from the start cell to the end cell.

Exits 0 when a path is found, 1 when none exists or the search was
interrupted, and 2 when the input is invalid.`,
		Example: `  pathfinder search --size 5 --start 0,0 --end 4,4 --barrier 2,1 --barrier 2,2
  pathfinder search --scenario maze.yaml --animate --delay 20ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.search(cmd.Context(), &f)
		},
	}
	f.gridFlags.register(cmd)
	f.progressFlags.register(cmd)
	cmd.Flags().BoolVar(&f.show, "show", false, "Print the final grid")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "Cross-check the cost with a breadth-first search")
	return cmd
}

func (a *app) search(ctx context.Context, f *searchFlags) error {
	ed, err := f.gridFlags.newEditor(ctx, a)
	if err != nil {
		return err
	}
	onStep, frames, err := f.progressFlags.stepFunc(a, a.stdout)
	if err != nil {
		return err
	}

	result, searchErr := ed.RunSearch(ctx, onStep)
	if frames != nil && searchErr == nil {
		if err := frames.Save(ed.Grid()); err != nil {
			return err
		}
	}
	if f.show {
		if err := render.Text(a.stdout, ed.Grid(), f.color); err != nil {
			return err
		}
	}
	if err := resultError(result, searchErr); err != nil {
		if result.Outcome == pathfinder.OutcomeNotFound {
			fmt.Fprintf(a.stdout, "%s: %d expanded\n", result.Outcome, result.ExpandedNodes)
			if verr := a.verifyUnreachable(ed, f.verify); verr != nil {
				return verr
			}
		}
		return err
	}

	printResult(a.stdout, result)
	if f.verify {
		start, _ := ed.Start()
		end, _ := ed.End()
		distance, ok := grid.Distance(ed.Grid(), start, end)
		if !ok || distance != result.TotalCost {
			return fmt.Errorf("verify: search cost %d, breadth-first distance %d (reachable %v)", result.TotalCost, distance, ok)
		}
		fmt.Fprintln(a.stdout, "verified")
	}
	return nil
}

func (a *app) verifyUnreachable(ed *editor.Editor, verify bool) error {
	if !verify {
		return nil
	}
	start, _ := ed.Start()
	end, _ := ed.End()
	if distance, ok := grid.Distance(ed.Grid(), start, end); ok {
		return fmt.Errorf("verify: search found no path but the end is %d steps away", distance)
	}
	fmt.Fprintf(a.stdout, "verified: end unreachable, %d cells reachable from start\n", grid.Reachable(ed.Grid(), start))
	return nil
}

func printResult(w io.Writer, result pathfinder.Result[grid.Position]) {
	fmt.Fprintf(w, "%s: cost %d, %d expanded\n", result.Outcome, result.TotalCost, result.ExpandedNodes)
	cells := make([]string, len(result.Path))
	for i, p := range result.Path {
		cells[i] = p.String()
	}
	fmt.Fprintln(w, strings.Join(cells, " "))
}
