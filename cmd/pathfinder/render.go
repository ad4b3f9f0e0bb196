package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder/render"
)

type renderFlags struct {
	gridFlags
	output   string
	cellSize int
	solve    bool
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Draw a grid as a PNG image",
		Example: `  pathfinder render --scenario maze.yaml --solve -o maze.png`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.render(cmd.Context(), &f)
		},
	}
	f.gridFlags.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "grid.png", "Output PNG file")
	cmd.Flags().IntVar(&f.cellSize, "cell-size", 0, "Cell edge in pixels (default from config)")
	cmd.Flags().BoolVar(&f.solve, "solve", false, "Run the search first and draw its marks")
	return cmd
}

func (a *app) render(ctx context.Context, f *renderFlags) error {
	ed, err := f.gridFlags.newEditor(ctx, a)
	if err != nil {
		return err
	}
	cellSize := f.cellSize
	if cellSize == 0 {
		cellSize = a.cfg.Render.CellSize
	}
	if cellSize < 1 {
		return &exitError{code: exitInvalid, err: fmt.Errorf("--cell-size must be positive, got %d", cellSize)}
	}

	var searchErr error
	if f.solve {
		result, err := ed.RunSearch(ctx, nil)
		searchErr = resultError(result, err)
	}
	if err := render.SavePNG(ed.Grid(), cellSize, f.output); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, f.output)
	return searchErr
}
