package render

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/pdrpinto/pathfinder/grid"
)

// Draw paints every cell of g with its state color and overlays grey grid
// lines, cellSize pixels per cell.
func Draw(g *grid.Grid, cellSize int) image.Image {
	n := g.Dimension()
	size := n * cellSize
	dc := gg.NewContext(size, size)
	dc.SetColor(Palette[grid.Free])
	dc.Clear()

	g.Each(func(cell *grid.Cell) {
		if cell.State() == grid.Free {
			return
		}
		p := cell.Position()
		// rows run down the image, columns across
		dc.SetColor(ColorOf(cell.State()))
		dc.DrawRectangle(float64(p.Col*cellSize), float64(p.Row*cellSize), float64(cellSize), float64(cellSize))
		dc.Fill()
	})

	dc.SetColor(LineColor)
	dc.SetLineWidth(1)
	for i := 0; i <= n; i++ {
		offset := float64(i * cellSize)
		dc.DrawLine(0, offset, float64(size), offset)
		dc.DrawLine(offset, 0, offset, float64(size))
	}
	dc.Stroke()

	return dc.Image()
}

// SavePNG writes Draw(g, cellSize) to path.
func SavePNG(g *grid.Grid, cellSize int, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return gg.SavePNG(path, Draw(g, cellSize))
}

// FrameWriter saves numbered PNG frames of a grid as a search progresses.
type FrameWriter struct {
	Dir      string
	CellSize int
	Every    int

	steps  int
	frames int
}

// NewFrameWriter returns a FrameWriter saving every Nth step into dir.
func NewFrameWriter(dir string, cellSize, every int) *FrameWriter {
	if every < 1 {
		every = 1
	}
	return &FrameWriter{Dir: dir, CellSize: cellSize, Every: every}
}

// Step is a grid.StepFunc.
func (f *FrameWriter) Step(_ context.Context, g *grid.Grid) error {
	f.steps++
	if f.steps%f.Every != 0 {
		return nil
	}
	return f.Save(g)
}

// Save writes the next frame unconditionally.
func (f *FrameWriter) Save(g *grid.Grid) error {
	path := filepath.Join(f.Dir, fmt.Sprintf("frame-%05d.png", f.frames))
	if err := SavePNG(g, f.CellSize, path); err != nil {
		return fmt.Errorf("failed to write frame %s: %w", path, err)
	}
	f.frames++
	return nil
}

// Frames returns how many frames have been written.
func (f *FrameWriter) Frames() int { return f.frames }

// Chain combines step callbacks; the first error stops the chain.
func Chain(steps ...grid.StepFunc) grid.StepFunc {
	return func(ctx context.Context, g *grid.Grid) error {
		for _, step := range steps {
			if step == nil {
				continue
			}
			if err := step(ctx, g); err != nil {
				return err
			}
		}
		return nil
	}
}
