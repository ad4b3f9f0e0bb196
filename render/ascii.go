package render

import (
	"bufio"
	"context"
	"io"

	"github.com/pdrpinto/pathfinder/grid"
)

// ANSI colors
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"

	clearScreen = "\033[H\033[2J"
)

var ansi = map[grid.State]string{
	grid.Free:    ColorDim,
	grid.Barrier: ColorBold,
	grid.Start:   ColorYellow + ColorBold,
	grid.End:     ColorCyan + ColorBold,
	grid.Open:    ColorGreen,
	grid.Closed:  ColorRed,
	grid.Path:    ColorMagenta + ColorBold,
}

// Text writes one line per row using Glyphs. With color set, each glyph is
// wrapped in its ANSI color.
func Text(w io.Writer, g *grid.Grid, color bool) error {
	bw := bufio.NewWriter(w)
	n := g.Dimension()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			state := g.State(grid.At(r, c))
			if color {
				bw.WriteString(ansi[state])
			}
			bw.WriteByte(Glyphs[state])
			if color {
				bw.WriteString(ColorReset)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Animator returns a step callback that redraws the grid in place after
// every step.
func Animator(w io.Writer, color bool) grid.StepFunc {
	return func(_ context.Context, g *grid.Grid) error {
		if _, err := io.WriteString(w, clearScreen); err != nil {
			return err
		}
		return Text(w, g, color)
	}
}
