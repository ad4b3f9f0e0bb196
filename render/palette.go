// Package render draws grids for terminals and image files.
package render

import (
	"image/color"

	"github.com/pdrpinto/pathfinder/grid"
)

// Palette maps cell states to fill colors.
var Palette = map[grid.State]color.RGBA{
	grid.Free:    {255, 255, 255, 255}, // white
	grid.Barrier: {0, 0, 0, 255},       // black
	grid.Start:   {255, 165, 0, 255},   // orange
	grid.End:     {64, 224, 208, 255},  // turquoise
	grid.Open:    {0, 255, 0, 255},     // green
	grid.Closed:  {255, 0, 0, 255},     // red
	grid.Path:    {128, 0, 128, 255},   // purple
}

// LineColor is the color of the grid overlay.
var LineColor = color.RGBA{128, 128, 128, 255}

// Glyphs maps cell states to terminal characters.
var Glyphs = map[grid.State]byte{
	grid.Free:    '.',
	grid.Barrier: '#',
	grid.Start:   'S',
	grid.End:     'E',
	grid.Open:    'o',
	grid.Closed:  'x',
	grid.Path:    '*',
}

// ColorOf returns the fill color of state.
func ColorOf(state grid.State) color.RGBA {
	if c, ok := Palette[state]; ok {
		return c
	}
	return Palette[grid.Free]
}
