// Package scenario loads grid setups from YAML files.
//
// A scenario either lists its cells explicitly:
//
//	dimension: 8
//	start: [0, 0]
//	end: [7, 7]
//	barriers:
//	  - [2, 4]
//	  - [2, 5]
//
// or draws them as a square map where '.' is free, '#' a barrier, 'S' the
// start and 'E' the end:
//
//	map: |
//	  S.#
//	  ..#
//	  ..E
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/editor"
	"github.com/pdrpinto/pathfinder/grid"
)

// Scenario is a grid setup ready to be applied to an editor.
type Scenario struct {
	Dimension int
	Start     *grid.Position
	End       *grid.Position
	Barriers  []grid.Position
}

type file struct {
	Dimension int     `yaml:"dimension"`
	Start     []int   `yaml:"start"`
	End       []int   `yaml:"end"`
	Barriers  [][]int `yaml:"barriers"`
	Map       string  `yaml:"map"`
}

// New builds a scenario from explicit values. Duplicate barriers are dropped.
func New(dimension int, start, end *grid.Position, barriers []grid.Position) *Scenario {
	return &Scenario{
		Dimension: dimension,
		Start:     start,
		End:       end,
		Barriers:  dedupe(barriers),
	}
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	if strings.TrimSpace(f.Map) != "" {
		if f.Start != nil || f.End != nil || len(f.Barriers) > 0 {
			return nil, errors.New("map cannot be combined with start, end or barriers")
		}
		return ParseMap(f.Map)
	}

	if f.Dimension < 1 {
		return nil, fmt.Errorf("dimension must be positive, got %d", f.Dimension)
	}
	s := &Scenario{Dimension: f.Dimension}
	var err error
	if s.Start, err = point("start", f.Start); err != nil {
		return nil, err
	}
	if s.End, err = point("end", f.End); err != nil {
		return nil, err
	}
	barriers := make([]grid.Position, 0, len(f.Barriers))
	for i, b := range f.Barriers {
		p, err := point(fmt.Sprintf("barriers[%d]", i), b)
		if err != nil {
			return nil, err
		}
		barriers = append(barriers, *p)
	}
	s.Barriers = dedupe(barriers)
	return s, nil
}

// ParseMap decodes the square character map form.
func ParseMap(text string) (*Scenario, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, errors.New("map is empty")
	}

	s := &Scenario{Dimension: len(rows)}
	for r, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("map row %d has %d cells, want %d (map must be square)", r, len(row), len(rows))
		}
		for c, ch := range row {
			pos := grid.At(r, c)
			switch ch {
			case '.':
			case '#':
				s.Barriers = append(s.Barriers, pos)
			case 'S':
				if s.Start != nil {
					return nil, fmt.Errorf("map has more than one start")
				}
				s.Start = &pos
			case 'E':
				if s.End != nil {
					return nil, fmt.Errorf("map has more than one end")
				}
				s.End = &pos
			default:
				return nil, fmt.Errorf("map row %d col %d: unexpected %q", r, c, ch)
			}
		}
	}
	return s, nil
}

// Editor applies the scenario to a fresh editor. Endpoints are placed first;
// a barrier on an endpoint or any position outside the grid is reported as
// pathfinder.ErrInvalidConfiguration.
func (s *Scenario) Editor(ctx context.Context, options ...editor.Option) (*editor.Editor, error) {
	if s.Dimension < 1 {
		return nil, fmt.Errorf("%w: dimension must be positive", pathfinder.ErrInvalidConfiguration)
	}
	if s.Start != nil && s.End != nil && *s.Start == *s.End {
		return nil, fmt.Errorf("%w: start and end are both %v", pathfinder.ErrInvalidConfiguration, *s.Start)
	}

	e := editor.New(s.Dimension, options...)
	if s.Start != nil {
		if err := e.SetStart(ctx, *s.Start); err != nil {
			return nil, fmt.Errorf("%w: %w", pathfinder.ErrInvalidConfiguration, err)
		}
	}
	if s.End != nil {
		if err := e.SetEnd(ctx, *s.End); err != nil {
			return nil, fmt.Errorf("%w: %w", pathfinder.ErrInvalidConfiguration, err)
		}
	}
	for _, b := range s.Barriers {
		if err := e.PlaceBarrier(ctx, b); err != nil {
			return nil, fmt.Errorf("%w: %w", pathfinder.ErrInvalidConfiguration, err)
		}
	}
	return e, nil
}

func point(field string, values []int) (*grid.Position, error) {
	if values == nil {
		return nil, nil
	}
	if len(values) != 2 {
		return nil, fmt.Errorf("%s must be [row, col], got %v", field, values)
	}
	p := grid.At(values[0], values[1])
	return &p, nil
}

func dedupe(positions []grid.Position) []grid.Position {
	seen := mapset.New[grid.Position]()
	out := make([]grid.Position, 0, len(positions))
	for _, p := range positions {
		if seen.Has(p) {
			continue
		}
		seen.Put(p)
		out = append(out, p)
	}
	return out
}
