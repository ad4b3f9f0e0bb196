package vizweb

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/pdrpinto/pathfinder/grid"
	"github.com/pdrpinto/pathfinder/internal/config"
)

// genWalls builds clustered random walls via random walks. start and goal
// never become walls.
func genWalls(r *rand.Rand, size int, walls config.WallConfig, start, goal grid.Position) []grid.Position {
	var out []grid.Position
	seen := mapset.New[grid.Position]()
	directions := []grid.Position{{Row: 1}, {Row: -1}, {Col: 1}, {Col: -1}}
	for c := 0; c < walls.Clusters; c++ {
		p := grid.At(r.Intn(size), r.Intn(size))
		for s := 0; s < walls.Steps; s++ {
			if r.Float64() < walls.Density && p != start && p != goal && !seen.Has(p) {
				seen.Put(p)
				out = append(out, p)
			}
			d := directions[r.Intn(len(directions))]
			np := grid.At(p.Row+d.Row, p.Col+d.Col)
			if np.Row >= 0 && np.Row < size && np.Col >= 0 && np.Col < size {
				p = np
			}
		}
	}
	return out
}

// randomEndpoints picks two distinct positions.
func randomEndpoints(r *rand.Rand, size int) (grid.Position, grid.Position) {
	for {
		start := grid.At(r.Intn(size), r.Intn(size))
		goal := grid.At(r.Intn(size), r.Intn(size))
		if start != goal {
			return start, goal
		}
	}
}
