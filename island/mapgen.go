package island

import (
	"fmt"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/biosim/config"
)

// GenerateMap builds map rows from 2D simplex noise. A radial falloff lowers
// the terrain towards the coast and the outer ring is always water, so the
// result is accepted by New.
func GenerateMap(g config.GeneratorConfig) ([]string, error) {
	if g.Rows < 3 || g.Cols < 3 {
		return nil, fmt.Errorf("%w: generator needs at least 3x3 cells, got %dx%d", ErrEmptyMap, g.Rows, g.Cols)
	}

	noise := opensimplex.NewNormalized(g.Seed)
	midR := float64(g.Rows-1) / 2
	midC := float64(g.Cols-1) / 2

	rows := make([]string, g.Rows)
	line := make([]byte, g.Cols)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if r == 0 || r == g.Rows-1 || c == 0 || c == g.Cols-1 {
				line[c] = 'W'
				continue
			}
			dr := (float64(r) - midR) / midR
			dc := (float64(c) - midC) / midC
			v := noise.Eval2(float64(c)*g.Scale, float64(r)*g.Scale) - g.Falloff*(dr*dr+dc*dc)/2
			line[c] = classify(v, g).Code()
		}
		rows[r] = string(line)
	}
	return rows, nil
}

func classify(v float64, g config.GeneratorConfig) Terrain {
	switch {
	case v < g.Water:
		return TerrainWater
	case v < g.Lowland:
		return TerrainLowland
	case v < g.Highland:
		return TerrainHighland
	default:
		return TerrainMountain
	}
}

// NearestLand returns the passable cell of rows closest to at, preferring
// the earliest in row-major order on ties. It reports false when the map
// has no land.
func NearestLand(rows []string, at Coord) (Coord, bool) {
	best, bestDist := Coord{}, -1
	for r, line := range rows {
		for c := 0; c < len(line); c++ {
			t, ok := ParseTerrain(line[c])
			if !ok || !t.Passable() {
				continue
			}
			dr, dc := r-at.Row, c-at.Col
			if d := dr*dr + dc*dc; bestDist < 0 || d < bestDist {
				best, bestDist = Coord{Row: r, Col: c}, d
			}
		}
	}
	return best, bestDist >= 0
}
