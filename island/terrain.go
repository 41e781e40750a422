package island

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/biosim/config"
)

// Terrain is the landscape type of a cell.
type Terrain uint8

const (
	TerrainWater    Terrain = iota // W: impassable, no fodder
	TerrainHighland                // H
	TerrainLowland                 // L
	TerrainMountain                // M: passable, no fodder
)

// Map construction and seeding errors.
var (
	ErrEmptyMap       = errors.New("island: empty map")
	ErrNotRectangular = errors.New("island: rows differ in length")
	ErrOpenBorder     = errors.New("island: border must be water")
	ErrUnknownTerrain = errors.New("island: unknown terrain code")
	ErrOutOfBounds    = errors.New("island: coordinate outside the map")
	ErrImpassable     = errors.New("island: cell cannot hold animals")
)

// ParseTerrain maps a single-letter code to a Terrain.
func ParseTerrain(code byte) (Terrain, bool) {
	switch code {
	case 'W':
		return TerrainWater, true
	case 'H':
		return TerrainHighland, true
	case 'L':
		return TerrainLowland, true
	case 'M':
		return TerrainMountain, true
	}
	return 0, false
}

// Code returns the single-letter map code.
func (t Terrain) Code() byte {
	return "WHLM"[t]
}

func (t Terrain) String() string {
	switch t {
	case TerrainWater:
		return "water"
	case TerrainHighland:
		return "highland"
	case TerrainLowland:
		return "lowland"
	case TerrainMountain:
		return "mountain"
	}
	return "unknown"
}

// Passable reports whether animals may stand on or migrate into the terrain.
func (t Terrain) Passable() bool {
	return t != TerrainWater
}

// Capacity returns the maximum fodder of the terrain.
func (t Terrain) Capacity(f config.FodderConfig) float64 {
	switch t {
	case TerrainHighland:
		return f.Highland
	case TerrainLowland:
		return f.Lowland
	}
	return 0
}

// parseMap validates the rows and returns the terrain in row-major order.
func parseMap(rows []string) (terrain []Terrain, nRows, nCols int, err error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, 0, 0, ErrEmptyMap
	}
	nRows, nCols = len(rows), len(rows[0])
	terrain = make([]Terrain, 0, nRows*nCols)

	for r, row := range rows {
		if len(row) != nCols {
			return nil, 0, 0, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotRectangular, r, len(row), nCols)
		}
		for c := 0; c < nCols; c++ {
			t, ok := ParseTerrain(row[c])
			if !ok {
				return nil, 0, 0, fmt.Errorf("%w %q at (%d, %d)", ErrUnknownTerrain, row[c], r, c)
			}
			border := r == 0 || r == nRows-1 || c == 0 || c == nCols-1
			if border && t != TerrainWater {
				return nil, 0, 0, fmt.Errorf("%w: %q at (%d, %d)", ErrOpenBorder, row[c], r, c)
			}
			terrain = append(terrain, t)
		}
	}
	return terrain, nRows, nCols, nil
}
