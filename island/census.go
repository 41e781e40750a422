package island

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pthm-cable/biosim/components"
)

// ErrInhabitedDrift reports a cached inhabited set that no longer matches
// the rosters.
var ErrInhabitedDrift = errors.New("island: inhabited set out of date")

// Census is a read-only count of the animals on the island.
type Census struct {
	Year   int
	Totals Counts
	Cells  map[Coord]Counts // inhabited cells only
}

// Census counts the animals per species and per inhabited cell.
func (isl *Island) Census() Census {
	c := Census{
		Year:  isl.year,
		Cells: make(map[Coord]Counts, len(isl.inhabited)),
	}
	for _, idx := range isl.inhabited {
		counts := isl.cells[idx].Counts()
		c.Cells[isl.coord(idx)] = counts
		c.Totals.add(counts)
	}
	return c
}

// ComputeInhabited returns the ascending indices of the cells that hold at
// least one animal.
func ComputeInhabited(cells []Cell) []int {
	var out []int
	for i := range cells {
		if !cells[i].Empty() {
			out = append(out, i)
		}
	}
	return out
}

// VerifyInhabited checks the cached inhabited set against the rosters.
func (isl *Island) VerifyInhabited() error {
	want := ComputeInhabited(isl.cells)
	if !slices.Equal(want, isl.inhabited) {
		return fmt.Errorf("%w: cached %d cells, actual %d", ErrInhabitedDrift, len(isl.inhabited), len(want))
	}
	return nil
}

// Year returns the number of completed years.
func (isl *Island) Year() int { return isl.year }

// Rows returns the map height.
func (isl *Island) Rows() int { return isl.rows }

// Cols returns the map width.
func (isl *Island) Cols() int { return isl.cols }

// CellAt returns the cell at c. Callers must not modify it.
func (isl *Island) CellAt(c Coord) (*Cell, bool) {
	if !isl.inBounds(c) {
		return nil, false
	}
	return &isl.cells[isl.index(c)], true
}

// Inhabited returns the coordinates of the non-empty cells in row-major
// order.
func (isl *Island) Inhabited() []Coord {
	out := make([]Coord, len(isl.inhabited))
	for i, idx := range isl.inhabited {
		out[i] = isl.coord(idx)
	}
	return out
}

// TotalFodder sums the fodder over every cell.
func (isl *Island) TotalFodder() float64 {
	var sum float64
	for i := range isl.cells {
		sum += isl.cells[i].Fodder
	}
	return sum
}

// Visit calls fn for every animal of species s, cell by cell in row-major
// order.
func (isl *Island) Visit(s components.Species, fn func(at Coord, a *components.Animal)) {
	for _, idx := range isl.inhabited {
		at := isl.coord(idx)
		cell := &isl.cells[idx]
		if s == components.SpeciesCarnivore {
			for _, c := range cell.carnivores {
				fn(at, c.Body())
			}
			continue
		}
		for _, h := range cell.herbivores {
			fn(at, h.Body())
		}
	}
}
