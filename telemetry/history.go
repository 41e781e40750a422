package telemetry

import (
	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/island"
)

// History keeps the yearly population series of a run, in total and per
// cell. Every per-cell series has one entry per recorded year.
type History struct {
	Years      []int
	Herbivores []int
	Carnivores []int
	Cells      map[island.Coord][]island.Counts
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{Cells: make(map[island.Coord][]island.Counts)}
}

// Record appends one census.
func (h *History) Record(c island.Census) {
	h.Years = append(h.Years, c.Year)
	h.Herbivores = append(h.Herbivores, c.Totals.Herbivores)
	h.Carnivores = append(h.Carnivores, c.Totals.Carnivores)

	n := len(h.Years)
	for at, counts := range c.Cells {
		series, ok := h.Cells[at]
		if !ok {
			series = make([]island.Counts, n-1, n)
		}
		h.Cells[at] = append(series, counts)
	}
	// Cells emptied this year get an explicit zero.
	for at, series := range h.Cells {
		if len(series) < n {
			h.Cells[at] = append(series, island.Counts{})
		}
	}
}

// Len returns the number of recorded years.
func (h *History) Len() int { return len(h.Years) }

// Series returns the yearly totals of one species.
func (h *History) Series(s components.Species) []int {
	if s == components.SpeciesCarnivore {
		return h.Carnivores
	}
	return h.Herbivores
}

// Reset discards everything recorded.
func (h *History) Reset() {
	h.Years = h.Years[:0]
	h.Herbivores = h.Herbivores[:0]
	h.Carnivores = h.Carnivores[:0]
	clear(h.Cells)
}
