package telemetry

import (
	"slices"
	"testing"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/island"
)

func TestHistory_Record(t *testing.T) {
	h := NewHistory()
	a, b := island.Coord{Row: 1, Col: 1}, island.Coord{Row: 2, Col: 3}

	h.Record(island.Census{Year: 0, Totals: island.Counts{Herbivores: 5}, Cells: map[island.Coord]island.Counts{
		a: {Herbivores: 5},
	}})
	h.Record(island.Census{Year: 1, Totals: island.Counts{Herbivores: 6, Carnivores: 1}, Cells: map[island.Coord]island.Counts{
		a: {Herbivores: 4},
		b: {Herbivores: 2, Carnivores: 1},
	}})
	h.Record(island.Census{Year: 2, Totals: island.Counts{Carnivores: 1}, Cells: map[island.Coord]island.Counts{
		b: {Carnivores: 1},
	}})

	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	if got := h.Series(components.SpeciesHerbivore); !slices.Equal(got, []int{5, 6, 0}) {
		t.Errorf("herbivores = %v", got)
	}
	if got := h.Series(components.SpeciesCarnivore); !slices.Equal(got, []int{0, 1, 1}) {
		t.Errorf("carnivores = %v", got)
	}

	wantA := []island.Counts{{Herbivores: 5}, {Herbivores: 4}, {}}
	if !slices.Equal(h.Cells[a], wantA) {
		t.Errorf("cell a = %v, want %v", h.Cells[a], wantA)
	}
	wantB := []island.Counts{{}, {Herbivores: 2, Carnivores: 1}, {Carnivores: 1}}
	if !slices.Equal(h.Cells[b], wantB) {
		t.Errorf("cell b = %v, want %v", h.Cells[b], wantB)
	}

	h.Reset()
	if h.Len() != 0 || len(h.Cells) != 0 {
		t.Error("reset left data behind")
	}
}
