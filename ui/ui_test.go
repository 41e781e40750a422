package ui

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/island"
)

func TestActionsMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Actions
		want Actions
	}{
		{"empty", Actions{}, Actions{}, Actions{}},
		{"button only", Actions{Step: true}, Actions{}, Actions{Step: true}},
		{"key only", Actions{}, Actions{ExportGraph: true}, Actions{ExportGraph: true}},
		{"pause pressed twice cancels", Actions{TogglePause: true}, Actions{TogglePause: true}, Actions{}},
		{"mode from key", Actions{Reset: true}, Actions{ToggleMode: true}, Actions{Reset: true, ToggleMode: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Merge(tt.b)
			if got != tt.want {
				t.Errorf("Merge = %+v, want %+v", got, tt.want)
			}
			if got.Any() != (tt.want != Actions{}) {
				t.Errorf("Any() = %v for %+v", got.Any(), got)
			}
		})
	}
}

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, MinYearsPerSec},
		{5, 5},
		{1000, MaxYearsPerSec},
	}
	for _, tt := range tests {
		if got := ClampSpeed(tt.in); got != tt.want {
			t.Errorf("ClampSpeed(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStatusText(t *testing.T) {
	if s, _ := StatusText(true, true); s != "EXTINCT" {
		t.Errorf("extinct status = %q", s)
	}
	if s, _ := StatusText(true, false); s != "PAUSED" {
		t.Errorf("paused status = %q", s)
	}
	if s, _ := StatusText(false, false); s != "Running" {
		t.Errorf("running status = %q", s)
	}
}

func TestSummarizeCell(t *testing.T) {
	cfg := config.Defaults()
	isl, err := island.New(cfg.Map.Rows, &cfg.Species, cfg.Fodder, rand.New(rand.NewPCG(3, 0)))
	if err != nil {
		t.Fatalf("island.New: %v", err)
	}
	at := island.Coord{Row: 2, Col: 2}
	if err := isl.Seed([]island.Population{
		{At: at, Species: components.SpeciesHerbivore, Count: 20},
		{At: at, Species: components.SpeciesCarnivore, Count: 5},
	}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	cell, ok := isl.CellAt(at)
	if !ok {
		t.Fatal("cell not found")
	}
	s := Summarize(at, cell)

	if s.Counts.Herbivores != 20 || s.Counts.Carnivores != 5 {
		t.Errorf("counts = %+v, want 20/5", s.Counts)
	}
	if s.HerbivoreWeight <= 0 || s.CarnivoreWeight <= 0 {
		t.Errorf("mean weights should be positive: %v, %v", s.HerbivoreWeight, s.CarnivoreWeight)
	}
	if s.HerbivoreAge != 0 || s.CarnivoreAge != 0 {
		t.Errorf("mean ages = %v, %v, want 0 for seeded animals", s.HerbivoreAge, s.CarnivoreAge)
	}
	if math.Abs(float64(s.FodderLevel())-1) > 1e-6 {
		t.Errorf("fresh cell fodder level = %v, want 1", s.FodderLevel())
	}
}

func TestFodderLevelBarren(t *testing.T) {
	s := CellSummary{Terrain: island.TerrainMountain}
	if s.FodderLevel() != 0 {
		t.Errorf("barren fodder level = %v, want 0", s.FodderLevel())
	}
}
