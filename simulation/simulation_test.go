package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/island"
	"github.com/pthm-cable/biosim/telemetry"
)

func TestRun_RecordsHistory(t *testing.T) {
	cfg := config.Defaults()
	cfg.Simulation.Verify = true

	var years []int
	sim, err := New(cfg, Options{Seed: 3, StatsCallback: func(s telemetry.YearStats) {
		years = append(years, s.Year)
	}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer sim.Close()

	last := sim.Run(20)

	if sim.Year() != 20 || last.Year != 20 {
		t.Fatalf("year = %d (last stats %d), want 20", sim.Year(), last.Year)
	}
	h := sim.History()
	if h.Len() != 21 {
		t.Fatalf("history has %d entries, want 21 including year 0", h.Len())
	}
	if h.Herbivores[0] != 100 || h.Carnivores[0] != 10 {
		t.Errorf("year 0 = %d/%d, want 100/10", h.Herbivores[0], h.Carnivores[0])
	}
	census := sim.Census()
	if h.Herbivores[20] != census.Totals.Herbivores || h.Carnivores[20] != census.Totals.Carnivores {
		t.Errorf("last history entry differs from census %+v", census.Totals)
	}
	if len(years) != 21 || years[0] != 0 || years[20] != 20 {
		t.Errorf("callback years = %v", years)
	}
}

func TestRun_SameSeedSameHistory(t *testing.T) {
	run := func() *telemetry.History {
		sim, err := New(config.Defaults(), Options{Seed: 11})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		sim.Run(15)
		return sim.History()
	}
	a, b := run(), run()
	for i := range a.Herbivores {
		if a.Herbivores[i] != b.Herbivores[i] || a.Carnivores[i] != b.Carnivores[i] {
			t.Fatalf("year %d diverged", i)
		}
	}
}

func TestNew_Errors(t *testing.T) {
	t.Run("open border", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.SetMap([]string{"WWW", "WLL", "WWW"})
		if _, err := New(cfg, Options{Seed: 1}); !errors.Is(err, island.ErrOpenBorder) {
			t.Errorf("err = %v, want ErrOpenBorder", err)
		}
	})
	t.Run("seed on water", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Population = []config.PopulationConfig{{Row: 0, Col: 0, Species: components.SpeciesHerbivore, Count: 1}}
		if _, err := New(cfg, Options{Seed: 1}); !errors.Is(err, island.ErrImpassable) {
			t.Errorf("err = %v, want ErrImpassable", err)
		}
	})
}

func TestNew_GeneratedMap(t *testing.T) {
	cfg := config.Defaults()
	cfg.Map.Generate = true
	cfg.Population = nil

	sim, err := New(cfg, Options{Seed: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sim.Island().Rows() != cfg.Map.Generator.Rows || sim.Island().Cols() != cfg.Map.Generator.Cols {
		t.Errorf("island %dx%d, want %dx%d", sim.Island().Rows(), sim.Island().Cols(),
			cfg.Map.Generator.Rows, cfg.Map.Generator.Cols)
	}
	if got := sim.Config().Derived.MapRows; got != cfg.Map.Generator.Rows {
		t.Errorf("derived rows %d not refreshed", got)
	}
}

func TestNew_LeavesCallerConfigUnchanged(t *testing.T) {
	cfg := config.Defaults()
	cfg.Map.Generate = true
	cfg.Population[0].Row, cfg.Population[0].Col = 0, 0 // border water, always relocated
	wantRows := slices.Clone(cfg.Map.Rows)
	wantPop := slices.Clone(cfg.Population)

	sim, err := New(cfg, Options{Seed: 3})
	if err != nil {
		t.Skipf("generated map cannot hold the population: %v", err)
	}

	if !slices.Equal(cfg.Map.Rows, wantRows) {
		t.Error("caller's map rows were replaced")
	}
	if !slices.Equal(cfg.Population, wantPop) {
		t.Errorf("caller's population changed: %+v", cfg.Population)
	}
	if sim.Config() == cfg {
		t.Fatal("simulation shares the caller's config")
	}
	if got := sim.Config().Population[0]; got.Row == 0 && got.Col == 0 {
		t.Error("simulation copy was not relocated to land")
	}

	// A second simulation from the same config sees the same starting map.
	again, err := New(cfg, Options{Seed: 3})
	if err != nil {
		t.Fatalf("second New: %v", err)
	}
	if again.Census().Totals != sim.Census().Totals {
		t.Error("second run started from a different population")
	}
	if !slices.Equal(again.Config().Map.Rows, sim.Config().Map.Rows) {
		t.Error("second run generated a different map")
	}
}

func TestAddPopulation(t *testing.T) {
	sim, err := New(config.Defaults(), Options{Seed: 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sim.Run(3)
	before := sim.Census().Totals.Carnivores

	err = sim.AddPopulation([]island.Population{{At: island.Coord{Row: 3, Col: 4}, Species: components.SpeciesCarnivore, Count: 5}})
	if err != nil {
		t.Fatalf("AddPopulation: %v", err)
	}
	if got := sim.Census().Totals.Carnivores; got != before+5 {
		t.Errorf("carnivores = %d, want %d", got, before+5)
	}

	if err := sim.AddPopulation([]island.Population{{At: island.Coord{Row: 99, Col: 0}}}); !errors.Is(err, island.ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestOutputFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Telemetry.LogInterval = 5

	sim, err := New(cfg, Options{Seed: 5, OutputDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sim.Run(10)
	if err := sim.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"population.csv", "cells.csv", "perf.csv", "bookmarks.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if name != "bookmarks.csv" && info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}

func TestNew_GeneratedMapMovesPopulationToLand(t *testing.T) {
	cfg := config.Defaults()
	cfg.Map.Generate = true

	rows, err := island.GenerateMap(cfg.Map.Generator)
	if err != nil {
		t.Fatalf("GenerateMap: %v", err)
	}
	if _, ok := island.NearestLand(rows, island.Coord{Row: 2, Col: 2}); !ok {
		t.Skip("generated map has no land")
	}

	sim, err := New(cfg, Options{Seed: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	totals := sim.Census().Totals
	if totals.Herbivores != 100 || totals.Carnivores != 10 {
		t.Errorf("seeded %+v, want 100 herbivores and 10 carnivores", totals)
	}
}
