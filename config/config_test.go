package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/biosim/components"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Species.Herbivore.BirthWeight != 8 || cfg.Species.Carnivore.Appetite != 50 {
		t.Errorf("unexpected species defaults: %+v", cfg.Species)
	}
	if math.Abs(cfg.Species.Herbivore.ProcreationThreshold-33.25) > 1e-9 {
		t.Errorf("herbivore threshold = %v, want 33.25", cfg.Species.Herbivore.ProcreationThreshold)
	}
	if cfg.Derived.MapRows != 8 || cfg.Derived.MapCols != 13 {
		t.Errorf("map %dx%d, want 8x13", cfg.Derived.MapRows, cfg.Derived.MapCols)
	}
	if len(cfg.Population) != 2 || cfg.Population[1].Species != components.SpeciesCarnivore {
		t.Errorf("population = %+v", cfg.Population)
	}
	if cfg.Fodder.Lowland != 800 || cfg.Fodder.Highland != 300 {
		t.Errorf("fodder = %+v", cfg.Fodder)
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Overlay(t *testing.T) {
	path := writeFile(t, `
species:
  carnivore:
    f: 30
simulation:
  years: 12
population:
  - { row: 1, col: 1, species: herbivore, count: 4 }
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Species.Carnivore.Appetite != 30 {
		t.Errorf("appetite = %v, want 30", cfg.Species.Carnivore.Appetite)
	}
	// Untouched fields keep their defaults.
	if cfg.Species.Carnivore.DeltaPhiMax != 10 {
		t.Errorf("delta_phi_max = %v, want 10", cfg.Species.Carnivore.DeltaPhiMax)
	}
	if cfg.Simulation.Years != 12 {
		t.Errorf("years = %d, want 12", cfg.Simulation.Years)
	}
	if len(cfg.Population) != 1 || cfg.Population[0].Count != 4 {
		t.Errorf("population = %+v", cfg.Population)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero appetite", "species:\n  herbivore:\n    f: 0\n"},
		{"no delta phi", "species:\n  carnivore:\n    delta_phi_max: 0\n"},
		{"unknown species", "population:\n  - { row: 1, col: 1, species: dragon, count: 1 }\n"},
		{"negative years", "simulation:\n  years: -1\n"},
		{"malformed", "species: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BIOSIM_YEARS", "7")
	t.Setenv("BIOSIM_SEED", "99")
	t.Setenv("BIOSIM_VERIFY", "true")
	t.Setenv("BIOSIM_OUTPUT_DIR", "out")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.Years != 7 || cfg.Simulation.Seed != 99 || !cfg.Simulation.Verify {
		t.Errorf("simulation = %+v", cfg.Simulation)
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("output dir = %q, want out", cfg.Output.Dir)
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Simulation.Years = 321
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Simulation.Years != 321 {
		t.Errorf("years = %d, want 321", loaded.Simulation.Years)
	}
	if loaded.Population[0].Species != components.SpeciesHerbivore {
		t.Errorf("species = %v after round trip", loaded.Population[0].Species)
	}
}

func TestSetMap(t *testing.T) {
	cfg := Defaults()
	cfg.SetMap([]string{"WWWW", "WLLW", "WWWW"})
	if cfg.Derived.MapRows != 3 || cfg.Derived.MapCols != 4 {
		t.Errorf("derived %+v", cfg.Derived)
	}
}

func TestClone(t *testing.T) {
	cfg := Defaults()
	c := cfg.Clone()

	c.Species.Herbivore.Gamma = 99
	c.Map.Rows[0] = "changed"
	c.Population[0].Count = 1

	if cfg.Species.Herbivore.Gamma == 99 {
		t.Error("species params shared with clone")
	}
	if cfg.Map.Rows[0] == "changed" {
		t.Error("map rows shared with clone")
	}
	if cfg.Population[0].Count == 1 {
		t.Error("population shared with clone")
	}
}
