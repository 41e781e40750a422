package main

import (
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/island"
)

func TestMapYAML(t *testing.T) {
	g := config.Defaults().Map.Generator
	out, err := mapYAML(g)
	if err != nil {
		t.Fatalf("mapYAML: %v", err)
	}

	var s mapSnippet
	if err := yaml.Unmarshal(out, &s); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if len(s.Map.Rows) != g.Rows {
		t.Fatalf("got %d rows, want %d", len(s.Map.Rows), g.Rows)
	}

	// The snippet overlays cleanly onto a config.
	cfg := config.Defaults()
	cfg.SetMap(s.Map.Rows)
	cfg.Population = nil
	if err := cfg.Validate(); err != nil {
		t.Errorf("generated map fails validation: %v", err)
	}
}

func TestMapYAMLTooSmall(t *testing.T) {
	if _, err := mapYAML(config.GeneratorConfig{Rows: 1, Cols: 1}); err == nil {
		t.Error("expected an error for a 1x1 map")
	}
}

func TestTerrainShare(t *testing.T) {
	share := terrainShare([]string{"WWWW", "WLHW", "WMLW", "WWWW"})
	tests := []struct {
		terrain island.Terrain
		want    float64
	}{
		{island.TerrainWater, 12.0 / 16},
		{island.TerrainLowland, 2.0 / 16},
		{island.TerrainHighland, 1.0 / 16},
		{island.TerrainMountain, 1.0 / 16},
	}
	for _, tt := range tests {
		if got := share[tt.terrain]; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%v share = %v, want %v", tt.terrain, got, tt.want)
		}
	}
}
