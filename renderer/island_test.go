package renderer

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biosim/island"
)

func TestCellAtPoint(t *testing.T) {
	r := NewIslandRenderer(100, 50, 20, rl.Green, rl.Red)

	tests := []struct {
		name   string
		pos    rl.Vector2
		want   island.Coord
		wantOK bool
	}{
		{"top left", rl.Vector2{X: 100, Y: 50}, island.Coord{Row: 0, Col: 0}, true},
		{"inside", rl.Vector2{X: 145, Y: 71}, island.Coord{Row: 1, Col: 2}, true},
		{"last cell", rl.Vector2{X: 100 + 13*20 - 1, Y: 50 + 8*20 - 1}, island.Coord{Row: 7, Col: 12}, true},
		{"left of map", rl.Vector2{X: 99, Y: 60}, island.Coord{}, false},
		{"above map", rl.Vector2{X: 120, Y: 49}, island.Coord{}, false},
		{"right of map", rl.Vector2{X: 100 + 13*20, Y: 60}, island.Coord{}, false},
		{"below map", rl.Vector2{X: 120, Y: 50 + 8*20}, island.Coord{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.CellAtPoint(tt.pos, 8, 13)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CellAtPoint = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	r := NewIslandRenderer(10, 20, 16, rl.Green, rl.Red)
	got := r.Bounds(8, 13)
	want := rl.Rectangle{X: 10, Y: 20, Width: 13 * 16, Height: 8 * 16}
	if got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}

func TestBarLength(t *testing.T) {
	tests := []struct {
		count int
		want  int32
	}{
		{0, 0},
		{-3, 0},
		{1000, 40},
		{50000, 40},
	}
	for _, tt := range tests {
		if got := BarLength(tt.count, 40); got != tt.want {
			t.Errorf("BarLength(%d, 40) = %d, want %d", tt.count, got, tt.want)
		}
	}

	if BarLength(1, 40) < 1 {
		t.Error("a single animal should get a visible bar")
	}
	if BarLength(10, 40) >= BarLength(100, 40) {
		t.Error("bar length should grow with the count")
	}
}

func TestDensityColor(t *testing.T) {
	empty := DensityColor(0, 10)
	peak := DensityColor(10, 10)
	if peak.R <= empty.R {
		t.Errorf("peak red %d should exceed empty red %d", peak.R, empty.R)
	}
	if peak.B != 0 {
		t.Errorf("peak blue = %d, want 0", peak.B)
	}
}

func TestTerrainColorDistinct(t *testing.T) {
	seen := make(map[rl.Color]island.Terrain)
	for _, terr := range []island.Terrain{
		island.TerrainWater, island.TerrainLowland, island.TerrainHighland, island.TerrainMountain,
	} {
		c := TerrainColor(terr)
		if prev, ok := seen[c]; ok {
			t.Errorf("%v and %v share a color", prev, terr)
		}
		seen[c] = terr
	}
}
