package systems

import (
	"math"
	"testing"
)

func TestRegrowFodder(t *testing.T) {
	tests := []struct {
		name     string
		fodder   float64
		capacity float64
		vMax     float64
		want     float64
	}{
		{"no capacity", 0, 0, 800, 0},
		{"full", 300, 300, 800, 300},
		{"empty lowland", 0, 800, 800, 720},
		{"clamped to capacity", 250, 300, 800, 300},
		{"partial growth", 400, 800, 100, 400 + 100*(1-0.1*0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegrowFodder(tt.fodder, tt.capacity, tt.vMax, 0.1)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RegrowFodder(%v, %v) = %v, want %v", tt.fodder, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestRegrowFodder_MonotoneAndBounded(t *testing.T) {
	for _, capacity := range []float64{300, 800} {
		for f := 0.0; f <= capacity; f += 12.5 {
			got := RegrowFodder(f, capacity, 800, 0.1)
			if got < f {
				t.Fatalf("fodder decreased from %v to %v (capacity %v)", f, got, capacity)
			}
			if got > capacity {
				t.Fatalf("fodder %v exceeds capacity %v", got, capacity)
			}
		}
	}
}
