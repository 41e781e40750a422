package telemetry

import (
	"log/slog"
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	values := []float64{10, 3, 7, 1, 9, 2, 8, 4, 6, 5}
	s := Summarize(values)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean", s.Mean, 5.5},
		{"std", s.Std, math.Sqrt(82.5 / 9)},
		{"p10", s.P10, 1},
		{"p50", s.P50, 5},
		{"p90", s.P90, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 0.001 {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestSummarizeSmallSamples(t *testing.T) {
	if s := Summarize(nil); s != (Summary{}) {
		t.Errorf("empty sample = %+v, want zeros", s)
	}

	s := Summarize([]float64{4.5})
	if s.Mean != 4.5 || s.Std != 0 || s.P50 != 4.5 {
		t.Errorf("single value = %+v", s)
	}
}

func TestYearStatsLogValue(t *testing.T) {
	stats := YearStats{Year: 3, Herbivores: 10, HerbivoreStarved: 1, HerbivoreDied: 2}
	v := stats.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("kind = %v, want group", v.Kind())
	}
	for _, a := range v.Group() {
		if a.Key == "herbivore_deaths" && a.Value.Int64() != 3 {
			t.Errorf("herbivore_deaths = %v, want 3", a.Value)
		}
	}
}
