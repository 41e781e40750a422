package renderer

import (
	"errors"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/telemetry"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    rl.Color
		wantErr bool
	}{
		{"2E8B57", rl.NewColor(0x2e, 0x8b, 0x57, 255), false},
		{"#B22222", rl.NewColor(0xb2, 0x22, 0x22, 255), false},
		{"000000", rl.NewColor(0, 0, 0, 255), false},
		{"fff", rl.Color{}, true},
		{"zzzzzz", rl.Color{}, true},
		{"", rl.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestScaleSeries(t *testing.T) {
	area := rl.Rectangle{X: 10, Y: 20, Width: 100, Height: 50}
	points := ScaleSeries([]int{0, 5, 10}, 10, area)

	want := []rl.Vector2{
		{X: 10, Y: 70},
		{X: 60, Y: 45},
		{X: 110, Y: 20},
	}
	if len(points) != len(want) {
		t.Fatalf("got %d points, want %d", len(points), len(want))
	}
	for i := range want {
		if math.Abs(float64(points[i].X-want[i].X)) > 1e-4 || math.Abs(float64(points[i].Y-want[i].Y)) > 1e-4 {
			t.Errorf("point %d = %v, want %v", i, points[i], want[i])
		}
	}
}

func TestScaleSeriesSinglePoint(t *testing.T) {
	area := rl.Rectangle{X: 0, Y: 0, Width: 100, Height: 100}
	points := ScaleSeries([]int{4}, 4, area)
	if len(points) != 1 || points[0].X != 0 || points[0].Y != 0 {
		t.Errorf("single point = %v, want origin at top", points)
	}
}

func TestExportGraphEmptyHistory(t *testing.T) {
	err := ExportGraph(telemetry.NewHistory(), config.Defaults().Graph)
	if !errors.Is(err, ErrNoHistory) {
		t.Errorf("error = %v, want ErrNoHistory", err)
	}
}
