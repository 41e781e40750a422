package renderer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/telemetry"
)

// Graph layout, in pixels.
const (
	graphMargin    = 40
	graphTickLen   = 6
	graphLineThick = 2
)

var (
	graphBackground = rl.NewColor(250, 250, 245, 255)
	graphAxis       = rl.NewColor(60, 60, 60, 255)
	graphGrid       = rl.NewColor(220, 220, 215, 255)
)

// ErrNoHistory is returned when there is nothing to plot.
var ErrNoHistory = errors.New("no recorded years")

// ExportGraph plots the yearly herbivore and carnivore totals of a run and
// writes the image to cfg.Path. It draws on a CPU-side image so no window is
// needed.
func ExportGraph(history *telemetry.History, cfg config.GraphConfig) error {
	if history == nil || history.Len() == 0 {
		return ErrNoHistory
	}
	herbColor, err := ParseHexColor(cfg.Herbivore)
	if err != nil {
		return fmt.Errorf("herbivore color: %w", err)
	}
	carnColor, err := ParseHexColor(cfg.Carnivore)
	if err != nil {
		return fmt.Errorf("carnivore color: %w", err)
	}

	img := rl.GenImageColor(cfg.Width, cfg.Height, graphBackground)
	defer rl.UnloadImage(img)

	area := plotArea(cfg.Width, cfg.Height)
	peak := max(maxOf(history.Herbivores), maxOf(history.Carnivores), 1)

	drawAxes(img, area)
	for _, series := range []struct {
		s   components.Species
		col rl.Color
	}{
		{components.SpeciesHerbivore, herbColor},
		{components.SpeciesCarnivore, carnColor},
	} {
		drawSeries(img, ScaleSeries(history.Series(series.s), peak, area), series.col)
	}

	if !rl.ExportImage(*img, cfg.Path) {
		return fmt.Errorf("export graph to %s: write failed", cfg.Path)
	}
	return nil
}

// ParseHexColor parses an opaque RRGGBB color, with or without a leading '#'.
func ParseHexColor(s string) (rl.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rl.Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rl.Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return rl.GetColor(uint(v<<8 | 0xff)), nil
}

// ScaleSeries maps a yearly series onto the plot area. Years are spread
// evenly along x and values are scaled so peak touches the top edge.
func ScaleSeries(series []int, peak int, area rl.Rectangle) []rl.Vector2 {
	points := make([]rl.Vector2, len(series))
	if len(series) == 0 || peak <= 0 {
		return points
	}
	span := float32(max(len(series)-1, 1))
	for i, v := range series {
		points[i] = rl.Vector2{
			X: area.X + area.Width*float32(i)/span,
			Y: area.Y + area.Height*(1-float32(v)/float32(peak)),
		}
	}
	return points
}

func plotArea(width, height int) rl.Rectangle {
	return rl.Rectangle{
		X:      graphMargin,
		Y:      graphMargin / 2,
		Width:  float32(max(width-graphMargin*3/2, 1)),
		Height: float32(max(height-graphMargin*3/2, 1)),
	}
}

func drawAxes(img *rl.Image, area rl.Rectangle) {
	x0, y0 := int32(area.X), int32(area.Y)
	x1, y1 := int32(area.X+area.Width), int32(area.Y+area.Height)

	// Quarter grid lines.
	for q := int32(1); q < 4; q++ {
		y := y0 + (y1-y0)*q/4
		rl.ImageDrawLine(img, x0, y, x1, y, graphGrid)
		rl.ImageDrawLine(img, x0-graphTickLen, y, x0, y, graphAxis)
		x := x0 + (x1-x0)*q/4
		rl.ImageDrawLine(img, x, y0, x, y1, graphGrid)
		rl.ImageDrawLine(img, x, y1, x, y1+graphTickLen, graphAxis)
	}
	rl.ImageDrawRectangle(img, x0-1, y0, 2, y1-y0, graphAxis)
	rl.ImageDrawRectangle(img, x0, y1-1, x1-x0, 2, graphAxis)
}

func drawSeries(img *rl.Image, points []rl.Vector2, col rl.Color) {
	for i := 1; i < len(points); i++ {
		rl.ImageDrawLineEx(img, points[i-1], points[i], graphLineThick, col)
	}
}

func maxOf(values []int) int {
	m := 0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}
