package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biosim/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Stats       telemetry.YearStats
	YearsPerSec float32
	FPS         int32
	Paused      bool
	Extinct     bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	s := data.Stats
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Year: %d | Herbivores: %d | Carnivores: %d", s.Year, s.Herbivores, s.Carnivores),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Cells: %d | Fodder: %.0f | Speed: %.1f y/s | FPS: %d",
			s.InhabitedCells, s.TotalFodder, data.YearsPerSec, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status, col := StatusText(data.Paused, data.Extinct)
	rl.DrawText(status, 10, 75, 16, col)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, legend string) {
	rl.DrawText(legend, 10, screenHeight-25, 14, rl.Gray)
}

// StatusText returns the run state label and its color.
func StatusText(paused, extinct bool) (string, rl.Color) {
	switch {
	case extinct:
		return "EXTINCT", rl.Red
	case paused:
		return "PAUSED", rl.Yellow
	default:
		return "Running", rl.Green
	}
}

// PerfPanel renders the per-phase timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight*int32(len(telemetry.Phases)+2) + 4
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Year timing")
	y = r.DrawLabelValue(x, y, "Average", stats.AvgYearDuration.Round(time.Microsecond).String())

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		col := rl.LightGray
		if pct > 50 {
			col = rl.Red
		} else if pct > 25 {
			col = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, col,
		)
		y += r.Theme.LineHeight
	}
}
