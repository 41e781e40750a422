package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Speed slider range, in simulated years per second.
const (
	MinYearsPerSec = 0.5
	MaxYearsPerSec = 60
)

// Actions are the requests made through the controls this frame.
type Actions struct {
	TogglePause bool
	Step        bool
	Reset       bool
	ToggleMode  bool
	ExportGraph bool
}

// Any reports whether any action was requested.
func (a Actions) Any() bool {
	return a.TogglePause || a.Step || a.Reset || a.ToggleMode || a.ExportGraph
}

// Merge combines two sets of actions, e.g. buttons and keyboard.
func (a Actions) Merge(b Actions) Actions {
	return Actions{
		TogglePause: a.TogglePause != b.TogglePause,
		Step:        a.Step || b.Step,
		Reset:       a.Reset || b.Reset,
		ToggleMode:  a.ToggleMode != b.ToggleMode,
		ExportGraph: a.ExportGraph || b.ExportGraph,
	}
}

// ControlsPanel renders the run controls: pause, single step, reset,
// display mode, graph export and a speed slider.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height in pixels.
func (c *ControlsPanel) Height() int32 {
	return c.renderer.Theme.Padding*2 + 150
}

// Draw renders the panel and returns the requested actions and the
// possibly changed speed.
func (c *ControlsPanel) Draw(paused bool, yearsPerSec float32, density bool) (Actions, float32) {
	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.Height())

	var act Actions
	x := float32(c.x + pad)
	y := float32(r.DrawSectionHeader(c.x+pad, c.y+pad, "Controls"))
	half := (float32(c.width) - 3*float32(pad)) / 2

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, toggleText(paused, "Resume", "Pause")) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(pad), Y: y, Width: half, Height: 24}, "Step") {
		act.Step = true
	}
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, toggleText(density, "Terrain", "Density")) {
		act.ToggleMode = true
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(pad), Y: y, Width: half, Height: 24}, "Graph") {
		act.ExportGraph = true
	}
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, "Reset") {
		act.Reset = true
	}
	y += 34

	rl.DrawText("Years per second", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 24, Y: y, Width: float32(c.width) - 2*float32(pad) - 80, Height: 18},
		fmt.Sprint(MinYearsPerSec), fmt.Sprint(MaxYearsPerSec),
		yearsPerSec, MinYearsPerSec, MaxYearsPerSec,
	)
	rl.DrawText(fmt.Sprintf("%.1f", speed), c.x+c.width-pad-40, int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)

	return act, ClampSpeed(speed)
}

// KeyActions reads the keyboard shortcuts.
func KeyActions() Actions {
	return Actions{
		TogglePause: rl.IsKeyPressed(rl.KeySpace),
		Step:        rl.IsKeyPressed(rl.KeyPeriod),
		Reset:       rl.IsKeyPressed(rl.KeyR),
		ToggleMode:  rl.IsKeyPressed(rl.KeyD),
		ExportGraph: rl.IsKeyPressed(rl.KeyG),
	}
}

// ClampSpeed keeps a speed inside the slider range.
func ClampSpeed(v float32) float32 {
	return min(max(v, MinYearsPerSec), MaxYearsPerSec)
}

func toggleText(on bool, whenOn, whenOff string) string {
	if on {
		return whenOn
	}
	return whenOff
}
