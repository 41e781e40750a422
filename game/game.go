// Package game runs a simulation inside a raylib window: the island grid,
// the HUD, the run controls and the cell inspector.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biosim/camera"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/island"
	"github.com/pthm-cable/biosim/renderer"
	"github.com/pthm-cable/biosim/simulation"
	"github.com/pthm-cable/biosim/telemetry"
	"github.com/pthm-cable/biosim/ui"
)

const (
	panelWidth = 260
	margin     = 10
	hudHeight  = 100
)

// Options configures the viewer.
type Options struct {
	Sim      simulation.Options
	MaxYears int // 0 = unlimited
}

// Game owns the simulation and all on-screen state.
type Game struct {
	cfg    *config.Config
	opts   Options
	sim    *simulation.Simulation
	logger *slog.Logger

	clock   Clock
	paused  bool
	extinct bool
	hover   *island.Coord

	cam            *camera.Camera
	islandRenderer *renderer.IslandRenderer
	hud            *ui.HUD
	controls       *ui.ControlsPanel
	perfPanel      *ui.PerfPanel
	inspector      *ui.Inspector
	fodderColor    rl.Color

	screenWidth  int32
	screenHeight int32
}

// NewGame builds the simulation and the viewer widgets. The raylib window
// must already be open.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Sim.Logger
	if logger == nil {
		logger = slog.Default()
		opts.Sim.Logger = logger
	}

	herb, err := renderer.ParseHexColor(cfg.Graph.Herbivore)
	if err != nil {
		return nil, fmt.Errorf("herbivore color: %w", err)
	}
	carn, err := renderer.ParseHexColor(cfg.Graph.Carnivore)
	if err != nil {
		return nil, fmt.Errorf("carnivore color: %w", err)
	}

	g := &Game{
		cfg:            cfg,
		opts:           opts,
		logger:         logger,
		clock:          Clock{YearsPerSec: ui.ClampSpeed(float32(cfg.Viewer.YearsPerSec))},
		islandRenderer: renderer.NewIslandRenderer(0, 0, int32(cfg.Viewer.CellSize), herb, carn),
		hud:            ui.NewHUD(),
		controls:       ui.NewControlsPanel(0, 0, panelWidth),
		perfPanel:      ui.NewPerfPanel(0, 0, panelWidth),
		inspector:      ui.NewInspector(0, 0, panelWidth),
		fodderColor:    herb,
		screenWidth:    int32(cfg.Viewer.Width),
		screenHeight:   int32(cfg.Viewer.Height),
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	g.layout()
	return g, nil
}

// reset replaces the simulation with a fresh one built from the same
// config and seed.
func (g *Game) reset() error {
	if g.sim != nil {
		if err := g.sim.Close(); err != nil {
			g.logger.Error("failed to close output", "error", err)
		}
	}
	if g.opts.Sim.Seed == 0 && g.sim != nil {
		// Keep replaying the seed picked for the first run.
		g.opts.Sim.Seed = g.sim.Seed()
	}

	sim, err := simulation.New(g.cfg, g.opts.Sim)
	if err != nil {
		return fmt.Errorf("starting simulation: %w", err)
	}
	g.sim = sim
	g.clock.Reset()
	g.extinct = false
	g.logger.Info("simulation started", "seed", sim.Seed(), "rows", sim.Island().Rows(), "cols", sim.Island().Cols())
	return nil
}

// layout splits the screen: the map viewport on the left under the HUD,
// the panels in a column on the right.
func (g *Game) layout() {
	x := g.screenWidth - panelWidth - margin
	y := int32(margin)
	g.controls.SetPosition(x, y)
	y += g.controls.Height() + margin
	g.perfPanel.SetPosition(x, y)
	y += 120 + margin
	g.inspector.SetPosition(x, y)

	vx, vy := float32(margin), float32(hudHeight)
	vw := float32(max(x-2*margin, 1))
	vh := float32(max(g.screenHeight-hudHeight-30, 1))
	if g.cam == nil {
		isl := g.sim.Island()
		world := g.islandRenderer.Bounds(isl.Rows(), isl.Cols())
		g.cam = camera.New(vx, vy, vw, vh, world.Width, world.Height)
		return
	}
	g.cam.Resize(vx, vy, vw, vh)
}

// camera2D converts the viewer camera for raylib's 2D mode.
func (g *Game) camera2D() rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: g.cam.OriginX + g.cam.ViewportW/2, Y: g.cam.OriginY + g.cam.ViewportH/2},
		Target: rl.Vector2{X: g.cam.X, Y: g.cam.Y},
		Zoom:   g.cam.Zoom,
	}
}

// Update handles input and advances the simulation by the years due this
// frame.
func (g *Game) Update() {
	g.handleResize()
	g.handleCameraInput()
	g.updateHover()
	g.sim.Perf().RecordFrame()

	if g.paused || g.extinct {
		return
	}
	for range g.clock.Advance(rl.GetFrameTime()) {
		if !g.step() {
			return
		}
	}
}

// step simulates one year and reports whether the run can continue.
func (g *Game) step() bool {
	if g.opts.MaxYears > 0 && g.sim.Year() >= g.opts.MaxYears {
		g.paused = true
		return false
	}
	stats := g.sim.Step()
	if stats.Herbivores == 0 && stats.Carnivores == 0 {
		g.extinct = true
		g.logger.Info("population extinct", "year", stats.Year)
		return false
	}
	return true
}

// Draw renders the frame and applies the actions requested through the
// controls.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(12, 16, 22, 255))

	isl := g.sim.Island()
	rl.BeginScissorMode(int32(g.cam.OriginX), int32(g.cam.OriginY), int32(g.cam.ViewportW), int32(g.cam.ViewportH))
	rl.BeginMode2D(g.camera2D())
	g.islandRenderer.Draw(isl, g.hover)
	rl.EndMode2D()
	rl.EndScissorMode()

	g.hud.Draw(ui.HUDData{
		Title:       "Island",
		Stats:       g.sim.Last(),
		YearsPerSec: g.clock.YearsPerSec,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
		Extinct:     g.extinct,
	})
	g.hud.DrawControls(g.screenHeight, "[Space] pause  [.] step  [D] density  [G] graph  [R] reset  [Wheel] zoom  [RMB] pan  [Home] fit")

	act, speed := g.controls.Draw(g.paused, g.clock.YearsPerSec, g.islandRenderer.Mode == renderer.ModeDensity)
	g.clock.YearsPerSec = speed
	g.perfPanel.Draw(g.sim.Perf().Stats())

	if g.hover != nil {
		if cell, ok := isl.CellAt(*g.hover); ok {
			g.inspector.Draw(ui.Summarize(*g.hover, cell), g.fodderColor)
		}
	}

	rl.EndDrawing()

	g.apply(act.Merge(ui.KeyActions()))
}

// History returns the population history of the current run.
func (g *Game) History() *telemetry.History { return g.sim.History() }

// Year returns the number of simulated years.
func (g *Game) Year() int { return g.sim.Year() }

// Unload closes the simulation output.
func (g *Game) Unload() {
	if err := g.sim.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
}
