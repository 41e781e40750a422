package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biosim/renderer"
	"github.com/pthm-cable/biosim/ui"
)

// apply carries out the actions requested this frame.
func (g *Game) apply(act ui.Actions) {
	if !act.Any() {
		return
	}
	if act.TogglePause {
		g.paused = !g.paused
	}
	if act.Step && !g.extinct {
		g.paused = true
		g.step()
	}
	if act.ToggleMode {
		if g.islandRenderer.Mode == renderer.ModeDensity {
			g.islandRenderer.Mode = renderer.ModeTerrain
		} else {
			g.islandRenderer.Mode = renderer.ModeDensity
		}
	}
	if act.ExportGraph {
		g.exportGraph()
	}
	if act.Reset {
		if err := g.reset(); err != nil {
			g.logger.Error("reset failed", "error", err)
		}
	}
}

func (g *Game) exportGraph() {
	if err := renderer.ExportGraph(g.sim.History(), g.cfg.Graph); err != nil {
		g.logger.Error("graph export failed", "error", err)
		return
	}
	g.logger.Info("graph exported", "path", g.cfg.Graph.Path, "years", g.sim.History().Len())
}

// handleCameraInput zooms with the wheel around the cursor and pans while
// the right button is held.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}
	if !g.cam.Contains(mouse.X, mouse.Y) {
		return
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomAt(1+0.1*wheel, mouse.X, mouse.Y)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.cam.Pan(-d.X, -d.Y)
	}
}

// updateHover tracks the cell under the mouse.
func (g *Game) updateHover() {
	mouse := rl.GetMousePosition()
	if !g.cam.Contains(mouse.X, mouse.Y) {
		g.hover = nil
		return
	}
	wx, wy := g.cam.ScreenToWorld(mouse.X, mouse.Y)
	isl := g.sim.Island()
	at, ok := g.islandRenderer.CellAtPoint(rl.Vector2{X: wx, Y: wy}, isl.Rows(), isl.Cols())
	if !ok {
		g.hover = nil
		return
	}
	g.hover = &at
}

// handleResize checks for window resize and re-lays the panels.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.layout()
}
