package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biosim/island"
)

// CellMode selects what the cell fill encodes.
type CellMode int

const (
	ModeTerrain CellMode = iota // terrain color shaded by fodder level
	ModeDensity                 // heat map of the total animal count
)

var (
	waterColor    = rl.NewColor(38, 84, 124, 255)
	lowlandColor  = rl.NewColor(96, 168, 72, 255)
	highlandColor = rl.NewColor(176, 176, 96, 255)
	mountainColor = rl.NewColor(120, 116, 112, 255)
	gridLine      = rl.NewColor(20, 24, 28, 255)
	hoverColor    = rl.NewColor(255, 230, 80, 255)
)

// IslandRenderer draws the island as a grid of cells with per-cell
// population markers.
type IslandRenderer struct {
	originX, originY int32
	cellSize         int32
	Herbivore        rl.Color
	Carnivore        rl.Color
	Mode             CellMode
}

// NewIslandRenderer creates a renderer whose top-left cell is drawn at
// world position (x, y). Draw is meant to run inside a 2D camera mode.
func NewIslandRenderer(x, y, cellSize int32, herbivore, carnivore rl.Color) *IslandRenderer {
	return &IslandRenderer{
		originX:   x,
		originY:   y,
		cellSize:  max(cellSize, 4),
		Herbivore: herbivore,
		Carnivore: carnivore,
	}
}

// Bounds returns the world rectangle covered by a rows x cols map.
func (r *IslandRenderer) Bounds(rows, cols int) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(r.originX),
		Y:      float32(r.originY),
		Width:  float32(int32(cols) * r.cellSize),
		Height: float32(int32(rows) * r.cellSize),
	}
}

// CellAtPoint converts a world position to the map coordinate under it.
func (r *IslandRenderer) CellAtPoint(pos rl.Vector2, rows, cols int) (island.Coord, bool) {
	dx := pos.X - float32(r.originX)
	dy := pos.Y - float32(r.originY)
	if dx < 0 || dy < 0 {
		return island.Coord{}, false
	}
	at := island.Coord{
		Row: int(dy) / int(r.cellSize),
		Col: int(dx) / int(r.cellSize),
	}
	if at.Row >= rows || at.Col >= cols {
		return island.Coord{}, false
	}
	return at, true
}

// Draw renders every cell. hover, when non-nil, is outlined.
func (r *IslandRenderer) Draw(isl *island.Island, hover *island.Coord) {
	rows, cols := isl.Rows(), isl.Cols()

	peak := 1
	if r.Mode == ModeDensity {
		for _, at := range isl.Inhabited() {
			cell, _ := isl.CellAt(at)
			peak = max(peak, cell.Counts().Total())
		}
	}

	for row := range rows {
		for col := range cols {
			at := island.Coord{Row: row, Col: col}
			cell, _ := isl.CellAt(at)
			x := r.originX + int32(col)*r.cellSize
			y := r.originY + int32(row)*r.cellSize

			rl.DrawRectangle(x, y, r.cellSize, r.cellSize, r.fill(cell, peak))
			rl.DrawRectangleLines(x, y, r.cellSize, r.cellSize, gridLine)

			if !cell.Empty() {
				r.drawCounts(x, y, cell.Counts())
			}
		}
	}

	if hover != nil {
		x := r.originX + int32(hover.Col)*r.cellSize
		y := r.originY + int32(hover.Row)*r.cellSize
		rl.DrawRectangleLines(x, y, r.cellSize, r.cellSize, hoverColor)
		rl.DrawRectangleLines(x+1, y+1, r.cellSize-2, r.cellSize-2, hoverColor)
	}
}

func (r *IslandRenderer) fill(cell *island.Cell, peak int) rl.Color {
	if r.Mode == ModeDensity && cell.Terrain.Passable() {
		return DensityColor(cell.Counts().Total(), peak)
	}
	base := TerrainColor(cell.Terrain)
	if cell.Capacity <= 0 {
		return base
	}
	// Grazed-down cells darken toward 40% brightness.
	level := float32(cell.Fodder / cell.Capacity)
	return shade(base, 0.4+0.6*min(max(level, 0), 1))
}

// drawCounts draws two bars along the bottom of a cell, their length
// growing with the log of the species count, and the counts as text when
// the cell is large enough.
func (r *IslandRenderer) drawCounts(x, y int32, counts island.Counts) {
	pad := max(r.cellSize/10, 1)
	barH := max(r.cellSize/8, 2)
	full := r.cellSize - 2*pad

	herbLen := BarLength(counts.Herbivores, full)
	carnLen := BarLength(counts.Carnivores, full)
	rl.DrawRectangle(x+pad, y+r.cellSize-pad-2*barH-1, herbLen, barH, r.Herbivore)
	rl.DrawRectangle(x+pad, y+r.cellSize-pad-barH, carnLen, barH, r.Carnivore)

	if r.cellSize >= 40 {
		font := r.cellSize / 4
		rl.DrawText(fmt.Sprint(counts.Herbivores), x+pad, y+pad, font, rl.White)
		rl.DrawText(fmt.Sprint(counts.Carnivores), x+pad, y+pad+font, font, rl.Black)
	}
}

// TerrainColor returns the base fill of a terrain type.
func TerrainColor(t island.Terrain) rl.Color {
	switch t {
	case island.TerrainLowland:
		return lowlandColor
	case island.TerrainHighland:
		return highlandColor
	case island.TerrainMountain:
		return mountainColor
	default:
		return waterColor
	}
}

// DensityColor maps a count to a dark-blue to red ramp relative to peak.
func DensityColor(count, peak int) rl.Color {
	if count <= 0 || peak <= 0 {
		return rl.NewColor(24, 28, 40, 255)
	}
	t := float32(math.Log1p(float64(count)) / math.Log1p(float64(peak)))
	t = min(max(t, 0), 1)
	return rl.NewColor(
		uint8(40+t*215),
		uint8(40+t*(1-t)*4*140),
		uint8(120*(1-t)),
		255,
	)
}

// BarLength scales a count onto [0, full] pixels with a log curve that
// saturates at 1000 animals.
func BarLength(count int, full int32) int32 {
	if count <= 0 {
		return 0
	}
	t := math.Log1p(float64(count)) / math.Log1p(1000)
	return max(int32(math.Round(float64(full)*min(t, 1))), 1)
}

func shade(c rl.Color, f float32) rl.Color {
	return rl.NewColor(uint8(float32(c.R)*f), uint8(float32(c.G)*f), uint8(float32(c.B)*f), c.A)
}
