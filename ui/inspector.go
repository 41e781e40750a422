package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biosim/island"
)

// CellSummary is what the inspector shows about one cell.
type CellSummary struct {
	At              island.Coord
	Terrain         island.Terrain
	Fodder          float64
	Capacity        float64
	Counts          island.Counts
	HerbivoreWeight float64 // mean
	CarnivoreWeight float64 // mean
	HerbivoreAge    float64 // mean
	CarnivoreAge    float64 // mean
}

// Summarize collects the inspector view of a cell.
func Summarize(at island.Coord, cell *island.Cell) CellSummary {
	s := CellSummary{
		At:       at,
		Terrain:  cell.Terrain,
		Fodder:   cell.Fodder,
		Capacity: cell.Capacity,
		Counts:   cell.Counts(),
	}
	for _, h := range cell.Herbivores() {
		s.HerbivoreWeight += h.Weight()
		s.HerbivoreAge += float64(h.Age())
	}
	for _, c := range cell.Carnivores() {
		s.CarnivoreWeight += c.Weight()
		s.CarnivoreAge += float64(c.Age())
	}
	if n := float64(s.Counts.Herbivores); n > 0 {
		s.HerbivoreWeight /= n
		s.HerbivoreAge /= n
	}
	if n := float64(s.Counts.Carnivores); n > 0 {
		s.CarnivoreWeight /= n
		s.CarnivoreAge /= n
	}
	return s
}

// FodderLevel is the fodder as a fraction of capacity, zero for barren
// cells.
func (s CellSummary) FodderLevel() float32 {
	if s.Capacity <= 0 {
		return 0
	}
	return Clamp01(float32(s.Fodder / s.Capacity))
}

// Inspector renders details for the cell under the cursor.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates an inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (i *Inspector) SetPosition(x, y int32) {
	i.x = x
	i.y = y
}

// Draw renders the panel.
func (i *Inspector) Draw(s CellSummary, fodderColor rl.Color) {
	r := i.renderer
	pad := r.Theme.Padding
	r.DrawPanel(i.x, i.y, i.width, pad*2+r.Theme.LineHeight*9+8)

	x := i.x + pad
	y := r.DrawSectionHeader(x, i.y+pad, "Cell "+s.At.String())
	y = r.DrawLabelValue(x, y, "Terrain", s.Terrain.String())
	y = r.DrawBar(x, y, "Fodder", s.FodderLevel(), i.width-2*pad, fodderColor)
	y = r.DrawLabelValue(x, y, "Herbivores", fmt.Sprint(s.Counts.Herbivores))
	y = r.DrawLabelValue(x, y, "  weight", fmt.Sprintf("%.1f", s.HerbivoreWeight))
	y = r.DrawLabelValue(x, y, "  age", fmt.Sprintf("%.1f", s.HerbivoreAge))
	y = r.DrawLabelValue(x, y, "Carnivores", fmt.Sprint(s.Counts.Carnivores))
	y = r.DrawLabelValue(x, y, "  weight", fmt.Sprintf("%.1f", s.CarnivoreWeight))
	r.DrawLabelValue(x, y, "  age", fmt.Sprintf("%.1f", s.CarnivoreAge))
}
