// Map generator preview tool - tune the noise island generator with sliders
// and copy the resulting map rows into a config file.
//
// Usage:
//
//	go run ./cmd/mapgen            # interactive preview
//	go run ./cmd/mapgen -print     # print map.rows YAML and exit
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/island"
	"github.com/pthm-cable/biosim/renderer"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	configPath := flag.String("config", "", "Config YAML holding map.generator (empty = use defaults)")
	printOnly := flag.Bool("print", false, "Print the generated map as YAML and exit")
	seed := flag.Int64("seed", 0, "Generator seed (0 = use config)")
	rows := flag.Int("rows", 0, "Map rows (0 = use config)")
	cols := flag.Int("cols", 0, "Map columns (0 = use config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	g := cfg.Map.Generator
	if *seed != 0 {
		g.Seed = *seed
	}
	if *rows > 0 {
		g.Rows = *rows
	}
	if *cols > 0 {
		g.Cols = *cols
	}

	if *printOnly {
		out, err := mapYAML(g)
		if err != nil {
			log.Fatalf("failed to generate map: %v", err)
		}
		os.Stdout.Write(out)
		return
	}
	preview(g)
}

// mapSnippet is the part of a config file the tool emits.
type mapSnippet struct {
	Map struct {
		Rows []string `yaml:"rows"`
	} `yaml:"map"`
}

// mapYAML generates a map and renders it as a config snippet.
func mapYAML(g config.GeneratorConfig) ([]byte, error) {
	rows, err := island.GenerateMap(g)
	if err != nil {
		return nil, err
	}
	var s mapSnippet
	s.Map.Rows = rows
	return yaml.Marshal(s)
}

// terrainShare counts the fraction of each terrain type over a map.
func terrainShare(rows []string) map[island.Terrain]float64 {
	share := make(map[island.Terrain]float64)
	total := 0
	for _, line := range rows {
		for i := 0; i < len(line); i++ {
			if t, ok := island.ParseTerrain(line[i]); ok {
				share[t]++
				total++
			}
		}
	}
	for t := range share {
		share[t] /= float64(total)
	}
	return share
}

func preview(g config.GeneratorConfig) {
	rl.InitWindow(windowWidth, windowHeight, "Island Map Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	initial := g
	rows, err := island.GenerateMap(g)
	if err != nil {
		log.Fatalf("failed to generate map: %v", err)
	}
	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			if next, err := island.GenerateMap(g); err == nil {
				rows = next
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawMap(rows)

		share := terrainShare(rows)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Water: %.0f%%  Lowland: %.0f%%  Highland: %.0f%%  Mountain: %.0f%%",
			share[island.TerrainWater]*100, share[island.TerrainLowland]*100,
			share[island.TerrainHighland]*100, share[island.TerrainMountain]*100),
			15, statsY, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Generator Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		sliders := []struct {
			label    string
			value    *float64
			min, max float32
		}{
			{"Scale (noise frequency)", &g.Scale, 0.02, 0.6},
			{"Water threshold", &g.Water, 0, 1},
			{"Lowland threshold", &g.Lowland, 0, 1},
			{"Highland threshold", &g.Highland, 0, 1},
			{"Coast falloff", &g.Falloff, 0, 3},
		}
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "", float32(*s.value), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf("%.2f", *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if float64(v) != *s.value {
				*s.value = float64(v)
				needsRegen = true
			}
			panelY += 35
		}

		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999", float32(g.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", g.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != g.Seed {
			g.Seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			g.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			g = initial
			needsRegen = true
		}

		rl.DrawText("Press C to copy map YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyC) {
			if out, err := mapYAML(g); err == nil {
				rl.SetClipboardText(string(out))
			}
		}

		rl.EndDrawing()
	}
}

// drawMap fills the preview square with the map cells.
func drawMap(rows []string) {
	if len(rows) == 0 {
		return
	}
	cell := int32(previewSize / max(len(rows), len(rows[0])))
	for r, line := range rows {
		for c := 0; c < len(line); c++ {
			t, _ := island.ParseTerrain(line[c])
			x, y := 10+int32(c)*cell, 10+int32(r)*cell
			rl.DrawRectangle(x, y, cell, cell, renderer.TerrainColor(t))
			rl.DrawRectangleLines(x, y, cell, cell, rl.Fade(rl.Black, 0.2))
		}
	}
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
}
