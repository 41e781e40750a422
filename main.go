package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/game"
	"github.com/pthm-cable/biosim/renderer"
	"github.com/pthm-cable/biosim/simulation"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	view := flag.Bool("view", false, "Open the interactive viewer instead of running headless")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = use config, then time-based)")
	years := flag.Int("years", 0, "Years to simulate (0 = use config)")
	graph := flag.String("graph", "", "Write a population graph PNG to this path after the run")
	generate := flag.Bool("generate", false, "Generate the map from noise instead of using map.rows")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *generate {
		cfg.Map.Generate = true
	}
	if *years > 0 {
		cfg.Simulation.Years = *years
	}
	if *graph != "" {
		cfg.Graph.Path = *graph
	}
	dir := *outputDir
	if dir == "" {
		dir = cfg.Output.Dir
	}

	opts := simulation.Options{
		Seed:      *seed,
		LogStats:  *logStats,
		OutputDir: dir,
		Logger:    logger,
	}

	if *view {
		runViewer(cfg, opts)
		return
	}
	if err := runHeadless(cfg, opts, *graph != ""); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless simulates the configured number of years without a window.
func runHeadless(cfg *config.Config, opts simulation.Options, exportGraph bool) error {
	sim, err := simulation.New(cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := sim.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	slog.Info("starting headless simulation",
		"seed", sim.Seed(),
		"years", cfg.Simulation.Years,
		"rows", sim.Config().Derived.MapRows,
		"cols", sim.Config().Derived.MapCols,
	)

	last := sim.Run(cfg.Simulation.Years)
	sim.Perf().Stats().Log(slog.Default())
	slog.Info("simulation finished",
		"year", last.Year,
		"herbivores", last.Herbivores,
		"carnivores", last.Carnivores,
	)

	if exportGraph {
		if err := renderer.ExportGraph(sim.History(), cfg.Graph); err != nil {
			return err
		}
		slog.Info("graph exported", "path", cfg.Graph.Path)
	}
	return nil
}

// runViewer opens the raylib window and drives the viewer until it is
// closed.
func runViewer(cfg *config.Config, opts simulation.Options) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Viewer.Width), int32(cfg.Viewer.Height), "Island Population")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Viewer.TargetFPS))

	g, err := game.NewGame(cfg, game.Options{Sim: opts, MaxYears: cfg.Simulation.Years})
	if err != nil {
		slog.Error("failed to start viewer", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	slog.Info("viewer closed", "year", g.Year())
}
