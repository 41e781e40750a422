// Package simulation drives an island year by year and feeds its telemetry:
// statistics, population history, bookmarks and CSV output.
package simulation

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/island"
	"github.com/pthm-cable/biosim/telemetry"
)

// Options configures a Simulation beyond what the config file holds.
type Options struct {
	Seed          uint64 // 0 = use simulation.seed, then a time-based seed
	LogStats      bool   // Log stats, perf and bookmarks via slog
	OutputDir     string // Directory for CSV logs and config snapshot
	Logger        *slog.Logger
	StatsCallback func(telemetry.YearStats)
}

// Simulation owns an island and everything that observes it.
type Simulation struct {
	cfg  *config.Config
	isl  *island.Island
	seed uint64

	collector        *telemetry.Collector
	history          *telemetry.History
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager

	logger        *slog.Logger
	logStats      bool
	logInterval   int
	statsCallback func(telemetry.YearStats)
	last          telemetry.YearStats
}

// New builds the island described by cfg, seeds the initial population and
// records year 0. cfg is not modified; a generated map and any relocated
// seeding entries live in the simulation's own copy.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	cfg = cfg.Clone()

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	if cfg.Map.Generate {
		rows, err := island.GenerateMap(cfg.Map.Generator)
		if err != nil {
			return nil, fmt.Errorf("generating map: %w", err)
		}
		cfg.SetMap(rows)
		relocateToLand(cfg, logger)
	}

	s := &Simulation{
		cfg:              cfg,
		seed:             seed,
		collector:        telemetry.NewCollector(),
		history:          telemetry.NewHistory(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logger:           logger,
		logStats:         opts.LogStats,
		logInterval:      max(cfg.Telemetry.LogInterval, 1),
		statsCallback:    opts.StatsCallback,
	}

	islandOpts := []island.Option{
		island.WithRecorder(s.collector),
		island.WithPhaseTimer(s.perfCollector),
		island.WithLogger(logger),
	}
	if cfg.Simulation.Verify {
		islandOpts = append(islandOpts, island.WithVerify())
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	isl, err := island.New(cfg.Map.Rows, &cfg.Species, cfg.Fodder, rng, islandOpts...)
	if err != nil {
		return nil, fmt.Errorf("building island: %w", err)
	}
	s.isl = isl

	if err := isl.Seed(Populations(cfg.Population)); err != nil {
		return nil, fmt.Errorf("seeding initial population: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	s.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		logger.Error("failed to write config snapshot", "error", err)
	}

	s.observe(s.collector.Flush(isl))
	return s, nil
}

// Populations converts configured seeding entries to island populations.
func Populations(entries []config.PopulationConfig) []island.Population {
	pops := make([]island.Population, len(entries))
	for i, e := range entries {
		pops[i] = island.Population{
			At:      island.Coord{Row: e.Row, Col: e.Col},
			Species: e.Species,
			Count:   e.Count,
		}
	}
	return pops
}

// relocateToLand moves seeding entries that fall on water of a generated
// map to the nearest land cell.
func relocateToLand(cfg *config.Config, logger *slog.Logger) {
	for i, e := range cfg.Population {
		at := island.Coord{Row: e.Row, Col: e.Col}
		land, ok := island.NearestLand(cfg.Map.Rows, at)
		if !ok || land == at {
			continue
		}
		logger.Info("moved initial population to land", "from", at, "to", land, "species", e.Species)
		cfg.Population[i].Row, cfg.Population[i].Col = land.Row, land.Col
	}
}

// AddPopulation places more animals on the island between years.
func (s *Simulation) AddPopulation(pops []island.Population) error {
	if err := s.isl.Seed(pops); err != nil {
		return fmt.Errorf("adding population: %w", err)
	}
	return nil
}

// Step simulates one year and returns its statistics.
func (s *Simulation) Step() telemetry.YearStats {
	s.perfCollector.StartYear()
	s.isl.Step()
	s.perfCollector.EndYear()

	stats := s.collector.Flush(s.isl)
	s.observe(stats)
	return stats
}

// Run simulates the given number of years, stopping early once both species
// have died out. It returns the statistics of the last year simulated.
func (s *Simulation) Run(years int) telemetry.YearStats {
	for range years {
		stats := s.Step()
		if stats.Herbivores == 0 && stats.Carnivores == 0 {
			s.logger.Info("population extinct", "year", stats.Year)
			break
		}
	}
	return s.last
}

// observe records a year in the history and handles logging, output and
// bookmarks.
func (s *Simulation) observe(stats telemetry.YearStats) {
	s.last = stats
	s.history.Record(s.isl.Census())

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	logYear := s.logStats && stats.Year%s.logInterval == 0
	if logYear {
		s.logger.Info("stats", "year", stats)
	}

	if err := s.outputManager.WriteYear(stats); err != nil {
		s.logger.Error("failed to write population", "error", err)
	}
	if err := s.outputManager.WriteCells(s.isl); err != nil {
		s.logger.Error("failed to write cells", "error", err)
	}

	if stats.Year > 0 && stats.Year%s.logInterval == 0 {
		perfStats := s.perfCollector.Stats()
		if logYear {
			perfStats.Log(s.logger)
		}
		if err := s.outputManager.WritePerf(perfStats, stats.Year); err != nil {
			s.logger.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range s.bookmarkDetector.Check(stats) {
		if s.logStats {
			bm.Log(s.logger)
		}
		if err := s.outputManager.WriteBookmark(bm); err != nil {
			s.logger.Error("failed to write bookmark", "error", err)
		}
	}
}

// Config returns the configuration the simulation runs with, including a
// generated map.
func (s *Simulation) Config() *config.Config { return s.cfg }

// History returns the population history including year 0.
func (s *Simulation) History() *telemetry.History { return s.history }

// Year returns the number of simulated years.
func (s *Simulation) Year() int { return s.isl.Year() }

// Census counts the animals on the island.
func (s *Simulation) Census() island.Census { return s.isl.Census() }

// Island returns the simulated island for read-only use.
func (s *Simulation) Island() *island.Island { return s.isl }

// Perf returns the rolling performance statistics.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perfCollector }

// Seed returns the seed the random stream was created from.
func (s *Simulation) Seed() uint64 { return s.seed }

// Last returns the statistics of the latest recorded year.
func (s *Simulation) Last() telemetry.YearStats { return s.last }

// Close flushes and closes the output files.
func (s *Simulation) Close() error {
	return s.outputManager.Close()
}
