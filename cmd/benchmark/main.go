// Benchmark tool - times the configured scenario over several seeded runs.
//
// Usage: go run ./cmd/benchmark -years 1000 -runs 5
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/simulation"
	"github.com/pthm-cable/biosim/telemetry"
)

// runResult is the outcome of one timed run.
type runResult struct {
	Seed       uint64
	Years      int
	Elapsed    time.Duration
	Herbivores int
	Carnivores int
	Perf       telemetry.PerfStats
}

// YearsPerSecond is the simulated throughput of the run.
func (r runResult) YearsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Years) / r.Elapsed.Seconds()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	years := flag.Int("years", 1000, "Years per run")
	runs := flag.Int("runs", 3, "Number of runs")
	seed := flag.Uint64("seed", 1, "Seed of the first run; later runs use seed+i")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	base, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	results := make([]runResult, 0, *runs)
	for i := range *runs {
		r, err := benchmarkRun(base.Clone(), *seed+uint64(i), *years)
		if err != nil {
			slog.Error("run failed", "run", i, "error", err)
			os.Exit(1)
		}
		slog.Info("run finished",
			"run", i,
			"seed", r.Seed,
			"years", r.Years,
			"elapsed", r.Elapsed.Round(time.Millisecond).String(),
			"years_per_sec", r.YearsPerSecond(),
			"herbivores", r.Herbivores,
			"carnivores", r.Carnivores,
		)
		r.Perf.Log(logger)
		results = append(results, r)
	}

	mean, std := summarize(results)
	slog.Info("benchmark summary",
		"runs", len(results),
		"years_per_run", *years,
		"mean_elapsed", mean.Round(time.Millisecond).String(),
		"std_elapsed", std.Round(time.Millisecond).String(),
	)
}

// benchmarkRun simulates one island for the given number of years.
func benchmarkRun(cfg *config.Config, seed uint64, years int) (runResult, error) {
	sim, err := simulation.New(cfg, simulation.Options{Seed: seed})
	if err != nil {
		return runResult{}, err
	}
	defer sim.Close()

	start := time.Now()
	last := sim.Run(years)
	elapsed := time.Since(start)

	return runResult{
		Seed:       seed,
		Years:      sim.Year(),
		Elapsed:    elapsed,
		Herbivores: last.Herbivores,
		Carnivores: last.Carnivores,
		Perf:       sim.Perf().Stats(),
	}, nil
}

// summarize returns the mean and sample standard deviation of the run
// durations. A single run has zero deviation.
func summarize(results []runResult) (mean, std time.Duration) {
	if len(results) == 0 {
		return 0, 0
	}
	secs := make([]float64, len(results))
	for i, r := range results {
		secs[i] = r.Elapsed.Seconds()
	}
	if len(secs) == 1 {
		return results[0].Elapsed, 0
	}
	m, s := stat.MeanStdDev(secs, nil)
	return time.Duration(m * float64(time.Second)), time.Duration(s * float64(time.Second))
}
