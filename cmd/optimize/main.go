// Package main searches species parameters with CMA-ES for settings that
// keep both populations alive and balanced.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/biosim/config"
)

type options struct {
	configPath string
	outputDir  string
	maxYears   int
	seeds      int
	maxEvals   int
	population int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.StringVar(&opts.outputDir, "output", "", "Directory for optimize_log.csv and best_config.yaml")
	flag.IntVar(&opts.maxYears, "max-years", 500, "Years simulated per run at most")
	flag.IntVar(&opts.seeds, "seeds", 3, "Islands simulated per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Evaluation budget")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = 4 + 1.5*dim)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(opts); err != nil {
		slog.Error("optimization failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.outputDir == "" {
		return errors.New("-output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	base, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, opts.maxYears, evalSeeds(opts.seeds), base)

	evals, err := newEvalLog(filepath.Join(opts.outputDir, "optimize_log.csv"), params)
	if err != nil {
		return err
	}
	defer evals.Close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			if err := evals.Record(raw, fitness, evaluator.LastQuality()); err != nil {
				slog.Warn("failed to log evaluation", "error", err)
			}
			evals.Progress(opts.maxEvals)
			return fitness
		},
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   populationSize(opts.population, params.Dim()),
	}
	slog.Info("starting optimization",
		"params", params.Dim(),
		"population", method.Population,
		"max_evals", opts.maxEvals,
		"seeds", opts.seeds,
		"max_years", opts.maxYears,
	)

	start := params.Normalize(params.ExtractFromConfig(base))
	// Seeds already run in parallel inside Evaluate.
	_, err = optimize.Minimize(problem, start, &optimize.Settings{FuncEvaluations: opts.maxEvals}, method)
	if err != nil {
		slog.Info("optimization stopped", "reason", err)
	}

	best, fitness, ok := evals.Best()
	if !ok {
		return errors.New("no evaluation completed")
	}
	for i, spec := range params.Specs {
		slog.Info("best parameter", "name", spec.Name, "path", spec.Path, "value", best[i])
	}

	out := base.Clone()
	params.ApplyToConfig(out, best)
	path := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := out.WriteYAML(path); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	slog.Info("optimization complete",
		"evals", evals.Count(),
		"best_fitness", fitness,
		"elapsed", time.Since(evals.started).Round(time.Second).String(),
		"config", path,
	)
	return nil
}

// evalSeeds returns n fixed, well-separated seeds so every evaluation sees
// the same islands.
func evalSeeds(n int) []uint64 {
	seeds := make([]uint64, n)
	for i := range seeds {
		seeds[i] = uint64(i*1000 + 42)
	}
	return seeds
}

// populationSize returns the CMA-ES population, defaulting to 4 + 1.5*dim.
func populationSize(requested, dim int) int {
	if requested > 0 {
		return requested
	}
	return 4 + 3*dim/2
}
