package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/simulation"
	"github.com/pthm-cable/biosim/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxYears   int
	seeds      []uint64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxYears int, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxYears:   maxYears,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// A species below minViablePop for extinctionGraceYears consecutive years
// counts as functionally extinct.
const (
	minViablePop         = 3
	extinctionGraceYears = 5
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalYears int // years before functional extinction (or maxYears if survived)
	years         []telemetry.YearStats
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Seeds run in parallel; each owns its island and random stream.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality := computeQuality(result.years)
			results[idx] = seedResult{
				fitness: computeFitness(result.survivalYears, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless simulation run until functional
// extinction or maxYears, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed uint64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{survivalYears: fe.maxYears}
	sim, err := simulation.New(cfg, simulation.Options{
		Seed: seed,
		StatsCallback: func(stats telemetry.YearStats) {
			result.years = append(result.years, stats)
		},
	})
	if err != nil {
		result.survivalYears = 0
		return result
	}
	defer sim.Close()

	var herbBelow, carnBelow int
	for sim.Year() < fe.maxYears {
		stats := sim.Step()

		if stats.Herbivores == 0 || stats.Carnivores == 0 {
			result.survivalYears = stats.Year
			return result
		}

		herbBelow = belowCount(stats.Herbivores, herbBelow)
		carnBelow = belowCount(stats.Carnivores, carnBelow)
		if herbBelow >= extinctionGraceYears || carnBelow >= extinctionGraceYears {
			result.survivalYears = stats.Year
			return result
		}
	}
	return result
}

// belowCount extends the run of years spent under the viable population.
func belowCount(pop, run int) int {
	if pop < minViablePop {
		return run + 1
	}
	return 0
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalYears × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(survivalYears int, quality float64) float64 {
	return -(float64(survivalYears) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.35
	qualityWeightStability = 0.35
	qualityWeightHunting   = 0.30

	qualityWarmupYears = 20 // skip the initial transient
	qualityMinPop      = 3  // exclude years where either species < this
	targetRatio        = 10 // prey per predator
)

// computeQuality computes ecosystem quality ∈ [0, 1] from yearly stats.
func computeQuality(years []telemetry.YearStats) float64 {
	if len(years) <= qualityWarmupYears {
		return 0
	}

	var ratioSum, huntSum float64
	var ratioCount, huntCount int
	herbs := make([]float64, 0, len(years))
	carns := make([]float64, 0, len(years))

	for _, y := range years[qualityWarmupYears:] {
		if y.Herbivores < qualityMinPop || y.Carnivores < qualityMinPop {
			continue
		}
		herbs = append(herbs, float64(y.Herbivores))
		carns = append(carns, float64(y.Carnivores))

		// 1. Population ratio, log-gaussian around the target
		logErr := math.Log(float64(y.Herbivores) / float64(y.Carnivores) / targetRatio)
		ratioSum += math.Exp(-logErr * logErr)
		ratioCount++

		// 3. Hunting activity: kills per carnivore, saturating
		killsPerCarn := float64(y.Kills) / float64(y.Carnivores)
		huntSum += 1 - math.Exp(-killsPerCarn)
		huntCount++
	}

	if ratioCount == 0 {
		return 0
	}
	ratioScore := ratioSum / float64(ratioCount)

	// 2. Population stability
	stabilityScore := 0.0
	if len(herbs) >= 2 {
		cvHerb := cv(herbs)
		cvCarn := cv(carns)
		stabilityScore = math.Exp(-(cvHerb*cvHerb + cvCarn*cvCarn))
	}

	huntScore := huntSum / float64(huntCount)

	quality := qualityWeightRatio*ratioScore +
		qualityWeightStability*stabilityScore +
		qualityWeightHunting*huntScore

	return min(max(quality, 0), 1)
}

// cv computes the coefficient of variation (std/mean).
func cv(values []float64) float64 {
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
