// Package telemetry turns the yearly events and census of an island into
// statistics, population history, bookmarks and CSV output.
package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// YearStats holds the statistics of one simulated year.
type YearStats struct {
	Year int `csv:"year"`

	// Population counts at year end
	Herbivores int `csv:"herbivores"`
	Carnivores int `csv:"carnivores"`

	// Events during the year
	HerbivoreBirths     int `csv:"herbivore_births"`
	CarnivoreBirths     int `csv:"carnivore_births"`
	HerbivoreStarved    int `csv:"herbivore_starved"`
	CarnivoreStarved    int `csv:"carnivore_starved"`
	HerbivoreDied       int `csv:"herbivore_died"`
	CarnivoreDied       int `csv:"carnivore_died"`
	Kills               int `csv:"kills"`
	HerbivoreMigrations int `csv:"herbivore_migrations"`
	CarnivoreMigrations int `csv:"carnivore_migrations"`

	// Landscape
	InhabitedCells int     `csv:"inhabited_cells"`
	TotalFodder    float64 `csv:"total_fodder"`

	// Weight and fitness distributions (sampled at year end)
	HerbivoreWeight  Summary `csv:"herbivore_weight"`
	CarnivoreWeight  Summary `csv:"carnivore_weight"`
	HerbivoreFitness float64 `csv:"herbivore_fitness_mean"`
	CarnivoreFitness float64 `csv:"carnivore_fitness_mean"`
	HerbivoreAge     float64 `csv:"herbivore_age_mean"`
	CarnivoreAge     float64 `csv:"carnivore_age_mean"`
}

// Summary describes a sample of values.
type Summary struct {
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`
}

// Summarize computes the mean, sample standard deviation and empirical
// percentiles of values. values is sorted in place. An empty sample yields
// zeros.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}
	slices.Sort(values)

	var s Summary
	if n == 1 {
		s.Mean = values[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	}
	s.P10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	return s
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("p50", s.P50),
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s YearStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("year", s.Year),
		slog.Int("herbivores", s.Herbivores),
		slog.Int("carnivores", s.Carnivores),
		slog.Int("herbivore_births", s.HerbivoreBirths),
		slog.Int("carnivore_births", s.CarnivoreBirths),
		slog.Int("herbivore_deaths", s.HerbivoreStarved+s.HerbivoreDied),
		slog.Int("carnivore_deaths", s.CarnivoreStarved+s.CarnivoreDied),
		slog.Int("kills", s.Kills),
		slog.Int("herbivore_migrations", s.HerbivoreMigrations),
		slog.Int("carnivore_migrations", s.CarnivoreMigrations),
		slog.Int("inhabited_cells", s.InhabitedCells),
		slog.Float64("total_fodder", s.TotalFodder),
		slog.Any("herbivore_weight", s.HerbivoreWeight),
		slog.Any("carnivore_weight", s.CarnivoreWeight),
		slog.Float64("herbivore_fitness", s.HerbivoreFitness),
		slog.Float64("carnivore_fitness", s.CarnivoreFitness),
	)
}
