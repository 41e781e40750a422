package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/island"
	"github.com/pthm-cable/biosim/systems"
)

// Collector accumulates the events of one year and produces YearStats.
// It implements island.Recorder.
type Collector struct {
	births     [components.NumSpecies]int
	starved    [components.NumSpecies]int
	died       [components.NumSpecies]int
	migrations [components.NumSpecies]int
	kills      int

	// Reused sample buffers
	weights []float64
	fitness []float64
	ages    []float64
}

var _ island.Recorder = (*Collector)(nil)

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordBirths records n births of species s.
func (c *Collector) RecordBirths(s components.Species, n int) {
	c.births[s] += n
}

// RecordDeaths records the deaths of species s by cause.
func (c *Collector) RecordDeaths(s components.Species, d systems.Deaths) {
	c.starved[s] += d.Starved
	c.died[s] += d.Died
}

// RecordKills records n herbivores killed by predators.
func (c *Collector) RecordKills(n int) {
	c.kills += n
}

// RecordMigration records one animal changing cell.
func (c *Collector) RecordMigration(s components.Species) {
	c.migrations[s]++
}

// Flush produces the YearStats for the island's current state and resets
// the event counters for the next year.
func (c *Collector) Flush(isl *island.Island) YearStats {
	census := isl.Census()
	stats := YearStats{
		Year:       census.Year,
		Herbivores: census.Totals.Herbivores,
		Carnivores: census.Totals.Carnivores,

		HerbivoreBirths:     c.births[components.SpeciesHerbivore],
		CarnivoreBirths:     c.births[components.SpeciesCarnivore],
		HerbivoreStarved:    c.starved[components.SpeciesHerbivore],
		CarnivoreStarved:    c.starved[components.SpeciesCarnivore],
		HerbivoreDied:       c.died[components.SpeciesHerbivore],
		CarnivoreDied:       c.died[components.SpeciesCarnivore],
		Kills:               c.kills,
		HerbivoreMigrations: c.migrations[components.SpeciesHerbivore],
		CarnivoreMigrations: c.migrations[components.SpeciesCarnivore],

		InhabitedCells: len(census.Cells),
		TotalFodder:    isl.TotalFodder(),
	}

	stats.HerbivoreWeight, stats.HerbivoreFitness, stats.HerbivoreAge = c.sample(isl, components.SpeciesHerbivore)
	stats.CarnivoreWeight, stats.CarnivoreFitness, stats.CarnivoreAge = c.sample(isl, components.SpeciesCarnivore)

	c.Reset()
	return stats
}

// Reset clears the event counters.
func (c *Collector) Reset() {
	c.births = [components.NumSpecies]int{}
	c.starved = [components.NumSpecies]int{}
	c.died = [components.NumSpecies]int{}
	c.migrations = [components.NumSpecies]int{}
	c.kills = 0
}

func (c *Collector) sample(isl *island.Island, s components.Species) (weight Summary, meanFitness, meanAge float64) {
	c.weights, c.fitness, c.ages = c.weights[:0], c.fitness[:0], c.ages[:0]
	isl.Visit(s, func(_ island.Coord, a *components.Animal) {
		c.weights = append(c.weights, a.Weight())
		c.fitness = append(c.fitness, a.Fitness())
		c.ages = append(c.ages, float64(a.Age()))
	})
	if len(c.weights) == 0 {
		return Summary{}, 0, 0
	}
	return Summarize(c.weights), stat.Mean(c.fitness, nil), stat.Mean(c.ages, nil)
}
