// Package island models the grid of terrain cells and runs the yearly cycle
// of procreation, feeding, migration and aging across it.
package island

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/pthm-cable/biosim/components"
	"github.com/pthm-cable/biosim/config"
	"github.com/pthm-cable/biosim/systems"
)

// Phase names reported to a PhaseTimer, in execution order.
const (
	PhaseProcreation = "procreation"
	PhaseFeeding     = "feeding"
	PhaseMigration   = "migration"
	PhaseAging       = "aging"
)

// Coord addresses a cell by row and column, both zero based.
type Coord struct {
	Row, Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Population places Count newborn animals of one species on a cell.
type Population struct {
	At      Coord
	Species components.Species
	Count   int
}

// Recorder receives the demographic events of each year.
type Recorder interface {
	RecordBirths(s components.Species, n int)
	RecordDeaths(s components.Species, d systems.Deaths)
	RecordKills(n int)
	RecordMigration(s components.Species)
}

// PhaseTimer is told when each phase of a year begins.
type PhaseTimer interface {
	StartPhase(phase string)
}

type nopRecorder struct{}

func (nopRecorder) RecordBirths(components.Species, int)            {}
func (nopRecorder) RecordDeaths(components.Species, systems.Deaths) {}
func (nopRecorder) RecordKills(int)                                 {}
func (nopRecorder) RecordMigration(components.Species)              {}

type nopTimer struct{}

func (nopTimer) StartPhase(string) {}

// Option configures an Island.
type Option func(*Island)

// WithRecorder reports births, deaths, kills and migrations to r.
func WithRecorder(r Recorder) Option {
	return func(isl *Island) { isl.recorder = r }
}

// WithPhaseTimer reports phase boundaries to t.
func WithPhaseTimer(t PhaseTimer) Option {
	return func(isl *Island) { isl.timer = t }
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(isl *Island) { isl.logger = l }
}

// WithVerify checks the inhabited cache after every phase and panics if it
// has drifted from the rosters.
func WithVerify() Option {
	return func(isl *Island) { isl.verify = true }
}

// Island is the simulated landscape. It owns every animal and draws all
// randomness from a single injected stream, so a seed fully determines a run.
type Island struct {
	rows, cols int
	cells      []Cell // row-major, index = row*cols + col
	inhabited  []int  // ascending indices of non-empty cells
	year       int

	table   *components.Table
	fodder  config.FodderConfig
	rng     *rand.Rand
	offsets [components.NumSpecies][]systems.Offset

	recorder Recorder
	timer    PhaseTimer
	logger   *slog.Logger
	verify   bool
}

// New builds an island from map rows of terrain codes (W, H, L, M). Every
// cell starts with full fodder. rng must not be nil.
func New(rows []string, table *components.Table, fodder config.FodderConfig, rng *rand.Rand, opts ...Option) (*Island, error) {
	terrain, nRows, nCols, err := parseMap(rows)
	if err != nil {
		return nil, err
	}

	isl := &Island{
		rows:     nRows,
		cols:     nCols,
		cells:    make([]Cell, len(terrain)),
		table:    table,
		fodder:   fodder,
		rng:      rng,
		recorder: nopRecorder{},
		timer:    nopTimer{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for i, t := range terrain {
		capacity := t.Capacity(fodder)
		isl.cells[i] = Cell{Terrain: t, Capacity: capacity, Fodder: capacity}
	}
	for _, s := range components.AllSpecies {
		isl.offsets[s] = systems.StrideOffsets(table.For(s).Stride)
	}
	for _, opt := range opts {
		opt(isl)
	}
	return isl, nil
}

// Seed adds newborn animals. The whole list is validated first, so a failing
// call leaves the island unchanged.
func (isl *Island) Seed(pops []Population) error {
	for i, p := range pops {
		if !isl.inBounds(p.At) {
			return fmt.Errorf("seeding entry %d: %w: %s", i, ErrOutOfBounds, p.At)
		}
		if t := isl.cells[isl.index(p.At)].Terrain; !t.Passable() {
			return fmt.Errorf("seeding entry %d: %w: %s is %s", i, ErrImpassable, p.At, t)
		}
		if p.Species >= components.NumSpecies {
			return fmt.Errorf("seeding entry %d: %w", i, &components.UnknownSpeciesError{Name: p.Species.String()})
		}
		if p.Count < 0 {
			return fmt.Errorf("seeding entry %d: negative count %d", i, p.Count)
		}
	}

	for _, p := range pops {
		cell := &isl.cells[isl.index(p.At)]
		params := isl.table.For(p.Species)
		for range p.Count {
			a := components.Spawn(params, isl.rng)
			if p.Species == components.SpeciesCarnivore {
				cell.carnivores = append(cell.carnivores, systems.WrapCarnivore(a))
			} else {
				cell.herbivores = append(cell.herbivores, systems.WrapHerbivore(a))
			}
		}
		isl.logger.Debug("seeded population", "at", p.At.String(), "species", p.Species, "count", p.Count)
	}

	isl.inhabited = ComputeInhabited(isl.cells)
	return nil
}

// Step runs one year: procreation, feeding, migration, then aging and death.
func (isl *Island) Step() {
	isl.timer.StartPhase(PhaseProcreation)
	isl.procreate(isl.rng)
	isl.check(PhaseProcreation)

	isl.timer.StartPhase(PhaseFeeding)
	isl.feed(isl.rng)
	isl.check(PhaseFeeding)

	isl.timer.StartPhase(PhaseMigration)
	isl.migrate(isl.rng)
	isl.check(PhaseMigration)

	isl.timer.StartPhase(PhaseAging)
	isl.ageAndDie(isl.rng)
	isl.check(PhaseAging)

	isl.year++
}

func (isl *Island) check(phase string) {
	if !isl.verify {
		return
	}
	if err := isl.VerifyInhabited(); err != nil {
		panic(fmt.Sprintf("island: after %s: %v", phase, err))
	}
}

func (isl *Island) procreate(rng *rand.Rand) {
	hp, cp := &isl.table.Herbivore, &isl.table.Carnivore
	for _, idx := range isl.inhabited {
		cell := &isl.cells[idx]
		var births int
		cell.herbivores, births = systems.Procreate(cell.herbivores, hp, rng, systems.WrapHerbivore)
		isl.recorder.RecordBirths(components.SpeciesHerbivore, births)
		cell.carnivores, births = systems.Procreate(cell.carnivores, cp, rng, systems.WrapCarnivore)
		isl.recorder.RecordBirths(components.SpeciesCarnivore, births)
	}
	isl.inhabited = ComputeInhabited(isl.cells)
}

// feed regrows fodder on inhabited cells, lets the herbivores graze and then
// the carnivores hunt what is left.
func (isl *Island) feed(rng *rand.Rand) {
	hp, cp := &isl.table.Herbivore, &isl.table.Carnivore
	for _, idx := range isl.inhabited {
		cell := &isl.cells[idx]
		cell.Fodder = systems.RegrowFodder(cell.Fodder, cell.Capacity, isl.fodder.VMax, isl.fodder.Alpha)
		cell.Fodder = systems.GrazeCell(cell.herbivores, hp, cell.Fodder)

		var kills int
		cell.herbivores, kills = systems.HuntCell(cell.carnivores, cell.herbivores, cp, rng)
		isl.recorder.RecordKills(kills)
	}
}

// aggregate is the per-cell state migration decisions are based on.
type aggregate struct {
	fodder          float64
	herbivoreWeight float64
	counts          Counts
}

func (isl *Island) snapshot() []aggregate {
	snap := make([]aggregate, len(isl.cells))
	for _, idx := range isl.inhabited {
		c := &isl.cells[idx]
		snap[idx].herbivoreWeight = c.HerbivoreWeight()
		snap[idx].counts = c.Counts()
	}
	for i := range isl.cells {
		snap[i].fodder = isl.cells[i].Fodder
	}
	return snap
}

// migrate flags every animal first, snapshots the cells, and only then moves
// the flagged animals. Decisions therefore never see moves made earlier in
// the same year.
func (isl *Island) migrate(rng *rand.Rand) {
	flags := make([][components.NumSpecies][]int, len(isl.inhabited))
	hp, cp := &isl.table.Herbivore, &isl.table.Carnivore
	for k, idx := range isl.inhabited {
		cell := &isl.cells[idx]
		for i, h := range cell.herbivores {
			if systems.WantsToMigrate(h.Fitness(), hp.Mu, rng) {
				flags[k][components.SpeciesHerbivore] = append(flags[k][components.SpeciesHerbivore], i)
			}
		}
		for i, c := range cell.carnivores {
			if systems.WantsToMigrate(c.Fitness(), cp.Mu, rng) {
				flags[k][components.SpeciesCarnivore] = append(flags[k][components.SpeciesCarnivore], i)
			}
		}
	}

	snap := isl.snapshot()
	var base, scratch []systems.Candidate
	for k, idx := range isl.inhabited {
		from := isl.coord(idx)
		for _, s := range components.AllSpecies {
			marked := flags[k][s]
			if len(marked) == 0 {
				continue
			}
			base = isl.candidates(base[:0], from, s, snap)
			// Descending so earlier indices stay valid after removal.
			for j := len(marked) - 1; j >= 0; j-- {
				scratch = append(scratch[:0], base...)
				dest, ok := systems.ChooseDestination(scratch, rng)
				if !ok {
					continue
				}
				isl.move(idx, dest, s, marked[j])
				isl.recorder.RecordMigration(s)
			}
		}
	}

	isl.inhabited = ComputeInhabited(isl.cells)
}

// candidates appends the passable cells within the species' stride of from,
// in row-major order, scored from the snapshot.
func (isl *Island) candidates(dst []systems.Candidate, from Coord, s components.Species, snap []aggregate) []systems.Candidate {
	hunger := isl.table.For(s).Appetite
	for _, o := range isl.offsets[s] {
		to := Coord{Row: from.Row + o.DRow, Col: from.Col + o.DCol}
		if !isl.inBounds(to) {
			continue
		}
		j := isl.index(to)
		if !isl.cells[j].Terrain.Passable() {
			continue
		}
		food := snap[j].fodder
		if s == components.SpeciesCarnivore {
			food = snap[j].herbivoreWeight
		}
		dst = append(dst, systems.Candidate{
			Index:      j,
			Propensity: systems.Propensity(food, snap[j].counts.Of(s), hunger),
		})
	}
	return dst
}

func (isl *Island) move(from, to int, s components.Species, i int) {
	src, dst := &isl.cells[from], &isl.cells[to]
	if s == components.SpeciesCarnivore {
		a := src.carnivores[i]
		src.carnivores = slices.Delete(src.carnivores, i, i+1)
		dst.carnivores = append(dst.carnivores, a)
		return
	}
	a := src.herbivores[i]
	src.herbivores = slices.Delete(src.herbivores, i, i+1)
	dst.herbivores = append(dst.herbivores, a)
}

func (isl *Island) ageAndDie(rng *rand.Rand) {
	hp, cp := &isl.table.Herbivore, &isl.table.Carnivore
	for _, idx := range isl.inhabited {
		cell := &isl.cells[idx]
		var deaths systems.Deaths
		cell.herbivores, deaths = systems.AgeAndCull(cell.herbivores, hp, rng)
		isl.recorder.RecordDeaths(components.SpeciesHerbivore, deaths)
		cell.carnivores, deaths = systems.AgeAndCull(cell.carnivores, cp, rng)
		isl.recorder.RecordDeaths(components.SpeciesCarnivore, deaths)
	}
	isl.inhabited = ComputeInhabited(isl.cells)
}

func (isl *Island) inBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < isl.rows && c.Col >= 0 && c.Col < isl.cols
}

func (isl *Island) index(c Coord) int {
	return c.Row*isl.cols + c.Col
}

func (isl *Island) coord(i int) Coord {
	return Coord{Row: i / isl.cols, Col: i % isl.cols}
}
