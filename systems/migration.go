package systems

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// MaxDestinations is the number of best-ranked cells a migrating animal
// chooses between.
const MaxDestinations = 4

// Offset is a relative grid displacement.
type Offset struct {
	DRow, DCol int
}

// StrideOffsets lists every displacement within a circle of the given radius,
// excluding the origin, in row-major order.
func StrideOffsets(stride int) []Offset {
	var offsets []Offset
	r2 := stride * stride
	for dr := -stride; dr <= stride; dr++ {
		for dc := -stride; dc <= stride; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if dr*dr+dc*dc <= r2 {
				offsets = append(offsets, Offset{DRow: dr, DCol: dc})
			}
		}
	}
	return offsets
}

// WantsToMigrate draws whether an animal with the given fitness is flagged
// to migrate this year.
func WantsToMigrate(fitness, mu float64, rng *rand.Rand) bool {
	return rng.Float64() <= mu*fitness
}

// Propensity scores a candidate cell: the food available there shared among
// the animals of the same species already present plus the newcomer.
func Propensity(food float64, population int, hunger float64) float64 {
	n := float64(population + 1)
	return food / max(hunger, n*hunger, n, 1)
}

// Candidate is a possible migration destination.
type Candidate struct {
	Index      int // linear cell index
	Propensity float64
}

// ChooseDestination keeps the MaxDestinations candidates with the highest
// propensity, picks one uniformly and accepts it with probability equal to
// its share of the kept propensity (one half when they are all zero).
// candidates is reordered in place. It reports false when the animal stays.
func ChooseDestination(candidates []Candidate, rng *rand.Rand) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	if len(candidates) > MaxDestinations {
		slices.SortStableFunc(candidates, func(a, b Candidate) int {
			return cmp.Compare(b.Propensity, a.Propensity)
		})
		candidates = candidates[:MaxDestinations]
	}

	var props [MaxDestinations]float64
	for i, c := range candidates {
		props[i] = c.Propensity
	}
	total := floats.Sum(props[:len(candidates)])

	chosen := rng.IntN(len(candidates))
	prob := 0.5
	if total != 0 {
		prob = candidates[chosen].Propensity / total
	}
	if rng.Float64() < prob {
		return candidates[chosen].Index, true
	}
	return 0, false
}
