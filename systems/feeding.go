package systems

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/pthm-cable/biosim/components"
)

// GrazeCell feeds the herbivores of one cell from its fodder. The roster is
// left sorted by ascending fitness and the fittest animal eats first.
// Grazing stops as soon as the fodder is used up. It returns the fodder left.
func GrazeCell(herbivores []*components.Herbivore, p *components.Params, fodder float64) float64 {
	slices.SortStableFunc(herbivores, func(a, b *components.Herbivore) int {
		return cmp.Compare(a.Fitness(), b.Fitness())
	})

	for i := len(herbivores) - 1; i >= 0; i-- {
		if fodder <= 0 {
			break
		}
		fodder -= herbivores[i].Graze(p, fodder)
	}
	return max(fodder, 0)
}

// HuntCell shuffles the carnivores and lets each one hunt the herbivores
// still alive, in roster order. It returns the surviving herbivores and the
// number of kills.
func HuntCell(
	carnivores []*components.Carnivore,
	herbivores []*components.Herbivore,
	p *components.Params,
	rng *rand.Rand,
) ([]*components.Herbivore, int) {
	rng.Shuffle(len(carnivores), func(i, j int) {
		carnivores[i], carnivores[j] = carnivores[j], carnivores[i]
	})

	total := 0
	for _, c := range carnivores {
		if len(herbivores) == 0 {
			break
		}
		var kills int
		herbivores, kills = c.Hunt(p, herbivores, rng)
		total += kills
	}
	return herbivores, total
}
