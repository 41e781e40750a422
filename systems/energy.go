package systems

import (
	"math/rand/v2"

	"github.com/pthm-cable/biosim/components"
)

// Deaths splits the yearly removals by cause.
type Deaths struct {
	Starved int // weight fell to zero or below
	Died    int // random death weighted by low fitness
}

// Total returns the number of animals removed.
func (d Deaths) Total() int { return d.Starved + d.Died }

// AgeAndCull ages every animal by one year (age, then metabolic loss) and
// removes the ones that die. A death draw is only made for animals that
// still have weight. Survivors keep their order; the roster is filtered in
// place.
func AgeAndCull[C Creature](roster []C, p *components.Params, rng *rand.Rand) ([]C, Deaths) {
	var deaths Deaths
	kept := roster[:0]
	for _, c := range roster {
		a := c.Body()
		a.AgeOneYear(p)

		if a.Weight() <= 0 {
			deaths.Starved++
			continue
		}
		if rng.Float64() < p.Omega*(1-a.Fitness()) {
			deaths.Died++
			continue
		}
		kept = append(kept, c)
	}
	clear(roster[len(kept):])
	return kept, deaths
}
