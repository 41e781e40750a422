package systems

import (
	"math/rand/v2"

	"github.com/pthm-cable/biosim/components"
)

// Procreate lets every animal of a roster attempt one birth. The population
// used for the birth factor is the roster size before any newborn is added.
// Newborns are appended after the whole roster has been scanned. It returns
// the grown roster and the number of births.
func Procreate[C Creature](roster []C, p *components.Params, rng *rand.Rand, wrap func(components.Animal) C) ([]C, int) {
	population := len(roster)
	if population == 0 {
		return roster, 0
	}

	var newborns []C
	for _, c := range roster {
		baby, ok := c.Body().GiveBirth(p, population, rng)
		if !ok {
			continue
		}
		newborns = append(newborns, wrap(baby))
	}

	return append(roster, newborns...), len(newborns)
}
