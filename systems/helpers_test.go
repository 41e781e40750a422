package systems

import (
	"math/rand/v2"

	"github.com/pthm-cable/biosim/components"
)

func testTable() *components.Table {
	t := &components.Table{
		Herbivore: components.Params{
			BirthWeight: 8.0, BirthSigma: 1.5, Beta: 0.9, Eta: 0.05,
			AHalf: 40, PhiAge: 0.6, WHalf: 10, PhiWeight: 0.1,
			Mu: 0.25, Gamma: 0.2, Zeta: 3.5, Xi: 1.2, Omega: 0.4,
			Appetite: 10, Stride: 1,
		},
		Carnivore: components.Params{
			BirthWeight: 6.0, BirthSigma: 1.0, Beta: 0.75, Eta: 0.125,
			AHalf: 40, PhiAge: 0.3, WHalf: 4, PhiWeight: 0.4,
			Mu: 0.4, Gamma: 0.8, Zeta: 3.5, Xi: 1.1, Omega: 0.8,
			Appetite: 50, DeltaPhiMax: 10, Stride: 3,
		},
	}
	t.Derive()
	return t
}

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func herbivore(p *components.Params, weight float64, age int) *components.Herbivore {
	return WrapHerbivore(components.NewAnimal(p, weight, age))
}

func carnivore(p *components.Params, weight float64, age int) *components.Carnivore {
	return WrapCarnivore(components.NewAnimal(p, weight, age))
}
