package components

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Animal is the state shared by every individual. Weight and age are only
// changed through methods so the cached fitness never goes stale.
type Animal struct {
	weight  float64
	age     int
	fitness float64
}

// NewAnimal builds an animal with the given state and computes its fitness.
func NewAnimal(p *Params, weight float64, age int) Animal {
	a := Animal{weight: weight, age: age}
	a.updateFitness(p)
	return a
}

// Spawn creates a newborn with a sampled birth weight.
func Spawn(p *Params, rng *rand.Rand) Animal {
	return NewAnimal(p, SampleBirthWeight(p, rng), 0)
}

// SampleBirthWeight draws from the species' log-normal birth-weight
// distribution.
func SampleBirthWeight(p *Params, rng *rand.Rand) float64 {
	d := distuv.LogNormal{Mu: p.LogMu, Sigma: p.LogSigma, Src: rng}
	return d.Rand()
}

// Body returns the shared state. It is promoted to Herbivore and Carnivore.
func (a *Animal) Body() *Animal { return a }

// Weight returns the current weight.
func (a *Animal) Weight() float64 { return a.weight }

// Age returns the age in years.
func (a *Animal) Age() int { return a.age }

// Fitness returns the cached fitness.
func (a *Animal) Fitness() float64 { return a.fitness }

func (a *Animal) updateFitness(p *Params) {
	a.fitness = p.Fitness(a.weight, a.age)
}

// AgeOneYear advances age by one year and applies the metabolic weight loss.
func (a *Animal) AgeOneYear(p *Params) {
	a.age++
	a.weight -= p.Eta * a.weight
	a.updateFitness(p)
}

// GiveBirth attempts to produce one offspring. population is the number of
// animals of the same species in the cell. The parent only pays for the
// offspring when it is heavy enough to afford it.
func (a *Animal) GiveBirth(p *Params, population int, rng *rand.Rand) (Animal, bool) {
	if a.weight < p.ProcreationThreshold {
		return Animal{}, false
	}
	factor := p.Gamma * float64(population)
	if rng.Float64() >= a.fitness*factor {
		return Animal{}, false
	}

	babyWeight := SampleBirthWeight(p, rng)
	cost := p.Xi * babyWeight
	if a.weight <= cost {
		return Animal{}, false
	}
	a.weight -= cost
	a.updateFitness(p)
	return NewAnimal(p, babyWeight, 0), true
}

// Herbivore grazes on cell fodder.
type Herbivore struct {
	Animal
}

// Graze eats up to the species appetite from the available fodder and
// returns the amount consumed.
func (h *Herbivore) Graze(p *Params, available float64) float64 {
	consumed := min(available, p.Appetite)
	if consumed <= 0 {
		return 0
	}
	h.weight += p.Beta * consumed
	h.updateFitness(p)
	return consumed
}

// Carnivore preys on herbivores.
type Carnivore struct {
	Animal
}

// KillProbability returns the chance that a predator with fitness pred kills
// a prey with fitness prey.
func KillProbability(pred, prey, deltaPhiMax float64) float64 {
	diff := pred - prey
	switch {
	case diff <= 0:
		return 0
	case diff >= deltaPhiMax:
		return 1
	default:
		return diff / deltaPhiMax
	}
}

// Hunt runs one predation round over prey in order. One draw is made per
// prey examined. It returns the surviving prey, in their original order,
// and the number of kills. Hunting stops once the appetite is used up.
func (c *Carnivore) Hunt(p *Params, prey []*Herbivore, rng *rand.Rand) ([]*Herbivore, int) {
	appetite := p.Appetite
	survivors := make([]*Herbivore, 0, len(prey))
	kills := 0

	for i, h := range prey {
		if appetite <= 0 {
			survivors = append(survivors, prey[i:]...)
			break
		}
		prob := KillProbability(c.fitness, h.fitness, p.DeltaPhiMax)
		if rng.Float64() >= prob {
			survivors = append(survivors, h)
			continue
		}

		eaten := min(appetite, h.weight)
		c.weight += eaten
		c.updateFitness(p)
		appetite -= eaten
		kills++
	}

	return survivors, kills
}
