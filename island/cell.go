package island

import "github.com/pthm-cable/biosim/components"

// Cell is one grid square: its fodder and the animals standing on it.
// Rosters keep insertion order.
type Cell struct {
	Terrain  Terrain
	Capacity float64
	Fodder   float64

	herbivores []*components.Herbivore
	carnivores []*components.Carnivore
}

// Empty reports whether no animal occupies the cell.
func (c *Cell) Empty() bool {
	return len(c.herbivores) == 0 && len(c.carnivores) == 0
}

// Herbivores returns the herbivore roster. Callers must not modify it.
func (c *Cell) Herbivores() []*components.Herbivore { return c.herbivores }

// Carnivores returns the carnivore roster. Callers must not modify it.
func (c *Cell) Carnivores() []*components.Carnivore { return c.carnivores }

// Counts returns the number of animals of each species.
func (c *Cell) Counts() Counts {
	return Counts{Herbivores: len(c.herbivores), Carnivores: len(c.carnivores)}
}

// HerbivoreWeight is the total weight of prey on the cell.
func (c *Cell) HerbivoreWeight() float64 {
	var sum float64
	for _, h := range c.herbivores {
		sum += h.Weight()
	}
	return sum
}

// Counts holds per-species animal counts.
type Counts struct {
	Herbivores int
	Carnivores int
}

// Of returns the count of one species.
func (c Counts) Of(s components.Species) int {
	if s == components.SpeciesCarnivore {
		return c.Carnivores
	}
	return c.Herbivores
}

// Total returns the number of animals of both species.
func (c Counts) Total() int {
	return c.Herbivores + c.Carnivores
}

func (c *Counts) add(o Counts) {
	c.Herbivores += o.Herbivores
	c.Carnivores += o.Carnivores
}
