package systems

import "github.com/pthm-cable/biosim/components"

// Creature is the set of roster element types. Rules shared by both species
// are written once against it; species-only behavior (grazing, hunting) stays
// on the concrete types.
type Creature interface {
	*components.Herbivore | *components.Carnivore
	Body() *components.Animal
}

// WrapHerbivore turns a newborn into a roster entry.
func WrapHerbivore(a components.Animal) *components.Herbivore {
	return &components.Herbivore{Animal: a}
}

// WrapCarnivore turns a newborn into a roster entry.
func WrapCarnivore(a components.Animal) *components.Carnivore {
	return &components.Carnivore{Animal: a}
}
