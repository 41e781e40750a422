package systems

import (
	"testing"

	"github.com/pthm-cable/biosim/components"
)

func TestProcreate_Empty(t *testing.T) {
	p := &testTable().Herbivore
	roster, births := Procreate[*components.Herbivore](nil, p, testRNG(1), WrapHerbivore)
	if len(roster) != 0 || births != 0 {
		t.Errorf("empty roster produced %d births", births)
	}
}

func TestProcreate_NewbornsAppended(t *testing.T) {
	p := &testTable().Herbivore
	rng := testRNG(3)

	var roster []*components.Herbivore
	for i := 0; i < 50; i++ {
		roster = append(roster, herbivore(p, 60, 5))
	}
	parents := append([]*components.Herbivore(nil), roster...)

	roster, births := Procreate(roster, p, rng, WrapHerbivore)
	if births == 0 {
		t.Fatal("expected births from 50 heavy parents")
	}
	if len(roster) != 50+births {
		t.Fatalf("roster size = %d, want %d", len(roster), 50+births)
	}
	for i, parent := range parents {
		if roster[i] != parent {
			t.Fatal("parents must keep their positions")
		}
	}
	for _, baby := range roster[50:] {
		if baby.Age() != 0 {
			t.Errorf("newborn age = %d, want 0", baby.Age())
		}
	}
}

func TestProcreate_LightAnimalsNeverBreed(t *testing.T) {
	p := &testTable().Carnivore
	rng := testRNG(4)

	var roster []*components.Carnivore
	for i := 0; i < 20; i++ {
		roster = append(roster, carnivore(p, p.ProcreationThreshold/2, 5))
	}
	_, births := Procreate(roster, p, rng, WrapCarnivore)
	if births != 0 {
		t.Errorf("births = %d, want 0", births)
	}
}
