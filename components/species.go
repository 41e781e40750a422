// Package components defines the per-individual state of the simulation:
// species tags, parameter tables and the animal life-cycle model.
package components

// Species identifies one of the two built-in animal kinds.
type Species uint8

const (
	SpeciesHerbivore Species = iota
	SpeciesCarnivore

	// NumSpecies is the number of built-in species.
	NumSpecies = 2
)

// AllSpecies lists every species in processing order.
var AllSpecies = [NumSpecies]Species{SpeciesHerbivore, SpeciesCarnivore}

// String returns the lowercase species name.
func (s Species) String() string {
	switch s {
	case SpeciesHerbivore:
		return "herbivore"
	case SpeciesCarnivore:
		return "carnivore"
	default:
		return "unknown"
	}
}

// ParseSpecies converts a name back into a Species.
func ParseSpecies(name string) (Species, bool) {
	switch name {
	case "herbivore", "Herbivore":
		return SpeciesHerbivore, true
	case "carnivore", "Carnivore":
		return SpeciesCarnivore, true
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler so species names appear in
// YAML and CSV output.
func (s Species) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Species) UnmarshalText(text []byte) error {
	parsed, ok := ParseSpecies(string(text))
	if !ok {
		return &UnknownSpeciesError{Name: string(text)}
	}
	*s = parsed
	return nil
}

// UnknownSpeciesError reports a species name that is not built in.
type UnknownSpeciesError struct {
	Name string
}

func (e *UnknownSpeciesError) Error() string {
	return "unknown species " + `"` + e.Name + `"`
}
