package components

import (
	"errors"
	"fmt"
	"math"
)

// Params holds the constant biological parameters of one species.
type Params struct {
	BirthWeight float64 `yaml:"w_birth"`     // Nominal birth weight
	BirthSigma  float64 `yaml:"sigma_birth"` // Standard deviation of birth weight
	Beta        float64 `yaml:"beta"`        // Fraction of eaten fodder converted to weight
	Eta         float64 `yaml:"eta"`         // Yearly metabolic weight loss rate
	AHalf       float64 `yaml:"a_half"`      // Age midpoint of the fitness curve
	PhiAge      float64 `yaml:"phi_age"`     // Age steepness of the fitness curve
	WHalf       float64 `yaml:"w_half"`      // Weight midpoint of the fitness curve
	PhiWeight   float64 `yaml:"phi_weight"`  // Weight steepness of the fitness curve
	Mu          float64 `yaml:"mu"`          // Migration factor
	Gamma       float64 `yaml:"gamma"`       // Density-dependent procreation factor
	Zeta        float64 `yaml:"zeta"`        // Procreation weight threshold multiplier
	Xi          float64 `yaml:"xi"`          // Weight lost per unit of offspring weight
	Omega       float64 `yaml:"omega"`       // Death factor
	Appetite    float64 `yaml:"f"`           // Food consumed per year at most
	DeltaPhiMax float64 `yaml:"delta_phi_max,omitempty"`
	Stride      int     `yaml:"stride"` // Migration radius in cells

	// Derived values, filled by Derive.
	LogMu                float64 `yaml:"-"`
	LogSigma             float64 `yaml:"-"`
	ProcreationThreshold float64 `yaml:"-"`
}

// Derive precomputes the log-normal birth-weight parameters and the
// procreation threshold.
func (p *Params) Derive() {
	w2 := p.BirthWeight * p.BirthWeight
	s2 := p.BirthSigma * p.BirthSigma
	p.LogMu = math.Log(w2 / math.Sqrt(w2+s2))
	p.LogSigma = math.Sqrt(math.Log(1 + s2/w2))
	p.ProcreationThreshold = p.Zeta * (p.BirthWeight + p.BirthSigma)
}

// MeanBirthWeight is the analytic mean of the birth-weight distribution.
func (p *Params) MeanBirthWeight() float64 {
	return math.Exp(p.LogMu + p.LogSigma*p.LogSigma/2)
}

// Fitness evaluates the age/weight sigmoid product for the given state.
func (p *Params) Fitness(weight float64, age int) float64 {
	if weight <= 0 {
		return 0
	}
	qAge := 1 / (1 + math.Exp(p.PhiAge*(float64(age)-p.AHalf)))
	qWeight := 1 / (1 + math.Exp(-p.PhiWeight*(weight-p.WHalf)))
	return qAge * qWeight
}

// Validate reports parameter values that cannot describe a species.
func (p *Params) Validate() error {
	var errs []error
	if p.BirthWeight <= 0 {
		errs = append(errs, fmt.Errorf("w_birth must be positive, got %v", p.BirthWeight))
	}
	if p.BirthSigma < 0 {
		errs = append(errs, fmt.Errorf("sigma_birth must not be negative, got %v", p.BirthSigma))
	}
	if p.Appetite <= 0 {
		errs = append(errs, fmt.Errorf("f must be positive, got %v", p.Appetite))
	}
	if p.Stride < 0 {
		errs = append(errs, fmt.Errorf("stride must not be negative, got %d", p.Stride))
	}
	if p.Eta < 0 || p.Eta > 1 {
		errs = append(errs, fmt.Errorf("eta must be in [0, 1], got %v", p.Eta))
	}
	return errors.Join(errs...)
}

// Table maps each species to its parameters.
type Table struct {
	Herbivore Params `yaml:"herbivore"`
	Carnivore Params `yaml:"carnivore"`
}

// For returns the parameters of the given species.
func (t *Table) For(s Species) *Params {
	if s == SpeciesCarnivore {
		return &t.Carnivore
	}
	return &t.Herbivore
}

// Derive precomputes derived values for every species.
func (t *Table) Derive() {
	t.Herbivore.Derive()
	t.Carnivore.Derive()
}

// Validate checks both species; the carnivore additionally needs a
// positive fitness advantage scale.
func (t *Table) Validate() error {
	var errs []error
	if err := t.Herbivore.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("herbivore: %w", err))
	}
	if err := t.Carnivore.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("carnivore: %w", err))
	}
	if t.Carnivore.DeltaPhiMax <= 0 {
		errs = append(errs, fmt.Errorf("carnivore: delta_phi_max must be positive, got %v", t.Carnivore.DeltaPhiMax))
	}
	return errors.Join(errs...)
}
