package main

import (
	"github.com/pthm-cable/biosim/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	field func(cfg *config.Config) *float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters. The
// fitness curve shapes and birth weights stay fixed; the search covers the
// rates that drive the population balance.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Herbivore
			{Name: "herb_gamma", Path: "species.herbivore.gamma", Min: 0.05, Max: 0.5, Default: 0.2,
				field: func(c *config.Config) *float64 { return &c.Species.Herbivore.Gamma }},
			{Name: "herb_omega", Path: "species.herbivore.omega", Min: 0.1, Max: 0.8, Default: 0.4,
				field: func(c *config.Config) *float64 { return &c.Species.Herbivore.Omega }},
			{Name: "herb_f", Path: "species.herbivore.f", Min: 5, Max: 20, Default: 10,
				field: func(c *config.Config) *float64 { return &c.Species.Herbivore.Appetite }},
			{Name: "herb_eta", Path: "species.herbivore.eta", Min: 0.01, Max: 0.1, Default: 0.05,
				field: func(c *config.Config) *float64 { return &c.Species.Herbivore.Eta }},
			// Carnivore
			{Name: "carn_gamma", Path: "species.carnivore.gamma", Min: 0.2, Max: 1.2, Default: 0.8,
				field: func(c *config.Config) *float64 { return &c.Species.Carnivore.Gamma }},
			{Name: "carn_omega", Path: "species.carnivore.omega", Min: 0.2, Max: 1.0, Default: 0.8,
				field: func(c *config.Config) *float64 { return &c.Species.Carnivore.Omega }},
			{Name: "carn_f", Path: "species.carnivore.f", Min: 20, Max: 80, Default: 50,
				field: func(c *config.Config) *float64 { return &c.Species.Carnivore.Appetite }},
			{Name: "carn_eta", Path: "species.carnivore.eta", Min: 0.05, Max: 0.25, Default: 0.125,
				field: func(c *config.Config) *float64 { return &c.Species.Carnivore.Eta }},
			{Name: "carn_delta_phi_max", Path: "species.carnivore.delta_phi_max", Min: 2, Max: 20, Default: 10,
				field: func(c *config.Config) *float64 { return &c.Species.Carnivore.DeltaPhiMax }},
			// Landscape
			{Name: "fodder_alpha", Path: "fodder.alpha", Min: 0, Max: 0.5, Default: 0.1,
				field: func(c *config.Config) *float64 { return &c.Fodder.Alpha }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg and refreshes the
// derived species values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(cfg) = v
	}
	cfg.Species.Derive()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = *spec.field(cfg)
	}
	return v
}
