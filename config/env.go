package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the settings that may be overridden from the
// environment. Pointers distinguish "unset" from zero values.
type envOverrides struct {
	Years     *int    `env:"BIOSIM_YEARS"`
	Seed      *uint64 `env:"BIOSIM_SEED"`
	Verify    *bool   `env:"BIOSIM_VERIFY"`
	OutputDir *string `env:"BIOSIM_OUTPUT_DIR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var o envOverrides
	if err := ParseEnv(&o); err != nil {
		return err
	}
	if o.Years != nil {
		c.Simulation.Years = *o.Years
	}
	if o.Seed != nil {
		c.Simulation.Seed = *o.Seed
	}
	if o.Verify != nil {
		c.Simulation.Verify = *o.Verify
	}
	if o.OutputDir != nil {
		c.Output.Dir = *o.OutputDir
	}
	return nil
}
