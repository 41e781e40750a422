// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/biosim/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Species    components.Table   `yaml:"species"`
	Fodder     FodderConfig       `yaml:"fodder"`
	Map        MapConfig          `yaml:"map"`
	Population []PopulationConfig `yaml:"population"`
	Simulation SimulationConfig   `yaml:"simulation"`
	Telemetry  TelemetryConfig    `yaml:"telemetry"`
	Bookmarks  BookmarksConfig    `yaml:"bookmarks"`
	Viewer     ViewerConfig       `yaml:"viewer"`
	Graph      GraphConfig        `yaml:"graph"`
	Output     OutputConfig       `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FodderConfig holds the fodder regrowth model and the terrain capacities.
// Water and mountain cells never carry fodder.
type FodderConfig struct {
	VMax     float64 `yaml:"v_max"`    // Regrowth scale per year
	Alpha    float64 `yaml:"alpha"`    // Shortfall damping (0 = always regrow v_max)
	Highland float64 `yaml:"highland"` // Capacity of H cells
	Lowland  float64 `yaml:"lowland"`  // Capacity of L cells
}

// MapConfig holds the island geography. Rows are used verbatim unless
// Generate is set.
type MapConfig struct {
	Rows      []string        `yaml:"rows"`
	Generate  bool            `yaml:"generate"`
	Generator GeneratorConfig `yaml:"generator"`
}

// GeneratorConfig holds procedural map generation parameters.
type GeneratorConfig struct {
	Rows     int     `yaml:"rows"`
	Cols     int     `yaml:"cols"`
	Seed     int64   `yaml:"seed"`
	Scale    float64 `yaml:"scale"`    // Noise frequency per cell
	Water    float64 `yaml:"water"`    // Noise below this is water
	Lowland  float64 `yaml:"lowland"`  // Noise below this is lowland
	Highland float64 `yaml:"highland"` // Noise below this is highland, above is mountain
	Falloff  float64 `yaml:"falloff"`  // Radial falloff strength towards the coast
}

// PopulationConfig places Count animals of one species on a cell.
type PopulationConfig struct {
	Row     int                `yaml:"row"`
	Col     int                `yaml:"col"`
	Species components.Species `yaml:"species"`
	Count   int                `yaml:"count"`
}

// SimulationConfig holds run parameters.
type SimulationConfig struct {
	Years  int    `yaml:"years"`
	Seed   uint64 `yaml:"seed"`
	Verify bool   `yaml:"verify"` // Check the inhabited cache after every year
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogInterval         int `yaml:"log_interval"` // Years between stats log records
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PredatorRecovery PredatorRecoveryConfig `yaml:"predator_recovery"`
	PreyCrash        PreyCrashConfig        `yaml:"prey_crash"`
	StableEcosystem  StableEcosystemConfig  `yaml:"stable_ecosystem"`
}

// PredatorRecoveryConfig holds predator recovery detection parameters.
type PredatorRecoveryConfig struct {
	MinPopulation      int `yaml:"min_population"`
	RecoveryMultiplier int `yaml:"recovery_multiplier"`
	MinFinal           int `yaml:"min_final"`
}

// PreyCrashConfig holds prey crash detection parameters.
type PreyCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// StableEcosystemConfig holds stable ecosystem detection parameters.
type StableEcosystemConfig struct {
	MinPrey     int     `yaml:"min_prey"`
	MinPred     int     `yaml:"min_pred"`
	CVThreshold float64 `yaml:"cv_threshold"`
	StableYears int     `yaml:"stable_years"`
}

// ViewerConfig holds live viewer settings.
type ViewerConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	TargetFPS   int     `yaml:"target_fps"`
	CellSize    int     `yaml:"cell_size"`
	YearsPerSec float64 `yaml:"years_per_sec"`
}

// GraphConfig holds population graph export settings.
type GraphConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Path      string `yaml:"path"`
	Herbivore string `yaml:"herbivore_color"` // hex RRGGBB
	Carnivore string `yaml:"carnivore_color"`
}

// OutputConfig holds the output directory. Empty disables file output.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MapRows int // Rows in Map.Rows
	MapCols int // Columns of the first map row
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. Environment overrides
// are applied last.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports values that cannot drive a simulation.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Species.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("species: %w", err))
	}
	if c.Fodder.VMax < 0 || c.Fodder.Highland < 0 || c.Fodder.Lowland < 0 {
		errs = append(errs, errors.New("fodder: v_max and capacities must not be negative"))
	}
	if !c.Map.Generate && len(c.Map.Rows) == 0 {
		errs = append(errs, errors.New("map: rows are required unless generate is set"))
	}
	for i, p := range c.Population {
		if p.Count < 0 {
			errs = append(errs, fmt.Errorf("population[%d]: count must not be negative", i))
		}
	}
	if c.Simulation.Years < 0 {
		errs = append(errs, fmt.Errorf("simulation: years must not be negative, got %d", c.Simulation.Years))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Species.Derive()

	c.Derived.MapRows = len(c.Map.Rows)
	c.Derived.MapCols = 0
	if len(c.Map.Rows) > 0 {
		c.Derived.MapCols = len(c.Map.Rows[0])
	}
}

// Clone returns a deep copy that can be modified independently.
func (c *Config) Clone() *Config {
	out := *c
	out.Map.Rows = slices.Clone(c.Map.Rows)
	out.Population = slices.Clone(c.Population)
	return &out
}

// SetMap replaces the geography, e.g. with a generated one, and refreshes
// derived values.
func (c *Config) SetMap(rows []string) {
	c.Map.Rows = rows
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
