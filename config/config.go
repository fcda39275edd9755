// Package config loads simulation settings from YAML on top of embedded
// defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of a simulation run.
type Config struct {
	Profile          ProfileConfig          `yaml:"profile"`
	Environment      EnvironmentConfig      `yaml:"environment"`
	Thermoregulation ThermoregulationConfig `yaml:"thermoregulation"`
	Calibration      CalibrationConfig      `yaml:"calibration"`
	Simulation       SimulationConfig       `yaml:"simulation"`
	Logging          LoggingConfig          `yaml:"logging"`
}

// ProfileConfig describes the simulated individual.
type ProfileConfig struct {
	Height       float64 `yaml:"height"`        // m
	Weight       float64 `yaml:"weight"`        // kg
	BodyFat      float64 `yaml:"body_fat"`      // %
	Age          float64 `yaml:"age"`           // years
	Sex          string  `yaml:"sex"`           // male or female
	CardiacIndex float64 `yaml:"cardiac_index"` // L/(min m2)
	BMREquation  string  `yaml:"bmr_equation"`
	BSAEquation  string  `yaml:"bsa_equation"`
}

// EnvironmentConfig is the uniform environment applied after calibration.
type EnvironmentConfig struct {
	Tdb           float64 `yaml:"tdb"`  // degree C
	Tr            float64 `yaml:"tr"`   // degree C
	RH            float64 `yaml:"rh"`   // %
	V             float64 `yaml:"v"`    // m/s
	Clo           float64 `yaml:"clo"`  // clo
	Iclo          float64 `yaml:"iclo"` // -
	Posture       string  `yaml:"posture"`
	ActivityRatio float64 `yaml:"activity_ratio"`
}

// ThermoregulationConfig toggles parts of the controller.
type ThermoregulationConfig struct {
	NonShivering       bool    `yaml:"non_shivering"`
	ColdAcclimated     bool    `yaml:"cold_acclimated"`
	ShiveringThreshold bool    `yaml:"shivering_threshold"`
	ShiveringRateLimit float64 `yaml:"shivering_rate_limit"`
	BATPositive        bool    `yaml:"bat_positive"`
	AVAZero            bool    `yaml:"ava_zero"`
}

// CalibrationConfig is the passive run used to find the set-points.
type CalibrationConfig struct {
	Batches       int     `yaml:"batches"`
	TicksPerBatch int     `yaml:"ticks_per_batch"`
	Dtime         float64 `yaml:"dtime"` // s
}

// SimulationConfig holds run-level settings.
type SimulationConfig struct {
	Dtime         float64 `yaml:"dtime"` // s
	VerboseOutput bool    `yaml:"verbose_output"`
	Workers       int     `yaml:"workers"`
}

// LoggingConfig selects the log level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads path on top of the embedded defaults. Only the fields present
// in the file are overwritten. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes data on top of the embedded defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Calibration.Batches < 1 || c.Calibration.TicksPerBatch < 1 {
		return fmt.Errorf("calibration: batches and ticks_per_batch must be positive, got %d and %d",
			c.Calibration.Batches, c.Calibration.TicksPerBatch)
	}
	if c.Calibration.Dtime <= 0 {
		return fmt.Errorf("calibration: dtime must be positive, got %g", c.Calibration.Dtime)
	}
	if c.Simulation.Dtime <= 0 {
		return fmt.Errorf("simulation: dtime must be positive, got %g", c.Simulation.Dtime)
	}
	if c.Simulation.Workers < 1 {
		c.Simulation.Workers = 1
	}
	return nil
}

// WriteYAML saves the configuration to path.
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
