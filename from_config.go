package jos3

import (
	"context"
	"os"

	"jos3/config"
	"jos3/logger"
)

// ProfileFromConfig converts the profile section of a configuration.
func ProfileFromConfig(c config.ProfileConfig) Profile {
	return Profile{
		Height:       c.Height,
		Weight:       c.Weight,
		BodyFat:      c.BodyFat,
		Age:          c.Age,
		Sex:          Sex(c.Sex),
		CardiacIndex: c.CardiacIndex,
		BMREquation:  BMREquation(c.BMREquation),
		BSAEquation:  BSAEquation(c.BSAEquation),
	}
}

// OptionsFromConfig converts the thermoregulation section of a
// configuration.
func OptionsFromConfig(c config.ThermoregulationConfig) Options {
	return Options{
		NonShivering:       c.NonShivering,
		ColdAcclimated:     c.ColdAcclimated,
		ShiveringThreshold: c.ShiveringThreshold,
		ShiveringRateLimit: c.ShiveringRateLimit,
		BATPositive:        c.BATPositive,
		AVAZero:            c.AVAZero,
	}
}

// EnvironmentFromConfig converts the environment section of a
// configuration into a uniform environment.
func EnvironmentFromConfig(c config.EnvironmentConfig) (Environment, error) {
	p, err := ParsePosture(c.Posture)
	if err != nil {
		return Environment{}, err
	}
	return Environment{
		Tdb:           Uniform(c.Tdb),
		Tr:            Uniform(c.Tr),
		RH:            Uniform(c.RH),
		V:             Uniform(c.V),
		Clo:           Uniform(c.Clo),
		Iclo:          Uniform(c.Iclo),
		Posture:       p,
		ActivityRatio: c.ActivityRatio,
	}, nil
}

// NewFromConfig builds a model from a loaded configuration, logging to
// stderr as the logging section says. opts are applied after the
// configured ones, so WithLogger and friends still win.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Model, error) {
	base, err := configOptions(cfg)
	if err != nil {
		return nil, err
	}
	return New(ProfileFromConfig(cfg.Profile), append(base, opts...)...)
}

// NewBatchFromConfig builds one model per profile with the configured
// options, at most cfg.Simulation.Workers at a time.
func NewBatchFromConfig(ctx context.Context, cfg *config.Config, profiles []Profile, opts ...Option) ([]*Model, error) {
	base, err := configOptions(cfg)
	if err != nil {
		return nil, err
	}
	return NewBatch(ctx, profiles, cfg.Simulation.Workers, append(base, opts...)...)
}

func configOptions(cfg *config.Config) ([]Option, error) {
	env, err := EnvironmentFromConfig(cfg.Environment)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithLogger(logger.FromConfig(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)),
		WithOptions(OptionsFromConfig(cfg.Thermoregulation)),
		WithVerboseOutput(cfg.Simulation.VerboseOutput),
		WithDefaultDtime(cfg.Simulation.Dtime),
		WithCalibration(CalibrationSchedule{
			Batches:       cfg.Calibration.Batches,
			TicksPerBatch: cfg.Calibration.TicksPerBatch,
			Dtime:         cfg.Calibration.Dtime,
		}),
		WithEnvironment(env),
	}, nil
}
