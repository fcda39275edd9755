package jos3

import "log/slog"

// Option configures a Model.
type Option func(*resolvedOptions)

// CalibrationSchedule is the passive run performed at construction to find
// the thermoregulatory set-points.
type CalibrationSchedule struct {
	Batches       int
	TicksPerBatch int
	Dtime         float64 // s
}

// DefaultCalibration runs ten passive ticks of 60000 s each.
func DefaultCalibration() CalibrationSchedule {
	return CalibrationSchedule{Batches: 10, TicksPerBatch: 1, Dtime: 60000}
}

func (c CalibrationSchedule) validate() error {
	if c.Batches < 1 {
		return &ValidationError{Parameter: "calibration batches", Value: c.Batches, Accepted: "[1, +Inf)"}
	}
	if c.TicksPerBatch < 1 {
		return &ValidationError{Parameter: "calibration ticks per batch", Value: c.TicksPerBatch, Accepted: "[1, +Inf)"}
	}
	if c.Dtime <= 0 {
		return &ValidationError{Parameter: "calibration dtime", Value: c.Dtime, Accepted: "(0, +Inf) s"}
	}
	return nil
}

type resolvedOptions struct {
	name        string
	logger      *slog.Logger
	control     Options
	verbose     bool
	calibration CalibrationSchedule
	environment *Environment
	dtime       float64
}

// WithName labels the model in logs and verbose results.
func WithName(name string) Option {
	return func(o *resolvedOptions) { o.name = name }
}

// WithLogger sets the structured logger. If not set, logger.Default is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = l }
}

// WithOptions replaces the thermoregulation toggles.
func WithOptions(opts Options) Option {
	return func(o *resolvedOptions) { o.control = opts }
}

// WithVerboseOutput attaches a Detail record to every snapshot.
func WithVerboseOutput(on bool) Option {
	return func(o *resolvedOptions) { o.verbose = on }
}

// WithCalibration overrides the set-point calibration run.
func WithCalibration(c CalibrationSchedule) Option {
	return func(o *resolvedOptions) { o.calibration = c }
}

// DefaultDtime is the tick length used when a caller passes a zero dtime, s.
const DefaultDtime = 60.0

// WithDefaultDtime sets the tick length used by Simulate and RunExposure
// when they are given a zero dtime.
func WithDefaultDtime(d float64) Option {
	return func(o *resolvedOptions) { o.dtime = d }
}

// WithEnvironment sets the environment applied once calibration is done.
// Without it the calibration environment stays in place.
func WithEnvironment(env Environment) Option {
	return func(o *resolvedOptions) { o.environment = &env }
}
