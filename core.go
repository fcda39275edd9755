package jos3

import (
	"context"
	"fmt"
	"math"
)

// セットポイント決定時の環境
const (
	calibrationRH  = 50.0 // 相対湿度, %
	calibrationV   = 0.1  // 風速, m/s
	calibrationClo = 0.0  // 着衣量, clo
)

/*
セットポイントを定常計算により求める。

	Args:
	    par: 身体活動比, -

	Returns:
	    定常計算の最後のステップの結果

	Notes:
	    PMV = 0 となる作用温度の環境で体温調節を働かせずに計算し、
	    得られたコア・皮膚温度をセットポイントとする。
	    環境と体温はこの計算の結果で置き換わる。
*/
func (m *Model) calibrate(par float64) (Snapshot, error) {
	met := m.BMR() * par / getMetUnit()
	to := NeutralOperativeTemperature(calibrationV, calibrationRH, met, calibrationClo)

	m.env.Tdb = Uniform(to)
	m.env.Tr = Uniform(to)
	m.env.RH = Uniform(calibrationRH)
	m.env.V = Uniform(calibrationV)
	m.env.Clo = Uniform(calibrationClo)
	m.env.ActivityRatio = par

	saved := m.controller.Options
	m.controller.Options.AVAZero = true
	defer func() { m.controller.Options = saved }()

	var (
		snap Snapshot
		err  error
	)
	sched := m.calibration
	for b := 0; b < sched.Batches; b++ {
		for i := 0; i < sched.TicksPerBatch; i++ {
			snap, err = m.step(sched.Dtime, true)
			if err != nil {
				return Snapshot{}, fmt.Errorf("calibrating set-points: %w", err)
			}
		}
		m.logger.Debug("calibration batch", "batch", b+1, "t_skin_mean", snap.TSkinMean, "t_core_head", snap.TCore[Head])
	}

	m.setpointCore = m.TCore()
	m.setpointSkin = m.TSkin()
	m.controller.ResetShivering(0)
	m.last = snap

	m.logger.Info("set-points calibrated",
		"neutral_to", to,
		"met", met,
		"t_core_head", m.setpointCore[Head],
		"t_skin_mean", snap.TSkinMean)
	return snap, nil
}

// Simulate advances the model by times ticks of dtime seconds with
// thermoregulation active. A zero dtime selects the model's default tick
// length. When record is true each tick is appended to the history. A failing tick leaves the model as it was after the previous
// tick.
func (m *Model) Simulate(times int, dtime float64, record bool) error {
	return m.SimulateContext(context.Background(), times, dtime, record)
}

// SimulateContext is Simulate with cancellation checked between ticks.
func (m *Model) SimulateContext(ctx context.Context, times int, dtime float64, record bool) error {
	dtime, err := m.resolveDtime(dtime)
	if err != nil {
		return err
	}
	for i := 0; i < times; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.tick(dtime, record); err != nil {
			return err
		}
	}
	m.logger.Debug("simulated", "ticks", times, "dt", dtime, "simulation_time", m.elapsed, "t_skin_mean", m.TSkinMean())
	return nil
}

func (m *Model) resolveDtime(dtime float64) (float64, error) {
	switch {
	case dtime == 0:
		return m.defaultDtime, nil
	case dtime < 0 || math.IsNaN(dtime) || math.IsInf(dtime, 0):
		return 0, &ValidationError{Parameter: "dtime", Value: dtime, Accepted: "(0, +Inf) s"}
	}
	return dtime, nil
}

// DefaultDtime returns the tick length used for a zero dtime, s.
func (m *Model) DefaultDtime() float64 { return m.defaultDtime }

func (m *Model) tick(dtime float64, record bool) error {
	elapsed, cycle := m.elapsed, m.cycle
	m.elapsed += dtime
	m.cycle++

	snap, err := m.step(dtime, false)
	if err != nil {
		m.elapsed, m.cycle = elapsed, cycle
		return fmt.Errorf("tick %d: %w", cycle+1, err)
	}
	m.last = snap
	if record {
		m.history = append(m.history, snap)
	}
	return nil
}

// RunExposure applies each step's environment in turn and simulates its
// duration in ticks of dtime seconds, or of the default tick length when
// dtime is zero.
func (m *Model) RunExposure(ctx context.Context, steps []*ExposureStep, dtime float64, record bool) error {
	dtime, err := m.resolveDtime(dtime)
	if err != nil {
		return err
	}
	for i, s := range steps {
		if err := s.apply(m); err != nil {
			return fmt.Errorf("exposure step %d: %w", i, err)
		}
		m.logger.Debug("exposure step", "step", i, "tdb", s.Tdb, "rh", s.RH, "duration", s.Duration)
		if err := m.SimulateContext(ctx, s.ticks(dtime), dtime, record); err != nil {
			return fmt.Errorf("exposure step %d: %w", i, err)
		}
	}
	return nil
}
