package jos3

import "fmt"

// Environment is the thermal environment and activity around the body.
// Every per-segment field holds one value per segment.
type Environment struct {
	Tdb           SegmentValues // 空気温度, degree C
	Tr            SegmentValues // 平均放射温度, degree C
	RH            SegmentValues // 相対湿度, %
	V             SegmentValues // 風速, m/s
	Clo           SegmentValues // 着衣量, clo
	Iclo          SegmentValues // 着衣の透湿効率, -
	Posture       Posture
	ActivityRatio float64 // 身体活動比, -
}

// DefaultEnvironment is a thermoneutral room for a standing, lightly
// active, unclothed person.
func DefaultEnvironment() Environment {
	return Environment{
		Tdb:           Uniform(28.8),
		Tr:            Uniform(28.8),
		RH:            Uniform(50),
		V:             Uniform(0.1),
		Clo:           Uniform(0),
		Iclo:          Uniform(0.45),
		Posture:       Standing,
		ActivityRatio: 1.25,
	}
}

func (e Environment) validate() error {
	if !e.Posture.valid() {
		return &ValidationError{Parameter: "posture", Value: e.Posture, Accepted: "standing, sitting or lying"}
	}
	for i := range e.RH {
		if e.V[i] < 0 {
			return &ValidationError{Parameter: "air speed", Value: e.V[i], Accepted: "[0, +Inf) m/s"}
		}
		if e.Clo[i] < 0 {
			return &ValidationError{Parameter: "clothing insulation", Value: e.Clo[i], Accepted: "[0, +Inf) clo"}
		}
		if !(e.Iclo[i] > 0) {
			return &ValidationError{Parameter: "clothing vapour permeation efficiency", Value: e.Iclo[i], Accepted: "(0, +Inf)"}
		}
		if e.RH[i] < 0 || e.RH[i] > 100 {
			return &ValidationError{Parameter: "relative humidity", Value: e.RH[i], Accepted: "[0, 100] %"}
		}
	}
	return nil
}

// SetEnvironment replaces the whole environment at once.
func (m *Model) SetEnvironment(env Environment) error {
	if err := env.validate(); err != nil {
		return err
	}
	m.env = env
	return nil
}

// SetTdb sets the air temperature, degree C.
func (m *Model) SetTdb(v any) error {
	return m.setSegmentValues(&m.env.Tdb, v, nil)
}

// SetTr sets the mean radiant temperature, degree C.
func (m *Model) SetTr(v any) error {
	return m.setSegmentValues(&m.env.Tr, v, nil)
}

// SetTo sets air and mean radiant temperature to the same operative
// temperature, degree C.
func (m *Model) SetTo(v any) error {
	to, err := ToSegmentValues(v)
	if err != nil {
		return err
	}
	m.env.Tdb = to
	m.env.Tr = to
	return nil
}

// SetRH sets the relative humidity, %.
func (m *Model) SetRH(v any) error {
	return m.setSegmentValues(&m.env.RH, v, func(x float64) error {
		if x < 0 || x > 100 {
			return &ValidationError{Parameter: "relative humidity", Value: x, Accepted: "[0, 100] %"}
		}
		return nil
	})
}

// SetV sets the air speed, m/s.
func (m *Model) SetV(v any) error {
	return m.setSegmentValues(&m.env.V, v, func(x float64) error {
		if x < 0 {
			return &ValidationError{Parameter: "air speed", Value: x, Accepted: "[0, +Inf) m/s"}
		}
		return nil
	})
}

// SetClo sets the clothing insulation, clo.
func (m *Model) SetClo(v any) error {
	return m.setSegmentValues(&m.env.Clo, v, func(x float64) error {
		if x < 0 {
			return &ValidationError{Parameter: "clothing insulation", Value: x, Accepted: "[0, +Inf) clo"}
		}
		return nil
	})
}

// SetIclo sets the clothing vapour permeation efficiency.
func (m *Model) SetIclo(v any) error {
	return m.setSegmentValues(&m.env.Iclo, v, func(x float64) error {
		if !(x > 0) {
			return &ValidationError{Parameter: "clothing vapour permeation efficiency", Value: x, Accepted: "(0, +Inf)"}
		}
		return nil
	})
}

// SetPosture sets the posture.
func (m *Model) SetPosture(p Posture) error {
	if !p.valid() {
		return &ValidationError{Parameter: "posture", Value: p, Accepted: "standing, sitting or lying"}
	}
	m.env.Posture = p
	return nil
}

// SetActivityRatio sets the physical activity ratio. A ratio below 1 is
// stored but fails the next Simulate.
func (m *Model) SetActivityRatio(par float64) {
	m.env.ActivityRatio = par
}

// SetHeatTransferCoefficients fixes the convective and radiative
// coefficients, W/(m2 K). A nil argument keeps the correlation for that
// mode.
func (m *Model) SetHeatTransferCoefficients(hc, hr any) error {
	var hcv, hrv *SegmentValues
	if hc != nil {
		v, err := ToSegmentValues(hc)
		if err != nil {
			return err
		}
		hcv = &v
	}
	if hr != nil {
		v, err := ToSegmentValues(hr)
		if err != nil {
			return err
		}
		hrv = &v
	}
	m.hcManual, m.hrManual = hcv, hrv
	return nil
}

// ClearHeatTransferCoefficients returns to the posture correlations.
func (m *Model) ClearHeatTransferCoefficients() {
	m.hcManual, m.hrManual = nil, nil
}

/*
外部からの熱取得を層ごとに設定する。

	Args:
	    l: 層
	    v: 熱取得, W。スカラー、層のノード数と同じ長さの配列、
	       または全部位に層がある場合は ToSegmentValues が受け付ける形式

	Notes:
	    指定しなかった層の値は保持される。
*/
func (m *Model) SetExtraHeat(l Layer, v any) error {
	nodes := NodesForLayer(l)
	values := make([]float64, len(nodes))

	switch x := v.(type) {
	case float64:
		for i := range values {
			values[i] = x
		}
	case int:
		for i := range values {
			values[i] = float64(x)
		}
	case []float64:
		if len(x) != len(nodes) {
			return fmt.Errorf("%w: %s extra heat of length %d, want %d", ErrUnsupportedShape, l, len(x), len(nodes))
		}
		copy(values, x)
	default:
		if len(nodes) != NumSegments {
			return fmt.Errorf("%w: %T for %s extra heat", ErrUnsupportedShape, v, l)
		}
		sv, err := ToSegmentValues(v)
		if err != nil {
			return err
		}
		copy(values, sv[:])
	}

	for i, n := range nodes {
		m.extraHeat.SetVec(n, values[i])
	}
	return nil
}

// ExtraHeat returns a copy of the injected heat of every node, W.
func (m *Model) ExtraHeat() []float64 {
	out := make([]float64, NumNodes)
	copy(out, m.extraHeat.RawVector().Data)
	return out
}

// SetBodyTemperature overwrites all node temperatures with a scalar or an
// 85-length sequence, degree C.
func (m *Model) SetBodyTemperature(v any) error {
	switch x := v.(type) {
	case float64:
		for i := 0; i < NumNodes; i++ {
			m.bodyTemp.SetVec(i, x)
		}
	case int:
		for i := 0; i < NumNodes; i++ {
			m.bodyTemp.SetVec(i, float64(x))
		}
	case []float64:
		if len(x) != NumNodes {
			return fmt.Errorf("%w: body temperature of length %d, want %d", ErrUnsupportedShape, len(x), NumNodes)
		}
		for i, t := range x {
			m.bodyTemp.SetVec(i, t)
		}
	default:
		return fmt.Errorf("%w: %T for body temperature", ErrUnsupportedShape, v)
	}
	return nil
}

// SetSetpoints overrides the calibrated core and skin set-points.
func (m *Model) SetSetpoints(core, skin any) error {
	c, err := ToSegmentValues(core)
	if err != nil {
		return err
	}
	s, err := ToSegmentValues(skin)
	if err != nil {
		return err
	}
	m.setpointCore, m.setpointSkin = c, s
	return nil
}

// SetOptions replaces the thermoregulation toggles.
func (m *Model) SetOptions(opts Options) {
	m.controller.Options = opts
}

// setSegmentValues converts v and stores it in dst when every value passes
// check. dst is untouched on error.
func (m *Model) setSegmentValues(dst *SegmentValues, v any, check func(float64) error) error {
	sv, err := ToSegmentValues(v)
	if err != nil {
		return err
	}
	if check != nil {
		for _, x := range sv {
			if err := check(x); err != nil {
				return err
			}
		}
	}
	*dst = sv
	return nil
}
