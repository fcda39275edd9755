// Package jos3 simulates human thermoregulation with a multi-node heat
// network of 17 body segments and 85 thermal nodes.
package jos3

import (
	"log/slog"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"jos3/logger"
)

// 体温の初期値, degree C
const initialBodyTemperature = 36.0

// Model is one simulated individual. A Model is not safe for concurrent
// use; independent models share no mutable state.
type Model struct {
	id      uuid.UUID
	name    string
	logger  *slog.Logger
	verbose bool

	profile  Profile
	bsa      SegmentValues
	bsaRatio float64
	bmr      float64 // W

	conductance *mat.Dense    // W/K, [85, 85]
	capacity    *mat.VecDense // J/K, [85]

	controller *Controller
	env        Environment
	hcManual   *SegmentValues
	hrManual   *SegmentValues
	extraHeat  *mat.VecDense // W, [85]

	bodyTemp     *mat.VecDense // degree C, [85]
	setpointCore SegmentValues
	setpointSkin SegmentValues

	calibration  CalibrationSchedule
	defaultDtime float64 // s
	elapsed      float64 // s
	cycle        int
	last         Snapshot
	history      []Snapshot
}

// New builds the heat network for the profile and calibrates the
// thermoregulatory set-points. The returned model holds the calibration
// snapshot as its first history entry.
func New(p Profile, opts ...Option) (*Model, error) {
	o := resolvedOptions{
		control:     DefaultOptions(),
		calibration: DefaultCalibration(),
		dtime:       DefaultDtime,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Default
	}
	if err := o.calibration.validate(); err != nil {
		return nil, err
	}
	if !(o.dtime > 0) {
		return nil, &ValidationError{Parameter: "default dtime", Value: o.dtime, Accepted: "(0, +Inf) s"}
	}
	if o.environment != nil {
		if err := o.environment.validate(); err != nil {
			return nil, err
		}
	}

	ctrl, err := NewController(p, o.control)
	if err != nil {
		return nil, err
	}
	cdt, err := Conductance(p.Height, p.Weight, p.BSAEquation, p.BodyFat)
	if err != nil {
		return nil, err
	}
	capacity, err := Capacity(p.Height, p.Weight, p.BSAEquation, p.Age, p.CardiacIndex)
	if err != nil {
		return nil, err
	}

	temp := make([]float64, NumNodes)
	for i := range temp {
		temp[i] = initialBodyTemperature
	}

	m := &Model{
		id:           uuid.New(),
		name:         o.name,
		verbose:      o.verbose,
		profile:      p,
		bsa:          ctrl.bsa,
		bsaRatio:     ctrl.bsaRatio,
		bmr:          ctrl.bmr,
		conductance:  cdt,
		capacity:     capacity,
		controller:   ctrl,
		env:          DefaultEnvironment(),
		extraHeat:    mat.NewVecDense(NumNodes, nil),
		bodyTemp:     mat.NewVecDense(NumNodes, temp),
		calibration:  o.calibration,
		defaultDtime: o.dtime,
	}
	if m.name == "" {
		m.name = m.id.String()
	}
	m.logger = o.logger.With("model", m.name)

	snap, err := m.calibrate(m.env.ActivityRatio)
	if err != nil {
		return nil, err
	}
	m.history = append(m.history, snap)

	if o.environment != nil {
		m.env = *o.environment
	}
	return m, nil
}

// ID returns the unique identifier assigned at construction.
func (m *Model) ID() uuid.UUID { return m.id }

// Name returns the label used in logs and verbose output.
func (m *Model) Name() string { return m.name }

// Profile returns the individual the model was built for.
func (m *Model) Profile() Profile { return m.profile }

// Options returns the thermoregulation toggles in effect.
func (m *Model) Options() Options { return m.controller.Options }

// BSA returns the local body surface areas, m2.
func (m *Model) BSA() SegmentValues { return m.bsa }

// BMR returns the basal metabolic rate per unit body surface area, W/m2.
func (m *Model) BMR() float64 { return m.bmr / m.bsa.Sum() }

// ElapsedTime returns the simulated time since calibration, s.
func (m *Model) ElapsedTime() float64 { return m.elapsed }

// Cycle returns the number of ticks simulated since calibration.
func (m *Model) Cycle() int { return m.cycle }

func (m *Model) layerTemperatures(l Layer) []float64 {
	nodes := NodesForLayer(l)
	out := make([]float64, len(nodes))
	for i, n := range nodes {
		out[i] = m.bodyTemp.AtVec(n)
	}
	return out
}

func (m *Model) segmentTemperatures(l Layer) SegmentValues {
	var out SegmentValues
	copy(out[:], m.layerTemperatures(l))
	return out
}

// TSkin returns the skin temperatures, degree C.
func (m *Model) TSkin() SegmentValues { return m.segmentTemperatures(Skin) }

// TCore returns the core temperatures, degree C.
func (m *Model) TCore() SegmentValues { return m.segmentTemperatures(Core) }

// TArtery returns the arterial blood temperatures, degree C.
func (m *Model) TArtery() SegmentValues { return m.segmentTemperatures(Artery) }

// TVein returns the deep venous blood temperatures, degree C.
func (m *Model) TVein() SegmentValues { return m.segmentTemperatures(Vein) }

// TSuperficialVein returns the superficial vein temperatures of the limb
// segments, degree C, in ValidLayerSegments(SuperficialVein) order.
func (m *Model) TSuperficialVein() []float64 { return m.layerTemperatures(SuperficialVein) }

// TMuscle returns the muscle temperatures of head and pelvis, degree C.
func (m *Model) TMuscle() []float64 { return m.layerTemperatures(Muscle) }

// TFat returns the fat temperatures of head and pelvis, degree C.
func (m *Model) TFat() []float64 { return m.layerTemperatures(Fat) }

// TCentralBlood returns the central blood pool temperature, degree C.
func (m *Model) TCentralBlood() float64 { return m.bodyTemp.AtVec(CentralBloodNode) }

// TSkinMean returns the area-weighted mean skin temperature, degree C.
func (m *Model) TSkinMean() float64 {
	return m.TSkin().WeightedMean(standardLocalBSA)
}

// BodyTemperature returns a copy of all 85 node temperatures, degree C.
func (m *Model) BodyTemperature() []float64 {
	out := make([]float64, NumNodes)
	copy(out, m.bodyTemp.RawVector().Data)
	return out
}

// Setpoints returns the core and skin set-point temperatures, degree C.
func (m *Model) Setpoints() (core, skin SegmentValues) {
	return m.setpointCore, m.setpointSkin
}

// Environment returns the current environment.
func (m *Model) Environment() Environment { return m.env }

// History returns the recorded snapshots, oldest first. The calibration
// snapshot is always first.
func (m *Model) History() []Snapshot {
	out := make([]Snapshot, len(m.history))
	copy(out, m.history)
	return out
}

// heatTransferCoefficients returns the convective and radiative
// coefficients of the tick, W/(m2 K). Manual values win over the posture
// correlations.
func (m *Model) heatTransferCoefficients(tSkin SegmentValues) (hc, hr SegmentValues) {
	if m.hcManual != nil {
		hc = *m.hcManual
	} else {
		hc = FixedConvectiveCoefficient(ConvectiveCoefficient(m.env.Posture, m.env.V, m.env.Tdb, tSkin), m.env.V)
	}
	if m.hrManual != nil {
		hr = *m.hrManual
	} else {
		hr = FixedRadiativeCoefficient(RadiativeCoefficient(m.env.Posture))
	}
	return hc, hr
}

// OperativeTemperature returns the local operative temperatures of the
// current state, degree C.
func (m *Model) OperativeTemperature() SegmentValues {
	hc, hr := m.heatTransferCoefficients(m.TSkin())
	return OperativeTemperature(m.env.Tdb, m.env.Tr, hc, hr)
}

// DryResistance returns the local total sensible heat resistances of the
// current state, m2 K/W.
func (m *Model) DryResistance() (SegmentValues, error) {
	hc, hr := m.heatTransferCoefficients(m.TSkin())
	return DryResistance(hc, hr, m.env.Clo)
}

// EvaporativeResistance returns the local total evaporative resistances of
// the current state, m2 kPa/W.
func (m *Model) EvaporativeResistance() (SegmentValues, error) {
	hc, _ := m.heatTransferCoefficients(m.TSkin())
	return EvaporativeResistance(hc, m.env.Clo, m.env.Iclo)
}

// Wettedness returns the skin wettedness of the last tick, recorded or not.
func (m *Model) Wettedness() SegmentValues { return m.last.Wettedness }

// Last returns the snapshot of the last tick, recorded or not.
func (m *Model) Last() Snapshot { return m.last }
