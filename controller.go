package jos3

// DefaultShiveringRateLimit is the customary cap on the change of the
// shivering signal, per second.
const DefaultShiveringRateLimit = 0.0077

// Options toggles parts of the thermoregulatory control.
type Options struct {
	// NonShivering enables non-shivering thermogenesis.
	NonShivering bool
	// ColdAcclimated adds the cold-acclimation bonus to brown adipose tissue.
	ColdAcclimated bool
	// ShiveringThreshold gates shivering on a skin-temperature-dependent
	// core threshold.
	ShiveringThreshold bool
	// ShiveringRateLimit caps the change of the shivering signal per
	// second. Zero disables the cap.
	ShiveringRateLimit float64
	// BATPositive marks the individual as known to carry brown adipose
	// tissue. When false, BAT is derated by age.
	BATPositive bool
	// AVAZero forces both AVA flows to zero.
	AVAZero bool
}

// DefaultOptions returns non-shivering thermogenesis on and everything else
// off.
func DefaultOptions() Options {
	return Options{NonShivering: true}
}

// ControllerInput is the per-tick input of the controller.
type ControllerInput struct {
	TCore, TSkin               SegmentValues // degree C
	SetpointCore, SetpointSkin SegmentValues // degree C
	Tdb, RH                    SegmentValues // degree C, %
	EvaporativeResistance      SegmentValues // m2 kPa/W
	ActivityRatio              float64       // -
	Dtime                      float64       // s
}

// ControllerOutput is the thermoregulatory response of one tick.
type ControllerOutput struct {
	ErrCore, ErrSkin SegmentValues
	Evaporation      EvaporationResult
	BloodFlow        BloodFlow
	Basal            TissueValues
	Work             SegmentValues
	Shivering        SegmentValues
	NonShivering     SegmentValues
	Thermogenesis    TissueValues
}

// Controller is the feedback layer of the model. Its only state across
// ticks is the last shivering signal, used for rate limiting.
type Controller struct {
	Options Options

	profile  Profile
	bsa      SegmentValues
	bsaRatio float64
	bfbRatio float64
	bmr      float64

	previousShiveringSignal float64
}

// NewController derives the body constants the controller needs from the
// profile.
func NewController(p Profile, opts Options) (*Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	bsa, err := LocalBSA(p.Height, p.Weight, p.BSAEquation)
	if err != nil {
		return nil, err
	}
	bsaRatio, err := BSARatio(p.Height, p.Weight, p.BSAEquation)
	if err != nil {
		return nil, err
	}
	bfbRatio, err := BasalBloodFlowRatio(p.Height, p.Weight, p.BSAEquation, p.Age, p.CardiacIndex)
	if err != nil {
		return nil, err
	}
	bmr, err := BasalMetabolicRate(p.Height, p.Weight, p.Age, p.Sex, p.BMREquation)
	if err != nil {
		return nil, err
	}
	return &Controller{
		Options:  opts,
		profile:  p,
		bsa:      bsa,
		bsaRatio: bsaRatio,
		bfbRatio: bfbRatio,
		bmr:      bmr,
	}, nil
}

// PreviousShiveringSignal returns the shivering signal of the last tick.
func (c *Controller) PreviousShiveringSignal() float64 {
	return c.previousShiveringSignal
}

// ResetShivering sets the remembered shivering signal.
func (c *Controller) ResetShivering(sig float64) {
	c.previousShiveringSignal = sig
}

// Step runs one tick of thermoregulation. An activity ratio below 1
// returns an *InvalidActivityRatioError and leaves the controller
// untouched.
func (c *Controller) Step(in ControllerInput) (ControllerOutput, error) {
	var out ControllerOutput

	basal := LocalBasalMetabolism(c.bmr)
	work, err := LocalWorkThermogenesis(basal.Total(), in.ActivityRatio)
	if err != nil {
		return out, err
	}

	p := c.profile
	for i := range out.ErrCore {
		out.ErrCore[i] = in.TCore[i] - in.SetpointCore[i]
		out.ErrSkin[i] = in.TSkin[i] - in.SetpointSkin[i]
	}

	out.Evaporation = Evaporation(out.ErrCore, out.ErrSkin, in.TSkin, in.Tdb, in.RH,
		in.EvaporativeResistance, c.bsa, c.bsaRatio, p.Age)

	bfSkin := SkinBloodFlow(out.ErrCore, out.ErrSkin, c.bfbRatio, p.Age)

	var avaHand, avaFoot float64
	if !c.Options.AVAZero {
		avaHand, avaFoot = AVABloodFlow(out.ErrCore, out.ErrSkin, c.bfbRatio)
	}

	sig := shiveringSignal(out.ErrCore, out.ErrSkin, in.TCore, in.TSkin, p.Sex, c.Options.ShiveringThreshold)
	if c.Options.ShiveringRateLimit > 0 {
		sig = limitShiveringSignal(sig, c.previousShiveringSignal, c.Options.ShiveringRateLimit, in.Dtime)
	}
	out.Shivering = ShiveringThermogenesis(sig, c.bsaRatio, p.Age)

	if c.Options.NonShivering {
		out.NonShivering = NonShiveringThermogenesis(out.ErrSkin, p.Height, p.Weight, c.bsaRatio, p.Age,
			c.Options.ColdAcclimated, c.Options.BATPositive)
	}

	out.Basal = basal
	out.Work = work
	out.Thermogenesis = SumThermogenesis(basal, work, out.Shivering, out.NonShivering)

	core, muscle, fat := CoreMuscleFatBloodFlow(work, out.Shivering, c.bfbRatio)
	out.BloodFlow = BloodFlow{
		TissueValues: TissueValues{Core: core, Muscle: muscle, Fat: fat, Skin: bfSkin},
		AVAHand:      avaHand,
		AVAFoot:      avaFoot,
	}

	c.previousShiveringSignal = sig
	return out, nil
}
