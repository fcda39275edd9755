package jos3

import (
	"fmt"
	"io"
	"math"

	"github.com/gocarina/gocsv"
)

// ExposureStep is one row of an exposure schedule: a uniform environment
// held for a duration. Zero Iclo, zero ActivityRatio and an empty Posture
// keep the model's current values.
type ExposureStep struct {
	Duration      float64 `csv:"duration"` // s
	Tdb           float64 `csv:"tdb"`      // degree C
	Tr            float64 `csv:"tr"`       // degree C
	RH            float64 `csv:"rh"`       // %
	V             float64 `csv:"v"`        // m/s
	Clo           float64 `csv:"clo"`      // clo
	Iclo          float64 `csv:"iclo"`     // -
	Posture       string  `csv:"posture"`
	ActivityRatio float64 `csv:"par"` // -
}

/*
暴露スケジュールを CSV から読み込む。

	Args:
	    r: ヘッダ付きの CSV

	Returns:
	    暴露ステップの列

	Notes:
	    duration が正でない行はエラーとする。
*/
func LoadExposureSchedule(r io.Reader) ([]*ExposureStep, error) {
	var steps []*ExposureStep
	if err := gocsv.Unmarshal(r, &steps); err != nil {
		return nil, fmt.Errorf("parsing exposure schedule: %w", err)
	}
	for i, s := range steps {
		if s.Duration <= 0 {
			return nil, fmt.Errorf("exposure row %d: %w", i+1,
				&ValidationError{Parameter: "duration", Value: s.Duration, Accepted: "(0, +Inf) s"})
		}
	}
	return steps, nil
}

// ticks is the number of dtime ticks covering the step, at least one.
func (s *ExposureStep) ticks(dtime float64) int {
	return max(1, int(math.Round(s.Duration/dtime)))
}

// apply sets the step's environment on m. m is untouched on error.
func (s *ExposureStep) apply(m *Model) error {
	env := m.env
	env.Tdb = Uniform(s.Tdb)
	env.Tr = Uniform(s.Tr)
	env.RH = Uniform(s.RH)
	env.V = Uniform(s.V)
	env.Clo = Uniform(s.Clo)
	if s.Iclo > 0 {
		env.Iclo = Uniform(s.Iclo)
	}
	if s.Posture != "" {
		p, err := ParsePosture(s.Posture)
		if err != nil {
			return err
		}
		env.Posture = p
	}
	if s.ActivityRatio != 0 {
		env.ActivityRatio = s.ActivityRatio
	}
	return m.SetEnvironment(env)
}
