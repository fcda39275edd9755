package jos3

import "gonum.org/v1/gonum/floats"

// BMREquation names a basal metabolic rate formula.
type BMREquation string

const (
	HarrisBenedict       BMREquation = "harris-benedict"
	HarrisBenedictOrigin BMREquation = "harris-benedict_origin"
	Japanese             BMREquation = "japanese"
	Ganpule              BMREquation = "ganpule"
)

func (eq BMREquation) valid() bool {
	switch eq {
	case HarrisBenedict, HarrisBenedictOrigin, Japanese, Ganpule:
		return true
	}
	return false
}

/*
基礎代謝量を計算する。

	Args:
	    height: 身長, m
	    weight: 体重, kg
	    age: 年齢, years
	    sex: 性別
	    eq: 推定式

	Returns:
	    基礎代謝量, W

	Notes:
	    japanese と ganpule は Ganpule et al. (2007) の同じ式を指す。
	    kcal/day から W への換算係数は 0.048 とする。
*/
func BasalMetabolicRate(height, weight, age float64, sex Sex, eq BMREquation) (float64, error) {
	var bmr float64
	switch eq {
	case HarrisBenedict:
		if sex == Male {
			bmr = 88.362 + 13.397*weight + 500.3*height - 5.677*age
		} else {
			bmr = 447.593 + 9.247*weight + 479.9*height - 4.33*age
		}
	case HarrisBenedictOrigin:
		if sex == Male {
			bmr = 66.473 + 13.7516*weight + 500.33*height - 6.755*age
		} else {
			bmr = 655.0955 + 9.5634*weight + 184.96*height - 4.6756*age
		}
	case Japanese, Ganpule:
		bmr = 0.0481*weight + 2.34*height - 0.0138*age
		if sex == Male {
			bmr -= 0.4235
		} else {
			bmr -= 0.9708
		}
		bmr *= 1000 / 4.186 // MJ/day -> kcal/day
	default:
		return 0, &UnsupportedEquationError{Kind: "bmr", Name: string(eq)}
	}
	return bmr * 0.048, nil
}

// 基礎代謝量の部位・組織別配分比
var (
	mbaseCoreFraction = SegmentValues{
		0.19551, 0.00324, 0.28689, 0.25677, 0.09509,
		0.01435, 0.00409, 0.00106, 0.01435, 0.00409, 0.00106,
		0.01557, 0.00422, 0.00250, 0.01557, 0.00422, 0.00250,
	}
	mbaseMuscleFraction = SegmentValues{Head: 0.00252, Pelvis: 0.04804}
	mbaseFatFraction    = SegmentValues{Head: 0.00127, Pelvis: 0.00950}
	mbaseSkinFraction   = SegmentValues{
		0.00152, 0.00033, 0.00211, 0.00187, 0.00300,
		0.00059, 0.00031, 0.00059, 0.00059, 0.00031, 0.00059,
		0.00144, 0.00027, 0.00118, 0.00144, 0.00027, 0.00118,
	}
)

// TissueValues holds a per-segment quantity split over the four tissue
// layers. Muscle and Fat are zero outside head and pelvis.
type TissueValues struct {
	Core, Muscle, Fat, Skin SegmentValues
}

// Total sums the four tissues over all segments.
func (t TissueValues) Total() float64 {
	return t.Core.Sum() + t.Muscle.Sum() + t.Fat.Sum() + t.Skin.Sum()
}

// PerSegment sums the four tissues of each segment.
func (t TissueValues) PerSegment() SegmentValues {
	var out SegmentValues
	for i := range out {
		out[i] = t.Core[i] + t.Muscle[i] + t.Fat[i] + t.Skin[i]
	}
	return out
}

// LocalBasalMetabolism splits the whole-body basal metabolic rate [W] over
// segments and tissues.
func LocalBasalMetabolism(bmr float64) TissueValues {
	t := TissueValues{
		Core:   mbaseCoreFraction,
		Muscle: mbaseMuscleFraction,
		Fat:    mbaseFatFraction,
		Skin:   mbaseSkinFraction,
	}
	floats.Scale(bmr, t.Core[:])
	floats.Scale(bmr, t.Muscle[:])
	floats.Scale(bmr, t.Fat[:])
	floats.Scale(bmr, t.Skin[:])
	return t
}

// 作業による熱産生の部位別配分比
var workFraction = SegmentValues{
	0, 0, 0.091, 0.08, 0.129,
	0.0262, 0.0139, 0.005, 0.0262, 0.0139, 0.005,
	0.201, 0.099, 0.005, 0.201, 0.099, 0.005,
}

/*
作業による部位別熱産生量を計算する。

	Args:
	    bmr: 全身の基礎代謝量, W
	    par: 身体活動比 (physical activity ratio), -

	Returns:
	    部位別の作業熱産生量, W, [17]

	Notes:
	    par が 1 未満の場合は InvalidActivityRatioError を返す。
*/
func LocalWorkThermogenesis(bmr, par float64) (SegmentValues, error) {
	if par < 1 {
		return SegmentValues{}, &InvalidActivityRatioError{Ratio: par}
	}
	q := workFraction
	floats.Scale((par-1)*bmr, q[:])
	return q, nil
}

// SumThermogenesis adds work, shivering and non-shivering heat onto the
// basal split. Work and shivering go to muscle where the segment has it and
// to core otherwise; non-shivering heat goes to core.
func SumThermogenesis(basal TissueValues, work, shiv, nst SegmentValues) TissueValues {
	out := basal
	for i := Head; i <= RightFoot; i++ {
		if i.hasLayer(Muscle) {
			out.Muscle[i] += work[i] + shiv[i]
		} else {
			out.Core[i] += work[i] + shiv[i]
		}
		out.Core[i] += nst[i]
	}
	return out
}
