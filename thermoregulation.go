package jos3

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// 温冷受容器の部位別分布
var receptorDistribution = SegmentValues{
	0.0549, 0.0146, 0.1492, 0.1321, 0.2122,
	0.0227, 0.0117, 0.0923, 0.0227, 0.0117, 0.0923,
	0.0501, 0.0251, 0.0167, 0.0501, 0.0251, 0.0167,
}

// ErrorSignals integrates the skin temperature errors into the warm
// signal wrms and the cold signal clds. Both are non-negative.
func ErrorSignals(errSkin SegmentValues) (wrms, clds float64) {
	for i, e := range errSkin {
		if e > 0 {
			wrms += e * receptorDistribution[i]
		} else {
			clds -= e * receptorDistribution[i]
		}
	}
	return wrms, clds
}

// 発汗の部位別分布
var sweatDistribution = SegmentValues{
	0.064, 0.017, 0.146, 0.129, 0.206,
	0.051, 0.026, 0.0155, 0.051, 0.026, 0.0155,
	0.073, 0.036, 0.0175, 0.073, 0.036, 0.0175,
}

// 60歳以上の発汗の低下率
var agedSweatDamping = SegmentValues{
	0.69, 0.69, 0.59, 0.52, 0.40,
	0.75, 0.75, 0.75, 0.75, 0.75, 0.75,
	0.40, 0.40, 0.40, 0.40, 0.40, 0.40,
}

// EvaporationResult is the evaporative state of the skin for one tick.
type EvaporationResult struct {
	Wettedness SegmentValues // 皮膚濡れ率, -
	ESkin      SegmentValues // 皮膚からの蒸発熱損失, W
	EMax       SegmentValues // 最大蒸発熱損失, W
	ESweat     SegmentValues // 発汗による蒸発熱損失, W
}

/*
皮膚からの蒸発熱損失を計算する。

	Args:
	    errCore: コア温度の偏差, K, [17]
	    errSkin: 皮膚温度の偏差, K, [17]
	    tSkin: 皮膚温度, degree C, [17]
	    tdb: 空気温度, degree C, [17]
	    rh: 相対湿度, %, [17]
	    ret: 全潜熱抵抗, m2 kPa/W, [17]
	    bsa: 部位別体表面積, m2, [17]
	    bsaRatio: 体表面積比, -
	    age: 年齢, years

	Returns:
	    皮膚濡れ率と蒸発熱損失

	Notes:
	    皮膚濡れ率は [0, 1] に制限する。
	    最大蒸発熱損失がちょうど 0 となる場合は 0.001 W に置き換える。
*/
func Evaporation(errCore, errSkin, tSkin, tdb, rh, ret, bsa SegmentValues, bsaRatio, age float64) EvaporationResult {
	wrms, clds := ErrorSignals(errSkin)

	sig := math.Max(0, 371.2*errCore[Head]+33.64*(wrms-clds)) * bsaRatio

	sd := Uniform(1)
	if age >= 60 {
		sd = agedSweatDamping
	}

	var r EvaporationResult
	for i := range r.EMax {
		pa := VaporPressure(tdb[i], rh[i])
		psk := SaturationVaporPressure(tSkin[i])
		emax := (psk - pa) / ret[i] * bsa[i]
		if emax == 0 {
			emax = 0.001
		}

		esweat := sweatDistribution[i] * sig * sd[i] * math.Pow(2, errSkin[i]/10)
		wet := 0.06 + 0.94*esweat/emax
		wet = math.Min(math.Max(wet, 0), 1)

		r.EMax[i] = emax
		r.Wettedness[i] = wet
		r.ESkin[i] = wet * emax
		r.ESweat[i] = (wet - 0.06) / 0.94 * emax
	}
	return r
}

// 皮膚血流の基礎値, L/h
var basalSkinBloodFlow = SegmentValues{
	1.754, 0.325, 1.967, 1.475, 2.272,
	0.910, 0.508, 1.114, 0.910, 0.508, 1.114,
	1.456, 0.651, 0.934, 1.456, 0.651, 0.934,
}

var (
	// 血管拡張・収縮の部位別係数
	skinDilation = SegmentValues{
		0.0692, 0.0992, 0.0580, 0.0679, 0.0707,
		0.0400, 0.0373, 0.0632, 0.0400, 0.0373, 0.0632,
		0.0736, 0.0411, 0.0623, 0.0736, 0.0411, 0.0623,
	}
	skinConstriction = SegmentValues{
		0.0213, 0.0213, 0.0638, 0.0638, 0.0638,
		0.0213, 0.0213, 0.1489, 0.0213, 0.0213, 0.1489,
		0.0213, 0.0213, 0.1489, 0.0213, 0.0213, 0.1489,
	}
	// 60歳以上の血管拡張の低下率
	agedDilationDamping = SegmentValues{
		0.91, 0.91, 0.47, 0.47, 0.31,
		0.47, 0.47, 0.47, 0.47, 0.47, 0.47,
		0.31, 0.31, 0.31, 0.31, 0.31, 0.31,
	}
)

/*
皮膚血流量を計算する。

	Args:
	    errCore: コア温度の偏差, K, [17]
	    errSkin: 皮膚温度の偏差, K, [17]
	    bfbRatio: 基礎血流量比, -
	    age: 年齢, years

	Returns:
	    皮膚血流量, L/h, [17]
*/
func SkinBloodFlow(errCore, errSkin SegmentValues, bfbRatio, age float64) SegmentValues {
	wrms, clds := ErrorSignals(errSkin)

	sigDilat := math.Max(0, 100.5*errCore[Head]+6.4*(wrms-clds))
	sigStric := math.Max(0, -10.8*errCore[Head]-10.8*(wrms-clds))

	sd := Uniform(1)
	if age >= 60 {
		sd = agedDilationDamping
	}

	var bf SegmentValues
	for i := range bf {
		bf[i] = (1 + skinDilation[i]*sd[i]*sigDilat) /
			(1 + skinConstriction[i]*sigStric) *
			basalSkinBloodFlow[i] * math.Pow(2, errSkin[i]/6) * bfbRatio
	}
	return bf
}

// 体幹部コアの熱容量（AVA の平均コア温度偏差の重み）, Wh/K
var trunkCoreWeights = []float64{10.2975, 9.3935, 4.488}

/*
手と足の AVA 血流量を計算する。

	Args:
	    errCore: コア温度の偏差, K, [17]
	    errSkin: 皮膚温度の偏差, K, [17]
	    bfbRatio: 基礎血流量比, -

	Returns:
	    手の AVA 血流量, L/h
	    足の AVA 血流量, L/h

	Notes:
	    開度はいずれも [0, 1] に制限する。
*/
func AVABloodFlow(errCore, errSkin SegmentValues, bfbRatio float64) (hand, foot float64) {
	errBodyCore := floats.Dot(errCore[Chest:Pelvis+1], trunkCoreWeights) / floats.Sum(trunkCoreWeights)
	errMeanSkin := errSkin.WeightedMean(standardLocalBSA)

	sigHand := 0.265*(errMeanSkin+0.43) + 0.953*(errBodyCore+0.1905) + 0.9126
	sigFoot := 0.265*(errMeanSkin-0.997) + 0.953*(errBodyCore+0.0095) + 0.9126
	sigHand = math.Min(math.Max(sigHand, 0), 1)
	sigFoot = math.Min(math.Max(sigFoot, 0), 1)

	return 1.71 * bfbRatio * sigHand, 2.16 * bfbRatio * sigFoot
}

// 震え熱産生の部位別分布
var shiveringDistribution = SegmentValues{
	0.0339, 0.0436, 0.27394, 0.24102, 0.38754,
	0.00243, 0.00137, 0.0002, 0.00243, 0.00137, 0.0002,
	0.0039, 0.00175, 0.00035, 0.0039, 0.00175, 0.00035,
}

// shiveringAgeFactor damps shivering with age.
func shiveringAgeFactor(age float64) float64 {
	switch {
	case age < 30:
		return 1
	case age < 40:
		return 0.97514
	case age < 50:
		return 0.95028
	case age < 60:
		return 0.92818
	case age < 70:
		return 0.90055
	case age < 80:
		return 0.86188
	default:
		return 0.82597
	}
}

// shiveringThreshold is the head core temperature above which shivering
// does not start, degree C (Asaka, 2016).
func shiveringThreshold(tSkin SegmentValues, sex Sex) float64 {
	tskm := tSkin.WeightedMean(standardLocalBSA)
	switch {
	case tskm < 31:
		return 36.6
	case sex == Male:
		return -0.2436*tskm + 44.1
	default:
		return -0.225*tskm + 43.05
	}
}

// shiveringSignal is the unlimited shivering drive of one tick.
func shiveringSignal(errCore, errSkin, tCore, tSkin SegmentValues, sex Sex, gated bool) float64 {
	_, clds := ErrorSignals(errSkin)
	sig := math.Max(0, 24.36*clds*-errCore[Head])
	if gated && shiveringThreshold(tSkin, sex) < tCore[Head] {
		sig = 0
	}
	return sig
}

// limitShiveringSignal caps the change of the shivering signal from the
// previous tick to limit*dtime in either direction.
func limitShiveringSignal(sig, prev, limit, dtime float64) float64 {
	d := limit * dtime
	switch {
	case sig-prev > d:
		return prev + d
	case sig-prev < -d:
		return prev - d
	}
	return sig
}

// ShiveringThermogenesis distributes a shivering signal over the segments,
// W.
func ShiveringThermogenesis(sig, bsaRatio, age float64) SegmentValues {
	q := shiveringDistribution
	floats.Scale(bsaRatio*shiveringAgeFactor(age)*sig, q[:])
	return q
}

// 非震え熱産生の部位別分布（頸部・背部・骨盤部・両肩）
var nonShiveringDistribution = SegmentValues{
	Neck:          0.19,
	Back:          0.19,
	Pelvis:        0.19,
	LeftShoulder:  0.215,
	RightShoulder: 0.215,
}

/*
非震え熱産生量を計算する。

	Args:
	    errSkin: 皮膚温度の偏差, K, [17]
	    height: 身長, m
	    weight: 体重, kg
	    bsaRatio: 体表面積比, -
	    age: 年齢, years
	    coldAcclimated: 寒冷順化しているか否か
	    batPositive: 褐色脂肪組織を持つことが確認されているか否か

	Returns:
	    非震え熱産生量, W, [17]

	Notes:
	    Asaka, 2016。褐色脂肪の保有率は Yoneshiro, 2011 による。
*/
func NonShiveringThermogenesis(errSkin SegmentValues, height, weight, bsaRatio, age float64, coldAcclimated, batPositive bool) SegmentValues {
	_, clds := ErrorSignals(errSkin)

	// 褐色脂肪組織量, SUV
	bat := math.Pow(10, -0.10502*BMI(height, weight)+2.7708)
	switch {
	case age < 30:
		bat *= 1.61
	case age < 40:
	default:
		bat *= 0.8
	}

	if coldAcclimated {
		bat += 3.46
	}

	if !batPositive {
		switch {
		case age < 30:
			bat *= 44.0 / 83
		case age < 40:
			bat *= 15.0 / 38
		case age < 50:
			bat *= 7.0 / 26
		case age < 60:
			bat *= 1.0 / 8
		default:
			bat = 0
		}
	}

	limit := 1.8*bat + 2.43 + 5.62 // W
	sig := math.Min(2.8*clds, limit)

	q := nonShiveringDistribution
	floats.Scale(bsaRatio*sig, q[:])
	return q
}

// RespiratoryHeatLoss returns the sensible and latent respiratory heat
// loss, W, for inhaled air at tdb [degree C] and vapour pressure pa [kPa].
func RespiratoryHeatLoss(tdb, pa, qTotal float64) (sensible, latent float64) {
	return 0.0014 * qTotal * (34 - tdb), 0.0173 * qTotal * (5.87 - pa)
}
