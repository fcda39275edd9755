package jos3

import "math"

// 強制対流熱伝達率の係数 hc = a v^b
// Ichihara et al., 1997
var (
	forcedConvectionA = SegmentValues{
		15.0, 15.0, 11.0, 17.0, 13.0,
		17.0, 17.0, 20.0, 17.0, 17.0, 20.0,
		14.0, 15.8, 15.1, 14.0, 15.8, 15.1,
	}
	forcedConvectionB = SegmentValues{
		0.62, 0.62, 0.67, 0.49, 0.60,
		0.59, 0.61, 0.60, 0.59, 0.61, 0.60,
		0.61, 0.74, 0.62, 0.61, 0.74, 0.62,
	}
)

/*
対流熱伝達率を計算する。

	Args:
	    posture: 姿勢
	    v: 風速, m/s, [17]
	    tdb: 空気温度, degree C, [17]
	    tsk: 皮膚温度, degree C, [17]

	Returns:
	    対流熱伝達率, W/(m2 K), [17]

	Notes:
	    風速 0.2 m/s 未満の部位は自然対流、それ以上は強制対流とする。
*/
func ConvectiveCoefficient(posture Posture, v, tdb, tsk SegmentValues) SegmentValues {
	hc := posture.naturalConvection(tdb, tsk)
	for i := range hc {
		if v[i] >= 0.2 {
			hc[i] = forcedConvectionA[i] * math.Pow(v[i], forcedConvectionB[i])
		}
	}
	return hc
}

// FixedConvectiveCoefficient rescales local convective coefficients so that
// their area-weighted mean matches the whole-body correlation
// max(3, 8.6 v^0.53).
func FixedConvectiveCoefficient(hc, v SegmentValues) SegmentValues {
	meanHC := hc.WeightedMean(standardLocalBSA)
	meanV := v.WeightedMean(standardLocalBSA)
	whole := math.Max(3, 8.600001*math.Pow(meanV, 0.53))
	for i := range hc {
		hc[i] *= whole / meanHC
	}
	return hc
}

// RadiativeCoefficient returns the posture's local radiative coefficients,
// W/(m2 K).
func RadiativeCoefficient(posture Posture) SegmentValues {
	return posture.radiation()
}

// FixedRadiativeCoefficient rescales local radiative coefficients to a
// whole-body mean of 4.7 W/(m2 K).
func FixedRadiativeCoefficient(hr SegmentValues) SegmentValues {
	mean := hr.WeightedMean(standardLocalBSA)
	for i := range hr {
		hr[i] *= getWholeBodyRadiativeCoefficient() / mean
	}
	return hr
}

// 作用温度, degree C
func OperativeTemperature(tdb, tr, hc, hr SegmentValues) SegmentValues {
	var to SegmentValues
	for i := range to {
		to[i] = (hc[i]*tdb[i] + hr[i]*tr[i]) / (hc[i] + hr[i])
	}
	return to
}

// 着衣面積率, -
func ClothingAreaFactor(clo float64) float64 {
	if clo < 0.5 {
		return 1 + 0.2*clo
	}
	return 1.05 + 0.1*clo
}

/*
皮膚表面から環境までの顕熱抵抗を計算する。

	Args:
	    hc: 対流熱伝達率, W/(m2 K), [17]
	    hr: 放射熱伝達率, W/(m2 K), [17]
	    clo: 着衣量, clo, [17]

	Returns:
	    全顕熱抵抗, m2 K/W, [17]
*/
func DryResistance(hc, hr, clo SegmentValues) (SegmentValues, error) {
	var rt SegmentValues
	for i := range rt {
		if hc[i] < 0 || hr[i] < 0 {
			return rt, &ValidationError{Parameter: "heat transfer coefficient", Value: math.Min(hc[i], hr[i]), Accepted: "[0, +Inf) W/(m2 K)"}
		}
		ra := 1 / (hc[i] + hr[i])
		rt[i] = ra/ClothingAreaFactor(clo[i]) + getCloToThermalResistance()*clo[i]
	}
	return rt, nil
}

/*
皮膚表面から環境までの潜熱抵抗を計算する。

	Args:
	    hc: 対流熱伝達率, W/(m2 K), [17]
	    clo: 着衣量, clo, [17]
	    iclo: 着衣の透湿効率, -, [17]

	Returns:
	    全潜熱抵抗, m2 kPa/W, [17]
*/
func EvaporativeResistance(hc, clo, iclo SegmentValues) (SegmentValues, error) {
	lr := getLewisRelation()
	var ret SegmentValues
	for i := range ret {
		if hc[i] < 0 {
			return ret, &ValidationError{Parameter: "convective coefficient", Value: hc[i], Accepted: "[0, +Inf) W/(m2 K)"}
		}
		rea := 1 / (lr * hc[i])
		recl := getCloToThermalResistance() * clo[i] / (lr * iclo[i])
		ret[i] = rea/ClothingAreaFactor(clo[i]) + recl
	}
	return ret, nil
}
