package jos3

import "math"

/*
飽和水蒸気圧を計算する。

	Args:
	    theta: 温度, degree C

	Returns:
	    飽和水蒸気圧, kPa

	Notes:
	    Antoine 式による。
*/
func SaturationVaporPressure(theta float64) float64 {
	return math.Exp(16.6536 - 4030.183/(theta+235))
}

/*
水蒸気圧を計算する。

	Args:
	    theta: 空気温度, degree C
	    rh: 相対湿度, %

	Returns:
	    水蒸気圧, kPa
*/
func VaporPressure(theta, rh float64) float64 {
	return SaturationVaporPressure(theta) * rh / 100
}

func vaporPressures(tdb, rh SegmentValues) SegmentValues {
	var pa SegmentValues
	for i := range pa {
		pa[i] = VaporPressure(tdb[i], rh[i])
	}
	return pa
}
