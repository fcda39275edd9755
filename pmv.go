package jos3

import (
	"errors"
	"math"
)

// ErrPMVNotConverged is returned when the clothing surface temperature
// iteration of the PMV calculation does not settle.
var ErrPMVNotConverged = errors.New("jos3: pmv clothing temperature iteration did not converge")

/*
PMVを計算する。
    着衣表面温度を収束計算した上で ISO 7730 の PMV を求める。

	Args:
	    tdb: 空気温度, degree C
	    tr: 平均放射温度, degree C
	    vr: 相対風速, m/s
	    rh: 相対湿度, %
	    met: 代謝量, met
	    clo: 着衣量, clo
	    wme: 外部仕事, met

	Returns:
	    PMV, 小数第2位に丸めた値
*/
func PMV(tdb, tr, vr, rh, met, clo, wme float64) (float64, error) {
	pmv, err := pmvISO(tdb, tr, vr, rh, met, clo, wme)
	if err != nil {
		return math.NaN(), err
	}
	return math.Round(pmv*100) / 100, nil
}

func pmvISO(tdb, tr, vr, rh, met, clo, wme float64) (float64, error) {
	// 水蒸気圧, Pa
	pa := VaporPressure(tdb, rh) * 1000

	icl := getCloToThermalResistance() * clo
	m := met * getMetUnit()
	mw := m - wme*getMetUnit()
	fcl := clothingAreaFactorISO(icl)

	// 強制対流熱伝達率
	hcf := 12.1 * math.Sqrt(vr)
	hc := hcf

	taa := tdb + 273
	tra := tr + 273
	tcla := taa + (35.5-tdb)/(3.5*icl+0.1)

	p1 := icl * fcl
	p2 := p1 * 3.96
	p3 := p1 * 100
	p4 := p1 * taa
	p5 := 308.7 - 0.028*mw + p2*math.Pow(tra/100, 4)

	xn := tcla / 100
	xf := tcla / 50
	for n := 0; math.Abs(xn-xf) > 0.00015; n++ {
		if n >= 150 {
			return 0, ErrPMVNotConverged
		}
		xf = (xf + xn) / 2
		hc = math.Max(hcf, 2.38*math.Pow(math.Abs(100*xf-taa), 0.25))
		xn = (p5 + p4*hc - p2*math.Pow(xf, 4)) / (100 + p3*hc)
	}
	tcl := 100*xn - 273

	// 皮膚からの拡散による潜熱損失
	hl1 := 3.05e-3 * (5733 - 6.99*mw - pa)
	// 発汗による潜熱損失
	hl2 := math.Max(0.42*(mw-getMetUnit()), 0)
	// 呼吸に伴う潜熱損失
	hl3 := 1.7e-5 * m * (5867 - pa)
	// 呼吸に伴う顕熱損失
	hl4 := 0.0014 * m * (34 - tdb)
	// 放射による熱損失
	hl5 := 3.96 * fcl * (math.Pow(xn, 4) - math.Pow(tra/100, 4))
	// 対流による熱損失
	hl6 := fcl * hc * (tcl - tdb)

	ts := 0.303*math.Exp(-0.036*m) + 0.028
	return ts * (mw - hl1 - hl2 - hl3 - hl4 - hl5 - hl6), nil
}

// PPD returns the predicted percentage of dissatisfied, %.
func PPD(pmv float64) float64 {
	pmv2 := pmv * pmv
	return 100 - 95*math.Exp(-0.03353*pmv2*pmv2-0.2179*pmv2)
}

/*
着衣面積率を計算する。

	Args:
	    icl: 着衣抵抗, m2 K/W

	Returns:
	    着衣面積率, -
*/
func clothingAreaFactorISO(icl float64) float64 {
	if icl <= 0.078 {
		return 1.00 + 1.290*icl
	}
	return 1.05 + 0.645*icl
}

/*
PMV が 0 となる作用温度を求める。

	Args:
	    v: 風速, m/s
	    rh: 相対湿度, %
	    met: 代謝量, met
	    clo: 着衣量, clo

	Returns:
	    中立作用温度, degree C

	Notes:
	    28 degree C から始め、to -= PMV / 3 を |PMV| < 0.001 となるか 100 回に達するまで繰り返す。
	    収束しない場合も最後の値を返す。
*/
func NeutralOperativeTemperature(v, rh, met, clo float64) float64 {
	to := 28.0
	for i := 0; i < 100; i++ {
		vpmv, err := PMV(to, to, v, rh, met, clo, 0)
		if err != nil {
			break
		}
		if math.Abs(vpmv) < 0.001 {
			break
		}
		to -= vpmv / 3
	}
	return to
}
