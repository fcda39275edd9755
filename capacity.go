package jos3

import "gonum.org/v1/gonum/mat"

// 標準体格の熱容量, Wh/K
var (
	arteryCapacity = SegmentValues{
		0.096, 0.025, 0.12, 0.111, 0.265,
		0.0186, 0.0091, 0.0044, 0.0186, 0.0091, 0.0044,
		0.0813, 0.04, 0.0103, 0.0813, 0.04, 0.0103,
	}
	veinCapacity = SegmentValues{
		0.321, 0.085, 0.424, 0.39, 0.832,
		0.046, 0.024, 0.01, 0.046, 0.024, 0.01,
		0.207, 0.1, 0.024, 0.207, 0.1, 0.024,
	}
	superficialVeinCapacity = SegmentValues{
		0, 0, 0, 0, 0,
		0.025, 0.015, 0.011, 0.025, 0.015, 0.011,
		0.074, 0.05, 0.021, 0.074, 0.05, 0.021,
	}
	coreCapacity = SegmentValues{
		1.7229, 0.564, 10.2975, 9.3935, 4.488,
		1.6994, 1.1209, 0.1536, 1.6994, 1.1209, 0.1536,
		5.3117, 2.867, 0.2097, 5.3117, 2.867, 0.2097,
	}
	muscleCapacity = SegmentValues{Head: 0.305, Pelvis: 7.409}
	fatCapacity    = SegmentValues{Head: 0.203, Pelvis: 1.947}
	skinCapacity   = SegmentValues{
		0.1885, 0.058, 0.441, 0.406, 0.556,
		0.126, 0.084, 0.088, 0.126, 0.084, 0.088,
		0.334, 0.169, 0.107, 0.334, 0.169, 0.107,
	}
)

const centralBloodCapacity = 1.999 // Wh/K

/*
ノードの熱容量を計算する。

	Args:
	    height: 身長, m
	    weight: 体重, kg
	    eq: 体表面積の推定式
	    age: 年齢, years
	    ci: 心係数, L/(min m2)

	Returns:
	    熱容量, J/K, [85]

	Notes:
	    血管系（動脈・静脈・表在静脈・中心血液）は基礎血流量比で、
	    組織（コア・筋肉・脂肪・皮膚）は体重比で補正する。
*/
func Capacity(height, weight float64, eq BSAEquation, age, ci float64) (*mat.VecDense, error) {
	bfbr, err := BasalBloodFlowRatio(height, weight, eq, age, ci)
	if err != nil {
		return nil, err
	}
	wr, err := WeightRatio(weight)
	if err != nil {
		return nil, err
	}

	layers := []struct {
		layer Layer
		table SegmentValues
		ratio float64
	}{
		{Artery, arteryCapacity, bfbr},
		{Vein, veinCapacity, bfbr},
		{SuperficialVein, superficialVeinCapacity, bfbr},
		{Core, coreCapacity, wr},
		{Muscle, muscleCapacity, wr},
		{Fat, fatCapacity, wr},
		{Skin, skinCapacity, wr},
	}

	c := mat.NewVecDense(NumNodes, nil)
	c.SetVec(CentralBloodNode, centralBloodCapacity*bfbr)
	for _, l := range layers {
		for _, s := range ValidLayerSegments(l.layer) {
			c.SetVec(mustNode(s, l.layer), l.table[s]*l.ratio)
		}
	}
	c.ScaleVec(3600, c) // Wh/K -> J/K
	return c, nil
}
