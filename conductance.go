package jos3

import "gonum.org/v1/gonum/mat"

// 体脂肪率区分ごとのコア-皮膚間熱コンダクタンス, W/K
var coreSkinConductanceByFat = [5]SegmentValues{
	{1.341, 0.930, 1.879, 1.729, 2.370, 1.557, 1.018, 2.210, 1.557, 1.018, 2.210, 2.565, 1.378, 3.404, 2.565, 1.378, 3.404},
	{1.311, 0.909, 1.785, 1.643, 2.251, 1.501, 0.982, 2.183, 1.501, 0.982, 2.183, 2.468, 1.326, 3.370, 2.468, 1.326, 3.370},
	{1.282, 0.889, 1.698, 1.563, 2.142, 1.448, 0.947, 2.156, 1.448, 0.947, 2.156, 2.375, 1.276, 3.337, 2.375, 1.276, 3.337},
	{1.255, 0.870, 1.618, 1.488, 2.040, 1.396, 0.913, 2.130, 1.396, 0.913, 2.130, 2.285, 1.227, 3.304, 2.285, 1.227, 3.304},
	{1.227, 0.852, 1.542, 1.419, 1.945, 1.346, 0.880, 1.945, 1.346, 0.880, 1.945, 2.198, 1.181, 3.271, 2.198, 1.181, 3.271},
}

func fatBand(fat float64) int {
	switch {
	case fat < 12.5:
		return 0
	case fat < 17.5:
		return 1
	case fat < 22.5:
		return 2
	case fat < 27.5:
		return 3
	default:
		return 4
	}
}

var (
	// コア-筋肉, 筋肉-脂肪, 脂肪-皮膚 (頭部・骨盤部のみ), W/K
	coreMuscleConductance = SegmentValues{Head: 1.601, Pelvis: 3.0813}
	muscleFatConductance  = SegmentValues{Head: 13.222, Pelvis: 10.3738}
	fatSkinConductance    = SegmentValues{Head: 16.008, Pelvis: 41.4954}

	// 血管-コア間, W/K
	vesselCoreConductance = SegmentValues{
		0, 0, 0, 0, 0,
		0.586, 0.383, 1.534, 0.586, 0.383, 1.534,
		0.810, 0.435, 1.816, 0.810, 0.435, 1.816,
	}

	// 表在静脈-皮膚間, W/K
	superficialVeinSkinConductance = SegmentValues{
		0, 0, 0, 0, 0,
		57.735, 37.768, 16.634, 57.735, 37.768, 16.634,
		102.012, 54.784, 24.277, 102.012, 54.784, 24.277,
	}

	// 動脈-静脈間（対向流）, W/K
	arteryVeinConductance = SegmentValues{
		0, 0, 0, 0, 0,
		0.537, 0.351, 0.762, 0.537, 0.351, 0.762,
		0.826, 0.444, 0.992, 0.826, 0.444, 0.992,
	}
)

// scaleBySegmentShape rescales a standard-body conductance table to the
// individual. Head and neck follow the sphere law, the rest the cylinder law.
func scaleBySegmentShape(v SegmentValues, wr, bsar float64) SegmentValues {
	for i := range v {
		if Segment(i) <= Neck {
			v[i] *= wr / bsar
		} else {
			v[i] *= bsar * bsar / wr
		}
	}
	return v
}

/*
ノード間の熱コンダクタンス行列を作成する。

	Args:
	    height: 身長, m
	    weight: 体重, kg
	    eq: 体表面積の推定式
	    fat: 体脂肪率, %

	Returns:
	    熱コンダクタンス, W/K, [85, 85]

	Notes:
	    行列は対称で、同じ部位内の隣接する層の間にのみ値を持つ。
*/
func Conductance(height, weight float64, eq BSAEquation, fat float64) (*mat.Dense, error) {
	if err := validateHeightWeight(height, weight); err != nil {
		return nil, err
	}
	if err := validateBodyFat(fat); err != nil {
		return nil, err
	}
	wr, err := WeightRatio(weight)
	if err != nil {
		return nil, err
	}
	bsar, err := BSARatio(height, weight, eq)
	if err != nil {
		return nil, err
	}

	crSk := scaleBySegmentShape(coreSkinConductanceByFat[fatBand(fat)], wr, bsar)
	crMs := scaleBySegmentShape(coreMuscleConductance, wr, bsar)
	msFat := scaleBySegmentShape(muscleFatConductance, wr, bsar)
	fatSk := scaleBySegmentShape(fatSkinConductance, wr, bsar)
	vesCr := scaleBySegmentShape(vesselCoreConductance, wr, bsar)
	sfvSk := scaleBySegmentShape(superficialVeinSkinConductance, wr, bsar)
	artVein := scaleBySegmentShape(arteryVeinConductance, wr, bsar)

	upper := mat.NewDense(NumNodes, NumNodes, nil)
	for s := Head; s <= RightFoot; s++ {
		art := mustNode(s, Artery)
		vein := mustNode(s, Vein)
		core := mustNode(s, Core)
		skin := mustNode(s, Skin)

		upper.Set(art, vein, artVein[s])
		upper.Set(art, core, vesCr[s])
		upper.Set(vein, core, vesCr[s])

		if sfv, ok := NodeIndex(s, SuperficialVein); ok {
			upper.Set(sfv, skin, sfvSk[s])
		}

		if muscle, ok := NodeIndex(s, Muscle); ok {
			fatNode := mustNode(s, Fat)
			upper.Set(core, muscle, crMs[s])
			upper.Set(muscle, fatNode, msFat[s])
			upper.Set(fatNode, skin, fatSk[s])
		} else {
			upper.Set(core, skin, crSk[s])
		}
	}

	var cdt mat.Dense
	cdt.Add(upper, upper.T())
	return &cdt, nil
}
