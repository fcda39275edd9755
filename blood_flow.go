package jos3

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BloodFlow holds the local tissue blood flows and the two AVA shunt flows
// of one tick, L/h.
type BloodFlow struct {
	TissueValues
	AVAHand float64
	AVAFoot float64
}

// CardiacOutput is the sum of all local flows, L/h. Each AVA flow counts
// twice, once per side.
func (bf BloodFlow) CardiacOutput() float64 {
	return bf.Total() + 2*bf.AVAHand + 2*bf.AVAFoot
}

func sumRange(v SegmentValues, from, to Segment) float64 {
	return floats.Sum(v[from : to+1])
}

/*
部位ごとの動脈・静脈の血流量を計算する。

	Args:
	    bf: 組織別の局所血流量と AVA 血流量, L/h

	Returns:
	    動脈血流量, L/h, [17]
	    静脈血流量, L/h, [17]

	Notes:
	    頭部は頸部に、大腿・下腿・足は骨盤部に合算される。
	    手・足の AVA 血流は動脈側にのみ加算し、静脈側へは表在静脈を通って戻る。
*/
func VesselBloodFlow(bf BloodFlow) (artery, vein SegmentValues) {
	x := bf.PerSegment()

	for _, s := range []Segment{Head, Chest, Back} {
		artery[s] = x[s]
		vein[s] = x[s]
	}
	artery[Neck] = x[Neck] + x[Head]
	vein[Neck] = artery[Neck]

	artery[Pelvis] = x[Pelvis] + sumRange(x, LeftThigh, RightFoot) + 2*bf.AVAFoot
	vein[Pelvis] = artery[Pelvis]

	limbs := []struct {
		root, tip Segment
		ava       float64
	}{
		{LeftShoulder, LeftHand, bf.AVAHand},
		{RightShoulder, RightHand, bf.AVAHand},
		{LeftThigh, LeftFoot, bf.AVAFoot},
		{RightThigh, RightFoot, bf.AVAFoot},
	}
	for _, l := range limbs {
		for s := l.root; s <= l.tip; s++ {
			vein[s] = sumRange(x, s, l.tip)
			artery[s] = vein[s] + l.ava
		}
	}
	return artery, vein
}

/*
部位内の局所血流による熱移動の行列を作成する。

	Args:
	    bf: 組織別の局所血流量と AVA 血流量, L/h

	Returns:
	    局所血流による熱移動係数, W/K, [85, 85]

	Notes:
	    要素 [i, j] はノード j からノード i へ流入する血流を表す。
*/
func LocalBloodFlowMatrix(bf BloodFlow) *mat.Dense {
	rc := getRhoCBlood()
	m := mat.NewDense(NumNodes, NumNodes, nil)
	for s := Head; s <= RightFoot; s++ {
		art := mustNode(s, Artery)
		vein := mustNode(s, Vein)
		core := mustNode(s, Core)
		skin := mustNode(s, Skin)

		m.Set(core, art, rc*bf.Core[s])
		m.Set(skin, art, rc*bf.Skin[s])
		m.Set(vein, core, rc*bf.Core[s])
		m.Set(vein, skin, rc*bf.Skin[s])

		if muscle, ok := NodeIndex(s, Muscle); ok {
			m.Set(muscle, art, rc*bf.Muscle[s])
			m.Set(vein, muscle, rc*bf.Muscle[s])
		}
		if fat, ok := NodeIndex(s, Fat); ok {
			m.Set(fat, art, rc*bf.Fat[s])
			m.Set(vein, fat, rc*bf.Fat[s])
		}

		switch s {
		case LeftHand, RightHand:
			m.Set(mustNode(s, SuperficialVein), art, rc*bf.AVAHand)
		case LeftFoot, RightFoot:
			m.Set(mustNode(s, SuperficialVein), art, rc*bf.AVAFoot)
		}
	}
	return m
}

// upstream is the segment each segment's artery is fed from. The central
// blood pool is marked with -1.
var upstream = [NumSegments]Segment{
	Head:          Neck,
	Neck:          -1,
	Chest:         -1,
	Back:          -1,
	Pelvis:        -1,
	LeftShoulder:  -1,
	LeftArm:       LeftShoulder,
	LeftHand:      LeftArm,
	RightShoulder: -1,
	RightArm:      RightShoulder,
	RightHand:     RightArm,
	LeftThigh:     Pelvis,
	LeftLeg:       LeftThigh,
	LeftFoot:      LeftLeg,
	RightThigh:    Pelvis,
	RightLeg:      RightThigh,
	RightFoot:     RightLeg,
}

/*
全身の血液循環による熱移動の行列を作成する。

	Args:
	    artery: 動脈血流量, L/h, [17]
	    vein: 静脈血流量, L/h, [17]
	    avaHand: 手の AVA 血流量, L/h
	    avaFoot: 足の AVA 血流量, L/h

	Returns:
	    血液循環による熱移動係数, W/K, [85, 85]

	Notes:
	    中心血液 → 各部位の動脈 → 末梢部位の動脈、と流れ、静脈は逆向きに中心血液へ戻る。
	    表在静脈（AVA 経路）は手・足から肩・大腿を経て、腕は中心血液へ、脚は骨盤部の静脈へ戻る。
*/
func WholeBodyBloodFlowMatrix(artery, vein SegmentValues, avaHand, avaFoot float64) *mat.Dense {
	rc := getRhoCBlood()
	m := mat.NewDense(NumNodes, NumNodes, nil)
	flow := func(up, down int, bf float64) {
		m.Set(down, up, bf*rc)
	}

	for s := Head; s <= RightFoot; s++ {
		upArt, upVein := CentralBloodNode, CentralBloodNode
		if p := upstream[s]; p >= 0 {
			upArt = mustNode(p, Artery)
			upVein = mustNode(p, Vein)
		}
		flow(upArt, mustNode(s, Artery), artery[s])
		flow(mustNode(s, Vein), upVein, vein[s])

		sfv, ok := NodeIndex(s, SuperficialVein)
		if !ok {
			continue
		}
		ava := avaHand
		if s >= LeftThigh {
			ava = avaFoot
		}
		drain := CentralBloodNode
		switch p := upstream[s]; {
		case p == Pelvis:
			drain = mustNode(Pelvis, Vein)
		case p >= 0:
			drain = mustNode(p, SuperficialVein)
		}
		flow(sfv, drain, ava)
	}
	return m
}

// 基礎血流量, L/h
var (
	basalCoreBloodFlow = SegmentValues{
		35.251, 15.240, 89.214, 87.663, 18.686,
		1.808, 0.940, 0.217, 1.808, 0.940, 0.217,
		1.406, 0.164, 0.080, 1.406, 0.164, 0.080,
	}
	basalMuscleBloodFlow = SegmentValues{Head: 0.682, Pelvis: 12.614}
	basalFatBloodFlow    = SegmentValues{Head: 0.265, Pelvis: 2.219}
)

// CoreMuscleFatBloodFlow returns the core, muscle and fat blood flows, L/h.
// Heat from work and shivering raises the flow of the layer it is produced
// in.
func CoreMuscleFatBloodFlow(work, shiv SegmentValues, bfbRatio float64) (core, muscle, fat SegmentValues) {
	core, muscle, fat = basalCoreBloodFlow, basalMuscleBloodFlow, basalFatBloodFlow
	floats.Scale(bfbRatio, core[:])
	floats.Scale(bfbRatio, muscle[:])
	floats.Scale(bfbRatio, fat[:])

	for s := Head; s <= RightFoot; s++ {
		dq := (work[s] + shiv[s]) / getRhoCWater()
		if s.hasLayer(Muscle) {
			muscle[s] += dq
		} else {
			core[s] += dq
		}
	}
	return core, muscle, fat
}
