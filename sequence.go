package jos3

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// 呼吸による熱損失を割り当てる部位
const respiratorySegment = Chest

/*
1ステップ分の体温を計算する。

	Args:
	    dtime: 時間間隔, s
	    passive: true の場合は現在の体温をセットポイントとし、体温調節を働かせない

	Returns:
	    このステップの結果

	Notes:
	    後退オイラー法により A T' = T + b To + q を解く。
	    エラーを返す場合はモデルの状態を一切変更しない。
	    A が特異となるのはパラメータ導出の誤りであり、panic とする。
*/
func (m *Model) step(dtime float64, passive bool) (Snapshot, error) {
	tCore := m.TCore()
	tSkin := m.TSkin()
	env := m.env

	// 対流・放射熱伝達率, W/(m2 K)
	hc, hr := m.heatTransferCoefficients(tSkin)
	// 作用温度, degree C
	to := OperativeTemperature(env.Tdb, env.Tr, hc, hr)
	// 全顕熱抵抗, m2 K/W
	rt, err := DryResistance(hc, hr, env.Clo)
	if err != nil {
		return Snapshot{}, err
	}
	// 全潜熱抵抗, m2 kPa/W
	ret, err := EvaporativeResistance(hc, env.Clo, env.Iclo)
	if err != nil {
		return Snapshot{}, err
	}

	setCore, setSkin := m.setpointCore, m.setpointSkin
	if passive {
		setCore, setSkin = tCore, tSkin
	}

	reg, err := m.controller.Step(ControllerInput{
		TCore:                 tCore,
		TSkin:                 tSkin,
		SetpointCore:          setCore,
		SetpointSkin:          setSkin,
		Tdb:                   env.Tdb,
		RH:                    env.RH,
		EvaporativeResistance: ret,
		ActivityRatio:         env.ActivityRatio,
		Dtime:                 dtime,
	})
	if err != nil {
		return Snapshot{}, err
	}

	qTotal := reg.Thermogenesis.Total()
	pa := VaporPressure(env.Tdb[respiratorySegment], env.RH[respiratorySegment])
	resSensible, resLatent := RespiratoryHeatLoss(env.Tdb[respiratorySegment], pa, qTotal)

	// 血流と伝導による熱移動, W/K -> 無次元
	artery, vein := VesselBloodFlow(reg.BloodFlow)
	exchange := LocalBloodFlowMatrix(reg.BloodFlow)
	exchange.Add(exchange, WholeBodyBloodFlowMatrix(artery, vein, reg.BloodFlow.AVAHand, reg.BloodFlow.AVAFoot))
	exchange.Add(exchange, m.conductance)
	m.perTick(exchange, dtime)

	// 皮膚と環境の間の熱移動, W/K -> 無次元
	b := mat.NewVecDense(NumNodes, nil)
	for i, n := range NodesForLayer(Skin) {
		b.SetVec(n, m.bsa[i]/rt[i])
	}

	// 熱源, W -> K
	q := mat.NewVecDense(NumNodes, nil)
	scatterLayer(q, Core, reg.Thermogenesis.Core)
	scatterLayer(q, Muscle, reg.Thermogenesis.Muscle)
	scatterLayer(q, Fat, reg.Thermogenesis.Fat)
	scatterLayer(q, Skin, reg.Thermogenesis.Skin)
	chestCore := mustNode(respiratorySegment, Core)
	q.SetVec(chestCore, q.AtVec(chestCore)-resSensible-resLatent)
	esk := reg.Evaporation.ESkin
	for i := range esk {
		esk[i] = -esk[i]
	}
	scatterLayer(q, Skin, esk)
	q.AddVec(q, m.extraHeat)

	for i := 0; i < NumNodes; i++ {
		k := dtime / m.capacity.AtVec(i)
		b.SetVec(i, b.AtVec(i)*k)
		q.SetVec(i, q.AtVec(i)*k)
	}

	// A = I + diag(rowsum(C) + b) - C
	a := mat.NewDense(NumNodes, NumNodes, nil)
	a.Scale(-1, exchange)
	for i := 0; i < NumNodes; i++ {
		row := floats.Sum(exchange.RawRowView(i))
		a.Set(i, i, a.At(i, i)+row+b.AtVec(i)+1)
	}

	// rhs = T + b To + q
	rhs := mat.NewVecDense(NumNodes, nil)
	rhs.CloneFromVec(m.bodyTemp)
	toNodes := mat.NewVecDense(NumNodes, nil)
	scatterLayer(toNodes, Skin, to)
	toNodes.MulElemVec(toNodes, b)
	rhs.AddVec(rhs, toNodes)
	rhs.AddVec(rhs, q)

	var next mat.VecDense
	if err := next.SolveVec(a, rhs); err != nil {
		panic(fmt.Sprintf("jos3: heat balance matrix is not solvable: %v", err))
	}
	m.bodyTemp.CloneFromVec(&next)

	return m.snapshot(dtime, tickState{
		reg:         reg,
		tSkin:       tSkin,
		to:          to,
		rt:          rt,
		ret:         ret,
		setCore:     setCore,
		setSkin:     setSkin,
		resSensible: resSensible,
		resLatent:   resLatent,
	}), nil
}

// perTick divides each row of m by the node capacity and multiplies by
// dtime, turning W/K into a per-tick fraction.
func (m *Model) perTick(x *mat.Dense, dtime float64) {
	for i := 0; i < NumNodes; i++ {
		floats.Scale(dtime/m.capacity.AtVec(i), x.RawRowView(i))
	}
}

// scatterLayer adds per-segment values onto the nodes of layer l. Segments
// without the layer are skipped.
func scatterLayer(dst *mat.VecDense, l Layer, v SegmentValues) {
	for _, s := range ValidLayerSegments(l) {
		n := mustNode(s, l)
		dst.SetVec(n, dst.AtVec(n)+v[s])
	}
}

// tickState carries the intermediate results of a tick into its snapshot.
// tSkin is the skin temperature the boundary terms were built from.
type tickState struct {
	reg                    ControllerOutput
	tSkin                  SegmentValues
	to, rt, ret            SegmentValues
	setCore, setSkin       SegmentValues
	resSensible, resLatent float64
}
