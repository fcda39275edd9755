package jos3

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func randomBloodFlow(rng *rand.Rand) BloodFlow {
	var bf BloodFlow
	for s := Head; s <= RightFoot; s++ {
		bf.Core[s] = rng.Float64() * 50
		bf.Skin[s] = rng.Float64() * 10
		if s.hasLayer(Muscle) {
			bf.Muscle[s] = rng.Float64() * 20
			bf.Fat[s] = rng.Float64() * 5
		}
	}
	bf.AVAHand = rng.Float64() * 2
	bf.AVAFoot = rng.Float64() * 2
	return bf
}

func TestCentralPoolConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		bf := randomBloodFlow(rng)
		artery, vein := VesselBloodFlow(bf)
		m := WholeBodyBloodFlowMatrix(artery, vein, bf.AVAHand, bf.AVAFoot)

		out := mat.Col(nil, CentralBloodNode, m)
		in := mat.Row(nil, CentralBloodNode, m)
		assert.InDelta(t, floats.Sum(out), floats.Sum(in), 1e-9)
		assert.InDelta(t, bf.CardiacOutput()*getRhoCBlood(), floats.Sum(out), 1e-9)
	}
}

func TestEveryNodeBalancesBloodFlow(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	bf := randomBloodFlow(rng)
	artery, vein := VesselBloodFlow(bf)

	var total mat.Dense
	total.Add(LocalBloodFlowMatrix(bf), WholeBodyBloodFlowMatrix(artery, vein, bf.AVAHand, bf.AVAFoot))

	// Element [i, j] is the flow from j into i, so each row is a node's
	// inflow and each column its outflow.
	for n := 0; n < NumNodes; n++ {
		in := floats.Sum(mat.Row(nil, n, &total))
		out := floats.Sum(mat.Col(nil, n, &total))
		assert.InDelta(t, in, out, 1e-9, "node %d", n)
	}
}

func TestVesselBloodFlowTree(t *testing.T) {
	var bf BloodFlow
	bf.Core = Uniform(1)
	bf.AVAHand = 0.5
	bf.AVAFoot = 0.25
	artery, vein := VesselBloodFlow(bf)

	assert.Equal(t, 1.0, artery[Head])
	assert.Equal(t, 2.0, artery[Neck])
	assert.Equal(t, 1.0, artery[Chest])
	assert.Equal(t, 1+6+2*0.25, artery[Pelvis])
	assert.Equal(t, artery[Pelvis], vein[Pelvis])

	assert.Equal(t, 3.0, vein[LeftShoulder])
	assert.Equal(t, 3.5, artery[LeftShoulder])
	assert.Equal(t, 1.0, vein[RightHand])
	assert.Equal(t, 1.5, artery[RightHand])
	assert.Equal(t, 3.25, artery[LeftThigh])
	assert.Equal(t, 1.25, artery[RightFoot])
}

func TestLocalBloodFlowMatrixAVA(t *testing.T) {
	var bf BloodFlow
	bf.AVAHand = 2
	bf.AVAFoot = 3
	m := LocalBloodFlowMatrix(bf)

	rc := getRhoCBlood()
	assert.InDelta(t, 2*rc, m.At(mustNode(LeftHand, SuperficialVein), mustNode(LeftHand, Artery)), 1e-12)
	assert.InDelta(t, 3*rc, m.At(mustNode(RightFoot, SuperficialVein), mustNode(RightFoot, Artery)), 1e-12)
	assert.Zero(t, m.At(mustNode(LeftArm, SuperficialVein), mustNode(LeftArm, Artery)))
}

func TestCoreMuscleFatBloodFlow(t *testing.T) {
	var work, shiv SegmentValues
	work[Pelvis] = 1.163
	shiv[Chest] = 2 * 1.163

	core, muscle, fat := CoreMuscleFatBloodFlow(work, shiv, 1)
	assert.InDelta(t, 12.614+1, muscle[Pelvis], 1e-12)
	assert.InDelta(t, 89.214+2, core[Chest], 1e-12)
	assert.InDelta(t, 2.219, fat[Pelvis], 1e-12)
	assert.Zero(t, muscle[Chest])

	core2, _, _ := CoreMuscleFatBloodFlow(SegmentValues{}, SegmentValues{}, 2)
	require.InDelta(t, 2*35.251, core2[Head], 1e-12)
}
