package jos3

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSegmentValues(r *rand.Rand, lo, hi float64) SegmentValues {
	var v SegmentValues
	for i := range v {
		v[i] = lo + (hi-lo)*r.Float64()
	}
	return v
}

func TestReceptorDistributionSumsToOne(t *testing.T) {
	assert.InDelta(t, 1, receptorDistribution.Sum(), 1e-3)
	assert.InDelta(t, 1, sweatDistribution.Sum(), 1e-3)
}

func TestErrorSignals(t *testing.T) {
	wrms, clds := ErrorSignals(Uniform(0))
	assert.Zero(t, wrms)
	assert.Zero(t, clds)

	wrms, clds = ErrorSignals(Uniform(1))
	assert.InDelta(t, receptorDistribution.Sum(), wrms, 1e-12)
	assert.Zero(t, clds)

	wrms, clds = ErrorSignals(Uniform(-2))
	assert.Zero(t, wrms)
	assert.InDelta(t, 2*receptorDistribution.Sum(), clds, 1e-12)

	r := rand.New(rand.NewSource(3))
	for n := 0; n < 100; n++ {
		wrms, clds = ErrorSignals(randomSegmentValues(r, -5, 5))
		assert.GreaterOrEqual(t, wrms, 0.0)
		assert.GreaterOrEqual(t, clds, 0.0)
	}
}

func TestEvaporationBounds(t *testing.T) {
	bsa, err := LocalBSA(1.72, 74.43, DuBois)
	require.NoError(t, err)

	r := rand.New(rand.NewSource(11))
	for n := 0; n < 200; n++ {
		ev := Evaporation(
			randomSegmentValues(r, -3, 3),
			randomSegmentValues(r, -5, 5),
			randomSegmentValues(r, 28, 38),
			randomSegmentValues(r, 10, 45),
			randomSegmentValues(r, 0, 100),
			randomSegmentValues(r, 0.01, 0.1),
			bsa, 1, 20+60*r.Float64(),
		)
		for i := range ev.Wettedness {
			assert.GreaterOrEqual(t, ev.Wettedness[i], 0.0)
			assert.LessOrEqual(t, ev.Wettedness[i], 1.0)
			assert.InDelta(t, ev.Wettedness[i]*ev.EMax[i], ev.ESkin[i], 1e-9)
		}
	}
}

func TestEvaporationAtSetpoint(t *testing.T) {
	bsa, err := LocalBSA(1.72, 74.43, DuBois)
	require.NoError(t, err)

	ev := Evaporation(Uniform(0), Uniform(0), Uniform(34), Uniform(28), Uniform(50), Uniform(0.02), bsa, 1, 20)
	for i := range ev.Wettedness {
		assert.InDelta(t, 0.06, ev.Wettedness[i], 1e-12)
		assert.InDelta(t, 0, ev.ESweat[i], 1e-12)
	}
}

func TestSkinBloodFlowRespondsToErrors(t *testing.T) {
	neutral := SkinBloodFlow(Uniform(0), Uniform(0), 1, 20)
	assert.Equal(t, basalSkinBloodFlow, neutral)

	warm := SkinBloodFlow(Uniform(0.5), Uniform(1), 1, 20)
	cold := SkinBloodFlow(Uniform(-0.5), Uniform(-1), 1, 20)
	for i := range neutral {
		assert.Greater(t, warm[i], neutral[i])
		assert.Less(t, cold[i], neutral[i])
	}

	aged := SkinBloodFlow(Uniform(0.5), Uniform(1), 1, 70)
	assert.Less(t, aged.Sum(), warm.Sum())
}

func TestAVABloodFlow(t *testing.T) {
	// at the set-point the hand AVA is fully open and the foot AVA partly
	hand, foot := AVABloodFlow(Uniform(0), Uniform(0), 1)
	assert.InDelta(t, 1.71, hand, 1e-12)
	assert.InDelta(t, 2.16*(0.265*-0.997+0.953*0.0095+0.9126), foot, 1e-12)

	hand, foot = AVABloodFlow(Uniform(5), Uniform(5), 1)
	assert.InDelta(t, 1.71, hand, 1e-12)
	assert.InDelta(t, 2.16, foot, 1e-12)

	hand, foot = AVABloodFlow(Uniform(-5), Uniform(-5), 1)
	assert.Zero(t, hand)
	assert.Zero(t, foot)
}

func TestLimitShiveringSignal(t *testing.T) {
	assert.InDelta(t, 0.462, limitShiveringSignal(10, 0, 0.0077, 60), 1e-12)
	assert.InDelta(t, 9.538, limitShiveringSignal(0, 10, 0.0077, 60), 1e-12)
	assert.InDelta(t, 0.3, limitShiveringSignal(0.3, 0, 0.0077, 60), 1e-12)
}

func TestShiveringThermogenesis(t *testing.T) {
	sig := shiveringSignal(Uniform(0.2), Uniform(1), Uniform(37), Uniform(34), Male, false)
	assert.Zero(t, sig)

	sig = shiveringSignal(Uniform(-0.5), Uniform(-2), Uniform(36.5), Uniform(30), Male, false)
	assert.Greater(t, sig, 0.0)

	// head core above the threshold suppresses shivering
	gated := shiveringSignal(Uniform(-0.5), Uniform(-2), Uniform(36.7), Uniform(30), Male, true)
	assert.Zero(t, gated)

	q := ShiveringThermogenesis(sig, 1, 20)
	assert.InDelta(t, sig*shiveringDistribution.Sum(), q.Sum(), 1e-9)
	older := ShiveringThermogenesis(sig, 1, 85)
	assert.InDelta(t, 0.82597*q.Sum(), older.Sum(), 1e-9)
}

func TestShiveringThreshold(t *testing.T) {
	assert.Equal(t, 36.6, shiveringThreshold(Uniform(30), Male))
	assert.InDelta(t, -0.2436*33+44.1, shiveringThreshold(Uniform(33), Male), 1e-9)
	assert.InDelta(t, -0.225*33+43.05, shiveringThreshold(Uniform(33), Female), 1e-9)
}

func TestNonShiveringThermogenesis(t *testing.T) {
	warm := NonShiveringThermogenesis(Uniform(1), 1.72, 74.43, 1, 20, false, false)
	assert.Zero(t, warm.Sum())

	q := NonShiveringThermogenesis(Uniform(-3), 1.72, 74.43, 1, 20, false, true)
	for _, s := range []Segment{Neck, Back, Pelvis, LeftShoulder, RightShoulder} {
		assert.Greater(t, q[s], 0.0, s.String())
	}
	for _, s := range []Segment{Head, Chest, LeftHand, RightFoot, LeftThigh} {
		assert.Zero(t, q[s], s.String())
	}

	acclimated := NonShiveringThermogenesis(Uniform(-10), 1.72, 74.43, 1, 20, true, true)
	plain := NonShiveringThermogenesis(Uniform(-10), 1.72, 74.43, 1, 20, false, true)
	assert.Greater(t, acclimated.Sum(), plain.Sum())

	elderly := NonShiveringThermogenesis(Uniform(-10), 1.72, 74.43, 1, 65, false, false)
	assert.InDelta(t, 2.43+5.62, elderly.Sum(), 1e-9)
}

func TestRespiratoryHeatLoss(t *testing.T) {
	sensible, latent := RespiratoryHeatLoss(34, 5.87, 100)
	assert.Zero(t, sensible)
	assert.Zero(t, latent)

	sensible, latent = RespiratoryHeatLoss(24, 1.5, 100)
	assert.InDelta(t, 1.4, sensible, 1e-12)
	assert.InDelta(t, 0.0173*100*4.37, latent, 1e-12)
}
