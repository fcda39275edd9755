package jos3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosture(t *testing.T) {
	tests := []struct {
		in   string
		want Posture
	}{
		{"standing", Standing},
		{" Sitting ", Sitting},
		{"sedentary", Sitting},
		{"lying", Lying},
		{"supine", Lying},
		{"0", Standing},
		{"1", Sitting},
		{"2", Lying},
	}
	for _, tt := range tests {
		got, err := ParsePosture(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	_, err := ParsePosture("crouching")
	assert.True(t, IsValidationError(err))
}

func TestConvectiveCoefficientRegimes(t *testing.T) {
	tdb, tsk := Uniform(28), Uniform(34)

	still := ConvectiveCoefficient(Standing, Uniform(0.1), tdb, tsk)
	assert.Equal(t, standingNaturalConvection, still)

	v := Uniform(0.1)
	v[Chest] = 0.5
	mixed := ConvectiveCoefficient(Sitting, v, tdb, tsk)
	assert.InDelta(t, 11.0*math.Pow(0.5, 0.67), mixed[Chest], 1e-12)
	assert.Equal(t, sittingNaturalConvection[Head], mixed[Head])

	lying := ConvectiveCoefficient(Lying, Uniform(0), tdb, tsk)
	assert.InDelta(t, 1.105*math.Pow(6, 0.345), lying[Head], 1e-12)

	assert.Panics(t, func() { ConvectiveCoefficient("kneeling", v, tdb, tsk) })
}

func TestFixedCoefficientsMatchWholeBody(t *testing.T) {
	tdb, tsk := Uniform(28), Uniform(34)

	low := Uniform(0.1)
	hc := FixedConvectiveCoefficient(ConvectiveCoefficient(Standing, low, tdb, tsk), low)
	assert.InDelta(t, 3.0, hc.WeightedMean(standardLocalBSA), 1e-9)

	fast := Uniform(1)
	hc = FixedConvectiveCoefficient(ConvectiveCoefficient(Standing, fast, tdb, tsk), fast)
	assert.InDelta(t, 8.600001, hc.WeightedMean(standardLocalBSA), 1e-9)

	for _, p := range []Posture{Standing, Sitting, Lying} {
		hr := FixedRadiativeCoefficient(RadiativeCoefficient(p))
		assert.InDelta(t, 4.7, hr.WeightedMean(standardLocalBSA), 1e-9, string(p))
	}
}

func TestOperativeTemperature(t *testing.T) {
	to := OperativeTemperature(Uniform(20), Uniform(30), Uniform(3), Uniform(1))
	assert.InDelta(t, 22.5, to[Head], 1e-12)
}

func TestClothingAreaFactor(t *testing.T) {
	assert.InDelta(t, 1.0, ClothingAreaFactor(0), 1e-12)
	assert.InDelta(t, 1.08, ClothingAreaFactor(0.4), 1e-12)
	assert.InDelta(t, 1.10, ClothingAreaFactor(0.5), 1e-12)
	assert.InDelta(t, 1.15, ClothingAreaFactor(1), 1e-12)
}

func TestResistances(t *testing.T) {
	hc, hr := Uniform(3), Uniform(4.7)

	rt, err := DryResistance(hc, hr, Uniform(0))
	require.NoError(t, err)
	assert.InDelta(t, 1/7.7, rt[Head], 1e-12)

	rt, err = DryResistance(hc, hr, Uniform(1))
	require.NoError(t, err)
	assert.InDelta(t, 1/7.7/1.15+0.155, rt[Head], 1e-12)

	ret, err := EvaporativeResistance(hc, Uniform(0), Uniform(0.45))
	require.NoError(t, err)
	assert.InDelta(t, 1/(16.5*3), ret[Chest], 1e-12)

	ret, err = EvaporativeResistance(hc, Uniform(1), Uniform(0.45))
	require.NoError(t, err)
	assert.InDelta(t, 1/(16.5*3)/1.15+0.155/(16.5*0.45), ret[Chest], 1e-12)

	bad := Uniform(3)
	bad[LeftFoot] = -1
	_, err = DryResistance(bad, hr, Uniform(0))
	assert.True(t, IsValidationError(err))
	_, err = EvaporativeResistance(bad, Uniform(0), Uniform(0.45))
	assert.True(t, IsValidationError(err))
}

func TestVaporPressure(t *testing.T) {
	assert.InDelta(t, 2.3372, SaturationVaporPressure(20), 1e-4)
	assert.InDelta(t, 5.3202, SaturationVaporPressure(34), 1e-4)
	assert.InDelta(t, 2.3372/2, VaporPressure(20, 50), 1e-4)
	assert.Zero(t, VaporPressure(30, 0))
}
