package jos3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasalMetabolicRate(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		weight float64
		age    float64
		sex    Sex
		eq     BMREquation
		want   float64
	}{
		{"harris-benedict male", 1.72, 74.43, 20, Male, HarrisBenedict, 87.958882},
		{"harris-benedict female", 1.6, 55, 30, Female, HarrisBenedict, 76.517664},
		{"harris-benedict origin", 1.72, 74.43, 20, Male, HarrisBenedictOrigin, 87.142665},
		{"japanese", 1.72, 74.43, 20, Male, Japanese, 79.182605},
		{"ganpule", 1.72, 74.43, 20, Male, Ganpule, 79.182605},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BasalMetabolicRate(tt.height, tt.weight, tt.age, tt.sex, tt.eq)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-5)
		})
	}

	_, err := BasalMetabolicRate(1.72, 74.43, 20, Male, "kleiber")
	assert.True(t, IsUnsupportedEquation(err))
}

func TestLocalBasalMetabolismSumsToBMR(t *testing.T) {
	q := LocalBasalMetabolism(100)
	assert.InDelta(t, 100.0, q.Total(), 0.5)
	assert.Zero(t, q.Muscle[Chest])
	assert.Zero(t, q.Fat[LeftHand])
	assert.InDelta(t, 19.551, q.Core[Head], 1e-9)
}

func TestLocalWorkThermogenesis(t *testing.T) {
	got, err := LocalWorkThermogenesis(5, 6)
	require.NoError(t, err)
	want := []float64{
		0, 0, 2.275, 2, 3.225,
		0.655, 0.3475, 0.125, 0.655, 0.3475, 0.125,
		5.025, 2.475, 0.125, 5.025, 2.475, 0.125,
	}
	assert.InDeltaSlice(t, want, got[:], 1e-12)

	rest, err := LocalWorkThermogenesis(80, 1)
	require.NoError(t, err)
	assert.Equal(t, SegmentValues{}, rest)
}

func TestLocalWorkThermogenesisRejectsLowActivity(t *testing.T) {
	_, err := LocalWorkThermogenesis(80, 0.99)
	require.Error(t, err)
	assert.True(t, IsInvalidActivityRatio(err))

	var ar *InvalidActivityRatioError
	require.ErrorAs(t, err, &ar)
	assert.Equal(t, 0.99, ar.Ratio)
}

func TestSumThermogenesisRouting(t *testing.T) {
	basal := LocalBasalMetabolism(80)
	work := Uniform(1)
	shiv := Uniform(2)
	var nst SegmentValues
	nst[Neck] = 5
	nst[Pelvis] = 7

	got := SumThermogenesis(basal, work, shiv, nst)

	assert.InDelta(t, basal.Muscle[Head]+3, got.Muscle[Head], 1e-12)
	assert.InDelta(t, basal.Core[Head], got.Core[Head], 1e-12)
	assert.InDelta(t, basal.Muscle[Pelvis]+3, got.Muscle[Pelvis], 1e-12)
	assert.InDelta(t, basal.Core[Pelvis]+7, got.Core[Pelvis], 1e-12)
	assert.InDelta(t, basal.Core[Neck]+3+5, got.Core[Neck], 1e-12)
	assert.InDelta(t, basal.Core[LeftHand]+3, got.Core[LeftHand], 1e-12)
	assert.Equal(t, basal.Skin, got.Skin)
	assert.Equal(t, basal.Fat, got.Fat)
	assert.InDelta(t, basal.Total()+3*NumSegments+12, got.Total(), 1e-9)
}
