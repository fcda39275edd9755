package jos3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSegmentValuesShapes(t *testing.T) {
	seq := make([]float64, NumSegments)
	byName := map[string]float64{}
	bySeg := map[Segment]float64{}
	for i, name := range SegmentNames() {
		seq[i] = float64(i)
		byName[name] = float64(i)
		bySeg[Segment(i)] = float64(i)
	}
	var want SegmentValues
	copy(want[:], seq)

	tests := []struct {
		name string
		in   any
		want SegmentValues
	}{
		{"float", 25.5, Uniform(25.5)},
		{"int", 3, Uniform(3)},
		{"segment values", want, want},
		{"slice", seq, want},
		{"map by name", byName, want},
		{"map by segment", bySeg, want},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToSegmentValues(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToSegmentValuesRejects(t *testing.T) {
	partial := map[string]float64{"head": 1, "neck": 2}
	unknown := map[string]float64{}
	for _, name := range SegmentNames()[1:] {
		unknown[name] = 1
	}
	unknown["tail"] = 1

	tests := []struct {
		name string
		in   any
	}{
		{"short slice", []float64{1, 2, 3}},
		{"partial map", partial},
		{"unknown key", unknown},
		{"string", "hot"},
		{"float32", float32(1)},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToSegmentValues(tt.in)
			assert.ErrorIs(t, err, ErrUnsupportedShape)
		})
	}
}

func TestSegmentValuesArithmetic(t *testing.T) {
	v := Uniform(2)
	assert.InDelta(t, 34.0, v.Sum(), 1e-12)
	assert.InDelta(t, 2.0, v.WeightedMean(standardLocalBSA), 1e-12)

	var w SegmentValues
	w[Head], w[Chest] = 1, 3
	v[Head], v[Chest] = 10, 20
	assert.InDelta(t, 17.5, v.WeightedMean(w), 1e-12)

	s := v.Slice()
	s[0] = -1
	assert.Equal(t, 10.0, v[Head])

	assert.Equal(t, []float64{10, 2}, v.gather([]Segment{Head, Pelvis}))
}
