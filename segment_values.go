package jos3

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// SegmentValues holds one value per body segment, in segment order.
type SegmentValues [NumSegments]float64

// Uniform broadcasts v to every segment.
func Uniform(v float64) SegmentValues {
	var out SegmentValues
	for i := range out {
		out[i] = v
	}
	return out
}

func (v SegmentValues) Sum() float64 {
	return floats.Sum(v[:])
}

// WeightedMean returns the mean of v weighted by w, usually local surface
// area.
func (v SegmentValues) WeightedMean(w SegmentValues) float64 {
	return floats.Dot(v[:], w[:]) / floats.Sum(w[:])
}

// Slice returns a copy of the values as a slice.
func (v SegmentValues) Slice() []float64 {
	out := make([]float64, NumSegments)
	copy(out, v[:])
	return out
}

// gather picks the values of the given segments.
func (v SegmentValues) gather(segs []Segment) []float64 {
	out := make([]float64, len(segs))
	for i, s := range segs {
		out[i] = v[s]
	}
	return out
}

// ToSegmentValues normalizes a scalar, a 17-length sequence or a map keyed
// by segment into SegmentValues.
func ToSegmentValues(in any) (SegmentValues, error) {
	var out SegmentValues
	switch x := in.(type) {
	case float64:
		return Uniform(x), nil
	case int:
		return Uniform(float64(x)), nil
	case SegmentValues:
		return x, nil
	case []float64:
		if len(x) != NumSegments {
			return out, fmt.Errorf("%w: sequence of length %d, want %d", ErrUnsupportedShape, len(x), NumSegments)
		}
		copy(out[:], x)
		return out, nil
	case map[string]float64:
		if len(x) != NumSegments {
			return out, fmt.Errorf("%w: map with %d keys, want %d", ErrUnsupportedShape, len(x), NumSegments)
		}
		var seen [NumSegments]bool
		for name, val := range x {
			s, err := ParseSegment(name)
			if err != nil {
				return out, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
			}
			if seen[s] {
				return out, fmt.Errorf("%w: duplicate key for %s", ErrUnsupportedShape, s)
			}
			seen[s] = true
			out[s] = val
		}
		return out, nil
	case map[Segment]float64:
		if len(x) != NumSegments {
			return out, fmt.Errorf("%w: map with %d keys, want %d", ErrUnsupportedShape, len(x), NumSegments)
		}
		for s, val := range x {
			if s < Head || s > RightFoot {
				return out, fmt.Errorf("%w: %v", ErrUnsupportedShape, s)
			}
			out[s] = val
		}
		return out, nil
	default:
		return out, fmt.Errorf("%w: %T", ErrUnsupportedShape, in)
	}
}
