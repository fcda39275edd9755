package jos3

import (
	"fmt"
	"strings"
)

// NumSegments is the number of body segments.
const NumSegments = 17

// NumNodes is the number of thermal nodes, central blood pool included.
const NumNodes = 85

// CentralBloodNode is the node id of the central blood pool.
const CentralBloodNode = 0

// Segment is one of the 17 body segments.
type Segment int

const (
	Head Segment = iota
	Neck
	Chest
	Back
	Pelvis
	LeftShoulder
	LeftArm
	LeftHand
	RightShoulder
	RightArm
	RightHand
	LeftThigh
	LeftLeg
	LeftFoot
	RightThigh
	RightLeg
	RightFoot
)

var segmentNames = [NumSegments]string{
	"head", "neck", "chest", "back", "pelvis",
	"left_shoulder", "left_arm", "left_hand",
	"right_shoulder", "right_arm", "right_hand",
	"left_thigh", "left_leg", "left_foot",
	"right_thigh", "right_leg", "right_foot",
}

func (s Segment) String() string {
	if s < 0 || int(s) >= NumSegments {
		return fmt.Sprintf("Segment(%d)", int(s))
	}
	return segmentNames[s]
}

// isLimb reports whether the segment belongs to an arm or a leg.
func (s Segment) isLimb() bool {
	return s >= LeftShoulder
}

// SegmentNames returns the segment names in node order.
func SegmentNames() []string {
	names := make([]string, NumSegments)
	copy(names, segmentNames[:])
	return names
}

// ParseSegment resolves a snake_case segment name.
func ParseSegment(name string) (Segment, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range segmentNames {
		if n == name {
			return Segment(i), nil
		}
	}
	return 0, fmt.Errorf("jos3: unknown segment %q", name)
}

// Layer is a tissue or vessel layer within a segment.
type Layer int

const (
	Artery Layer = iota
	Vein
	SuperficialVein
	Core
	Muscle
	Fat
	Skin
)

const numLayers = 7

var layerNames = [numLayers]string{"artery", "vein", "sfvein", "core", "muscle", "fat", "skin"}

func (l Layer) String() string {
	if l < 0 || int(l) >= numLayers {
		return fmt.Sprintf("Layer(%d)", int(l))
	}
	return layerNames[l]
}

// Layers returns every layer in node order.
func Layers() []Layer {
	return []Layer{Artery, Vein, SuperficialVein, Core, Muscle, Fat, Skin}
}

// hasLayer encodes which layers each segment carries.
func (s Segment) hasLayer(l Layer) bool {
	switch l {
	case Artery, Vein, Core, Skin:
		return true
	case SuperficialVein:
		return s.isLimb()
	case Muscle, Fat:
		return s == Head || s == Pelvis
	default:
		return false
	}
}

type topology struct {
	// -1 where the segment has no such layer
	node     [NumSegments][numLayers]int
	byLayer  [numLayers][]int
	segments [numLayers][]Segment
	segment  [NumNodes]Segment
	layer    [NumNodes]Layer
}

var bodyTopology = newTopology()

func newTopology() *topology {
	t := &topology{}
	t.segment[CentralBloodNode] = -1
	t.layer[CentralBloodNode] = -1

	id := CentralBloodNode + 1
	for s := Head; s <= RightFoot; s++ {
		for l := Artery; l <= Skin; l++ {
			if !s.hasLayer(l) {
				t.node[s][l] = -1
				continue
			}
			t.node[s][l] = id
			t.byLayer[l] = append(t.byLayer[l], id)
			t.segments[l] = append(t.segments[l], s)
			t.segment[id] = s
			t.layer[id] = l
			id++
		}
	}
	if id != NumNodes {
		panic(fmt.Sprintf("jos3: topology produced %d nodes, want %d", id, NumNodes))
	}
	return t
}

// NodeIndex returns the node id of the layer in the segment, and false
// when the segment has no such layer.
func NodeIndex(s Segment, l Layer) (int, bool) {
	if s < 0 || int(s) >= NumSegments || l < 0 || int(l) >= numLayers {
		return -1, false
	}
	n := bodyTopology.node[s][l]
	return n, n >= 0
}

// mustNode is NodeIndex for pairs that are known to exist.
func mustNode(s Segment, l Layer) int {
	n, ok := NodeIndex(s, l)
	if !ok {
		panic(fmt.Sprintf("jos3: %s has no %s node", s, l))
	}
	return n
}

// NodesForLayer returns the node ids of the layer across all segments that
// carry it, in segment order.
func NodesForLayer(l Layer) []int {
	src := bodyTopology.byLayer[l]
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// ValidLayerSegments returns the segments that carry the layer.
func ValidLayerSegments(l Layer) []Segment {
	src := bodyTopology.segments[l]
	out := make([]Segment, len(src))
	copy(out, src)
	return out
}

// NodeLocation returns the segment and layer of a node. The central blood
// pool reports false.
func NodeLocation(node int) (Segment, Layer, bool) {
	if node <= CentralBloodNode || node >= NumNodes {
		return 0, 0, false
	}
	return bodyTopology.segment[node], bodyTopology.layer[node], true
}
