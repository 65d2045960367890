package model

import "fmt"

// Material is the edge material stored as an int32.
type Material int32

const (
	MaterialInvalid Material = iota
	MaterialRoad
	MaterialReinforcedRoad
	MaterialWood
	MaterialSteel
	MaterialHydraulics
	MaterialRope
	MaterialCable
	MaterialBungeeRope
	MaterialSpring
)

var materialNames = [...]string{
	"invalid", "road", "reinforced_road", "wood", "steel",
	"hydraulics", "rope", "cable", "bungee_rope", "spring",
}

func (m Material) String() string {
	if m >= 0 && int(m) < len(materialNames) {
		return materialNames[m]
	}
	return fmt.Sprintf("material(%d)", int32(m))
}

// SplitJointPart selects which third of a split joint an edge attaches to.
type SplitJointPart int32

const (
	SplitJointPartA SplitJointPart = iota
	SplitJointPartB
	SplitJointPartC
)

// SplitJointState is one of five split states of a joint in a hydraulics phase.
type SplitJointState int32

const (
	SplitJointAllSplit SplitJointState = iota
	SplitJointNoneSplit
	SplitJointASplitOnly
	SplitJointBSplitOnly
	SplitJointCSplitOnly
)

// StrengthMethod controls how a vehicle's drive strength is derived.
type StrengthMethod int32

const (
	StrengthAcceleration StrengthMethod = iota
	StrengthMaxSlope
	StrengthTorquePerWheel
)

// TerrainIslandType distinguishes the outer bookends from middle islands.
type TerrainIslandType int32

const (
	TerrainBookend TerrainIslandType = iota
	TerrainMiddle
)

// SplineType is the interpolation used by a ramp.
type SplineType int32

const (
	SplineHermite SplineType = iota
	SplineBSpline
	SplineBezier
	SplineLinear
)
