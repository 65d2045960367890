package layout

import (
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// Feature is a part of the layout format whose presence depends on the
// layout version.
type Feature int

const (
	FeatureAnchors Feature = iota
	FeatureEarlyHydraulicPhases
	FeatureVersionedBridge
	FeatureZAxisVehicles
	FeatureZAxisSpeed
	FeatureZAxisRotation
	FeatureThemeObjects
	FeatureEventUnitGUID
	FeatureTerrainLock
	FeaturePlatformSolid
	FeatureRampHideLegs
	FeatureRampFlippedLegs
	FeatureRampLegacyLegsFlag
	FeatureRampLinePoints
	FeatureLateHydraulicPhases
	FeatureLegacyGroups
	FeatureWaterLock
	FeatureCustomShapes
	FeatureShapeSplitNodes
	FeatureShapeColor
	FeatureShapeMass
	FeatureShapeBounciness
	FeatureShapePinMotor
	FeatureWorkshop
	FeatureWorkshopLeaderboard
	FeatureSupportPillars
	FeaturePillars

	featureCount
)

var gates = [featureCount]codec.Range{
	FeatureAnchors:              codec.Since(19),
	FeatureEarlyHydraulicPhases: codec.Since(5),
	FeatureVersionedBridge:      codec.Since(5),
	FeatureZAxisVehicles:        codec.Since(7),
	FeatureZAxisSpeed:           codec.Since(8),
	FeatureZAxisRotation:        codec.Since(26),
	FeatureThemeObjects:         codec.Before(20),
	FeatureEventUnitGUID:        codec.Since(7),
	FeatureTerrainLock:          codec.Since(6),
	FeaturePlatformSolid:        codec.Since(22),
	FeatureRampHideLegs:         codec.Since(23),
	FeatureRampFlippedLegs:      codec.Since(25),
	FeatureRampLegacyLegsFlag:   codec.Between(22, 25),
	FeatureRampLinePoints:       codec.Since(13),
	FeatureLateHydraulicPhases:  codec.Before(5),
	FeatureLegacyGroups:         codec.Before(5),
	FeatureWaterLock:            codec.Since(12),
	FeatureCustomShapes:         codec.Since(9),
	FeatureShapeSplitNodes:      codec.Since(25),
	FeatureShapeColor:           codec.Since(10),
	FeatureShapeMass:            codec.Since(11),
	FeatureShapeBounciness:      codec.Since(14),
	FeatureShapePinMotor:        codec.Since(24),
	FeatureWorkshop:             codec.Since(15),
	FeatureWorkshopLeaderboard:  codec.Since(16),
	FeatureSupportPillars:       codec.Since(17),
	FeaturePillars:              codec.Since(18),
}

var featureNames = [featureCount]string{
	FeatureAnchors:              "anchors",
	FeatureEarlyHydraulicPhases: "hydraulic phases before bridge",
	FeatureVersionedBridge:      "versioned bridge",
	FeatureZAxisVehicles:        "z-axis vehicles",
	FeatureZAxisSpeed:           "z-axis vehicle speed",
	FeatureZAxisRotation:        "z-axis vehicle rotation",
	FeatureThemeObjects:         "theme objects",
	FeatureEventUnitGUID:        "event unit guid",
	FeatureTerrainLock:          "terrain island lock",
	FeaturePlatformSolid:        "platform solid flag",
	FeatureRampHideLegs:         "ramp hide legs",
	FeatureRampFlippedLegs:      "ramp flipped legs",
	FeatureRampLegacyLegsFlag:   "ramp legacy legs flag",
	FeatureRampLinePoints:       "ramp line points",
	FeatureLateHydraulicPhases:  "hydraulic phases after ramps",
	FeatureLegacyGroups:         "legacy string groups",
	FeatureWaterLock:            "water block lock",
	FeatureCustomShapes:         "custom shapes",
	FeatureShapeSplitNodes:      "custom shape split node collision",
	FeatureShapeColor:           "custom shape color",
	FeatureShapeMass:            "custom shape mass",
	FeatureShapeBounciness:      "custom shape bounciness",
	FeatureShapePinMotor:        "custom shape pin motor",
	FeatureWorkshop:             "workshop",
	FeatureWorkshopLeaderboard:  "workshop leaderboard",
	FeatureSupportPillars:       "support pillars",
	FeaturePillars:              "pillars",
}

func (f Feature) String() string {
	if f >= 0 && f < featureCount {
		return featureNames[f]
	}
	return "unknown"
}

// Features lists every gated feature in declaration order.
func Features() []Feature {
	out := make([]Feature, featureCount)
	for i := range out {
		out[i] = Feature(i)
	}
	return out
}

// Gate returns the versions in which f is stored.
func Gate(f Feature) codec.Range {
	if f < 0 || f >= featureCount {
		return codec.Range{Since: 1, Until: 1}
	}
	return gates[f]
}

// Schema is a layout format version.
type Schema int

// Latest is the version every layout is encoded at.
const Latest Schema = model.MaxLayoutVersion

func (s Schema) Has(f Feature) bool {
	return Gate(f).Contains(int(s))
}
