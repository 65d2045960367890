package bridge

import (
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// Feature is a part of the bridge format whose presence depends on the
// bridge version.
type Feature int

const (
	// FeatureBody covers joints, edges, pistons and hydraulics phases.
	// Older bridges store nothing after the version.
	FeatureBody Feature = iota
	FeatureSplitJointStates
	FeatureTrailingFlag
	FeatureLegacyStringList
	FeatureAnchors
	FeatureSprings
	FeatureCurrentPistonCurve
	FeaturePhaseDisableFlag
	FeatureEdgeGUID
)

var gates = map[Feature]codec.Range{
	FeatureBody:               codec.Since(2),
	FeatureSplitJointStates:   codec.Since(3),
	FeatureTrailingFlag:       codec.Between(4, 9),
	FeatureLegacyStringList:   codec.Between(5, 6),
	FeatureAnchors:            codec.Since(6),
	FeatureSprings:            codec.Since(7),
	FeatureCurrentPistonCurve: codec.Since(8),
	FeaturePhaseDisableFlag:   codec.Since(10),
	FeatureEdgeGUID:           codec.Since(11),
}

// Schema is a bridge format version.
type Schema int

// Latest is the version every bridge is encoded at.
const Latest Schema = model.MaxBridgeVersion

// Has reports whether f is stored at this version.
func (s Schema) Has(f Feature) bool {
	r, ok := gates[f]
	return ok && r.Contains(int(s))
}
