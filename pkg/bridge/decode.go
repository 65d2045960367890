package bridge

import (
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// Decode reads a versioned bridge from r. Errors are left on the reader.
func Decode(r *codec.Reader) model.Bridge {
	sess := r.Session()
	log := sess.Logger("bridge")

	var b model.Bridge
	b.Version = r.Checked("bridge version", sess.Bounds().Version)
	if r.Err() != nil {
		return b
	}
	if b.Version > model.MaxBridgeVersion {
		sess.Warn(log, "bridge saved with a newer format version", "version", b.Version)
	}

	s := Schema(b.Version)
	if !s.Has(FeatureBody) {
		sess.Warn(log, "bridge version predates stored geometry", "version", b.Version)
		return b
	}

	b.Joints = codec.ReadSlice(r, "bridge joints", DecodeJoint)
	b.Edges = codec.ReadSlice(r, "bridge edges", func(r *codec.Reader) model.BridgeEdge {
		return DecodeEdge(r, s)
	})
	if s.Has(FeatureSprings) {
		b.Springs = codec.ReadSlice(r, "bridge springs", decodeSpring)
	}
	b.Pistons = codec.ReadSlice(r, "bridge pistons", func(r *codec.Reader) model.Piston {
		return DecodePiston(r, s)
	})
	b.HydraulicsController.Phases = codec.ReadSlice(r, "bridge hydraulic phases", func(r *codec.Reader) model.HydraulicsControllerPhase {
		return decodePhase(r, s)
	})
	if s.Has(FeatureLegacyStringList) {
		sess.Warn(log, "discarding legacy bridge string list", "version", b.Version)
		codec.Discard(r, "bridge legacy strings", (*codec.Reader).SkipStr)
	}
	if s.Has(FeatureAnchors) {
		b.Anchors = codec.ReadSlice(r, "bridge anchors", DecodeJoint)
	}
	if s.Has(FeatureTrailingFlag) {
		sess.Warn(log, "discarding legacy bridge trailing flag", "version", b.Version)
		r.Bool()
	}

	log.Info("bridge decoded",
		"version", b.Version,
		"joints", len(b.Joints),
		"edges", len(b.Edges),
		"springs", len(b.Springs),
		"pistons", len(b.Pistons),
		"phases", len(b.HydraulicsController.Phases),
		"anchors", len(b.Anchors),
	)
	return b
}

// DecodeJoint reads a joint. Layout-level anchors share the format.
func DecodeJoint(r *codec.Reader) model.BridgeJoint {
	return model.BridgeJoint{
		Pos:      r.Vec3(),
		IsAnchor: r.Bool(),
		IsSplit:  r.Bool(),
		GUID:     r.Str(),
	}
}

// DecodeEdge reads an edge stored at version s.
func DecodeEdge(r *codec.Reader, s Schema) model.BridgeEdge {
	e := model.BridgeEdge{
		Material:   model.Material(r.Int32()),
		NodeAGUID:  r.Str(),
		NodeBGUID:  r.Str(),
		JointAPart: model.SplitJointPart(r.Int32()),
		JointBPart: model.SplitJointPart(r.Int32()),
	}
	if s.Has(FeatureEdgeGUID) {
		e.GUID = r.Str()
	}
	return e
}

// DecodePiston reads a piston stored at version s, remapping the value when
// it was stored on the legacy curve.
func DecodePiston(r *codec.Reader, s Schema) model.Piston {
	p := model.Piston{
		NormalizedValue: r.Float32(),
		NodeAGUID:       r.Str(),
		NodeBGUID:       r.Str(),
		GUID:            r.Str(),
	}
	if !s.Has(FeatureCurrentPistonCurve) {
		p.NormalizedValue = NormalizeLegacyPiston(p.NormalizedValue)
	}
	return p
}

func decodeSpring(r *codec.Reader) model.BridgeSpring {
	return model.BridgeSpring{
		NormalizedValue: r.Float32(),
		NodeAGUID:       r.Str(),
		NodeBGUID:       r.Str(),
		GUID:            r.Str(),
	}
}

func decodePhase(r *codec.Reader, s Schema) model.HydraulicsControllerPhase {
	p := model.HydraulicsControllerPhase{
		PhaseGUID:   r.Str(),
		PistonGUIDs: codec.ReadSlice(r, "phase pistons", (*codec.Reader).Str),
	}
	if s.Has(FeatureSplitJointStates) {
		p.SplitJoints = codec.ReadSlice(r, "phase split joints", func(r *codec.Reader) model.BridgeSplitJoint {
			return model.BridgeSplitJoint{GUID: r.Str(), State: model.SplitJointState(r.Int32())}
		})
	} else {
		codec.Discard(r, "phase legacy split joints", (*codec.Reader).SkipStr)
	}
	if s.Has(FeaturePhaseDisableFlag) {
		p.DisableNewAdditions = r.Bool()
	}
	return p
}
