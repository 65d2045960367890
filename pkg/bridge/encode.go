package bridge

import (
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// Encode writes b at the latest bridge version regardless of b.Version.
func Encode(w *codec.Writer, b model.Bridge) {
	s := Latest
	w.Int32(int32(s))

	codec.WriteSlice(w, b.Joints, EncodeJoint)
	codec.WriteSlice(w, b.Edges, func(w *codec.Writer, e model.BridgeEdge) {
		encodeEdge(w, e, s)
	})
	if s.Has(FeatureSprings) {
		codec.WriteSlice(w, b.Springs, encodeSpring)
	}
	codec.WriteSlice(w, b.Pistons, encodePiston)
	codec.WriteSlice(w, b.HydraulicsController.Phases, func(w *codec.Writer, p model.HydraulicsControllerPhase) {
		encodePhase(w, p, s)
	})
	if s.Has(FeatureAnchors) {
		codec.WriteSlice(w, b.Anchors, EncodeJoint)
	}
}

func EncodeJoint(w *codec.Writer, j model.BridgeJoint) {
	w.Vec3(j.Pos)
	w.Bool(j.IsAnchor)
	w.Bool(j.IsSplit)
	w.Str(j.GUID)
}

func encodeEdge(w *codec.Writer, e model.BridgeEdge, s Schema) {
	w.Int32(int32(e.Material))
	w.Str(e.NodeAGUID)
	w.Str(e.NodeBGUID)
	w.Int32(int32(e.JointAPart))
	w.Int32(int32(e.JointBPart))
	if s.Has(FeatureEdgeGUID) {
		w.Str(e.GUID)
	}
}

func encodeSpring(w *codec.Writer, sp model.BridgeSpring) {
	w.Float32(sp.NormalizedValue)
	w.Str(sp.NodeAGUID)
	w.Str(sp.NodeBGUID)
	w.Str(sp.GUID)
}

func encodePiston(w *codec.Writer, p model.Piston) {
	w.Float32(p.NormalizedValue)
	w.Str(p.NodeAGUID)
	w.Str(p.NodeBGUID)
	w.Str(p.GUID)
}

func encodePhase(w *codec.Writer, p model.HydraulicsControllerPhase, s Schema) {
	w.Str(p.PhaseGUID)
	codec.WriteSlice(w, p.PistonGUIDs, (*codec.Writer).Str)
	codec.WriteSlice(w, p.SplitJoints, func(w *codec.Writer, sj model.BridgeSplitJoint) {
		w.Str(sj.GUID)
		w.Int32(int32(sj.State))
	})
	if s.Has(FeaturePhaseDisableFlag) {
		w.Bool(p.DisableNewAdditions)
	}
}
