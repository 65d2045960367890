package bridge

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureBridge() model.Bridge {
	return model.Bridge{
		Version: model.MaxBridgeVersion,
		Joints: []model.BridgeJoint{
			{Pos: model.Vec3{X: -5, Y: 2.5, Z: 0}, IsAnchor: true, GUID: "joint-a"},
			{Pos: model.Vec3{X: 5, Y: 2.5, Z: 0}, IsSplit: true, GUID: "joint-b"},
		},
		Edges: []model.BridgeEdge{
			{
				Material:   model.MaterialSteel,
				NodeAGUID:  "joint-a",
				NodeBGUID:  "joint-b",
				JointAPart: model.SplitJointPartA,
				JointBPart: model.SplitJointPartC,
				GUID:       "edge-1",
			},
		},
		Springs: []model.BridgeSpring{
			{NormalizedValue: 0.3, NodeAGUID: "joint-a", NodeBGUID: "joint-b", GUID: "spring-1"},
		},
		Pistons: []model.Piston{
			{NormalizedValue: 0.9, NodeAGUID: "joint-a", NodeBGUID: "joint-b", GUID: "piston-1"},
			{NormalizedValue: 0.1, NodeAGUID: "joint-b", NodeBGUID: "joint-a", GUID: "piston-2"},
		},
		HydraulicsController: model.HydraulicsController{
			Phases: []model.HydraulicsControllerPhase{
				{
					PhaseGUID:           "phase-1",
					PistonGUIDs:         []string{"piston-1", "piston-2"},
					SplitJoints:         []model.BridgeSplitJoint{{GUID: "joint-b", State: model.SplitJointASplitOnly}},
					DisableNewAdditions: true,
				},
			},
		},
		Anchors: []model.BridgeJoint{
			{Pos: model.Vec3{X: -5, Y: 2.5}, IsAnchor: true, GUID: "joint-a"},
		},
	}
}

// writeAt produces the byte layout a game build using bridge version v
// would have written for b.
func writeAt(w *codec.Writer, b model.Bridge, v int) {
	w.Int32(int32(v))
	if v < 2 {
		return
	}
	codec.WriteSlice(w, b.Joints, EncodeJoint)
	codec.WriteSlice(w, b.Edges, func(w *codec.Writer, e model.BridgeEdge) {
		w.Int32(int32(e.Material))
		w.Str(e.NodeAGUID)
		w.Str(e.NodeBGUID)
		w.Int32(int32(e.JointAPart))
		w.Int32(int32(e.JointBPart))
		if v >= 11 {
			w.Str(e.GUID)
		}
	})
	if v >= 7 {
		codec.WriteSlice(w, b.Springs, encodeSpring)
	}
	codec.WriteSlice(w, b.Pistons, encodePiston)
	codec.WriteSlice(w, b.HydraulicsController.Phases, func(w *codec.Writer, p model.HydraulicsControllerPhase) {
		w.Str(p.PhaseGUID)
		codec.WriteSlice(w, p.PistonGUIDs, (*codec.Writer).Str)
		if v > 2 {
			codec.WriteSlice(w, p.SplitJoints, func(w *codec.Writer, sj model.BridgeSplitJoint) {
				w.Str(sj.GUID)
				w.Int32(int32(sj.State))
			})
		} else {
			codec.WriteSlice(w, []string{"legacy-a", "legacy-b"}, (*codec.Writer).Str)
		}
		if v > 9 {
			w.Bool(p.DisableNewAdditions)
		}
	})
	if v == 5 {
		codec.WriteSlice(w, []string{"garbage"}, (*codec.Writer).Str)
	}
	if v >= 6 {
		codec.WriteSlice(w, b.Anchors, EncodeJoint)
	}
	if v >= 4 && v < 9 {
		w.Bool(true)
	}
}

// expectedAt is what decoding writeAt(b, v) must produce.
func expectedAt(b model.Bridge, v int) model.Bridge {
	want := fixtureBridge()
	want.Version = v
	if v < 11 {
		for i := range want.Edges {
			want.Edges[i].GUID = ""
		}
	}
	if v < 7 {
		want.Springs = nil
	}
	if v < 8 {
		for i := range want.Pistons {
			want.Pistons[i].NormalizedValue = NormalizeLegacyPiston(b.Pistons[i].NormalizedValue)
		}
	}
	for i := range want.HydraulicsController.Phases {
		if v <= 2 {
			want.HydraulicsController.Phases[i].SplitJoints = nil
		}
		if v <= 9 {
			want.HydraulicsController.Phases[i].DisableNewAdditions = false
		}
	}
	if v < 6 {
		want.Anchors = nil
	}
	return want
}

// withEmptySlices replaces sections absent at an old version with the empty
// sections the latest encoder writes for them.
func withEmptySlices(b model.Bridge) model.Bridge {
	if b.Springs == nil {
		b.Springs = []model.BridgeSpring{}
	}
	if b.Anchors == nil {
		b.Anchors = []model.BridgeJoint{}
	}
	phases := make([]model.HydraulicsControllerPhase, len(b.HydraulicsController.Phases))
	copy(phases, b.HydraulicsController.Phases)
	for i := range phases {
		if phases[i].SplitJoints == nil {
			phases[i].SplitJoints = []model.BridgeSplitJoint{}
		}
	}
	b.HydraulicsController.Phases = phases
	return b
}

func decodeBytes(t *testing.T, data []byte) model.Bridge {
	t.Helper()
	r := codec.NewReader(codec.NewBufferSource(data), nil)
	b := Decode(r)
	require.NoError(t, r.Err())
	assert.False(t, r.More(), "decoder left %d unread bytes", len(data)-int(r.Offset()))
	return b
}

func TestDecode_AllVersions(t *testing.T) {
	for v := 2; v <= model.MaxBridgeVersion; v++ {
		t.Run(fmt.Sprintf("v%d", v), func(t *testing.T) {
			var buf bytes.Buffer
			w := codec.NewWriter(&buf)
			writeAt(w, fixtureBridge(), v)
			require.NoError(t, w.Err())

			got := decodeBytes(t, buf.Bytes())
			assert.Equal(t, expectedAt(fixtureBridge(), v), got)

			// Re-encoding upgrades to the latest version and keeps every
			// field that exists at both versions.
			var out bytes.Buffer
			ow := codec.NewWriter(&out)
			Encode(ow, got)
			require.NoError(t, ow.Err())

			again := decodeBytes(t, out.Bytes())
			want := withEmptySlices(got)
			want.Version = model.MaxBridgeVersion
			assert.Equal(t, want, again)
		})
	}
}

func TestDecode_EarlyVersionsStoreNothing(t *testing.T) {
	for _, v := range []int{0, 1} {
		t.Run(fmt.Sprintf("v%d", v), func(t *testing.T) {
			var buf bytes.Buffer
			w := codec.NewWriter(&buf)
			w.Int32(int32(v))

			got := decodeBytes(t, buf.Bytes())
			assert.Equal(t, model.Bridge{Version: v}, got)
		})
	}
}

func TestDecode_StreamAndBufferAgree(t *testing.T) {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	Encode(w, fixtureBridge())
	require.NoError(t, w.Err())

	fromBuffer := decodeBytes(t, buf.Bytes())

	r := codec.NewReader(codec.NewStreamSource(bytes.NewReader(buf.Bytes())), nil)
	fromStream := Decode(r)
	require.NoError(t, r.Err())

	assert.Equal(t, fromBuffer, fromStream)
	assert.Equal(t, fixtureBridge(), fromStream)
}

func TestDecode_NewerVersionWarns(t *testing.T) {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	writeAt(w, fixtureBridge(), 12)

	sess := codec.NewSession(codec.SessionOptions{})
	r := codec.NewReader(codec.NewBufferSource(buf.Bytes()), sess)
	Decode(r)

	require.NoError(t, r.Err())
	assert.Contains(t, sess.Warnings(), "bridge saved with a newer format version")
}

func TestDecode_Truncated(t *testing.T) {
	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	Encode(w, fixtureBridge())
	data := buf.Bytes()

	r := codec.NewReader(codec.NewBufferSource(data[:len(data)-3]), nil)
	Decode(r)
	assert.ErrorIs(t, r.Err(), codec.ErrMalformedStream)
}

func TestEncode_WritesLatestVersion(t *testing.T) {
	b := fixtureBridge()
	b.Version = 3

	var buf bytes.Buffer
	w := codec.NewWriter(&buf)
	Encode(w, b)
	require.NoError(t, w.Err())

	r := codec.NewReader(codec.NewBufferSource(buf.Bytes()), nil)
	assert.Equal(t, int32(model.MaxBridgeVersion), r.Int32())
}

func TestSchema_Has(t *testing.T) {
	tests := []struct {
		feature Feature
		absent  int
		present int
	}{
		{FeatureBody, 1, 2},
		{FeatureSplitJointStates, 2, 3},
		{FeatureAnchors, 5, 6},
		{FeatureSprings, 6, 7},
		{FeatureCurrentPistonCurve, 7, 8},
		{FeaturePhaseDisableFlag, 9, 10},
		{FeatureEdgeGUID, 10, 11},
		{FeatureTrailingFlag, 9, 8},
		{FeatureLegacyStringList, 6, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("feature %d", tt.feature), func(t *testing.T) {
			assert.False(t, Schema(tt.absent).Has(tt.feature))
			assert.True(t, Schema(tt.present).Has(tt.feature))
		})
	}

	assert.False(t, Latest.Has(FeatureTrailingFlag))
	assert.False(t, Latest.Has(FeatureLegacyStringList))
	assert.False(t, Schema(3).Has(FeatureTrailingFlag))
	assert.False(t, Schema(4).Has(FeatureLegacyStringList))
}
