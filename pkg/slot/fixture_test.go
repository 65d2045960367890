package slot

import (
	"bytes"
	"testing"

	"github.com/ssargent/polyparser/pkg/bridge"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
	"github.com/ssargent/polyparser/pkg/tagged"
	"github.com/stretchr/testify/require"
)

var (
	slotType  = &tagged.TypeRef{Name: "BridgeSaveSlotData", Assembly: "Assembly-CSharp"}
	bytesType = &tagged.TypeRef{Name: "System.Byte[]", Assembly: "mscorlib"}
)

func fixtureSlot() model.SaveSlot {
	return model.SaveSlot{
		Version:            model.MaxSlotVersion,
		PhysicsVersion:     model.MaxPhysicsVersion,
		SlotID:             4,
		DisplayName:        "Drawbridge Über",
		FileName:           "Drawbridge_Auto-Save.slot",
		Budget:             12_500,
		LastWriteTimeTicks: 637_765_344_000_000_000,
		Bridge: model.Bridge{
			Version: model.MaxBridgeVersion,
			Joints: []model.BridgeJoint{
				{Pos: model.Vec3{X: -2, Y: 1}, IsAnchor: true, GUID: "j1"},
				{Pos: model.Vec3{X: 2, Y: 1}, GUID: "j2"},
			},
			Edges: []model.BridgeEdge{
				{Material: model.MaterialRoad, NodeAGUID: "j1", NodeBGUID: "j2", GUID: "e1"},
			},
			Springs: []model.BridgeSpring{
				{NormalizedValue: 0.25, NodeAGUID: "j1", NodeBGUID: "j2", GUID: "s1"},
			},
			Pistons: []model.Piston{
				{NormalizedValue: 0.75, NodeAGUID: "j1", NodeBGUID: "j2", GUID: "p1"},
			},
			HydraulicsController: model.HydraulicsController{
				Phases: []model.HydraulicsControllerPhase{{
					PhaseGUID:   "h1",
					PistonGUIDs: []string{"p1"},
					SplitJoints: []model.BridgeSplitJoint{{GUID: "j2", State: model.SplitJointAllSplit}},
				}},
			},
			Anchors: []model.BridgeJoint{{Pos: model.Vec3{X: -2, Y: 1}, IsAnchor: true, GUID: "j1"}},
		},
		Thumbnail:               []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3},
		UsingUnlimitedMaterials: true,
	}
}

// fields lets a test replace one step of the stream.
type fields map[string]func(w *tagged.Writer)

// writeSlot produces the stream the game writes for s. Entries in override
// replace the default writer of the named field.
func writeSlot(t *testing.T, s model.SaveSlot, override fields) []byte {
	t.Helper()

	var bb bytes.Buffer
	cw := codec.NewWriter(&bb)
	bridge.Encode(cw, s.Bridge)
	require.NoError(t, cw.Err())

	defaults := fields{
		"m_Version":            func(w *tagged.Writer) { w.Int("m_Version", int32(s.Version)) },
		"m_PhysicsVersion":     func(w *tagged.Writer) { w.Int("m_PhysicsVersion", int32(s.PhysicsVersion)) },
		"m_SlotID":             func(w *tagged.Writer) { w.Int("m_SlotID", int32(s.SlotID)) },
		"m_DisplayName":        func(w *tagged.Writer) { w.String("m_DisplayName", s.DisplayName) },
		"m_SlotFilename":       func(w *tagged.Writer) { w.String("m_SlotFilename", s.FileName) },
		"m_Budget":             func(w *tagged.Writer) { w.Int("m_Budget", int32(s.Budget)) },
		"m_LastWriteTimeTicks": func(w *tagged.Writer) { w.Long("m_LastWriteTimeTicks", s.LastWriteTimeTicks) },
		"m_Bridge": func(w *tagged.Writer) {
			w.BeginNode("m_Bridge", bytesType, 1)
			w.PrimitiveArray(bb.Bytes(), 1)
			w.EndNode()
		},
		"m_Thumb": func(w *tagged.Writer) {
			if s.Thumbnail == nil {
				w.Null("m_Thumb")
				return
			}
			w.BeginNode("m_Thumb", bytesType, 2)
			w.PrimitiveArray(s.Thumbnail, 1)
			w.EndNode()
		},
		"m_UsingUnlimitedMaterials": func(w *tagged.Writer) { w.Bool("m_UsingUnlimitedMaterials", s.UsingUnlimitedMaterials) },
		"m_UsingUnlimitedBudget":    func(w *tagged.Writer) { w.Bool("m_UsingUnlimitedBudget", s.UsingUnlimitedBudget) },
	}
	order := []string{
		"m_Version", "m_PhysicsVersion", "m_SlotID", "m_DisplayName", "m_SlotFilename",
		"m_Budget", "m_LastWriteTimeTicks", "m_Bridge", "m_Thumb",
		"m_UsingUnlimitedMaterials", "m_UsingUnlimitedBudget",
	}

	var out bytes.Buffer
	w := tagged.NewWriter(&out)
	w.BeginNode("", slotType, 0)
	for _, name := range order {
		if fn, ok := override[name]; ok {
			fn(w)
			continue
		}
		defaults[name](w)
	}
	w.EndNode()
	w.EndOfStream()
	require.NoError(t, w.Err())
	return out.Bytes()
}
