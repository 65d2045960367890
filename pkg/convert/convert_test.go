package convert

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/layout"
	"github.com/ssargent/polyparser/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureLayout() *model.Layout {
	return &model.Layout{
		Version: model.MaxLayoutVersion,
		StubKey: "Western",
		Anchors: []model.BridgeJoint{{Pos: model.Vec3{X: -10, Y: 5}, IsAnchor: true, GUID: "a1"}},
		Bridge: model.Bridge{
			Version: model.MaxBridgeVersion,
			Joints:  []model.BridgeJoint{{Pos: model.Vec3{X: 0.1, Y: 5}, GUID: "j1"}},
			Edges: []model.BridgeEdge{
				{Material: model.MaterialWood, NodeAGUID: "a1", NodeBGUID: "j1", GUID: "e1"},
			},
		},
		Vehicles: []model.Vehicle{{
			DisplayName:     "Truck",
			PrefabName:      "Vehicle_Truck",
			TargetSpeed:     3.3,
			Mass:            1200,
			GUID:            "v1",
			CheckpointGUIDs: []string{"c1"},
		}},
		Checkpoints: []model.Checkpoint{{PrefabName: "Checkpoint", VehicleGUID: "v1", GUID: "c1"}},
		Budget:      model.Budget{Cash: 25_000, Road: 10, AllowWood: true},
		CustomShapes: []model.CustomShape{{
			Scale:            model.Vec3{X: 1, Y: 1, Z: 1},
			Color:            model.Color{R: 51.0 / 255, G: 1, B: 0, A: 1},
			Mass:             40,
			Bounciness:       0.5,
			PointsLocalSpace: []model.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		}},
		Workshop: model.Workshop{Title: "Gulch run", Tags: []string{"easy"}},
	}
}

func encodeFixture(t *testing.T, l *model.Layout) []byte {
	t.Helper()
	data, err := layout.EncodeBytes(l, nil)
	require.NoError(t, err)
	return data
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		kind   Kind
		format Format
	}{
		{"bridge.layout", KindLayout, ""},
		{"dir/Bridge.LAYOUT", KindLayout, ""},
		{"bridge.layout.json", KindLayoutTree, FormatJSON},
		{"bridge.layout.jsonc", KindLayoutTree, FormatJSONC},
		{"bridge.layout.yaml", KindLayoutTree, FormatYAML},
		{"bridge.layout.yml", KindLayoutTree, FormatYAML},
		{"save.slot", KindSlot, ""},
		{"save.slot.json", KindSlotTree, FormatJSON},
		{"notes.json", KindUnknown, ""},
		{"bridge.bin", KindUnknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, format := Classify(tt.path)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.format, format)
		})
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "a/b.layout.json", OutputPath("a/b.layout", FormatJSON))
	assert.Equal(t, "a/b.layout.yaml", OutputPath("a/b.layout", FormatYAML))
	assert.Equal(t, "b.slot.json", OutputPath("b.slot", ""))
	assert.Equal(t, "a/b.layout", OutputPath("a/b.layout.jsonc", FormatJSON))
}

func TestFormatFlag(t *testing.T) {
	var f Format
	assert.Equal(t, "json", f.String())

	require.NoError(t, f.Set("YML"))
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, "yaml", f.String())

	assert.Error(t, f.Set("jsonc"))
	assert.Error(t, f.Set("xml"))
	assert.Equal(t, FormatYAML, f)
	assert.NotEmpty(t, f.Type())
}

func TestTreeRoundTrip(t *testing.T) {
	bin := encodeFixture(t, fixtureLayout())
	res, err := layout.DecodeBytes(bin, nil)
	require.NoError(t, err)

	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			tree, err := Marshal(&res.Layout, f, 4)
			require.NoError(t, err)

			back, err := UnmarshalLayout(tree, f)
			require.NoError(t, err)
			assert.Equal(t, bin, encodeFixture(t, back))
		})
	}
}

func TestMarshal_YAMLKeepsFieldOrder(t *testing.T) {
	out, err := Marshal(fixtureLayout(), FormatYAML, 2)
	require.NoError(t, err)
	text := string(out)

	prev := -1
	for _, key := range []string{"m_Version:", "m_ThemeStubKey:", "m_Anchors:", "m_Bridge:", "m_Pillars:"} {
		i := strings.Index(text, key)
		require.GreaterOrEqual(t, i, 0, key)
		assert.Greater(t, i, prev, key)
		prev = i
	}
	assert.Contains(t, text, "m_ThemeStubKey: Western")
}

func TestMarshal_BinaryPayloadsAreBase64(t *testing.T) {
	l := fixtureLayout()
	l.IsModded = true
	l.ModData = &model.ModData{
		Mods:     []model.Mod{{Name: "PolyTechFramework", Version: "0.9.5"}},
		SaveData: []model.ModSaveData{{Name: "PolyTechFramework", Version: "0.9.5", Data: []byte{0xff, 0x00}}},
	}

	for _, f := range []Format{FormatJSON, FormatYAML} {
		out, err := Marshal(l, f, 2)
		require.NoError(t, err)
		assert.Contains(t, string(out), "/wA=", f)
		assert.Contains(t, string(out), "ext_IsModded", f)

		back, err := UnmarshalLayout(out, f)
		require.NoError(t, err)
		assert.Equal(t, l.ModData, back.ModData)
	}
}

func TestMarshal_NonFiniteFloats(t *testing.T) {
	l := fixtureLayout()
	nan := float32(math.NaN())
	l.Vehicles[0].Mass = nan
	l.Vehicles[0].Pos = model.Vec2{X: float32(math.Inf(1)), Y: float32(math.Inf(-1))}
	l.Workshop.Title = "NaN"

	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			out, err := Marshal(l, f, 2)
			require.NoError(t, err)
			text := string(out)
			assert.Contains(t, text, "Infinity")
			assert.Contains(t, text, "-Infinity")
			assert.Less(t, strings.Index(text, "m_Version"), strings.Index(text, "m_Vehicles"))

			back, err := UnmarshalLayout(out, f)
			require.NoError(t, err)
			v := back.Vehicles[0]
			assert.True(t, math.IsNaN(float64(v.Mass)))
			assert.True(t, math.IsInf(float64(v.Pos.X), 1))
			assert.True(t, math.IsInf(float64(v.Pos.Y), -1))
			assert.Equal(t, "NaN", back.Workshop.Title)
			assert.Equal(t, l.Vehicles[0].GUID, v.GUID)

			bin, err := layout.EncodeBytes(back, nil)
			require.NoError(t, err)
			assert.Equal(t, encodeFixture(t, l), bin)
		})
	}
}

func TestUnmarshal_NonFiniteTextOnlyInFloats(t *testing.T) {
	_, err := UnmarshalLayout([]byte(`{"m_Version": "NaN"}`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidTree)

	l, err := UnmarshalLayout([]byte(`{"m_HydraulicPhases": [{"m_TimeDelaySeconds": "-Infinity", "m_Guid": "NaN"}]}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, l.HydraulicPhases, 1)
	assert.True(t, math.IsInf(float64(l.HydraulicPhases[0].TimeDelay), -1))
	assert.Equal(t, "NaN", l.HydraulicPhases[0].GUID)
}

func TestUnmarshal_JSONC(t *testing.T) {
	src := []byte(`{
		// hand edited
		"m_Version": 26,
		"m_ThemeStubKey": "Volcano", /* theme */
		"m_Budget": {"m_CashBudget": 500,},
	}`)

	l, err := UnmarshalLayout(src, FormatJSONC)
	require.NoError(t, err)
	assert.Equal(t, "Volcano", l.StubKey)
	assert.Equal(t, int32(500), l.Budget.Cash)

	_, err = UnmarshalLayout(src, FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestUnmarshal_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		f    Format
	}{
		{"json syntax", `{"m_Version": }`, FormatJSON},
		{"json type", `{"m_Version": "twenty"}`, FormatJSON},
		{"trailing document", `{} {}`, FormatJSON},
		{"yaml syntax", "m_Version: [1,\n", FormatYAML},
		{"yaml type", "m_Anchors: 3\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalLayout([]byte(tt.data), tt.f)
			assert.ErrorIs(t, err, ErrInvalidTree)
		})
	}
}

func TestSchema(t *testing.T) {
	s, err := Schema(KindLayout)
	require.NoError(t, err)
	assert.Equal(t, "PolyBridge Layout", s.Title)
	_, ok := s.Properties.Get("m_Version")
	assert.True(t, ok)

	s, err = Schema(KindSlotTree)
	require.NoError(t, err)
	_, ok = s.Properties.Get("m_Thumb")
	assert.True(t, ok)

	_, err = Schema(KindUnknown)
	assert.Error(t, err)

	data, err := SchemaJSON(KindLayout)
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(data, []byte("\n")))
	assert.Contains(t, string(data), "m_ThemeStubKey")
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	bin := encodeFixture(t, fixtureLayout())
	in := filepath.Join(dir, "gulch.layout")
	require.NoError(t, os.WriteFile(in, bin, 0o644))

	out, err := File(in, Options{Format: FormatYAML})
	require.NoError(t, err)
	assert.Equal(t, in+".yaml", out.Output)
	assert.Equal(t, KindLayout, out.Kind)
	assert.NotEmpty(t, out.SessionID)
	require.FileExists(t, out.Output)

	rebuilt := filepath.Join(dir, "rebuilt.layout")
	back, err := File(out.Output, Options{Output: rebuilt})
	require.NoError(t, err)
	assert.Equal(t, KindLayoutTree, back.Kind)

	got, err := os.ReadFile(rebuilt)
	require.NoError(t, err)
	assert.Equal(t, bin, got)
}

func TestFile_Failures(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown extension", func(t *testing.T) {
		_, err := File(filepath.Join(dir, "x.txt"), Options{})
		assert.Error(t, err)
	})

	t.Run("slot tree", func(t *testing.T) {
		in := filepath.Join(dir, "x.slot.json")
		require.NoError(t, os.WriteFile(in, []byte(`{}`), 0o644))
		_, err := File(in, Options{})
		assert.ErrorIs(t, err, codec.ErrUnencodable)
		assert.NoFileExists(t, filepath.Join(dir, "x.slot"))
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := File(filepath.Join(dir, "missing.layout"), Options{})
		assert.ErrorIs(t, err, codec.ErrIO)
	})

	t.Run("corrupt binary leaves no output", func(t *testing.T) {
		in := filepath.Join(dir, "broken.layout")
		require.NoError(t, os.WriteFile(in, []byte{26, 0, 0, 0, 9}, 0o644))
		_, err := File(in, Options{})
		assert.ErrorIs(t, err, codec.ErrMalformedStream)
		assert.NoFileExists(t, in+".json")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), "."), "temp file %s left behind", e.Name())
		}
	})
}
