package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/ssargent/polyparser/pkg/model"
	"github.com/ssargent/polyparser/pkg/slot"
	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	l := &model.Layout{
		Version: 26,
		StubKey: "ZenGardens",
		Budget:  model.Budget{Cash: 1_250_000},
		Bridge: model.Bridge{
			Version: 11,
			Edges: []model.BridgeEdge{
				{Material: model.MaterialRoad},
				{Material: model.MaterialRoad},
				{Material: model.MaterialSteel},
			},
		},
		Workshop: model.Workshop{Title: "Zen", Tags: []string{"calm", "short"}},
		IsModded: true,
		ModData: &model.ModData{
			Mods:     []model.Mod{{Name: "PolyTechFramework", Version: "0.9.5"}},
			SaveData: []model.ModSaveData{{Name: "PolyTechFramework", Data: make([]byte, 2048)}},
		},
	}

	var buf bytes.Buffer
	New(&buf).Layout(l, []string{"theme objects are obsolete"})
	out := buf.String()

	assert.Contains(t, out, "Serenity Valley (ZenGardens)")
	assert.Contains(t, out, "$1,250,000")
	assert.Contains(t, out, "road 2, steel 1")
	assert.Contains(t, out, "calm, short")
	assert.Contains(t, out, "2.0 kB")
	assert.Contains(t, out, "! theme objects are obsolete")
	assert.NotContains(t, out, "\x1b[", "no escape codes outside a terminal")
}

func TestSlot(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &model.SaveSlot{
		Version:            3,
		PhysicsVersion:     1,
		DisplayName:        "Canyon",
		Budget:             98_765,
		LastWriteTimeTicks: slot.Ticks(now.Add(-3 * time.Hour)),
		Thumbnail:          make([]byte, 1500),
	}

	var buf bytes.Buffer
	p := New(&buf)
	p.Now = func() time.Time { return now }
	p.Slot(s, nil)
	out := buf.String()

	assert.Contains(t, out, "Canyon")
	assert.Contains(t, out, "3 (physics 1)")
	assert.Contains(t, out, "$98,765")
	assert.Contains(t, out, "2024-06-01 09:00:00 (3 hours ago)")
	assert.Contains(t, out, "1.5 kB")
	assert.NotContains(t, out, "Warnings")

	buf.Reset()
	s.LastWriteTimeTicks = 0
	s.Thumbnail = nil
	p.Slot(s, nil)
	assert.Contains(t, buf.String(), "(never)")
	assert.Contains(t, buf.String(), "none")
}
