package layout

import (
	"fmt"
	"io"
	"os"

	"github.com/ssargent/polyparser/pkg/bridge"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// Result is a decoded layout together with what the session observed
// while decoding it.
type Result struct {
	Layout model.Layout
	// NewerVersion is set when the file was written by a format version
	// newer than MaxLayoutVersion.
	NewerVersion bool
	Warnings     []string
}

// DecodeFile opens path and decodes it as a layout.
func DecodeFile(path string, sess *codec.Session) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	defer f.Close()

	return Read(f, sess)
}

// Read decodes a layout from a byte stream.
func Read(rd io.Reader, sess *codec.Session) (*Result, error) {
	return Decode(codec.NewReader(codec.NewStreamSource(rd), sess))
}

// DecodeBytes decodes a layout held in memory.
func DecodeBytes(data []byte, sess *codec.Session) (*Result, error) {
	return Decode(codec.NewReader(codec.NewBufferSource(data), sess))
}

// Decode reads one layout from r. Every field is read in file order; the
// version read first decides which of them are present.
func Decode(r *codec.Reader) (*Result, error) {
	sess := r.Session()
	log := sess.Logger("layout")

	var l model.Layout
	version := int(r.Int32())
	if version < 0 {
		version = -version
		l.IsModded = true
		log.Info("using modded layout support")
	}
	l.Version = version
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("layout version: %w", err)
	}
	r.Fail(sess.Check("layout version", version, sess.Bounds().Version))

	res := &Result{NewerVersion: version > model.MaxLayoutVersion}
	if res.NewerVersion {
		sess.Warn(log, "layout saved with a newer format version", "version", version, "max", model.MaxLayoutVersion)
	}

	s := Schema(version)
	l.StubKey = r.Str()
	log.Info("decoding layout", "version", version, "stub_key", l.StubKey, "theme", Theme(l.StubKey).Name)

	if s.Has(FeatureAnchors) {
		l.Anchors = codec.ReadSlice(r, "anchors", bridge.DecodeJoint)
	}
	if s.Has(FeatureEarlyHydraulicPhases) {
		l.HydraulicPhases = codec.ReadSlice(r, "hydraulic phases", decodeHydraulicPhase)
	}
	if s.Has(FeatureVersionedBridge) {
		l.Bridge = bridge.Decode(r)
	} else {
		sess.Warn(log, "decoding inline bridge from a layout older than version 5", "version", version)
		l.Bridge = decodeInlineBridge(r)
	}
	if s.Has(FeatureZAxisVehicles) {
		l.ZAxisVehicles = codec.ReadSlice(r, "z-axis vehicles", func(r *codec.Reader) model.ZAxisVehicle {
			return decodeZAxisVehicle(r, s)
		})
	}
	l.Vehicles = codec.ReadSlice(r, "vehicles", decodeVehicle)
	l.VehicleStopTriggers = codec.ReadSlice(r, "vehicle stop triggers", decodeVehicleStopTrigger)
	if s.Has(FeatureThemeObjects) {
		sess.Warn(log, "theme objects are obsolete", "version", version)
		l.ThemeObjects = codec.ReadSlice(r, "theme objects", decodeThemeObject)
	}
	l.EventTimelines = codec.ReadSlice(r, "event timelines", func(r *codec.Reader) model.EventTimeline {
		return decodeEventTimeline(r, s)
	})
	l.Checkpoints = codec.ReadSlice(r, "checkpoints", decodeCheckpoint)
	l.TerrainIslands = codec.ReadSlice(r, "terrain islands", func(r *codec.Reader) model.TerrainIsland {
		return decodeTerrainIsland(r, s)
	})
	l.Platforms = codec.ReadSlice(r, "platforms", func(r *codec.Reader) model.Platform {
		return decodePlatform(r, s)
	})
	l.Ramps = codec.ReadSlice(r, "ramps", func(r *codec.Reader) model.Ramp {
		return decodeRamp(r, s)
	})
	if s.Has(FeatureLateHydraulicPhases) {
		l.HydraulicPhases = codec.ReadSlice(r, "hydraulic phases", decodeHydraulicPhase)
	}
	l.VehicleRestartPhases = codec.ReadSlice(r, "vehicle restart phases", decodeVehicleRestartPhase)
	l.FlyingObjects = codec.ReadSlice(r, "flying objects", decodeFlyingObject)
	l.Rocks = codec.ReadSlice(r, "rocks", decodeRock)
	l.WaterBlocks = codec.ReadSlice(r, "water blocks", func(r *codec.Reader) model.WaterBlock {
		return decodeWaterBlock(r, s)
	})
	if s.Has(FeatureLegacyGroups) {
		sess.Warn(log, "discarding legacy string groups", "version", version)
		codec.Discard(r, "legacy groups", func(r *codec.Reader) {
			r.SkipStr()
			codec.Discard(r, "legacy group strings", (*codec.Reader).SkipStr)
		})
	}
	l.Budget = decodeBudget(r)
	l.Settings = model.Settings{
		HydraulicsControllerEnabled: r.Bool(),
		Unbreakable:                 r.Bool(),
	}
	if s.Has(FeatureCustomShapes) {
		l.CustomShapes = codec.ReadSlice(r, "custom shapes", func(r *codec.Reader) model.CustomShape {
			return decodeCustomShape(r, s)
		})
	}
	if s.Has(FeatureWorkshop) {
		l.Workshop = decodeWorkshop(r, s)
	}
	if s.Has(FeatureSupportPillars) {
		l.SupportPillars = codec.ReadSlice(r, "support pillars", decodeSupportPillar)
	}
	if s.Has(FeaturePillars) {
		l.Pillars = codec.ReadSlice(r, "pillars", decodePillar)
	}

	if l.IsModded {
		l.ModData = decodeModData(r)
	} else if r.More() {
		sess.Warn(log, "ignoring trailing bytes after layout", "offset", r.Offset())
	}

	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("decode layout at offset %d: %w", r.Offset(), err)
	}

	log.Info("layout decoded",
		"version", l.Version,
		"vehicles", len(l.Vehicles),
		"checkpoints", len(l.Checkpoints),
		"ramps", len(l.Ramps),
		"custom_shapes", len(l.CustomShapes),
		"cash", l.Budget.Cash,
		"modded", l.IsModded,
	)
	res.Layout = l
	res.Warnings = sess.Warnings()
	return res, nil
}

// decodeInlineBridge reads the unversioned bridge stored by layouts older
// than version 5. Its pistons always use the legacy curve.
func decodeInlineBridge(r *codec.Reader) model.Bridge {
	legacy := bridge.Schema(0)
	return model.Bridge{
		Joints: codec.ReadSlice(r, "bridge joints", bridge.DecodeJoint),
		Edges: codec.ReadSlice(r, "bridge edges", func(r *codec.Reader) model.BridgeEdge {
			return bridge.DecodeEdge(r, legacy)
		}),
		Pistons: codec.ReadSlice(r, "bridge pistons", func(r *codec.Reader) model.Piston {
			return bridge.DecodePiston(r, legacy)
		}),
	}
}

// Peek reports the version and modded flag of a layout without decoding
// the rest of it.
func Peek(data []byte) (version int, modded bool, err error) {
	r := codec.NewReader(codec.NewBufferSource(data), nil)
	version = int(r.Int32())
	if err := r.Err(); err != nil {
		return 0, false, err
	}
	if version < 0 {
		return -version, true, nil
	}
	return version, false, nil
}
