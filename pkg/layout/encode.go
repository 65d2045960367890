package layout

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ssargent/polyparser/pkg/bridge"
	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// Encode writes l to w at the latest layout version. A modded layout is
// written with a negated version followed by its mod data.
func Encode(w io.Writer, l *model.Layout, sess *codec.Session) error {
	if sess == nil {
		sess = codec.NewSession(codec.SessionOptions{})
	}
	log := sess.Logger("layout")

	cw := codec.NewWriter(w)
	encode(cw, l, Latest)
	if err := cw.Err(); err != nil {
		log.Error("layout encode failed", "error", err, "written", cw.Written())
		return fmt.Errorf("encode layout: %w", err)
	}

	log.Info("layout encoded",
		"version", int(Latest),
		"bridge_version", int(bridge.Latest),
		"bytes", cw.Written(),
		"modded", l.IsModded,
	)
	return nil
}

// EncodeBytes encodes l into a new buffer.
func EncodeBytes(l *model.Layout, sess *codec.Session) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, l, sess); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeFile encodes l to path. The file is written next to its final
// name and renamed into place, so a failed encode leaves no partial file.
func EncodeFile(path string, l *model.Layout, sess *codec.Session) error {
	data, err := EncodeBytes(l, sess)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", codec.ErrIO, err)
	}
	return nil
}

// encode writes l in the layout of version s. Only Latest is used outside
// tests.
func encode(w *codec.Writer, l *model.Layout, s Schema) {
	version := int32(s)
	if l.IsModded {
		version = -version
	}
	w.Int32(version)
	w.Str(l.StubKey)

	if s.Has(FeatureAnchors) {
		codec.WriteSlice(w, l.Anchors, bridge.EncodeJoint)
	}
	if s.Has(FeatureEarlyHydraulicPhases) {
		codec.WriteSlice(w, l.HydraulicPhases, encodeHydraulicPhase)
	}
	if s.Has(FeatureVersionedBridge) {
		bridge.Encode(w, l.Bridge)
	} else {
		encodeInlineBridge(w, l.Bridge)
	}
	if s.Has(FeatureZAxisVehicles) {
		codec.WriteSlice(w, l.ZAxisVehicles, func(w *codec.Writer, v model.ZAxisVehicle) {
			encodeZAxisVehicle(w, v, s)
		})
	}
	codec.WriteSlice(w, l.Vehicles, func(w *codec.Writer, v model.Vehicle) {
		encodeVehicle(w, v, l.Vehicles)
	})
	codec.WriteSlice(w, l.VehicleStopTriggers, encodeVehicleStopTrigger)
	if s.Has(FeatureThemeObjects) {
		codec.WriteSlice(w, l.ThemeObjects, encodeThemeObject)
	}
	codec.WriteSlice(w, l.EventTimelines, func(w *codec.Writer, t model.EventTimeline) {
		encodeEventTimeline(w, t, s)
	})
	codec.WriteSlice(w, l.Checkpoints, encodeCheckpoint)
	codec.WriteSlice(w, l.TerrainIslands, func(w *codec.Writer, t model.TerrainIsland) {
		encodeTerrainIsland(w, t, s)
	})
	codec.WriteSlice(w, l.Platforms, func(w *codec.Writer, p model.Platform) {
		encodePlatform(w, p, s)
	})
	codec.WriteSlice(w, l.Ramps, func(w *codec.Writer, rp model.Ramp) {
		encodeRamp(w, rp, s)
	})
	if s.Has(FeatureLateHydraulicPhases) {
		codec.WriteSlice(w, l.HydraulicPhases, encodeHydraulicPhase)
	}
	codec.WriteSlice(w, l.VehicleRestartPhases, encodeVehicleRestartPhase)
	codec.WriteSlice(w, l.FlyingObjects, encodeFlyingObject)
	codec.WriteSlice(w, l.Rocks, encodeRock)
	codec.WriteSlice(w, l.WaterBlocks, func(w *codec.Writer, b model.WaterBlock) {
		encodeWaterBlock(w, b, s)
	})
	if s.Has(FeatureLegacyGroups) {
		w.Count(0)
	}
	encodeBudget(w, l.Budget)
	w.Bool(l.Settings.HydraulicsControllerEnabled)
	w.Bool(l.Settings.Unbreakable)
	if s.Has(FeatureCustomShapes) {
		codec.WriteSlice(w, l.CustomShapes, func(w *codec.Writer, c model.CustomShape) {
			encodeCustomShape(w, c, s)
		})
	}
	if s.Has(FeatureWorkshop) {
		encodeWorkshop(w, l.Workshop, s)
	}
	if s.Has(FeatureSupportPillars) {
		codec.WriteSlice(w, l.SupportPillars, encodeSupportPillar)
	}
	if s.Has(FeaturePillars) {
		codec.WriteSlice(w, l.Pillars, encodePillar)
	}
	if l.IsModded {
		encodeModData(w, l.ModData)
	}
}

func encodeInlineBridge(w *codec.Writer, b model.Bridge) {
	codec.WriteSlice(w, b.Joints, bridge.EncodeJoint)
	codec.WriteSlice(w, b.Edges, func(w *codec.Writer, e model.BridgeEdge) {
		w.Int32(int32(e.Material))
		w.Str(e.NodeAGUID)
		w.Str(e.NodeBGUID)
		w.Int32(int32(e.JointAPart))
		w.Int32(int32(e.JointBPart))
	})
	codec.WriteSlice(w, b.Pistons, func(w *codec.Writer, p model.Piston) {
		w.Float32(p.NormalizedValue)
		w.Str(p.NodeAGUID)
		w.Str(p.NodeBGUID)
		w.Str(p.GUID)
	})
}

func encodeHydraulicPhase(w *codec.Writer, p model.HydraulicPhase) {
	w.Float32(p.TimeDelay)
	w.Str(p.GUID)
}

func encodeZAxisVehicle(w *codec.Writer, v model.ZAxisVehicle, s Schema) {
	w.Vec2(v.Pos)
	w.Str(v.PrefabName)
	w.Str(v.GUID)
	w.Float32(v.TimeDelay)
	if s.Has(FeatureZAxisSpeed) {
		w.Float32(v.Speed)
	}
	if s.Has(FeatureZAxisRotation) {
		w.Quaternion(v.Rot)
		w.Float32(v.RotationDegrees)
	}
}

// encodeVehicle writes v with the checkpoint list of the first vehicle in
// all sharing its GUID.
func encodeVehicle(w *codec.Writer, v model.Vehicle, all []model.Vehicle) {
	w.Str(v.DisplayName)
	w.Vec2(v.Pos)
	w.Quaternion(v.Rot)
	w.Str(v.PrefabName)
	w.Float32(v.TargetSpeed)
	w.Float32(v.Mass)
	w.Float32(v.BrakingForceMultiplier)
	w.Int32(int32(v.StrengthMethod))
	w.Float32(v.Acceleration)
	w.Float32(v.MaxSlope)
	w.Float32(v.DesiredAcceleration)
	w.Float32(v.ShocksMultiplier)
	w.Float32(v.RotationDegrees)
	w.Float32(v.TimeDelay)
	w.Bool(v.IdleOnDownhill)
	w.Bool(v.Flipped)
	w.Bool(v.OrderedCheckpoints)
	w.Str(v.GUID)

	owner, ok := findVehicle(all, v.GUID)
	if !ok {
		w.Fail(fmt.Errorf("%w: no vehicle with guid %q", codec.ErrUnresolvedReference, v.GUID))
		return
	}
	codec.WriteSlice(w, owner.CheckpointGUIDs, (*codec.Writer).Str)
}

func findVehicle(all []model.Vehicle, guid string) (model.Vehicle, bool) {
	for _, v := range all {
		if v.GUID == guid {
			return v, true
		}
	}
	return model.Vehicle{}, false
}

func encodeVehicleStopTrigger(w *codec.Writer, t model.VehicleStopTrigger) {
	w.Vec2(t.Pos)
	w.Quaternion(t.Rot)
	w.Float32(t.Height)
	w.Float32(t.RotationDegrees)
	w.Bool(t.Flipped)
	w.Str(t.PrefabName)
	w.Str(t.StopVehicleGUID)
}

func encodeThemeObject(w *codec.Writer, o model.ThemeObject) {
	w.Vec2(o.Pos)
	w.Str(o.PrefabName)
	w.Bool(o.UnknownValue)
}

func encodeEventTimeline(w *codec.Writer, t model.EventTimeline, s Schema) {
	w.Str(t.CheckpointGUID)
	codec.WriteSlice(w, t.Stages, func(w *codec.Writer, st model.EventStage) {
		codec.WriteSlice(w, st.Units, func(w *codec.Writer, u model.EventUnit) {
			w.Str(u.GUID)
			if !s.Has(FeatureEventUnitGUID) {
				w.Str("")
				w.Str("")
			}
		})
	})
}

func encodeCheckpoint(w *codec.Writer, c model.Checkpoint) {
	w.Vec2(c.Pos)
	w.Str(c.PrefabName)
	w.Str(c.VehicleGUID)
	w.Str(c.VehicleRestartPhaseGUID)
	w.Bool(c.TriggerTimeline)
	w.Bool(c.StopVehicle)
	w.Bool(c.ReverseVehicleOnRestart)
	w.Str(c.GUID)
}

func encodeTerrainIsland(w *codec.Writer, t model.TerrainIsland, s Schema) {
	w.Vec3(t.Pos)
	w.Str(t.PrefabName)
	w.Float32(t.HeightAdded)
	w.Float32(t.RightEdgeWaterHeight)
	w.Int32(int32(t.Type))
	w.Int32(t.VariantIndex)
	w.Bool(t.Flipped)
	if s.Has(FeatureTerrainLock) {
		w.Bool(t.LockPosition)
	}
}

func encodePlatform(w *codec.Writer, p model.Platform, s Schema) {
	w.Vec2(p.Pos)
	w.Float32(p.Width)
	w.Float32(p.Height)
	w.Bool(p.Flipped)
	if s.Has(FeaturePlatformSolid) {
		w.Bool(p.Solid)
	} else {
		w.Int32(0)
	}
}

func encodeRamp(w *codec.Writer, rp model.Ramp, s Schema) {
	w.Vec2(rp.Pos)
	codec.WriteSlice(w, rp.ControlPoints, (*codec.Writer).Vec2)
	w.Float32(rp.Height)
	w.Int32(rp.NumSegments)
	w.Int32(int32(rp.SplineType))
	w.Bool(rp.FlippedVertical)
	w.Bool(rp.FlippedHorizontal)
	if s.Has(FeatureRampHideLegs) {
		w.Bool(rp.HideLegs)
	}
	switch {
	case s.Has(FeatureRampFlippedLegs):
		w.Bool(rp.FlippedLegs)
	case s.Has(FeatureRampLegacyLegsFlag):
		w.Bool(false)
	default:
		w.Int32(0)
	}
	if s.Has(FeatureRampLinePoints) {
		codec.WriteSlice(w, rp.LinePoints, (*codec.Writer).Vec2)
	}
}

func encodeVehicleRestartPhase(w *codec.Writer, p model.VehicleRestartPhase) {
	w.Float32(p.TimeDelay)
	w.Str(p.GUID)
	w.Str(p.VehicleGUID)
}

func encodeFlyingObject(w *codec.Writer, o model.FlyingObject) {
	w.Vec3(o.Pos)
	w.Vec3(o.Scale)
	w.Str(o.PrefabName)
}

func encodeRock(w *codec.Writer, r model.Rock) {
	w.Vec3(r.Pos)
	w.Vec3(r.Scale)
	w.Str(r.PrefabName)
	w.Bool(r.Flipped)
}

func encodeWaterBlock(w *codec.Writer, b model.WaterBlock, s Schema) {
	w.Vec3(b.Pos)
	w.Float32(b.Width)
	w.Float32(b.Height)
	if s.Has(FeatureWaterLock) {
		w.Bool(b.LockPosition)
	}
}

func encodeBudget(w *codec.Writer, b model.Budget) {
	for _, v := range []int32{b.Cash, b.Road, b.Wood, b.Steel, b.Hydraulics, b.Rope, b.Cable, b.Spring, b.BungeeRope} {
		w.Int32(v)
	}
	for _, v := range []bool{b.AllowWood, b.AllowSteel, b.AllowHydraulics, b.AllowRope, b.AllowCable, b.AllowSpring, b.AllowReinforcedRoad} {
		w.Bool(v)
	}
}

func encodeCustomShape(w *codec.Writer, c model.CustomShape, s Schema) {
	w.Vec3(c.Pos)
	w.Quaternion(c.Rot)
	w.Vec3(c.Scale)
	w.Bool(c.Flipped)
	w.Bool(c.Dynamic)
	w.Bool(c.CollidesWithRoad)
	w.Bool(c.CollidesWithNodes)
	if s.Has(FeatureShapeSplitNodes) {
		w.Bool(c.CollidesWithSplitNodes)
	}
	w.Float32(c.RotationDegrees)
	if s.Has(FeatureShapeColor) {
		w.Color(c.Color)
	} else {
		w.Int32(0)
	}
	w.Float32(c.Mass)
	if s.Has(FeatureShapeBounciness) {
		w.Float32(c.Bounciness)
	}
	if s.Has(FeatureShapePinMotor) {
		w.Float32(c.PinMotorStrength)
		w.Float32(c.PinTargetVelocity)
	}
	codec.WriteSlice(w, c.PointsLocalSpace, (*codec.Writer).Vec2)
	codec.WriteSlice(w, c.StaticPins, (*codec.Writer).Vec3)
	codec.WriteSlice(w, c.DynamicAnchorGUIDs, (*codec.Writer).Str)
}

func encodeWorkshop(w *codec.Writer, ws model.Workshop, s Schema) {
	w.Str(ws.ID)
	if s.Has(FeatureWorkshopLeaderboard) {
		w.Str(ws.LeaderboardID)
	}
	w.Str(ws.Title)
	w.Str(ws.Description)
	w.Bool(ws.AutoPlay)
	codec.WriteSlice(w, ws.Tags, (*codec.Writer).Str)
}

func encodeSupportPillar(w *codec.Writer, p model.SupportPillar) {
	w.Vec3(p.Pos)
	w.Vec3(p.Scale)
	w.Str(p.PrefabName)
}

func encodePillar(w *codec.Writer, p model.Pillar) {
	w.Vec3(p.Pos)
	w.Float32(p.Height)
	w.Str(p.PrefabName)
}
