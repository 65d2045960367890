package layout

import (
	"math"

	"github.com/ssargent/polyparser/pkg/codec"
	"github.com/ssargent/polyparser/pkg/model"
)

// staticPinZ replaces the stored depth of every custom shape static pin.
const staticPinZ float32 = -1.348

// Defaults for custom shape fields missing from older layouts.
const (
	defaultShapeMass       float32 = 40
	defaultShapeBounciness float32 = 0.5
)

func decodeHydraulicPhase(r *codec.Reader) model.HydraulicPhase {
	return model.HydraulicPhase{TimeDelay: r.Float32(), GUID: r.Str()}
}

func decodeZAxisVehicle(r *codec.Reader, s Schema) model.ZAxisVehicle {
	v := model.ZAxisVehicle{
		Pos:        r.Vec2(),
		PrefabName: r.Str(),
		GUID:       r.Str(),
		TimeDelay:  r.Float32(),
	}
	if s.Has(FeatureZAxisSpeed) {
		v.Speed = r.Float32()
	}
	if s.Has(FeatureZAxisRotation) {
		v.Rot = r.Quaternion()
		v.RotationDegrees = r.Float32()
	}
	return v
}

func decodeVehicle(r *codec.Reader) model.Vehicle {
	return model.Vehicle{
		DisplayName:            r.Str(),
		Pos:                    r.Vec2(),
		Rot:                    r.Quaternion(),
		PrefabName:             r.Str(),
		TargetSpeed:            r.Float32(),
		Mass:                   r.Float32(),
		BrakingForceMultiplier: r.Float32(),
		StrengthMethod:         model.StrengthMethod(r.Int32()),
		Acceleration:           r.Float32(),
		MaxSlope:               r.Float32(),
		DesiredAcceleration:    r.Float32(),
		ShocksMultiplier:       r.Float32(),
		RotationDegrees:        r.Float32(),
		TimeDelay:              r.Float32(),
		IdleOnDownhill:         r.Bool(),
		Flipped:                r.Bool(),
		OrderedCheckpoints:     r.Bool(),
		GUID:                   r.Str(),
		CheckpointGUIDs:        codec.ReadSlice(r, "vehicle checkpoints", (*codec.Reader).Str),
	}
}

func decodeVehicleStopTrigger(r *codec.Reader) model.VehicleStopTrigger {
	return model.VehicleStopTrigger{
		Pos:             r.Vec2(),
		Rot:             r.Quaternion(),
		Height:          r.Float32(),
		RotationDegrees: r.Float32(),
		Flipped:         r.Bool(),
		PrefabName:      r.Str(),
		StopVehicleGUID: r.Str(),
	}
}

func decodeThemeObject(r *codec.Reader) model.ThemeObject {
	return model.ThemeObject{Pos: r.Vec2(), PrefabName: r.Str(), UnknownValue: r.Bool()}
}

func decodeEventTimeline(r *codec.Reader, s Schema) model.EventTimeline {
	return model.EventTimeline{
		CheckpointGUID: r.Str(),
		Stages: codec.ReadSlice(r, "event stages", func(r *codec.Reader) model.EventStage {
			return model.EventStage{
				Units: codec.ReadSlice(r, "event units", func(r *codec.Reader) model.EventUnit {
					return decodeEventUnit(r, s)
				}),
			}
		}),
	}
}

// decodeEventUnit reads one unit. Before version 7 a unit is three strings
// and the last non-empty one is its GUID.
func decodeEventUnit(r *codec.Reader, s Schema) model.EventUnit {
	if s.Has(FeatureEventUnitGUID) {
		return model.EventUnit{GUID: r.Str()}
	}
	var u model.EventUnit
	for range 3 {
		if g := r.Str(); g != "" {
			u.GUID = g
		}
	}
	return u
}

func decodeCheckpoint(r *codec.Reader) model.Checkpoint {
	return model.Checkpoint{
		Pos:                     r.Vec2(),
		PrefabName:              r.Str(),
		VehicleGUID:             r.Str(),
		VehicleRestartPhaseGUID: r.Str(),
		TriggerTimeline:         r.Bool(),
		StopVehicle:             r.Bool(),
		ReverseVehicleOnRestart: r.Bool(),
		GUID:                    r.Str(),
	}
}

func decodeTerrainIsland(r *codec.Reader, s Schema) model.TerrainIsland {
	t := model.TerrainIsland{
		Pos:                  r.Vec3(),
		PrefabName:           r.Str(),
		HeightAdded:          r.Float32(),
		RightEdgeWaterHeight: r.Float32(),
		Type:                 model.TerrainIslandType(r.Int32()),
		VariantIndex:         r.Int32(),
		Flipped:              r.Bool(),
	}
	if s.Has(FeatureTerrainLock) {
		t.LockPosition = r.Bool()
	}
	return t
}

func decodePlatform(r *codec.Reader, s Schema) model.Platform {
	p := model.Platform{
		Pos:     r.Vec2(),
		Width:   r.Float32(),
		Height:  r.Float32(),
		Flipped: r.Bool(),
	}
	if s.Has(FeaturePlatformSolid) {
		p.Solid = r.Bool()
	} else {
		r.Int32()
	}
	return p
}

func decodeRamp(r *codec.Reader, s Schema) model.Ramp {
	rp := model.Ramp{
		Pos:               r.Vec2(),
		ControlPoints:     codec.ReadSlice(r, "ramp control points", (*codec.Reader).Vec2),
		Height:            abs32(r.Float32()),
		NumSegments:       r.Int32(),
		SplineType:        model.SplineType(r.Int32()),
		FlippedVertical:   r.Bool(),
		FlippedHorizontal: r.Bool(),
	}
	rp.HideLegs = s.Has(FeatureRampHideLegs) && r.Bool()
	switch {
	case s.Has(FeatureRampFlippedLegs):
		rp.FlippedLegs = r.Bool()
	case s.Has(FeatureRampLegacyLegsFlag):
		r.Bool()
	default:
		r.Int32()
	}
	if s.Has(FeatureRampLinePoints) {
		rp.LinePoints = codec.ReadSlice(r, "ramp line points", (*codec.Reader).Vec2)
	}
	return rp
}

func decodeVehicleRestartPhase(r *codec.Reader) model.VehicleRestartPhase {
	return model.VehicleRestartPhase{TimeDelay: r.Float32(), GUID: r.Str(), VehicleGUID: r.Str()}
}

func decodeFlyingObject(r *codec.Reader) model.FlyingObject {
	return model.FlyingObject{Pos: r.Vec3(), Scale: r.Vec3(), PrefabName: r.Str()}
}

func decodeRock(r *codec.Reader) model.Rock {
	return model.Rock{Pos: r.Vec3(), Scale: r.Vec3(), PrefabName: r.Str(), Flipped: r.Bool()}
}

func decodeWaterBlock(r *codec.Reader, s Schema) model.WaterBlock {
	w := model.WaterBlock{Pos: r.Vec3(), Width: r.Float32(), Height: r.Float32()}
	if s.Has(FeatureWaterLock) {
		w.LockPosition = r.Bool()
	}
	return w
}

func decodeBudget(r *codec.Reader) model.Budget {
	return model.Budget{
		Cash:                int32(r.Checked("budget cash", r.Session().Bounds().Cash)),
		Road:                r.Int32(),
		Wood:                r.Int32(),
		Steel:               r.Int32(),
		Hydraulics:          r.Int32(),
		Rope:                r.Int32(),
		Cable:               r.Int32(),
		Spring:              r.Int32(),
		BungeeRope:          r.Int32(),
		AllowWood:           r.Bool(),
		AllowSteel:          r.Bool(),
		AllowHydraulics:     r.Bool(),
		AllowRope:           r.Bool(),
		AllowCable:          r.Bool(),
		AllowSpring:         r.Bool(),
		AllowReinforcedRoad: r.Bool(),
	}
}

func decodeCustomShape(r *codec.Reader, s Schema) model.CustomShape {
	c := model.CustomShape{
		Pos:               r.Vec3(),
		Rot:               r.Quaternion(),
		Scale:             r.Vec3(),
		Flipped:           r.Bool(),
		Dynamic:           r.Bool(),
		CollidesWithRoad:  r.Bool(),
		CollidesWithNodes: r.Bool(),
	}
	if s.Has(FeatureShapeSplitNodes) {
		c.CollidesWithSplitNodes = r.Bool()
	}
	c.RotationDegrees = r.Float32()
	if s.Has(FeatureShapeColor) {
		c.Color = r.Color()
	} else {
		r.Int32()
	}
	c.Mass = r.Float32()
	if !s.Has(FeatureShapeMass) {
		c.Mass = defaultShapeMass
	}
	c.Bounciness = defaultShapeBounciness
	if s.Has(FeatureShapeBounciness) {
		c.Bounciness = r.Float32()
	}
	if s.Has(FeatureShapePinMotor) {
		c.PinMotorStrength = r.Float32()
		c.PinTargetVelocity = r.Float32()
	}
	c.PointsLocalSpace = codec.ReadSlice(r, "custom shape points", (*codec.Reader).Vec2)
	c.StaticPins = codec.ReadSlice(r, "custom shape static pins", func(r *codec.Reader) model.Vec3 {
		p := r.Vec3()
		p.Z = staticPinZ
		return p
	})
	c.DynamicAnchorGUIDs = codec.ReadSlice(r, "custom shape dynamic anchors", (*codec.Reader).Str)
	return c
}

func decodeWorkshop(r *codec.Reader, s Schema) model.Workshop {
	w := model.Workshop{ID: r.Str()}
	if s.Has(FeatureWorkshopLeaderboard) {
		w.LeaderboardID = r.Str()
	}
	w.Title = r.Str()
	w.Description = r.Str()
	w.AutoPlay = r.Bool()
	w.Tags = codec.ReadSlice(r, "workshop tags", (*codec.Reader).Str)
	return w
}

func decodeSupportPillar(r *codec.Reader) model.SupportPillar {
	return model.SupportPillar{Pos: r.Vec3(), Scale: r.Vec3(), PrefabName: r.Str()}
}

func decodePillar(r *codec.Reader) model.Pillar {
	return model.Pillar{Pos: r.Vec3(), Height: r.Float32(), PrefabName: r.Str()}
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
