package layout

import (
	"github.com/ssargent/polyparser/pkg/bridge"
	"github.com/ssargent/polyparser/pkg/model"
)

func channel(b uint8) float32 {
	return float32(b) / 255
}

func fixtureLayout() *model.Layout {
	return &model.Layout{
		Version: model.MaxLayoutVersion,
		StubKey: "Western",
		Anchors: []model.BridgeJoint{
			{Pos: model.Vec3{X: -10, Y: 5}, IsAnchor: true, GUID: "anchor-left"},
			{Pos: model.Vec3{X: 10, Y: 5}, IsAnchor: true, GUID: "anchor-right"},
		},
		HydraulicPhases: []model.HydraulicPhase{{TimeDelay: 1.5, GUID: "phase-1"}},
		Bridge: model.Bridge{
			Version: model.MaxBridgeVersion,
			Joints: []model.BridgeJoint{
				{Pos: model.Vec3{X: -10, Y: 5}, IsAnchor: true, GUID: "anchor-left"},
				{Pos: model.Vec3{X: 0, Y: 6}, GUID: "joint-mid"},
			},
			Edges: []model.BridgeEdge{
				{Material: model.MaterialRoad, NodeAGUID: "anchor-left", NodeBGUID: "joint-mid", GUID: "edge-1"},
			},
			Springs: []model.BridgeSpring{},
			Pistons: []model.Piston{
				{NormalizedValue: 0.6, NodeAGUID: "anchor-left", NodeBGUID: "joint-mid", GUID: "piston-1"},
			},
			HydraulicsController: model.HydraulicsController{
				Phases: []model.HydraulicsControllerPhase{
					{PhaseGUID: "phase-1", PistonGUIDs: []string{"piston-1"}, SplitJoints: []model.BridgeSplitJoint{}},
				},
			},
			Anchors: []model.BridgeJoint{},
		},
		ZAxisVehicles: []model.ZAxisVehicle{
			{
				Pos:             model.Vec2{X: 3, Y: -1},
				PrefabName:      "Boat",
				GUID:            "boat-1",
				TimeDelay:       2,
				Speed:           4.5,
				Rot:             model.Quaternion{W: 1},
				RotationDegrees: 90,
			},
		},
		Vehicles: []model.Vehicle{
			{
				DisplayName:            "Truck",
				Pos:                    model.Vec2{X: -20, Y: 5},
				Rot:                    model.Quaternion{Z: 0.5, W: 0.5},
				PrefabName:             "Vehicle_Truck",
				TargetSpeed:            3,
				Mass:                   1200,
				BrakingForceMultiplier: 1,
				StrengthMethod:         model.StrengthMaxSlope,
				Acceleration:           2,
				MaxSlope:               30,
				DesiredAcceleration:    1.25,
				ShocksMultiplier:       1,
				RotationDegrees:        0,
				TimeDelay:              0.5,
				IdleOnDownhill:         true,
				OrderedCheckpoints:     true,
				GUID:                   "truck-1",
				CheckpointGUIDs:        []string{"cp-1"},
			},
		},
		VehicleStopTriggers: []model.VehicleStopTrigger{
			{Pos: model.Vec2{X: 25, Y: 5}, Rot: model.Quaternion{W: 1}, Height: 4, PrefabName: "Stop", StopVehicleGUID: "truck-1"},
		},
		EventTimelines: []model.EventTimeline{
			{
				CheckpointGUID: "cp-1",
				Stages: []model.EventStage{
					{Units: []model.EventUnit{{GUID: "phase-1"}, {GUID: "boat-1"}}},
					{Units: []model.EventUnit{}},
				},
			},
		},
		Checkpoints: []model.Checkpoint{
			{
				Pos:                     model.Vec2{X: 20, Y: 5},
				PrefabName:              "Checkpoint",
				VehicleGUID:             "truck-1",
				VehicleRestartPhaseGUID: "restart-1",
				TriggerTimeline:         true,
				GUID:                    "cp-1",
			},
		},
		TerrainIslands: []model.TerrainIsland{
			{
				Pos:                  model.Vec3{X: -30},
				PrefabName:           "Bookend_Left",
				HeightAdded:          2,
				RightEdgeWaterHeight: 0.5,
				Type:                 model.TerrainBookend,
				VariantIndex:         3,
				Flipped:              true,
				LockPosition:         true,
			},
		},
		Platforms: []model.Platform{{Pos: model.Vec2{X: 5, Y: 2}, Width: 4, Height: 1, Solid: true}},
		Ramps: []model.Ramp{
			{
				Pos:               model.Vec2{X: 12, Y: 0},
				ControlPoints:     []model.Vec2{{X: 0, Y: 0}, {X: 2, Y: 1}},
				Height:            3.5,
				NumSegments:       8,
				SplineType:        model.SplineBezier,
				FlippedHorizontal: true,
				HideLegs:          true,
				FlippedLegs:       true,
				LinePoints:        []model.Vec2{{X: 1, Y: 1}},
			},
		},
		VehicleRestartPhases: []model.VehicleRestartPhase{{TimeDelay: 1, GUID: "restart-1", VehicleGUID: "truck-1"}},
		FlyingObjects:        []model.FlyingObject{{Pos: model.Vec3{Y: 40}, Scale: model.Vec3{X: 1, Y: 1, Z: 1}, PrefabName: "Blimp"}},
		Rocks:                []model.Rock{{Pos: model.Vec3{X: 8}, Scale: model.Vec3{X: 2, Y: 2, Z: 2}, PrefabName: "Rock_A", Flipped: true}},
		WaterBlocks:          []model.WaterBlock{{Pos: model.Vec3{Y: -5}, Width: 60, Height: 3, LockPosition: true}},
		Budget: model.Budget{
			Cash: 25000, Road: 10, Wood: 20, Steel: 30, Hydraulics: 4, Rope: 5, Cable: 6, Spring: 7, BungeeRope: 8,
			AllowWood: true, AllowSteel: true, AllowHydraulics: true, AllowReinforcedRoad: true,
		},
		Settings: model.Settings{HydraulicsControllerEnabled: true},
		CustomShapes: []model.CustomShape{
			{
				Pos:                    model.Vec3{X: 1, Y: 2},
				Rot:                    model.Quaternion{W: 1},
				Scale:                  model.Vec3{X: 1, Y: 1, Z: 1},
				Dynamic:                true,
				CollidesWithRoad:       true,
				CollidesWithNodes:      true,
				CollidesWithSplitNodes: true,
				RotationDegrees:        45,
				Color:                  model.Color{R: channel(255), G: channel(128), B: channel(3), A: 1},
				Mass:                   12,
				Bounciness:             0.8,
				PinMotorStrength:       5,
				PinTargetVelocity:      -2,
				PointsLocalSpace:       []model.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
				StaticPins:             []model.Vec3{{X: 0.5, Y: 0.5, Z: staticPinZ}},
				DynamicAnchorGUIDs:     []string{"dyn-1"},
			},
		},
		Workshop: model.Workshop{
			ID:            "2718281828",
			LeaderboardID: "lb-1",
			Title:         "Gulch Crossing",
			Description:   "Two trucks, one bridge.",
			AutoPlay:      true,
			Tags:          []string{"trucks", "hydraulics"},
		},
		SupportPillars: []model.SupportPillar{{Pos: model.Vec3{X: -2}, Scale: model.Vec3{X: 1, Y: 3, Z: 1}, PrefabName: "Support"}},
		Pillars:        []model.Pillar{{Pos: model.Vec3{X: 2}, Height: 6, PrefabName: "Pillar"}},
	}
}

// expectedAt is what decoding l after encoding it at version v yields.
func expectedAt(l *model.Layout, v int) *model.Layout {
	out := *l
	s := Schema(v)
	out.Version = v

	if !s.Has(FeatureAnchors) {
		out.Anchors = nil
	}
	if !s.Has(FeatureVersionedBridge) {
		legacy := model.Bridge{
			Joints:  l.Bridge.Joints,
			Edges:   make([]model.BridgeEdge, len(l.Bridge.Edges)),
			Pistons: make([]model.Piston, len(l.Bridge.Pistons)),
		}
		for i, e := range l.Bridge.Edges {
			e.GUID = ""
			legacy.Edges[i] = e
		}
		for i, p := range l.Bridge.Pistons {
			p.NormalizedValue = bridge.NormalizeLegacyPiston(p.NormalizedValue)
			legacy.Pistons[i] = p
		}
		out.Bridge = legacy
	}
	if s.Has(FeatureZAxisVehicles) {
		out.ZAxisVehicles = make([]model.ZAxisVehicle, len(l.ZAxisVehicles))
		for i, z := range l.ZAxisVehicles {
			if !s.Has(FeatureZAxisSpeed) {
				z.Speed = 0
			}
			if !s.Has(FeatureZAxisRotation) {
				z.Rot = model.Quaternion{}
				z.RotationDegrees = 0
			}
			out.ZAxisVehicles[i] = z
		}
	} else {
		out.ZAxisVehicles = nil
	}
	if !s.Has(FeatureThemeObjects) {
		out.ThemeObjects = nil
	}
	out.TerrainIslands = make([]model.TerrainIsland, len(l.TerrainIslands))
	for i, t := range l.TerrainIslands {
		t.LockPosition = t.LockPosition && s.Has(FeatureTerrainLock)
		out.TerrainIslands[i] = t
	}
	out.Platforms = make([]model.Platform, len(l.Platforms))
	for i, p := range l.Platforms {
		p.Solid = p.Solid && s.Has(FeaturePlatformSolid)
		out.Platforms[i] = p
	}
	out.Ramps = make([]model.Ramp, len(l.Ramps))
	for i, rp := range l.Ramps {
		rp.HideLegs = rp.HideLegs && s.Has(FeatureRampHideLegs)
		rp.FlippedLegs = rp.FlippedLegs && s.Has(FeatureRampFlippedLegs)
		if !s.Has(FeatureRampLinePoints) {
			rp.LinePoints = nil
		}
		out.Ramps[i] = rp
	}
	out.WaterBlocks = make([]model.WaterBlock, len(l.WaterBlocks))
	for i, b := range l.WaterBlocks {
		b.LockPosition = b.LockPosition && s.Has(FeatureWaterLock)
		out.WaterBlocks[i] = b
	}
	if s.Has(FeatureCustomShapes) {
		out.CustomShapes = make([]model.CustomShape, len(l.CustomShapes))
		for i, c := range l.CustomShapes {
			c.CollidesWithSplitNodes = c.CollidesWithSplitNodes && s.Has(FeatureShapeSplitNodes)
			if !s.Has(FeatureShapeColor) {
				c.Color = model.Color{}
			}
			if !s.Has(FeatureShapeMass) {
				c.Mass = defaultShapeMass
			}
			if !s.Has(FeatureShapeBounciness) {
				c.Bounciness = defaultShapeBounciness
			}
			if !s.Has(FeatureShapePinMotor) {
				c.PinMotorStrength, c.PinTargetVelocity = 0, 0
			}
			out.CustomShapes[i] = c
		}
	} else {
		out.CustomShapes = nil
	}
	switch {
	case !s.Has(FeatureWorkshop):
		out.Workshop = model.Workshop{}
	case !s.Has(FeatureWorkshopLeaderboard):
		out.Workshop.LeaderboardID = ""
	}
	if !s.Has(FeatureSupportPillars) {
		out.SupportPillars = nil
	}
	if !s.Has(FeaturePillars) {
		out.Pillars = nil
	}
	return &out
}
