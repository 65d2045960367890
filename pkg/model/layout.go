package model

// Layout is the root aggregate of a .layout file.
type Layout struct {
	Version              int                   `json:"m_Version" yaml:"m_Version"`
	IsModded             bool                  `json:"ext_IsModded,omitempty" yaml:"ext_IsModded,omitempty"`
	StubKey              string                `json:"m_ThemeStubKey" yaml:"m_ThemeStubKey"`
	Anchors              []BridgeJoint         `json:"m_Anchors" yaml:"m_Anchors"`
	HydraulicPhases      []HydraulicPhase      `json:"m_HydraulicPhases" yaml:"m_HydraulicPhases"`
	Bridge               Bridge                `json:"m_Bridge" yaml:"m_Bridge"`
	ZAxisVehicles        []ZAxisVehicle        `json:"m_ZedAxisVehicles" yaml:"m_ZedAxisVehicles"`
	Vehicles             []Vehicle             `json:"m_Vehicles" yaml:"m_Vehicles"`
	VehicleStopTriggers  []VehicleStopTrigger  `json:"m_VehicleStopTriggers" yaml:"m_VehicleStopTriggers"`
	ThemeObjects         []ThemeObject         `json:"m_ThemeObjects_OBSOLETE,omitempty" yaml:"m_ThemeObjects_OBSOLETE,omitempty"`
	EventTimelines       []EventTimeline       `json:"m_EventTimelines" yaml:"m_EventTimelines"`
	Checkpoints          []Checkpoint          `json:"m_Checkpoints" yaml:"m_Checkpoints"`
	TerrainIslands       []TerrainIsland       `json:"m_TerrainStretches" yaml:"m_TerrainStretches"`
	Platforms            []Platform            `json:"m_Platforms" yaml:"m_Platforms"`
	Ramps                []Ramp                `json:"m_Ramps" yaml:"m_Ramps"`
	VehicleRestartPhases []VehicleRestartPhase `json:"m_VehicleRestartPhases" yaml:"m_VehicleRestartPhases"`
	FlyingObjects        []FlyingObject        `json:"m_FlyingObjects" yaml:"m_FlyingObjects"`
	Rocks                []Rock                `json:"m_Rocks" yaml:"m_Rocks"`
	WaterBlocks          []WaterBlock          `json:"m_WaterBlocks" yaml:"m_WaterBlocks"`
	Budget               Budget                `json:"m_Budget" yaml:"m_Budget"`
	Settings             Settings              `json:"m_Settings" yaml:"m_Settings"`
	CustomShapes         []CustomShape         `json:"m_CustomShapes" yaml:"m_CustomShapes"`
	Workshop             Workshop              `json:"m_Workshop" yaml:"m_Workshop"`
	SupportPillars       []SupportPillar       `json:"m_SupportPillars" yaml:"m_SupportPillars"`
	Pillars              []Pillar              `json:"m_Pillars" yaml:"m_Pillars"`
	ModData              *ModData              `json:"ext_ModData,omitempty" yaml:"ext_ModData,omitempty"`
}

type HydraulicPhase struct {
	TimeDelay float32 `json:"m_TimeDelaySeconds" yaml:"m_TimeDelaySeconds"`
	GUID      string  `json:"m_Guid" yaml:"m_Guid"`
}

type ZAxisVehicle struct {
	Pos             Vec2       `json:"m_Pos" yaml:"m_Pos"`
	PrefabName      string     `json:"m_PrefabName" yaml:"m_PrefabName"`
	GUID            string     `json:"m_Guid" yaml:"m_Guid"`
	TimeDelay       float32    `json:"m_TimeDelaySeconds" yaml:"m_TimeDelaySeconds"`
	Speed           float32    `json:"m_Speed" yaml:"m_Speed"`
	Rot             Quaternion `json:"m_Rot" yaml:"m_Rot"`
	RotationDegrees float32    `json:"m_RotationDegrees" yaml:"m_RotationDegrees"`
}

type Vehicle struct {
	DisplayName            string         `json:"m_DisplayName" yaml:"m_DisplayName"`
	Pos                    Vec2           `json:"m_Pos" yaml:"m_Pos"`
	Rot                    Quaternion     `json:"m_Rot" yaml:"m_Rot"`
	PrefabName             string         `json:"m_PrefabName" yaml:"m_PrefabName"`
	TargetSpeed            float32        `json:"m_TargetSpeed" yaml:"m_TargetSpeed"`
	Mass                   float32        `json:"m_Mass" yaml:"m_Mass"`
	BrakingForceMultiplier float32        `json:"m_BrakingForceMultiplier" yaml:"m_BrakingForceMultiplier"`
	StrengthMethod         StrengthMethod `json:"m_StrengthMethod" yaml:"m_StrengthMethod"`
	Acceleration           float32        `json:"m_Acceleration" yaml:"m_Acceleration"`
	MaxSlope               float32        `json:"m_MaxSlope" yaml:"m_MaxSlope"`
	DesiredAcceleration    float32        `json:"m_DesiredAcceleration" yaml:"m_DesiredAcceleration"`
	ShocksMultiplier       float32        `json:"m_ShocksMultiplier" yaml:"m_ShocksMultiplier"`
	RotationDegrees        float32        `json:"m_RotationDegrees" yaml:"m_RotationDegrees"`
	TimeDelay              float32        `json:"m_TimeDelaySeconds" yaml:"m_TimeDelaySeconds"`
	IdleOnDownhill         bool           `json:"m_IdleOnDownhill" yaml:"m_IdleOnDownhill"`
	Flipped                bool           `json:"m_Flipped" yaml:"m_Flipped"`
	OrderedCheckpoints     bool           `json:"m_OrderedCheckpoints" yaml:"m_OrderedCheckpoints"`
	GUID                   string         `json:"m_Guid" yaml:"m_Guid"`
	CheckpointGUIDs        []string       `json:"m_CheckpointGuids" yaml:"m_CheckpointGuids"`
}

type VehicleStopTrigger struct {
	Pos             Vec2       `json:"m_Pos" yaml:"m_Pos"`
	Rot             Quaternion `json:"m_Rot" yaml:"m_Rot"`
	Height          float32    `json:"m_Height" yaml:"m_Height"`
	RotationDegrees float32    `json:"m_RotationDegrees" yaml:"m_RotationDegrees"`
	Flipped         bool       `json:"m_Flipped" yaml:"m_Flipped"`
	PrefabName      string     `json:"m_PrefabName" yaml:"m_PrefabName"`
	StopVehicleGUID string     `json:"m_StopVehicleGuid" yaml:"m_StopVehicleGuid"`
}

// ThemeObject only exists in layouts older than version 20 and is never
// written back.
type ThemeObject struct {
	Pos          Vec2   `json:"m_Pos" yaml:"m_Pos"`
	PrefabName   string `json:"m_PrefabName" yaml:"m_PrefabName"`
	UnknownValue bool   `json:"m_UnknownValue" yaml:"m_UnknownValue"`
}

type EventTimeline struct {
	CheckpointGUID string       `json:"m_CheckpointGuid" yaml:"m_CheckpointGuid"`
	Stages         []EventStage `json:"m_Stages" yaml:"m_Stages"`
}

type EventStage struct {
	Units []EventUnit `json:"m_Units" yaml:"m_Units"`
}

type EventUnit struct {
	GUID string `json:"m_Guid" yaml:"m_Guid"`
}

type Checkpoint struct {
	Pos                     Vec2   `json:"m_Pos" yaml:"m_Pos"`
	PrefabName              string `json:"m_PrefabName" yaml:"m_PrefabName"`
	VehicleGUID             string `json:"m_VehicleGuid" yaml:"m_VehicleGuid"`
	VehicleRestartPhaseGUID string `json:"m_VehicleRestartPhaseGuid" yaml:"m_VehicleRestartPhaseGuid"`
	TriggerTimeline         bool   `json:"m_TriggerTimeline" yaml:"m_TriggerTimeline"`
	StopVehicle             bool   `json:"m_StopVehicle" yaml:"m_StopVehicle"`
	ReverseVehicleOnRestart bool   `json:"m_ReverseVehicleOnRestart" yaml:"m_ReverseVehicleOnRestart"`
	GUID                    string `json:"m_Guid" yaml:"m_Guid"`
}

type TerrainIsland struct {
	Pos                  Vec3              `json:"m_Pos" yaml:"m_Pos"`
	PrefabName           string            `json:"m_PrefabName" yaml:"m_PrefabName"`
	HeightAdded          float32           `json:"m_HeightAdded" yaml:"m_HeightAdded"`
	RightEdgeWaterHeight float32           `json:"m_RightEdgeWaterHeight" yaml:"m_RightEdgeWaterHeight"`
	Type                 TerrainIslandType `json:"m_TerrainIslandType" yaml:"m_TerrainIslandType"`
	VariantIndex         int32             `json:"m_VariantIndex" yaml:"m_VariantIndex"`
	Flipped              bool              `json:"m_Flipped" yaml:"m_Flipped"`
	LockPosition         bool              `json:"m_LockPosition" yaml:"m_LockPosition"`
}

type Platform struct {
	Pos     Vec2    `json:"m_Pos" yaml:"m_Pos"`
	Width   float32 `json:"m_Width" yaml:"m_Width"`
	Height  float32 `json:"m_Height" yaml:"m_Height"`
	Flipped bool    `json:"m_Flipped" yaml:"m_Flipped"`
	Solid   bool    `json:"m_Solid" yaml:"m_Solid"`
}

type Ramp struct {
	Pos               Vec2       `json:"m_Pos" yaml:"m_Pos"`
	ControlPoints     []Vec2     `json:"m_ControlPoints" yaml:"m_ControlPoints"`
	Height            float32    `json:"m_Height" yaml:"m_Height"`
	NumSegments       int32      `json:"m_NumSegments" yaml:"m_NumSegments"`
	SplineType        SplineType `json:"m_SplineType" yaml:"m_SplineType"`
	FlippedVertical   bool       `json:"m_FlippedVertical" yaml:"m_FlippedVertical"`
	FlippedHorizontal bool       `json:"m_FlippedHorizontal" yaml:"m_FlippedHorizontal"`
	HideLegs          bool       `json:"m_HideLegs" yaml:"m_HideLegs"`
	FlippedLegs       bool       `json:"m_FlippedLegs" yaml:"m_FlippedLegs"`
	LinePoints        []Vec2     `json:"m_LinePoints" yaml:"m_LinePoints"`
}

type VehicleRestartPhase struct {
	TimeDelay   float32 `json:"m_TimeDelaySeconds" yaml:"m_TimeDelaySeconds"`
	GUID        string  `json:"m_Guid" yaml:"m_Guid"`
	VehicleGUID string  `json:"m_VehicleGuid" yaml:"m_VehicleGuid"`
}

type FlyingObject struct {
	Pos        Vec3   `json:"m_Pos" yaml:"m_Pos"`
	Scale      Vec3   `json:"m_Scale" yaml:"m_Scale"`
	PrefabName string `json:"m_PrefabName" yaml:"m_PrefabName"`
}

type Rock struct {
	Pos        Vec3   `json:"m_Pos" yaml:"m_Pos"`
	Scale      Vec3   `json:"m_Scale" yaml:"m_Scale"`
	PrefabName string `json:"m_PrefabName" yaml:"m_PrefabName"`
	Flipped    bool   `json:"m_Flipped" yaml:"m_Flipped"`
}

type WaterBlock struct {
	Pos          Vec3    `json:"m_Pos" yaml:"m_Pos"`
	Width        float32 `json:"m_Width" yaml:"m_Width"`
	Height       float32 `json:"m_Height" yaml:"m_Height"`
	LockPosition bool    `json:"m_LockPosition" yaml:"m_LockPosition"`
}

// Budget is stored as nine int32 values followed by seven flags.
type Budget struct {
	Cash                int32 `json:"m_CashBudget" yaml:"m_CashBudget"`
	Road                int32 `json:"m_RoadBudget" yaml:"m_RoadBudget"`
	Wood                int32 `json:"m_WoodBudget" yaml:"m_WoodBudget"`
	Steel               int32 `json:"m_SteelBudget" yaml:"m_SteelBudget"`
	Hydraulics          int32 `json:"m_HydraulicBudget" yaml:"m_HydraulicBudget"`
	Rope                int32 `json:"m_RopeBudget" yaml:"m_RopeBudget"`
	Cable               int32 `json:"m_CableBudget" yaml:"m_CableBudget"`
	Spring              int32 `json:"m_SpringBudget" yaml:"m_SpringBudget"`
	BungeeRope          int32 `json:"m_BungieRopeBudget" yaml:"m_BungieRopeBudget"`
	AllowWood           bool  `json:"m_AllowWood" yaml:"m_AllowWood"`
	AllowSteel          bool  `json:"m_AllowSteel" yaml:"m_AllowSteel"`
	AllowHydraulics     bool  `json:"m_AllowHydraulic" yaml:"m_AllowHydraulic"`
	AllowRope           bool  `json:"m_AllowRope" yaml:"m_AllowRope"`
	AllowCable          bool  `json:"m_AllowCable" yaml:"m_AllowCable"`
	AllowSpring         bool  `json:"m_AllowSpring" yaml:"m_AllowSpring"`
	AllowReinforcedRoad bool  `json:"m_AllowReinforcedRoad" yaml:"m_AllowReinforcedRoad"`
}

type Settings struct {
	HydraulicsControllerEnabled bool `json:"m_HydraulicControllerEnabled" yaml:"m_HydraulicControllerEnabled"`
	Unbreakable                 bool `json:"m_Unbreakable" yaml:"m_Unbreakable"`
}

type CustomShape struct {
	Pos                    Vec3       `json:"m_Pos" yaml:"m_Pos"`
	Rot                    Quaternion `json:"m_Rot" yaml:"m_Rot"`
	Scale                  Vec3       `json:"m_Scale" yaml:"m_Scale"`
	Flipped                bool       `json:"m_Flipped" yaml:"m_Flipped"`
	Dynamic                bool       `json:"m_Dynamic" yaml:"m_Dynamic"`
	CollidesWithRoad       bool       `json:"m_CollidesWithRoad" yaml:"m_CollidesWithRoad"`
	CollidesWithNodes      bool       `json:"m_CollidesWithNodes" yaml:"m_CollidesWithNodes"`
	CollidesWithSplitNodes bool       `json:"m_CollidesWithSplitNodes" yaml:"m_CollidesWithSplitNodes"`
	RotationDegrees        float32    `json:"m_RotationDegrees" yaml:"m_RotationDegrees"`
	Color                  Color      `json:"m_Color" yaml:"m_Color"`
	Mass                   float32    `json:"m_Mass" yaml:"m_Mass"`
	Bounciness             float32    `json:"m_Bounciness" yaml:"m_Bounciness"`
	PinMotorStrength       float32    `json:"m_PinMotorStrength" yaml:"m_PinMotorStrength"`
	PinTargetVelocity      float32    `json:"m_PinTargetVelocity" yaml:"m_PinTargetVelocity"`
	PointsLocalSpace       []Vec2     `json:"m_PointsLocalSpace" yaml:"m_PointsLocalSpace"`
	StaticPins             []Vec3     `json:"m_StaticPins" yaml:"m_StaticPins"`
	DynamicAnchorGUIDs     []string   `json:"m_DynamicAnchorGuids" yaml:"m_DynamicAnchorGuids"`
}

type Workshop struct {
	ID            string   `json:"m_Id" yaml:"m_Id"`
	LeaderboardID string   `json:"m_LeaderboardId" yaml:"m_LeaderboardId"`
	Title         string   `json:"m_Title" yaml:"m_Title"`
	Description   string   `json:"m_Description" yaml:"m_Description"`
	AutoPlay      bool     `json:"m_AutoPlay" yaml:"m_AutoPlay"`
	Tags          []string `json:"m_Tags" yaml:"m_Tags"`
}

type SupportPillar struct {
	Pos        Vec3   `json:"m_Pos" yaml:"m_Pos"`
	Scale      Vec3   `json:"m_Scale" yaml:"m_Scale"`
	PrefabName string `json:"m_PrefabName" yaml:"m_PrefabName"`
}

type Pillar struct {
	Pos        Vec3    `json:"m_Pos" yaml:"m_Pos"`
	Height     float32 `json:"m_Height" yaml:"m_Height"`
	PrefabName string  `json:"m_PrefabName" yaml:"m_PrefabName"`
}
