package model

// Bridge is the independently versioned bridge aggregate embedded in both
// layouts and save slots.
type Bridge struct {
	Version              int                  `json:"m_Version" yaml:"m_Version"`
	Joints               []BridgeJoint        `json:"m_BridgeJoints" yaml:"m_BridgeJoints"`
	Edges                []BridgeEdge         `json:"m_BridgeEdges" yaml:"m_BridgeEdges"`
	Springs              []BridgeSpring       `json:"m_BridgeSprings" yaml:"m_BridgeSprings"`
	Pistons              []Piston             `json:"m_Pistons" yaml:"m_Pistons"`
	HydraulicsController HydraulicsController `json:"m_HydraulicsController" yaml:"m_HydraulicsController"`
	Anchors              []BridgeJoint        `json:"m_Anchors" yaml:"m_Anchors"`
}

// BridgeJoint is also used for layout-level anchors.
type BridgeJoint struct {
	Pos      Vec3   `json:"m_Pos" yaml:"m_Pos"`
	IsAnchor bool   `json:"m_IsAnchor" yaml:"m_IsAnchor"`
	IsSplit  bool   `json:"m_IsSplit" yaml:"m_IsSplit"`
	GUID     string `json:"m_Guid" yaml:"m_Guid"`
}

type BridgeEdge struct {
	Material   Material       `json:"m_Material" yaml:"m_Material"`
	NodeAGUID  string         `json:"m_NodeA_Guid" yaml:"m_NodeA_Guid"`
	NodeBGUID  string         `json:"m_NodeB_Guid" yaml:"m_NodeB_Guid"`
	JointAPart SplitJointPart `json:"m_JointAPart" yaml:"m_JointAPart"`
	JointBPart SplitJointPart `json:"m_JointBPart" yaml:"m_JointBPart"`
	GUID       string         `json:"m_Guid" yaml:"m_Guid"`
}

type BridgeSpring struct {
	NormalizedValue float32 `json:"m_NormalizedValue" yaml:"m_NormalizedValue"`
	NodeAGUID       string  `json:"m_NodeA_Guid" yaml:"m_NodeA_Guid"`
	NodeBGUID       string  `json:"m_NodeB_Guid" yaml:"m_NodeB_Guid"`
	GUID            string  `json:"m_Guid" yaml:"m_Guid"`
}

// Piston.NormalizedValue is always in the current representation; legacy
// values are remapped while decoding.
type Piston struct {
	NormalizedValue float32 `json:"m_NormalizedValue" yaml:"m_NormalizedValue"`
	NodeAGUID       string  `json:"m_NodeA_Guid" yaml:"m_NodeA_Guid"`
	NodeBGUID       string  `json:"m_NodeB_Guid" yaml:"m_NodeB_Guid"`
	GUID            string  `json:"m_Guid" yaml:"m_Guid"`
}

type HydraulicsController struct {
	Phases []HydraulicsControllerPhase `json:"m_Phases" yaml:"m_Phases"`
}

type HydraulicsControllerPhase struct {
	PhaseGUID           string             `json:"m_HydraulicsPhaseGuid" yaml:"m_HydraulicsPhaseGuid"`
	PistonGUIDs         []string           `json:"m_PistonGuids" yaml:"m_PistonGuids"`
	SplitJoints         []BridgeSplitJoint `json:"m_BridgeSplitJoints" yaml:"m_BridgeSplitJoints"`
	DisableNewAdditions bool               `json:"m_DisableNewAdditions" yaml:"m_DisableNewAdditions"`
}

type BridgeSplitJoint struct {
	GUID  string          `json:"m_BridgeJointGuid" yaml:"m_BridgeJointGuid"`
	State SplitJointState `json:"m_SplitJointState" yaml:"m_SplitJointState"`
}
