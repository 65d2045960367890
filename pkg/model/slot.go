package model

// SaveSlot is the decoded form of a .slot file.
type SaveSlot struct {
	Version                 int    `json:"m_Version" yaml:"m_Version"`
	PhysicsVersion          int    `json:"m_PhysicsVersion" yaml:"m_PhysicsVersion"`
	SlotID                  int    `json:"m_SlotID" yaml:"m_SlotID"`
	DisplayName             string `json:"m_DisplayName" yaml:"m_DisplayName"`
	FileName                string `json:"m_SlotFilename" yaml:"m_SlotFilename"`
	Budget                  int    `json:"m_Budget" yaml:"m_Budget"`
	LastWriteTimeTicks      int64  `json:"m_LastWriteTimeTicks" yaml:"m_LastWriteTimeTicks"`
	Bridge                  Bridge `json:"m_Bridge" yaml:"m_Bridge"`
	Thumbnail               []byte `json:"m_Thumb,omitempty" yaml:"m_Thumb,omitempty"`
	UsingUnlimitedMaterials bool   `json:"m_UsingUnlimitedMaterials" yaml:"m_UsingUnlimitedMaterials"`
	UsingUnlimitedBudget    bool   `json:"m_UsingUnlimitedBudget" yaml:"m_UsingUnlimitedBudget"`
}
