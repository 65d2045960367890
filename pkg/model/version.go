package model

// Newest format revisions this module reads without warning and writes.
const (
	MaxLayoutVersion  = 26
	MaxBridgeVersion  = 11
	MaxSlotVersion    = 3
	MaxPhysicsVersion = 1
)
