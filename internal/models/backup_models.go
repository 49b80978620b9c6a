package models

import "time"

// BackupSnapshot is the file-based backup payload: a full JSON dump of the
// inventory and its movement history at one point in time.
type BackupSnapshot struct {
	SnapshotID string             `json:"snapshot_id"`
	Version    int                `json:"version"`
	CreatedAt  time.Time          `json:"created_at"`
	Cylinders  []Cylinder         `json:"cylinders"`
	Movements  []CylinderMovement `json:"movements"`
}

// BackupSnapshotVersion is the current snapshot format version.
const BackupSnapshotVersion = 1
