package model

import "time"

// SnapshotPrefix marks a source id that names a stored snapshot.
const SnapshotPrefix = "snapshot:"

// Snapshot describes a category table imported into the snapshot store.
type Snapshot struct {
	CreatedAt time.Time
	ID        string
	Source    string
	Label     string
	RowCount  int
}

// SourceID returns the id the loader accepts for this snapshot.
func (s Snapshot) SourceID() string {
	return SnapshotPrefix + s.ID
}
