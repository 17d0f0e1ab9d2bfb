package domain

import "time"

// SnapshotMeta describes when and how a backup snapshot was written.
type SnapshotMeta struct {
	Storage   string    `json:"storage"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is a full export of the planner state, used for backup and
// restore alongside the database.
type Snapshot struct {
	Meta         SnapshotMeta  `json:"_meta"`
	Transactions []Transaction `json:"transactions"`
	DebtAccounts []DebtAccount `json:"debtAccounts"`
	Categories   []Category    `json:"categories"`
	Settings     Settings      `json:"settings"`
}

type SnapshotStore interface {
	Save(path string, snapshot Snapshot) error
	Load(path string) (Snapshot, error)
}
