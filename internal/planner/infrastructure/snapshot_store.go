package infrastructure

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
)

const snapshotVersion = 1

// FileSnapshotStore persists snapshots as indented JSON files.
type FileSnapshotStore struct{}

func NewSnapshotStore() *FileSnapshotStore {
	return &FileSnapshotStore{}
}

// Load reads and decodes a snapshot file.
func (s *FileSnapshotStore) Load(path string) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snapshot, err
	}
	defer f.Close()
	err = json.NewDecoder(f).Decode(&snapshot)
	return snapshot, err
}

// Save writes the snapshot atomically: to a temp file first, then rename
// over the target, so an interrupted write never corrupts an existing
// backup.
func (s *FileSnapshotStore) Save(path string, snapshot domain.Snapshot) error {
	snapshot.Meta.Storage = "json_snapshot"
	snapshot.Meta.Version = snapshotVersion
	snapshot.Meta.Timestamp = time.Now()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
