package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"intervue/internal/modules/interview/domain"
	interviewout "intervue/internal/modules/interview/port/out"
	apperrors "intervue/internal/platform/errors"
)

type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(dataDir string) interviewout.SnapshotStore {
	return &FileSnapshotStore{path: filepath.Join(dataDir, ".intervue", "active-interview.json")}
}

func (s *FileSnapshotStore) Save(_ context.Context, snapshot domain.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *FileSnapshotStore) Load(_ context.Context) (domain.Snapshot, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, apperrors.ErrNoActiveInterview
		}
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	snapshot := domain.Snapshot{}
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snapshot.CandidateID == "" {
		return domain.Snapshot{}, apperrors.ErrNoActiveInterview
	}
	if snapshot.SchemaVersion > domain.SchemaVersion {
		return domain.Snapshot{}, fmt.Errorf("snapshot schema %d is newer than supported %d", snapshot.SchemaVersion, domain.SchemaVersion)
	}
	return snapshot, nil
}

func (s *FileSnapshotStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
