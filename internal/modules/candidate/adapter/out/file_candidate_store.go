package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"intervue/internal/modules/candidate/domain"
	candidateout "intervue/internal/modules/candidate/port/out"
	apperrors "intervue/internal/platform/errors"
)

// record wraps a candidate with its schema version for forward-compatible
// migration of persisted files.
type record struct {
	SchemaVersion int              `json:"schema_version"`
	Candidate     domain.Candidate `json:"candidate"`
}

type FileCandidateStore struct {
	dir string
}

func NewFileCandidateStore(dataDir string) candidateout.CandidateStore {
	return &FileCandidateStore{dir: filepath.Join(dataDir, "candidates")}
}

func (s *FileCandidateStore) Save(_ context.Context, candidate domain.Candidate) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create candidates dir: %w", err)
	}
	payload, err := json.MarshalIndent(record{SchemaVersion: domain.SchemaVersion, Candidate: candidate}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal candidate: %w", err)
	}
	if err := os.WriteFile(s.path(candidate.ID), payload, 0o644); err != nil {
		return fmt.Errorf("write candidate record: %w", err)
	}
	return nil
}

func (s *FileCandidateStore) FindByID(_ context.Context, id string) (domain.Candidate, error) {
	payload, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Candidate{}, apperrors.ErrNotFound
		}
		return domain.Candidate{}, fmt.Errorf("read candidate record: %w", err)
	}
	return decode(payload)
}

func (s *FileCandidateStore) List(_ context.Context) ([]domain.Candidate, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob candidate records: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.Candidate, 0, len(matches))
	for _, path := range matches {
		payload, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		candidate, decErr := decode(payload)
		if decErr != nil {
			return nil, fmt.Errorf("decode %s: %w", path, decErr)
		}
		out = append(out, candidate)
	}
	return out, nil
}

func (s *FileCandidateStore) Delete(_ context.Context, id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete candidate record: %w", err)
	}
	return nil
}

func (s *FileCandidateStore) path(id string) string {
	// IDs are generated UUIDs, but never trust them as path segments.
	safe := strings.ReplaceAll(id, string(filepath.Separator), "_")
	return filepath.Join(s.dir, safe+".json")
}

func decode(payload []byte) (domain.Candidate, error) {
	rec := record{}
	if err := json.Unmarshal(payload, &rec); err != nil {
		return domain.Candidate{}, fmt.Errorf("decode candidate: %w", err)
	}
	if rec.SchemaVersion > domain.SchemaVersion {
		return domain.Candidate{}, fmt.Errorf("candidate record schema %d is newer than supported %d", rec.SchemaVersion, domain.SchemaVersion)
	}
	if rec.Candidate.ID == "" {
		return domain.Candidate{}, apperrors.ErrNotFound
	}
	return rec.Candidate, nil
}
