package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"intervue/internal/modules/candidate/domain"
	candidateout "intervue/internal/modules/candidate/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteCandidateProjector struct {
	db *sql.DB
}

func NewSQLiteCandidateProjector(dbPath string) (candidateout.CandidateIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteCandidateProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteCandidateProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS candidates (
  id TEXT PRIMARY KEY,
  name TEXT,
  email TEXT,
  phone TEXT,
  resume_file TEXT,
  score INTEGER NOT NULL,
  summary TEXT,
  test_completed INTEGER NOT NULL,
  created_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create candidates table: %w", err)
	}
	return nil
}

func (s *SQLiteCandidateProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM candidates`); err != nil {
		return fmt.Errorf("reset candidates: %w", err)
	}
	return nil
}

func (s *SQLiteCandidateProjector) Upsert(ctx context.Context, candidate domain.Candidate) error {
	const stmt = `
INSERT INTO candidates (id, name, email, phone, resume_file, score, summary, test_completed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  email=excluded.email,
  phone=excluded.phone,
  resume_file=excluded.resume_file,
  score=excluded.score,
  summary=excluded.summary,
  test_completed=excluded.test_completed,
  created_at=excluded.created_at;
`
	completed := 0
	if candidate.TestCompleted {
		completed = 1
	}
	_, err := s.db.ExecContext(ctx, stmt,
		candidate.ID,
		candidate.Name,
		candidate.Email,
		candidate.Phone,
		candidate.ResumeFile,
		candidate.Score,
		candidate.Summary,
		completed,
		candidate.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert candidate: %w", err)
	}
	return nil
}

func (s *SQLiteCandidateProjector) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove candidate: %w", err)
	}
	return nil
}

// ListRanked returns the dashboard ordering: highest score first, ties by
// arrival time. Chat transcripts are not projected; fetch them from the store.
func (s *SQLiteCandidateProjector) ListRanked(ctx context.Context) ([]domain.Candidate, error) {
	const q = `
SELECT id, name, email, phone, resume_file, score, summary, test_completed, created_at
FROM candidates
ORDER BY score DESC, created_at ASC`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []domain.Candidate
	for rows.Next() {
		var candidate domain.Candidate
		var completed int
		var createdAt string
		if err := rows.Scan(
			&candidate.ID,
			&candidate.Name,
			&candidate.Email,
			&candidate.Phone,
			&candidate.ResumeFile,
			&candidate.Score,
			&candidate.Summary,
			&completed,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan candidate row: %w", err)
		}
		candidate.TestCompleted = completed != 0
		candidate.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, candidate)
	}
	return out, rows.Err()
}
