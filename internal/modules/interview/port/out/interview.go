package out

import (
	"context"

	"intervue/internal/modules/interview/domain"
)

// QuestionService produces the question queue for a test run. The bool
// reports whether a deterministic fallback set was substituted.
type QuestionService interface {
	GenerateQuestions(ctx context.Context, role, candidateContext string) ([]domain.Question, bool, error)
}

// GradingService scores collected answers. The bool reports fallback grading.
type GradingService interface {
	Evaluate(ctx context.Context, answers []domain.Answer, candidateContext string) (domain.Result, bool, error)
}

// SnapshotStore persists the single active interview for crash recovery.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Load(ctx context.Context) (domain.Snapshot, error)
	Clear(ctx context.Context) error
}

type CandidateInfo struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	ResumeFile    string
	Summary       string
	TestCompleted bool
}

// CandidateDirectory is the interview module's view of candidate records.
type CandidateDirectory interface {
	Get(ctx context.Context, candidateID string) (CandidateInfo, error)
	AppendMessage(ctx context.Context, candidateID, role, text string, score *int) error
	UpdateProfile(ctx context.Context, candidateID, field, value string) error
	SetResult(ctx context.Context, candidateID string, score int, summary string) error
	Delete(ctx context.Context, candidateID string) error
}
