package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	candidateout "intervue/internal/modules/candidate/adapter/out"
	"intervue/internal/modules/candidate/domain"
	"intervue/internal/modules/candidate/dto"
	candidatein "intervue/internal/modules/candidate/port/in"
	"intervue/internal/modules/candidate/service"
	"intervue/internal/modules/candidate/usecase"
	apperrors "intervue/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type memoryProjector struct {
	rows map[string]domain.Candidate
}

func newMemoryProjector() *memoryProjector {
	return &memoryProjector{rows: map[string]domain.Candidate{}}
}

func (p *memoryProjector) Upsert(_ context.Context, candidate domain.Candidate) error {
	p.rows[candidate.ID] = candidate
	return nil
}

func (p *memoryProjector) Remove(_ context.Context, id string) error {
	delete(p.rows, id)
	return nil
}

func (p *memoryProjector) ListRanked(context.Context) ([]domain.Candidate, error) {
	out := make([]domain.Candidate, 0, len(p.rows))
	for _, c := range p.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (p *memoryProjector) Reset(context.Context) error {
	p.rows = map[string]domain.Candidate{}
	return nil
}

func newUsecase(t *testing.T) (candidatein.Usecase, *memoryProjector) {
	t.Helper()
	projector := newMemoryProjector()
	svc := service.NewCandidateService(
		&fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		&seqID{},
		candidateout.NewFileCandidateStore(t.TempDir()),
		projector,
	)
	return usecase.NewInteractor(svc), projector
}

func TestCreateGetAndTranscriptOrder(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateInput{Email: "jane@example.com", ResumeFile: "jane.pdf"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.ResumeFile != "jane.pdf" {
		t.Fatalf("unexpected created candidate: %+v", created)
	}

	for i := 0; i < 3; i++ {
		role := "ai"
		if i%2 == 1 {
			role = "candidate"
		}
		if _, err := uc.AppendMessage(ctx, dto.AppendMessageInput{
			CandidateID: created.ID,
			Role:        role,
			Text:        fmt.Sprintf("message %d", i),
		}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	detail, err := uc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Chat) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(detail.Chat))
	}
	for i, msg := range detail.Chat {
		if msg.Text != fmt.Sprintf("message %d", i) {
			t.Fatalf("transcript out of order at %d: %q", i, msg.Text)
		}
	}
	if !detail.Chat[0].Timestamp.Before(detail.Chat[2].Timestamp) {
		t.Fatalf("timestamps must be monotonic")
	}
}

func TestConversationalMessagesFrozenAfterCompletion(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	ctx := context.Background()

	created, _ := uc.Create(ctx, dto.CreateInput{Name: "Jane"})
	if _, err := uc.SetResult(ctx, dto.SetResultInput{CandidateID: created.ID, Score: 9, Summary: "good"}); err != nil {
		t.Fatalf("set result: %v", err)
	}

	_, err := uc.AppendMessage(ctx, dto.AppendMessageInput{CandidateID: created.ID, Role: "candidate", Text: "late answer"})
	if !errors.Is(err, apperrors.ErrTestCompleted) {
		t.Fatalf("expected frozen transcript, got %v", err)
	}

	// System bookkeeping entries are still allowed.
	if _, err := uc.AppendMessage(ctx, dto.AppendMessageInput{CandidateID: created.ID, Role: "system", Text: "archived"}); err != nil {
		t.Fatalf("system message after completion: %v", err)
	}
}

func TestUpdateProfileRejectsUnknownField(t *testing.T) {
	t.Parallel()
	uc, _ := newUsecase(t)
	ctx := context.Background()

	created, _ := uc.Create(ctx, dto.CreateInput{})
	if _, err := uc.UpdateProfile(ctx, dto.UpdateProfileInput{CandidateID: created.ID, Field: "salary", Value: "1"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	updated, err := uc.UpdateProfile(ctx, dto.UpdateProfileInput{CandidateID: created.ID, Field: "phone", Value: " 9876543210 "})
	if err != nil || updated.Phone != "9876543210" {
		t.Fatalf("expected trimmed phone, got %+v err=%v", updated, err)
	}
}

func TestListRanksByScoreAndDeleteRemovesEverywhere(t *testing.T) {
	t.Parallel()
	uc, projector := newUsecase(t)
	ctx := context.Background()

	low, _ := uc.Create(ctx, dto.CreateInput{Name: "Low"})
	high, _ := uc.Create(ctx, dto.CreateInput{Name: "High"})
	if _, err := uc.SetResult(ctx, dto.SetResultInput{CandidateID: low.ID, Score: 3, Summary: "ok"}); err != nil {
		t.Fatalf("set low: %v", err)
	}
	if _, err := uc.SetResult(ctx, dto.SetResultInput{CandidateID: high.ID, Score: 11, Summary: "great"}); err != nil {
		t.Fatalf("set high: %v", err)
	}

	ranked, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ranked) != 2 || ranked[0].Name != "High" || ranked[1].Name != "Low" {
		t.Fatalf("expected score-descending order, got %+v", ranked)
	}

	if err := uc.Delete(ctx, high.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.Get(ctx, high.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, ok := projector.rows[high.ID]; ok {
		t.Fatalf("projection row must be removed on delete")
	}
	if err := uc.Delete(ctx, high.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("double delete must report not found, got %v", err)
	}
}

func TestReindexRebuildsProjection(t *testing.T) {
	t.Parallel()
	uc, projector := newUsecase(t)
	ctx := context.Background()

	a, _ := uc.Create(ctx, dto.CreateInput{Name: "A"})
	b, _ := uc.Create(ctx, dto.CreateInput{Name: "B"})

	// Simulate a stale projection.
	if err := projector.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if rows, _ := uc.List(ctx); len(rows) != 0 {
		t.Fatalf("expected empty projection, got %d", len(rows))
	}

	if err := uc.Reindex(ctx); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	rows, err := uc.List(ctx)
	if err != nil || len(rows) != 2 {
		t.Fatalf("expected both candidates after reindex, got %d err=%v", len(rows), err)
	}
	_ = a
	_ = b
}
