package out

import (
	"context"

	"intervue/internal/modules/candidate/domain"
)

// CandidateStore is the durable source of truth for candidate records.
type CandidateStore interface {
	Save(ctx context.Context, candidate domain.Candidate) error
	FindByID(ctx context.Context, id string) (domain.Candidate, error)
	List(ctx context.Context) ([]domain.Candidate, error)
	Delete(ctx context.Context, id string) error
}

// CandidateIndexProjector maintains the queryable dashboard read model.
type CandidateIndexProjector interface {
	Upsert(ctx context.Context, candidate domain.Candidate) error
	Remove(ctx context.Context, id string) error
	ListRanked(ctx context.Context) ([]domain.Candidate, error)
	Reset(ctx context.Context) error
}
