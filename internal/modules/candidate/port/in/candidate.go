package in

import (
	"context"

	"intervue/internal/modules/candidate/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.CandidateOutput, error)
	Get(ctx context.Context, id string) (dto.CandidateDetailOutput, error)
	List(ctx context.Context) ([]dto.CandidateOutput, error)
	AppendMessage(ctx context.Context, input dto.AppendMessageInput) (dto.MessageOutput, error)
	UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.CandidateOutput, error)
	SetResult(ctx context.Context, input dto.SetResultInput) (dto.CandidateOutput, error)
	Delete(ctx context.Context, id string) error
	Reindex(ctx context.Context) error
}
