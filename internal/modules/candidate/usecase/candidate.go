package usecase

import (
	"context"

	"intervue/internal/modules/candidate/domain"
	"intervue/internal/modules/candidate/dto"
	candidatein "intervue/internal/modules/candidate/port/in"
	"intervue/internal/modules/candidate/service"
)

type Interactor struct {
	svc *service.CandidateService
}

func NewInteractor(svc *service.CandidateService) candidatein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.CandidateOutput, error) {
	candidate, err := i.svc.Create(ctx, input.Name, input.Email, input.Phone, input.ResumeFile)
	if err != nil {
		return dto.CandidateOutput{}, err
	}
	return toOutput(candidate), nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.CandidateDetailOutput, error) {
	candidate, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.CandidateDetailOutput{}, err
	}
	detail := dto.CandidateDetailOutput{CandidateOutput: toOutput(candidate)}
	detail.Chat = make([]dto.MessageOutput, 0, len(candidate.Chat))
	for _, msg := range candidate.Chat {
		detail.Chat = append(detail.Chat, toMessageOutput(msg))
	}
	return detail, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.CandidateOutput, error) {
	candidates, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CandidateOutput, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, toOutput(candidate))
	}
	return out, nil
}

func (i *Interactor) AppendMessage(ctx context.Context, input dto.AppendMessageInput) (dto.MessageOutput, error) {
	msg, err := i.svc.AppendMessage(ctx, input.CandidateID, domain.Role(input.Role), input.Text, input.Score)
	if err != nil {
		return dto.MessageOutput{}, err
	}
	return toMessageOutput(msg), nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.CandidateOutput, error) {
	candidate, err := i.svc.UpdateProfile(ctx, input.CandidateID, input.Field, input.Value)
	if err != nil {
		return dto.CandidateOutput{}, err
	}
	return toOutput(candidate), nil
}

func (i *Interactor) SetResult(ctx context.Context, input dto.SetResultInput) (dto.CandidateOutput, error) {
	candidate, err := i.svc.SetResult(ctx, input.CandidateID, input.Score, input.Summary)
	if err != nil {
		return dto.CandidateOutput{}, err
	}
	return toOutput(candidate), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toOutput(candidate domain.Candidate) dto.CandidateOutput {
	return dto.CandidateOutput{
		ID:            candidate.ID,
		Name:          candidate.Name,
		Email:         candidate.Email,
		Phone:         candidate.Phone,
		ResumeFile:    candidate.ResumeFile,
		CreatedAt:     candidate.CreatedAt,
		Score:         candidate.Score,
		Summary:       candidate.Summary,
		TestCompleted: candidate.TestCompleted,
	}
}

func toMessageOutput(msg domain.ChatMessage) dto.MessageOutput {
	return dto.MessageOutput{
		ID:        msg.ID,
		Role:      string(msg.Role),
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
		Score:     msg.Score,
	}
}
