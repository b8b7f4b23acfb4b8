package out

import (
	"context"

	candidatedto "intervue/internal/modules/candidate/dto"
	candidatein "intervue/internal/modules/candidate/port/in"
	interviewout "intervue/internal/modules/interview/port/out"
)

// CandidateDirectoryAdapter bridges the interview module to the candidate
// module through its inbound port.
type CandidateDirectoryAdapter struct {
	candidates candidatein.Usecase
}

func NewCandidateDirectoryAdapter(candidates candidatein.Usecase) interviewout.CandidateDirectory {
	return &CandidateDirectoryAdapter{candidates: candidates}
}

func (a *CandidateDirectoryAdapter) Get(ctx context.Context, candidateID string) (interviewout.CandidateInfo, error) {
	detail, err := a.candidates.Get(ctx, candidateID)
	if err != nil {
		return interviewout.CandidateInfo{}, err
	}
	return interviewout.CandidateInfo{
		ID:            detail.ID,
		Name:          detail.Name,
		Email:         detail.Email,
		Phone:         detail.Phone,
		ResumeFile:    detail.ResumeFile,
		Summary:       detail.Summary,
		TestCompleted: detail.TestCompleted,
	}, nil
}

func (a *CandidateDirectoryAdapter) AppendMessage(ctx context.Context, candidateID, role, text string, score *int) error {
	_, err := a.candidates.AppendMessage(ctx, candidatedto.AppendMessageInput{
		CandidateID: candidateID,
		Role:        role,
		Text:        text,
		Score:       score,
	})
	return err
}

func (a *CandidateDirectoryAdapter) UpdateProfile(ctx context.Context, candidateID, field, value string) error {
	_, err := a.candidates.UpdateProfile(ctx, candidatedto.UpdateProfileInput{
		CandidateID: candidateID,
		Field:       field,
		Value:       value,
	})
	return err
}

func (a *CandidateDirectoryAdapter) SetResult(ctx context.Context, candidateID string, score int, summary string) error {
	_, err := a.candidates.SetResult(ctx, candidatedto.SetResultInput{
		CandidateID: candidateID,
		Score:       score,
		Summary:     summary,
	})
	return err
}

func (a *CandidateDirectoryAdapter) Delete(ctx context.Context, candidateID string) error {
	return a.candidates.Delete(ctx, candidateID)
}
