package out

import (
	"context"

	candidatedto "intervue/internal/modules/candidate/dto"
	candidatein "intervue/internal/modules/candidate/port/in"
	intakeout "intervue/internal/modules/intake/port/out"
)

type CandidateRegistryAdapter struct {
	candidates candidatein.Usecase
}

func NewCandidateRegistryAdapter(candidates candidatein.Usecase) intakeout.CandidateRegistry {
	return &CandidateRegistryAdapter{candidates: candidates}
}

func (a *CandidateRegistryAdapter) Create(ctx context.Context, name, email, phone, resumeFile string) (string, error) {
	out, err := a.candidates.Create(ctx, candidatedto.CreateInput{
		Name:       name,
		Email:      email,
		Phone:      phone,
		ResumeFile: resumeFile,
	})
	if err != nil {
		return "", err
	}
	return out.ID, nil
}
