package usecase

import (
	"context"
	"path/filepath"

	"intervue/internal/modules/intake/dto"
	intakein "intervue/internal/modules/intake/port/in"
	intakeout "intervue/internal/modules/intake/port/out"
	"intervue/internal/modules/intake/service"
)

type Interactor struct {
	svc      *service.IntakeService
	registry intakeout.CandidateRegistry
}

func NewInteractor(svc *service.IntakeService, registry intakeout.CandidateRegistry) intakein.Usecase {
	return &Interactor{svc: svc, registry: registry}
}

func (i *Interactor) IngestFile(ctx context.Context, input dto.IngestFileInput) (dto.IngestOutput, error) {
	profile, err := i.svc.ParseResume(ctx, input.Path)
	if err != nil {
		return dto.IngestOutput{}, err
	}

	resumeFile := filepath.Base(input.Path)
	candidateID, err := i.registry.Create(ctx, profile.Name, profile.Email, profile.Phone, resumeFile)
	if err != nil {
		return dto.IngestOutput{}, err
	}

	return dto.IngestOutput{
		CandidateID:   candidateID,
		Name:          profile.Name,
		Email:         profile.Email,
		Phone:         profile.Phone,
		ResumeFile:    resumeFile,
		MissingFields: profile.Missing(),
	}, nil
}
