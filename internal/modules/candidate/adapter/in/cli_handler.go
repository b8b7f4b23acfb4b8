package in

import (
	"context"

	"intervue/internal/modules/candidate/dto"
	candidatein "intervue/internal/modules/candidate/port/in"
)

type CLIHandler struct {
	usecase candidatein.Usecase
}

func NewCLIHandler(usecase candidatein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.CandidateOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.CandidateDetailOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
