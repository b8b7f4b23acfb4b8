package in

import (
	"context"

	"intervue/internal/modules/intake/dto"
	intakein "intervue/internal/modules/intake/port/in"
)

type CLIHandler struct {
	usecase intakein.Usecase
}

func NewCLIHandler(usecase intakein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) IngestFile(ctx context.Context, path string) (dto.IngestOutput, error) {
	return h.usecase.IngestFile(ctx, dto.IngestFileInput{Path: path})
}
