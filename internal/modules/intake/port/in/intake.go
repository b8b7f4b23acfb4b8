package in

import (
	"context"

	"intervue/internal/modules/intake/dto"
)

type Usecase interface {
	IngestFile(ctx context.Context, input dto.IngestFileInput) (dto.IngestOutput, error)
}
