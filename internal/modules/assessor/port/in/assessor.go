package in

import (
	"context"

	"intervue/internal/modules/assessor/dto"
)

// Usecase generates interview questions and grades collected answers.
type Usecase interface {
	GenerateQuestions(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error)
	Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error)
}
