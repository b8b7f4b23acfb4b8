package in

import (
	"context"

	"intervue/internal/modules/assessor/dto"
	assessorin "intervue/internal/modules/assessor/port/in"
)

// CLIHandler exposes question generation for inspection from the command
// line without starting an interview.
type CLIHandler struct {
	usecase assessorin.Usecase
}

func NewCLIHandler(usecase assessorin.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

func (h *CLIHandler) Preview(ctx context.Context, role, candidateContext string) (dto.GenerateOutput, error) {
	return h.usecase.GenerateQuestions(ctx, dto.GenerateInput{Role: role, Context: candidateContext})
}
