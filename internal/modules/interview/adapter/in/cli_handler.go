package in

import (
	"context"
	"errors"

	"intervue/internal/modules/interview/dto"
	interviewin "intervue/internal/modules/interview/port/in"
	apperrors "intervue/internal/platform/errors"
)

type CLIHandler struct {
	usecase interviewin.Usecase
}

func NewCLIHandler(usecase interviewin.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

// Status restores the persisted interview if one exists and reports its
// state. No snapshot is not an error from the command line.
func (h *CLIHandler) Status(ctx context.Context) (dto.StateOutput, bool, error) {
	state, err := h.usecase.Recover(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveInterview) {
			return dto.StateOutput{}, false, nil
		}
		return dto.StateOutput{}, false, err
	}
	return state, true, nil
}

func (h *CLIHandler) DeleteCandidate(ctx context.Context, candidateID string) error {
	return h.usecase.DeleteCandidate(ctx, candidateID)
}
