package in

import (
	"context"

	"intervue/internal/modules/interview/dto"
)

// Usecase drives one interview session at a time. Submit routes free text to
// whatever the session is waiting for: a profile field while collecting, an
// answer while running.
type Usecase interface {
	Activate(ctx context.Context, input dto.ActivateInput) (dto.StateOutput, error)
	Recover(ctx context.Context) (dto.StateOutput, error)
	Submit(ctx context.Context, input dto.SubmitInput) (dto.StateOutput, error)
	StartTest(ctx context.Context) (dto.StateOutput, error)
	Tick(ctx context.Context, input dto.TickInput) (dto.StateOutput, error)
	Pause(ctx context.Context) (dto.StateOutput, error)
	Resume(ctx context.Context) (dto.StateOutput, error)
	Evaluate(ctx context.Context) (dto.StateOutput, error)
	DeleteCandidate(ctx context.Context, candidateID string) error
	State(ctx context.Context) (dto.StateOutput, error)
}
