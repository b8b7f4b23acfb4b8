package usecase

import (
	"context"
	"fmt"
	"sync"

	"intervue/internal/modules/interview/domain"
	"intervue/internal/modules/interview/dto"
	interviewout "intervue/internal/modules/interview/port/out"
	"intervue/internal/modules/interview/service"
	apperrors "intervue/internal/platform/errors"
)

// Interactor serializes access to the single active session. Upstream calls
// (question generation, grading) run outside the lock with an in-flight
// guard; their results are re-validated against the session afterwards so a
// concurrent delete turns them into no-ops.
type Interactor struct {
	mu      sync.Mutex
	service *service.InterviewService

	session *domain.Session
	info    interviewout.CandidateInfo

	generating bool
	evaluating bool

	lastSummary  string
	lastFallback bool
}

func NewInteractor(interviewService *service.InterviewService) *Interactor {
	return &Interactor{service: interviewService}
}

func (i *Interactor) Activate(ctx context.Context, input dto.ActivateInput) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.generating || i.evaluating {
		return dto.StateOutput{}, fmt.Errorf("%w: a request for the current session is still running", apperrors.ErrRequestInFlight)
	}

	session, info, err := i.service.Activate(ctx, input.CandidateID)
	if err != nil {
		return dto.StateOutput{}, err
	}
	i.session = &session
	i.info = info
	i.lastSummary = ""
	i.lastFallback = false
	return i.stateLocked(""), nil
}

func (i *Interactor) Recover(ctx context.Context) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	session, info, err := i.service.Restore(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	i.session = &session
	i.info = info
	return i.stateLocked(recoveryNotice(session.Phase)), nil
}

func recoveryNotice(phase domain.Phase) string {
	switch phase {
	case domain.PhaseCollectingProfile:
		return "Previous interview restored. A few profile details are still needed."
	case domain.PhaseAwaitingStart:
		return "Previous interview restored. Start the test when ready."
	default:
		return "Previous interview restored. It is paused until you resume."
	}
}

func (i *Interactor) Submit(ctx context.Context, input dto.SubmitInput) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.session == nil {
		return dto.StateOutput{}, apperrors.ErrNoActiveInterview
	}

	switch i.session.Phase {
	case domain.PhaseCollectingProfile:
		session, notice, err := i.service.SubmitProfileField(ctx, *i.session, input.Text)
		if err != nil {
			return dto.StateOutput{}, err
		}
		i.session = &session
		i.refreshInfo(ctx)
		return i.stateLocked(notice), nil
	case domain.PhaseAwaitingStart:
		return i.stateLocked("Profile complete. Start the test to begin."), nil
	case domain.PhaseRunning:
		session, err := i.service.RecordAnswer(ctx, *i.session, input.Text)
		if err != nil {
			return dto.StateOutput{}, err
		}
		i.session = &session
		return i.stateLocked(""), nil
	case domain.PhasePaused:
		return i.stateLocked("Interview is paused. Resume to continue."), nil
	default:
		return dto.StateOutput{}, fmt.Errorf("%w: cannot accept input in phase %s", apperrors.ErrWrongPhase, i.session.Phase)
	}
}

// StartTest generates the question queue and arms the first question. The
// generation call runs unlocked; a session change while it was in flight
// discards the result.
func (i *Interactor) StartTest(ctx context.Context) (dto.StateOutput, error) {
	i.mu.Lock()
	if i.session == nil {
		i.mu.Unlock()
		return dto.StateOutput{}, apperrors.ErrNoActiveInterview
	}
	if i.session.Phase != domain.PhaseAwaitingStart {
		phase := i.session.Phase
		i.mu.Unlock()
		return dto.StateOutput{}, fmt.Errorf("%w: cannot start the test in phase %s", apperrors.ErrWrongPhase, phase)
	}
	if i.generating {
		i.mu.Unlock()
		return dto.StateOutput{}, fmt.Errorf("%w: question generation already running", apperrors.ErrRequestInFlight)
	}
	i.generating = true
	candidateID := i.session.CandidateID
	info := i.info
	i.mu.Unlock()

	queue, fallback, err := i.service.GenerateQuestions(ctx, info)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.generating = false

	if err != nil {
		return dto.StateOutput{}, err
	}
	if i.session == nil || i.session.CandidateID != candidateID || i.session.Phase != domain.PhaseAwaitingStart {
		return dto.StateOutput{}, fmt.Errorf("%w: session changed while generating questions", apperrors.ErrNoActiveInterview)
	}

	session, err := i.service.ArmQueue(ctx, *i.session, queue, fallback)
	if err != nil {
		return dto.StateOutput{}, err
	}
	i.session = &session
	i.lastFallback = fallback
	notice := ""
	if fallback {
		notice = "Question service unavailable; using the built-in question set."
	}
	return i.stateLocked(notice), nil
}

// Tick advances the countdown by one second. Ticks armed for a question
// index the session has already moved past are ignored.
func (i *Interactor) Tick(ctx context.Context, input dto.TickInput) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.session == nil || i.session.Phase != domain.PhaseRunning || i.session.Index != input.Index {
		return i.stateLocked(""), nil
	}

	session, _, err := i.service.TickSession(ctx, *i.session)
	if err != nil {
		return dto.StateOutput{}, err
	}
	i.session = &session
	return i.stateLocked(""), nil
}

func (i *Interactor) Pause(ctx context.Context) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.session == nil {
		return dto.StateOutput{}, apperrors.ErrNoActiveInterview
	}
	session, err := i.service.Pause(ctx, *i.session)
	if err != nil {
		return dto.StateOutput{}, err
	}
	i.session = &session
	return i.stateLocked(""), nil
}

func (i *Interactor) Resume(ctx context.Context) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.session == nil {
		return dto.StateOutput{}, apperrors.ErrNoActiveInterview
	}
	session, err := i.service.Resume(ctx, *i.session)
	if err != nil {
		return dto.StateOutput{}, err
	}
	i.session = &session
	return i.stateLocked(""), nil
}

// Evaluate grades the collected answers and finalizes the candidate. The
// grading call runs unlocked; deleting the candidate meanwhile turns the
// completion into a no-op.
func (i *Interactor) Evaluate(ctx context.Context) (dto.StateOutput, error) {
	i.mu.Lock()
	if i.session == nil {
		i.mu.Unlock()
		return dto.StateOutput{}, apperrors.ErrNoActiveInterview
	}
	if i.session.Phase != domain.PhaseEvaluating {
		phase := i.session.Phase
		i.mu.Unlock()
		return dto.StateOutput{}, fmt.Errorf("%w: cannot evaluate in phase %s", apperrors.ErrWrongPhase, phase)
	}
	if i.evaluating {
		i.mu.Unlock()
		return dto.StateOutput{}, fmt.Errorf("%w: evaluation already running", apperrors.ErrRequestInFlight)
	}
	i.evaluating = true
	candidateID := i.session.CandidateID
	snapshot := *i.session
	info := i.info
	i.mu.Unlock()

	result, fallback, err := i.service.Grade(ctx, snapshot, info)

	i.mu.Lock()
	defer i.mu.Unlock()
	i.evaluating = false

	if err != nil {
		return dto.StateOutput{}, err
	}
	if i.session == nil || i.session.CandidateID != candidateID || i.session.Phase != domain.PhaseEvaluating {
		return dto.StateOutput{}, fmt.Errorf("%w: session changed while evaluating", apperrors.ErrNoActiveInterview)
	}

	session, err := i.service.ApplyResult(ctx, *i.session, result, fallback)
	if err != nil {
		return dto.StateOutput{}, err
	}
	i.session = &session
	i.lastSummary = result.Summary
	i.lastFallback = fallback
	notice := ""
	if fallback {
		notice = "Grading service unavailable; fallback scoring applied."
	}
	return i.stateLocked(notice), nil
}

// DeleteCandidate removes the record and, when it backs the active session,
// drops the session and its snapshot.
func (i *Interactor) DeleteCandidate(ctx context.Context, candidateID string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.service.DeleteCandidate(ctx, candidateID); err != nil {
		return err
	}
	if i.session != nil && i.session.CandidateID == candidateID {
		i.session = nil
		i.info = interviewout.CandidateInfo{}
		if err := i.service.ClearSnapshot(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interactor) State(_ context.Context) (dto.StateOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stateLocked(""), nil
}

func (i *Interactor) refreshInfo(ctx context.Context) {
	if i.session == nil {
		return
	}
	if info, err := i.service.Candidate(ctx, i.session.CandidateID); err == nil {
		i.info = info
	}
}

func (i *Interactor) stateLocked(notice string) dto.StateOutput {
	if i.session == nil {
		return dto.StateOutput{Phase: string(domain.PhaseIdle), Notice: notice}
	}

	state := dto.StateOutput{
		CandidateID:      i.session.CandidateID,
		CandidateName:    i.info.Name,
		Phase:            string(i.session.Phase),
		QuestionIndex:    i.session.Index,
		QuestionCount:    len(i.session.Queue),
		RemainingSeconds: i.session.Remaining,
		TotalScore:       i.session.TotalScore,
		Summary:          i.lastSummary,
		NeedsEvaluation:  i.session.Phase == domain.PhaseEvaluating && !i.evaluating,
		Notice:           notice,
	}
	if field, ok := i.session.AwaitingField(); ok {
		state.AwaitingField = field
	}
	if current, ok := i.session.Current(); ok {
		state.QuestionID = current.ID
		state.QuestionText = current.Text
		state.Difficulty = string(current.Difficulty)
	}
	return state
}
