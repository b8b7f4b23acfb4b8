package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"intervue/internal/modules/interview/domain"
	interviewout "intervue/internal/modules/interview/port/out"
	"intervue/internal/platform/clock"
	apperrors "intervue/internal/platform/errors"
)

// Chat roles mirror the candidate module's transcript roles.
const (
	roleAI          = "ai"
	roleCandidate   = "candidate"
	roleInterviewer = "interviewer"
)

const readyMessage = "Your profile is complete. Send \"start\" whenever you are ready to begin the test."

// InterviewService owns the side effects around the session state machine:
// candidate lookups, chat transcript appends, snapshot persistence and the
// hand-offs to question generation and grading.
type InterviewService struct {
	clock     clock.Clock
	directory interviewout.CandidateDirectory
	questions interviewout.QuestionService
	grader    interviewout.GradingService
	snapshots interviewout.SnapshotStore
	logger    *zap.Logger
}

func NewInterviewService(
	c clock.Clock,
	directory interviewout.CandidateDirectory,
	questions interviewout.QuestionService,
	grader interviewout.GradingService,
	snapshots interviewout.SnapshotStore,
	logger *zap.Logger,
) *InterviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewService{
		clock:     c,
		directory: directory,
		questions: questions,
		grader:    grader,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *InterviewService) Candidate(ctx context.Context, candidateID string) (interviewout.CandidateInfo, error) {
	return s.directory.Get(ctx, candidateID)
}

// Activate opens a session for the candidate, greeting them with either the
// first missing profile prompt or the ready-to-start message.
func (s *InterviewService) Activate(ctx context.Context, candidateID string) (domain.Session, interviewout.CandidateInfo, error) {
	info, err := s.directory.Get(ctx, candidateID)
	if err != nil {
		return domain.Session{}, interviewout.CandidateInfo{}, err
	}
	if info.TestCompleted {
		return domain.Session{}, info, fmt.Errorf("%w: candidate %s already finished the test", apperrors.ErrTestCompleted, candidateID)
	}

	session := domain.NewSession(candidateID, missingFields(info))
	greeting := readyMessage
	if field, ok := session.AwaitingField(); ok {
		greeting = domain.PromptForField(field)
	}
	if err := s.directory.AppendMessage(ctx, candidateID, roleAI, greeting, nil); err != nil {
		return domain.Session{}, info, err
	}
	if err := s.Persist(ctx, session); err != nil {
		return domain.Session{}, info, err
	}
	return session, info, nil
}

// Restore rebuilds the session from the snapshot on disk. A snapshot whose
// candidate is gone or already finished is stale and gets cleared.
func (s *InterviewService) Restore(ctx context.Context) (domain.Session, interviewout.CandidateInfo, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return domain.Session{}, interviewout.CandidateInfo{}, err
	}
	info, err := s.directory.Get(ctx, snap.CandidateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("discarding snapshot for missing candidate", zap.String("candidate_id", snap.CandidateID))
			_ = s.snapshots.Clear(ctx)
			return domain.Session{}, interviewout.CandidateInfo{}, apperrors.ErrNoActiveInterview
		}
		return domain.Session{}, interviewout.CandidateInfo{}, err
	}
	if info.TestCompleted {
		_ = s.snapshots.Clear(ctx)
		return domain.Session{}, interviewout.CandidateInfo{}, apperrors.ErrNoActiveInterview
	}
	return domain.SessionFromSnapshot(snap), info, nil
}

// SubmitProfileField routes free text at the awaited profile field. Invalid
// values leave the session and the chat untouched and return the rejection
// reason as a notice rather than an error; only an accepted value is
// appended to the transcript.
func (s *InterviewService) SubmitProfileField(ctx context.Context, session domain.Session, text string) (domain.Session, string, error) {
	next, field, normalized, err := session.AcceptProfileField(text)
	if err != nil {
		var invalid *domain.ValidationError
		if !errors.As(err, &invalid) {
			return session, "", err
		}
		return session, domain.RepromptForField(invalid.Field, invalid.Reason), nil
	}

	if err := s.directory.AppendMessage(ctx, session.CandidateID, roleCandidate, text, nil); err != nil {
		return session, "", err
	}
	if err := s.directory.UpdateProfile(ctx, session.CandidateID, field, normalized); err != nil {
		return session, "", err
	}

	reply := readyMessage
	if nextField, ok := next.AwaitingField(); ok {
		reply = domain.PromptForField(nextField)
	}
	if err := s.directory.AppendMessage(ctx, session.CandidateID, roleAI, reply, nil); err != nil {
		return next, "", err
	}
	if err := s.Persist(ctx, next); err != nil {
		return next, "", err
	}
	return next, "", nil
}

// GenerateQuestions performs the upstream call. Callers must not hold
// session state exclusively while this runs.
func (s *InterviewService) GenerateQuestions(ctx context.Context, info interviewout.CandidateInfo) ([]domain.Question, bool, error) {
	return s.questions.GenerateQuestions(ctx, "", candidateContext(info))
}

// ArmQueue starts the test with the generated queue and posts the first
// question to the chat.
func (s *InterviewService) ArmQueue(ctx context.Context, session domain.Session, queue []domain.Question, fallback bool) (domain.Session, error) {
	next, err := session.Begin(queue)
	if err != nil {
		return session, err
	}
	if fallback {
		s.logger.Warn("starting test with fallback question set", zap.String("candidate_id", session.CandidateID))
	}
	if err := s.postCurrentQuestion(ctx, next); err != nil {
		return session, err
	}
	if err := s.Persist(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

// RecordAnswer stores the candidate's answer and advances, posting the next
// question when one remains.
func (s *InterviewService) RecordAnswer(ctx context.Context, session domain.Session, text string) (domain.Session, error) {
	if err := s.directory.AppendMessage(ctx, session.CandidateID, roleCandidate, text, nil); err != nil {
		return session, err
	}
	next, err := session.SubmitAnswer(text)
	if err != nil {
		return session, err
	}
	if next.Phase == domain.PhaseRunning {
		if err := s.postCurrentQuestion(ctx, next); err != nil {
			return session, err
		}
	}
	if err := s.Persist(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

// TickSession burns one second. Expiry records an empty answer without a
// chat entry and surfaces the next question when one remains.
func (s *InterviewService) TickSession(ctx context.Context, session domain.Session) (domain.Session, bool, error) {
	next, expired, err := session.Tick()
	if err != nil {
		return session, false, err
	}
	if expired && next.Phase == domain.PhaseRunning {
		if err := s.postCurrentQuestion(ctx, next); err != nil {
			return session, expired, err
		}
	}
	if err := s.Persist(ctx, next); err != nil {
		return next, expired, err
	}
	return next, expired, nil
}

func (s *InterviewService) Pause(ctx context.Context, session domain.Session) (domain.Session, error) {
	next, err := session.Pause()
	if err != nil {
		return session, err
	}
	if err := s.Persist(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

func (s *InterviewService) Resume(ctx context.Context, session domain.Session) (domain.Session, error) {
	next, err := session.Resume()
	if err != nil {
		return session, err
	}
	if err := s.Persist(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}

// Grade performs the upstream grading call. Callers must not hold session
// state exclusively while this runs.
func (s *InterviewService) Grade(ctx context.Context, session domain.Session, info interviewout.CandidateInfo) (domain.Result, bool, error) {
	return s.grader.Evaluate(ctx, session.Answers(), candidateContext(info))
}

// ApplyResult completes the session: per-question feedback lands in the chat
// with scores, the summary is posted, the candidate record is finalized and
// the snapshot cleared.
func (s *InterviewService) ApplyResult(ctx context.Context, session domain.Session, result domain.Result, fallback bool) (domain.Session, error) {
	next, err := session.Complete(result.TotalScore)
	if err != nil {
		return session, err
	}
	if fallback {
		s.logger.Warn("applied fallback grading", zap.String("candidate_id", session.CandidateID))
	}

	for _, score := range result.Scores {
		text := fmt.Sprintf("[%s] %s", score.QuestionID, score.Feedback)
		if err := s.directory.AppendMessage(ctx, next.CandidateID, roleInterviewer, text, &score.Score); err != nil {
			return next, err
		}
	}
	summary := fmt.Sprintf("Interview complete. Total score: %d. %s", result.TotalScore, result.Summary)
	if err := s.directory.AppendMessage(ctx, next.CandidateID, roleAI, summary, nil); err != nil {
		return next, err
	}
	if err := s.directory.SetResult(ctx, next.CandidateID, result.TotalScore, result.Summary); err != nil {
		return next, err
	}
	if err := s.snapshots.Clear(ctx); err != nil {
		return next, err
	}
	return next, nil
}

// DeleteCandidate removes the candidate record. Session cleanup is the
// caller's concern.
func (s *InterviewService) DeleteCandidate(ctx context.Context, candidateID string) error {
	return s.directory.Delete(ctx, candidateID)
}

func (s *InterviewService) ClearSnapshot(ctx context.Context) error {
	return s.snapshots.Clear(ctx)
}

func (s *InterviewService) Persist(ctx context.Context, session domain.Session) error {
	return s.snapshots.Save(ctx, session.Snapshot(s.clock.Now()))
}

func (s *InterviewService) postCurrentQuestion(ctx context.Context, session domain.Session) error {
	current, ok := session.Current()
	if !ok {
		return nil
	}
	text := fmt.Sprintf("Question %d/%d (%s, %ds): %s",
		session.Index+1, len(session.Queue), current.Difficulty, current.Difficulty.TimeLimit(), current.Text)
	return s.directory.AppendMessage(ctx, session.CandidateID, roleAI, text, nil)
}

func missingFields(info interviewout.CandidateInfo) []string {
	var missing []string
	for _, field := range domain.ProfileFieldOrder {
		switch field {
		case domain.FieldName:
			if strings.TrimSpace(info.Name) == "" {
				missing = append(missing, field)
			}
		case domain.FieldEmail:
			if strings.TrimSpace(info.Email) == "" {
				missing = append(missing, field)
			}
		case domain.FieldPhone:
			if strings.TrimSpace(info.Phone) == "" {
				missing = append(missing, field)
			}
		}
	}
	return missing
}

func candidateContext(info interviewout.CandidateInfo) string {
	parts := []string{}
	if info.Name != "" {
		parts = append(parts, "Candidate: "+info.Name)
	}
	if info.ResumeFile != "" {
		parts = append(parts, "Resume file: "+info.ResumeFile)
	}
	if len(parts) == 0 {
		return "No candidate context available."
	}
	return strings.Join(parts, ". ")
}
