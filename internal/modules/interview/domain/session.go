package domain

import (
	"fmt"

	apperrors "intervue/internal/platform/errors"
)

type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseCollectingProfile Phase = "collecting-profile"
	PhaseAwaitingStart     Phase = "awaiting-start"
	PhaseRunning           Phase = "running"
	PhasePaused            Phase = "paused"
	PhaseEvaluating        Phase = "evaluating"
	PhaseCompleted         Phase = "completed"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// TimeLimit is the authoritative per-question allowance in seconds.
// Upstream services may suggest their own limits; those are ignored.
func (d Difficulty) TimeLimit() int {
	switch d {
	case DifficultyEasy:
		return 20
	case DifficultyHard:
		return 120
	default:
		return 60
	}
}

type Question struct {
	ID         string
	Text       string
	Difficulty Difficulty
	Answer     string
	Answered   bool
}

type Answer struct {
	QuestionID string
	Answer     string
}

type AnswerScore struct {
	QuestionID string
	Score      int
	Feedback   string
}

type Result struct {
	Scores     []AnswerScore
	TotalScore int
	Summary    string
}

// Session is the interview state machine. All transitions are pure; callers
// own persistence and side effects.
type Session struct {
	CandidateID   string
	Phase         Phase
	MissingFields []string
	Queue         []Question
	Index         int
	Remaining     int
	TotalScore    int
}

func NewSession(candidateID string, missingFields []string) Session {
	session := Session{
		CandidateID:   candidateID,
		MissingFields: missingFields,
		Phase:         PhaseAwaitingStart,
	}
	if len(missingFields) > 0 {
		session.Phase = PhaseCollectingProfile
	}
	return session
}

// AwaitingField reports the profile field the session is currently
// collecting, in fixed name, email, phone order.
func (s Session) AwaitingField() (string, bool) {
	if s.Phase != PhaseCollectingProfile || len(s.MissingFields) == 0 {
		return "", false
	}
	return s.MissingFields[0], true
}

// AcceptProfileField validates value against the awaited field and advances
// collection, returning the normalized value to persist. The field order
// never changes on invalid input.
func (s Session) AcceptProfileField(value string) (Session, string, string, error) {
	field, ok := s.AwaitingField()
	if !ok {
		return s, "", "", fmt.Errorf("%w: not collecting profile fields", apperrors.ErrWrongPhase)
	}
	normalized, err := ValidateProfileField(field, value)
	if err != nil {
		return s, field, "", err
	}
	s.MissingFields = s.MissingFields[1:]
	if len(s.MissingFields) == 0 {
		s.Phase = PhaseAwaitingStart
	}
	return s, field, normalized, nil
}

// Begin arms the first question of the queue.
func (s Session) Begin(queue []Question) (Session, error) {
	if s.Phase != PhaseAwaitingStart {
		return s, fmt.Errorf("%w: cannot start in phase %s", apperrors.ErrWrongPhase, s.Phase)
	}
	if len(queue) == 0 {
		return s, fmt.Errorf("%w: empty question queue", apperrors.ErrInvalidInput)
	}
	s.Queue = queue
	s.Index = 0
	s.Remaining = queue[0].Difficulty.TimeLimit()
	s.Phase = PhaseRunning
	return s, nil
}

func (s Session) Current() (Question, bool) {
	if s.Index < 0 || s.Index >= len(s.Queue) {
		return Question{}, false
	}
	return s.Queue[s.Index], true
}

// SubmitAnswer records text against the current question and advances. An
// exhausted queue moves the session into evaluation.
func (s Session) SubmitAnswer(text string) (Session, error) {
	if s.Phase != PhaseRunning {
		return s, fmt.Errorf("%w: cannot answer in phase %s", apperrors.ErrWrongPhase, s.Phase)
	}
	current, ok := s.Current()
	if !ok {
		return s, fmt.Errorf("%w: no question armed", apperrors.ErrWrongPhase)
	}
	current.Answer = text
	current.Answered = true
	queue := make([]Question, len(s.Queue))
	copy(queue, s.Queue)
	queue[s.Index] = current
	s.Queue = queue
	return s.advance(), nil
}

func (s Session) advance() Session {
	s.Index++
	if s.Index >= len(s.Queue) {
		s.Phase = PhaseEvaluating
		s.Remaining = 0
		return s
	}
	s.Remaining = s.Queue[s.Index].Difficulty.TimeLimit()
	return s
}

// Tick burns one second off the armed question. Expiry submits an empty
// answer and advances.
func (s Session) Tick() (Session, bool, error) {
	if s.Phase != PhaseRunning {
		return s, false, fmt.Errorf("%w: cannot tick in phase %s", apperrors.ErrWrongPhase, s.Phase)
	}
	if s.Remaining > 1 {
		s.Remaining--
		return s, false, nil
	}
	s.Remaining = 0
	next, err := s.SubmitAnswer("")
	if err != nil {
		return s, false, err
	}
	return next, true, nil
}

func (s Session) Pause() (Session, error) {
	if s.Phase != PhaseRunning {
		return s, fmt.Errorf("%w: cannot pause in phase %s", apperrors.ErrWrongPhase, s.Phase)
	}
	s.Phase = PhasePaused
	return s, nil
}

// Resume rearms the current question at its full allowance.
func (s Session) Resume() (Session, error) {
	if s.Phase != PhasePaused {
		return s, fmt.Errorf("%w: cannot resume in phase %s", apperrors.ErrWrongPhase, s.Phase)
	}
	if s.Index >= len(s.Queue) {
		s.Phase = PhaseEvaluating
		s.Remaining = 0
		return s, nil
	}
	s.Remaining = s.Queue[s.Index].Difficulty.TimeLimit()
	s.Phase = PhaseRunning
	return s, nil
}

func (s Session) Complete(totalScore int) (Session, error) {
	if s.Phase != PhaseEvaluating {
		return s, fmt.Errorf("%w: cannot complete in phase %s", apperrors.ErrWrongPhase, s.Phase)
	}
	s.TotalScore = totalScore
	s.Phase = PhaseCompleted
	return s, nil
}

// Answers returns the collected answer list in question order. Unanswered
// questions appear with empty text so the grading contract keeps one entry
// per question.
func (s Session) Answers() []Answer {
	answers := make([]Answer, 0, len(s.Queue))
	for _, q := range s.Queue {
		answers = append(answers, Answer{QuestionID: q.ID, Answer: q.Answer})
	}
	return answers
}
