package domain_test

import (
	"errors"
	"testing"
	"time"

	"intervue/internal/modules/interview/domain"
	apperrors "intervue/internal/platform/errors"
)

func sampleQueue() []domain.Question {
	return []domain.Question{
		{ID: "q1", Text: "What is a goroutine?", Difficulty: domain.DifficultyEasy},
		{ID: "q2", Text: "What does defer do?", Difficulty: domain.DifficultyEasy},
		{ID: "q3", Text: "Explain channel buffering.", Difficulty: domain.DifficultyMedium},
		{ID: "q4", Text: "What is an interface value?", Difficulty: domain.DifficultyMedium},
		{ID: "q5", Text: "Design a worker pool.", Difficulty: domain.DifficultyHard},
		{ID: "q6", Text: "Explain the memory model.", Difficulty: domain.DifficultyHard},
	}
}

func TestDifficultyTimeLimits(t *testing.T) {
	t.Parallel()
	cases := map[domain.Difficulty]int{
		domain.DifficultyEasy:   20,
		domain.DifficultyMedium: 60,
		domain.DifficultyHard:   120,
	}
	for difficulty, want := range cases {
		if got := difficulty.TimeLimit(); got != want {
			t.Fatalf("%s: expected %d seconds, got %d", difficulty, want, got)
		}
	}
}

func TestProfileCollectionOrderAndValidation(t *testing.T) {
	t.Parallel()
	session := domain.NewSession("cand-1", []string{"name", "email", "phone"})
	if session.Phase != domain.PhaseCollectingProfile {
		t.Fatalf("expected collecting-profile, got %s", session.Phase)
	}

	// Empty name stays on name.
	_, field, _, err := session.AcceptProfileField("   ")
	var invalid *domain.ValidationError
	if !errors.As(err, &invalid) || field != "name" {
		t.Fatalf("expected name validation error, got field=%s err=%v", field, err)
	}
	if got, _ := session.AwaitingField(); got != "name" {
		t.Fatalf("rejected value must not advance, awaiting %s", got)
	}

	session, _, _, err = session.AcceptProfileField("Jane Doe")
	if err != nil {
		t.Fatalf("accept name: %v", err)
	}
	if got, _ := session.AwaitingField(); got != "email" {
		t.Fatalf("expected email next, got %s", got)
	}

	if _, _, _, err := session.AcceptProfileField("not-an-email"); err == nil {
		t.Fatalf("bad email must be rejected")
	}
	session, _, _, err = session.AcceptProfileField("jane@example.com")
	if err != nil {
		t.Fatalf("accept email: %v", err)
	}

	// "12345" is not a valid phone number.
	if _, _, _, err := session.AcceptProfileField("12345"); err == nil {
		t.Fatalf("short phone must be rejected")
	}
	session, _, normalized, err := session.AcceptProfileField("+91 98765 43210")
	if err != nil {
		t.Fatalf("accept phone: %v", err)
	}
	if normalized != "+919876543210" {
		t.Fatalf("expected compacted phone, got %q", normalized)
	}
	if session.Phase != domain.PhaseAwaitingStart {
		t.Fatalf("expected awaiting-start after full profile, got %s", session.Phase)
	}
}

func TestBeginRequiresAwaitingStartAndArmsFirstQuestion(t *testing.T) {
	t.Parallel()
	collecting := domain.NewSession("cand-1", []string{"phone"})
	if _, err := collecting.Begin(sampleQueue()); !errors.Is(err, apperrors.ErrWrongPhase) {
		t.Fatalf("expected wrong phase error, got %v", err)
	}

	session := domain.NewSession("cand-1", nil)
	session, err := session.Begin(sampleQueue())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if session.Phase != domain.PhaseRunning || session.Index != 0 || session.Remaining != 20 {
		t.Fatalf("unexpected armed state: %+v", session)
	}
}

func TestSubmitAnswerAdvancesAndExhaustionEntersEvaluating(t *testing.T) {
	t.Parallel()
	session, _ := domain.NewSession("cand-1", nil).Begin(sampleQueue())

	session, err := session.SubmitAnswer("goroutines are lightweight threads")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if session.Index != 1 || session.Remaining != 20 {
		t.Fatalf("expected second easy question armed, got %+v", session)
	}
	if !session.Queue[0].Answered || session.Queue[0].Answer == "" {
		t.Fatalf("first answer not recorded: %+v", session.Queue[0])
	}

	for i := 1; i < 6; i++ {
		session, err = session.SubmitAnswer("answer")
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if session.Phase != domain.PhaseEvaluating {
		t.Fatalf("expected evaluating after last answer, got %s", session.Phase)
	}
	if _, err := session.SubmitAnswer("late"); !errors.Is(err, apperrors.ErrWrongPhase) {
		t.Fatalf("answer after exhaustion must fail, got %v", err)
	}
}

func TestTickExpirySubmitsEmptyAnswer(t *testing.T) {
	t.Parallel()
	session, _ := domain.NewSession("cand-1", nil).Begin(sampleQueue())

	var expired bool
	var err error
	for i := 0; i < 19; i++ {
		session, expired, err = session.Tick()
		if err != nil || expired {
			t.Fatalf("tick %d: expired=%t err=%v", i, expired, err)
		}
	}
	if session.Remaining != 1 {
		t.Fatalf("expected 1 second left, got %d", session.Remaining)
	}
	session, expired, err = session.Tick()
	if err != nil || !expired {
		t.Fatalf("expected expiry, got expired=%t err=%v", expired, err)
	}
	if session.Index != 1 {
		t.Fatalf("expiry must advance, got index %d", session.Index)
	}
	if !session.Queue[0].Answered || session.Queue[0].Answer != "" {
		t.Fatalf("expired question must carry an empty recorded answer: %+v", session.Queue[0])
	}
}

func TestAllQuestionsExpireYieldsSixEmptyAnswers(t *testing.T) {
	t.Parallel()
	session, _ := domain.NewSession("cand-1", nil).Begin(sampleQueue())

	var err error
	for session.Phase == domain.PhaseRunning {
		session, _, err = session.Tick()
		if err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
	if session.Phase != domain.PhaseEvaluating {
		t.Fatalf("expected evaluating, got %s", session.Phase)
	}
	answers := session.Answers()
	if len(answers) != 6 {
		t.Fatalf("expected 6 answers, got %d", len(answers))
	}
	for _, answer := range answers {
		if answer.Answer != "" {
			t.Fatalf("expected empty answer for %s, got %q", answer.QuestionID, answer.Answer)
		}
	}
}

func TestPauseResumeResetsToFullAllowance(t *testing.T) {
	t.Parallel()
	session, _ := domain.NewSession("cand-1", nil).Begin(sampleQueue())
	for i := 0; i < 7; i++ {
		session, _, _ = session.Tick()
	}
	if session.Remaining != 13 {
		t.Fatalf("expected 13 seconds left, got %d", session.Remaining)
	}

	session, err := session.Pause()
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, _, err := session.Tick(); !errors.Is(err, apperrors.ErrWrongPhase) {
		t.Fatalf("tick while paused must fail, got %v", err)
	}

	session, err = session.Resume()
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if session.Remaining != 20 {
		t.Fatalf("resume must reset the allowance, got %d", session.Remaining)
	}
}

func TestSnapshotRoundTripRestoresIntoPaused(t *testing.T) {
	t.Parallel()
	session, _ := domain.NewSession("cand-1", nil).Begin(sampleQueue())
	session, _ = session.SubmitAnswer("first")
	for i := 0; i < 5; i++ {
		session, _, _ = session.Tick()
	}

	snap := session.Snapshot(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if snap.SchemaVersion != domain.SchemaVersion || snap.CandidateID != "cand-1" {
		t.Fatalf("unexpected snapshot header: %+v", snap)
	}

	restored := domain.SessionFromSnapshot(snap)
	if restored.Phase != domain.PhasePaused {
		t.Fatalf("restore must land in paused, got %s", restored.Phase)
	}
	if restored.Index != 1 || restored.Remaining != 15 {
		t.Fatalf("restored progress mismatch: index=%d remaining=%d", restored.Index, restored.Remaining)
	}
	if restored.Queue[0].Answer != "first" {
		t.Fatalf("restored answers lost: %+v", restored.Queue[0])
	}
}

func TestCompleteOnlyFromEvaluating(t *testing.T) {
	t.Parallel()
	session, _ := domain.NewSession("cand-1", nil).Begin(sampleQueue())
	if _, err := session.Complete(6); !errors.Is(err, apperrors.ErrWrongPhase) {
		t.Fatalf("complete while running must fail, got %v", err)
	}
	for session.Phase == domain.PhaseRunning {
		session, _ = session.SubmitAnswer("a")
	}
	session, err := session.Complete(9)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if session.Phase != domain.PhaseCompleted || session.TotalScore != 9 {
		t.Fatalf("unexpected completed state: %+v", session)
	}
}
