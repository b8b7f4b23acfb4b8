package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"intervue/internal/modules/assessor/domain"
	"intervue/internal/modules/assessor/service"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type stubGenerator struct {
	output string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

const validQuestionJSON = `[
  {"question":"What is React?","difficulty":"easy","expected_points":1},
  {"question":"What is JSX?","difficulty":"easy","expected_points":1},
  {"question":"Event loop?","difficulty":"medium","expected_points":2},
  {"question":"Middleware?","difficulty":"medium","expected_points":2},
  {"question":"Optimize rendering?","difficulty":"hard","expected_points":3},
  {"question":"Scale websockets?","difficulty":"hard","expected_points":3}
]`

func TestGenerateQuestionsParsesAndStampsIDs(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Unix(1700000000, 0).UTC()}
	generator := &stubGenerator{output: validQuestionJSON}
	svc := service.NewAssessorService(clk, generator, nil)

	questions, fallback, err := svc.GenerateQuestions(context.Background(), "", "worked on React apps")
	if err != nil || fallback {
		t.Fatalf("expected parsed set, fallback=%t err=%v", fallback, err)
	}
	if len(questions) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(questions))
	}
	if questions[0].QuestionID != "q_1700000000_0" {
		t.Fatalf("unexpected id: %s", questions[0].QuestionID)
	}
	if !strings.Contains(generator.prompt, "worked on React apps") {
		t.Fatalf("candidate context missing from prompt")
	}
	if !strings.Contains(generator.prompt, "full stack (React/Node)") {
		t.Fatalf("empty role must default in the prompt")
	}
}

func TestGenerateQuestionsPropagatesTransportFailure(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Unix(1700000000, 0).UTC()}
	upstream := errors.New("upstream down")
	svc := service.NewAssessorService(clk, &stubGenerator{err: upstream}, nil)

	_, fallback, err := svc.GenerateQuestions(context.Background(), "", "")
	if !errors.Is(err, upstream) {
		t.Fatalf("err = %v, want the transport failure", err)
	}
	if fallback {
		t.Fatal("transport failure must not be reported as fallback")
	}
}

func TestEvaluatePropagatesTransportFailure(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Unix(1700000000, 0).UTC()}
	upstream := errors.New("upstream down")
	svc := service.NewAssessorService(clk, &stubGenerator{err: upstream}, nil)

	_, _, err := svc.Evaluate(context.Background(), []domain.Answer{{QuestionID: "q1", Answer: "a"}}, "")
	if !errors.Is(err, upstream) {
		t.Fatalf("err = %v, want the transport failure", err)
	}
}

func TestGenerateQuestionsFallsBackOnMalformedOutput(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Unix(1700000000, 0).UTC()}
	svc := service.NewAssessorService(clk, &stubGenerator{output: "sorry, no JSON today"}, nil)

	questions, fallback, err := svc.GenerateQuestions(context.Background(), "", "")
	if err != nil || !fallback {
		t.Fatalf("expected fallback, fallback=%t err=%v", fallback, err)
	}
	if questions[5].QuestionID != "f6" {
		t.Fatalf("expected deterministic fallback ids, got %s", questions[5].QuestionID)
	}
}

func TestEvaluateParsesScores(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Unix(1700000000, 0).UTC()}
	generator := &stubGenerator{output: `{
  "evaluations": [{"questionId":"q1","score":3,"feedback":"excellent"}],
  "totalScore": 3,
  "finalSummary": "strong"
}`}
	svc := service.NewAssessorService(clk, generator, nil)

	evaluation, fallback, err := svc.Evaluate(context.Background(), []domain.Answer{{QuestionID: "q1", Answer: "channels"}}, "")
	if err != nil || fallback {
		t.Fatalf("expected parsed evaluation, fallback=%t err=%v", fallback, err)
	}
	if evaluation.TotalScore != 3 || evaluation.Summary != "strong" {
		t.Fatalf("unexpected evaluation: %+v", evaluation)
	}
	if !strings.Contains(generator.prompt, "channels") {
		t.Fatalf("answers missing from grading prompt")
	}
}

func TestEvaluateFallsBackOnMalformedOutput(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Unix(1700000000, 0).UTC()}
	svc := service.NewAssessorService(clk, &stubGenerator{output: "not json"}, nil)

	answers := []domain.Answer{
		{QuestionID: "q1", Answer: "a"},
		{QuestionID: "q2", Answer: "b"},
	}
	evaluation, fallback, err := svc.Evaluate(context.Background(), answers, "")
	if err != nil || !fallback {
		t.Fatalf("expected fallback grading, fallback=%t err=%v", fallback, err)
	}
	if evaluation.TotalScore != 2 || evaluation.Summary != domain.FallbackSummary {
		t.Fatalf("unexpected fallback evaluation: %+v", evaluation)
	}
}
