package domain_test

import (
	"strings"
	"testing"

	"intervue/internal/modules/assessor/domain"
)

func TestParseQuestionsFromFencedOutput(t *testing.T) {
	t.Parallel()
	raw := "```json\n[\n" +
		`{"question":"What is React?","difficulty":"easy","expected_points":1},` +
		`{"question":"What is JSX?","difficulty":"Easy","expected_points":"1"},` +
		`{"question":"Event loop?","difficulty":"medium","expected_points":2},` +
		`{"question":"Middleware?","difficulty":"medium","expected_points":2},` +
		`{"question":"Optimize rendering?","difficulty":"hard","expected_points":3},` +
		`{"question":"Scale websockets?","difficulty":"hard","expected_points":3}` +
		"\n]\n```"

	questions, err := domain.ParseQuestions(raw, "q_1000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questions) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(questions))
	}
	if questions[0].QuestionID != "q_1000_0" || questions[5].QuestionID != "q_1000_5" {
		t.Fatalf("unexpected ids: %s .. %s", questions[0].QuestionID, questions[5].QuestionID)
	}
	// Mixed-case difficulty and stringly points are coerced.
	if questions[1].Difficulty != domain.DifficultyEasy || questions[1].ExpectedPoints != 1 {
		t.Fatalf("coercion failed: %+v", questions[1])
	}
	if questions[4].TimeLimit != 120 || questions[0].TimeLimit != 20 {
		t.Fatalf("advisory limits wrong: %d / %d", questions[0].TimeLimit, questions[4].TimeLimit)
	}
}

func TestParseQuestionsSalvagesProseWrappedJSON(t *testing.T) {
	t.Parallel()
	raw := "Here are your questions:\n[" +
		`{"question":"A?","difficulty":"easy","expected_points":1},` +
		`{"question":"B?","difficulty":"easy","expected_points":1},` +
		`{"question":"C?","difficulty":"medium","expected_points":2},` +
		`{"question":"D?","difficulty":"medium","expected_points":2},` +
		`{"question":"E?","difficulty":"hard","expected_points":3},` +
		`{"question":"F?","difficulty":"hard","expected_points":3}` +
		"] Good luck!"

	questions, err := domain.ParseQuestions(raw, "q_2000")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(questions) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(questions))
	}
}

func TestParseQuestionsRejectsWrongCountAndBadDifficulty(t *testing.T) {
	t.Parallel()
	if _, err := domain.ParseQuestions(`[{"question":"only one","difficulty":"easy"}]`, "q"); err == nil {
		t.Fatalf("short set must fail")
	}
	raw := `[` + strings.Repeat(`{"question":"x","difficulty":"brutal"},`, 5) +
		`{"question":"x","difficulty":"brutal"}]`
	if _, err := domain.ParseQuestions(raw, "q"); err == nil {
		t.Fatalf("unknown difficulty must fail")
	}
	if _, err := domain.ParseQuestions("total garbage", "q"); err == nil {
		t.Fatalf("non-JSON must fail")
	}
}

func TestFallbackQuestionsContract(t *testing.T) {
	t.Parallel()
	questions := domain.FallbackQuestions()
	if len(questions) != domain.QuestionCount {
		t.Fatalf("expected %d fallback questions, got %d", domain.QuestionCount, len(questions))
	}
	counts := map[domain.Difficulty]int{}
	for i, q := range questions {
		counts[q.Difficulty]++
		want := "f" + string(rune('1'+i))
		if q.QuestionID != want {
			t.Fatalf("expected id %s, got %s", want, q.QuestionID)
		}
	}
	if counts[domain.DifficultyEasy] != 2 || counts[domain.DifficultyMedium] != 2 || counts[domain.DifficultyHard] != 2 {
		t.Fatalf("expected 2/2/2 difficulty split, got %+v", counts)
	}
}

func TestParseEvaluationObjectShape(t *testing.T) {
	t.Parallel()
	raw := `{
  "evaluations": [
    {"questionId": "q1", "score": 2, "feedback": "good"},
    {"questionId": "q2", "score": 5, "feedback": "too generous"},
    {"questionId": "q3", "score": -1, "feedback": "negative"}
  ],
  "totalScore": 0,
  "finalSummary": "decent candidate"
}`
	evaluation, err := domain.ParseEvaluation(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if evaluation.Scores[1].Score != 3 || evaluation.Scores[2].Score != 0 {
		t.Fatalf("scores must clamp to 0..3: %+v", evaluation.Scores)
	}
	// Non-positive totalScore falls back to the clamped sum.
	if evaluation.TotalScore != 5 {
		t.Fatalf("expected summed total 5, got %d", evaluation.TotalScore)
	}
	if evaluation.Summary != "decent candidate" {
		t.Fatalf("summary lost: %q", evaluation.Summary)
	}
}

func TestParseEvaluationBareArrayWithSummarySalvage(t *testing.T) {
	t.Parallel()
	raw := `[{"questionId":"q1","score":"2","feedback":"ok"}]` +
		` trailing text "finalSummary": "salvaged summary" end`
	evaluation, err := domain.ParseEvaluation(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if evaluation.Scores[0].Score != 2 || evaluation.TotalScore != 2 {
		t.Fatalf("string score not coerced: %+v", evaluation)
	}
	if evaluation.Summary != "salvaged summary" {
		t.Fatalf("summary not salvaged: %q", evaluation.Summary)
	}
}

func TestParseEvaluationGarbageFails(t *testing.T) {
	t.Parallel()
	if _, err := domain.ParseEvaluation("I cannot grade this."); err == nil {
		t.Fatalf("prose output must fail so callers fall back")
	}
}

func TestFallbackEvaluationAcceptsEveryAnswer(t *testing.T) {
	t.Parallel()
	answers := []domain.Answer{
		{QuestionID: "q1", Answer: "a"},
		{QuestionID: "q2", Answer: ""},
		{QuestionID: "q3", Answer: "c"},
	}
	evaluation := domain.FallbackEvaluation(answers)
	if evaluation.TotalScore != 3 || len(evaluation.Scores) != 3 {
		t.Fatalf("expected one point per answer, got %+v", evaluation)
	}
	for _, s := range evaluation.Scores {
		if s.Score != 1 || s.Feedback != "Fallback: answer accepted" {
			t.Fatalf("unexpected fallback score: %+v", s)
		}
	}
	if evaluation.Summary != domain.FallbackSummary {
		t.Fatalf("unexpected fallback summary: %q", evaluation.Summary)
	}
}
