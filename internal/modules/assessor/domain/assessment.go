package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Validate() error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	default:
		return fmt.Errorf("unsupported difficulty %q", string(d))
	}
}

// Question is one generated interview question as the upstream service
// describes it. Consumers apply their own canonical time limits; the
// TimeLimit here is advisory.
type Question struct {
	QuestionID     string
	Text           string
	Difficulty     Difficulty
	ExpectedPoints int
	TimeLimit      int
}

type Answer struct {
	QuestionID string
	Answer     string
}

type Score struct {
	QuestionID string
	Score      int
	Feedback   string
}

type Evaluation struct {
	Scores     []Score
	TotalScore int
	Summary    string
}

const (
	QuestionCount = 6

	fallbackFeedback = "Fallback: answer accepted"
	// FallbackSummary is reported when the grading output cannot be parsed.
	FallbackSummary = "Fallback: candidate evaluation summary not available"

	MaxScore = 3
)

func advisoryTimeLimit(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 20
	case DifficultyHard:
		return 120
	default:
		return 60
	}
}

// QuestionPrompt asks for exactly 2 easy, 2 medium and 2 hard questions in a
// strict JSON array.
func QuestionPrompt(role, context string) string {
	if strings.TrimSpace(role) == "" {
		role = "full stack (React/Node)"
	}
	return fmt.Sprintf(`You are an expert technical interviewer for %s roles.
Generate exactly 6 interview questions in JSON format:
- 2 easy (20s each, 1 point each)
- 2 medium (60s each, 2 points each)
- 2 hard (120s each, 3 points each)

Return strictly valid JSON array only.
Each item must have:
{
  "question": "the question text",
  "difficulty": "easy|medium|hard",
  "expected_points": 1|2|3
}

Keep the questions unique and relevant.
Context: %s
`, role, context)
}

func EvaluationPrompt(answers []Answer, context string) string {
	payload, err := json.MarshalIndent(answers2wire(answers), "", "  ")
	if err != nil {
		payload = []byte("[]")
	}
	return fmt.Sprintf(`You are an expert interviewer and grader.
Evaluate each answer strictly in JSON array format:
[
  { "questionId": "...", "score": 0-3, "feedback": "short feedback" }
]
Also, provide a final summary about the candidate in a field "finalSummary": "<text>"

Add a final field: { "totalScore": <sum> }

Answers:
%s

Candidate context: %s
`, payload, context)
}

type wireAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

func answers2wire(answers []Answer) []wireAnswer {
	out := make([]wireAnswer, 0, len(answers))
	for _, a := range answers {
		out = append(out, wireAnswer{QuestionID: a.QuestionID, Answer: a.Answer})
	}
	return out
}

// FallbackQuestions is the deterministic local question set used whenever the
// upstream output cannot be parsed into a valid set.
func FallbackQuestions() []Question {
	return []Question{
		{QuestionID: "f1", Text: "What is React?", Difficulty: DifficultyEasy, ExpectedPoints: 1, TimeLimit: 20},
		{QuestionID: "f2", Text: "What is useState in React?", Difficulty: DifficultyEasy, ExpectedPoints: 1, TimeLimit: 20},
		{QuestionID: "f3", Text: "Explain event loop in Node.js.", Difficulty: DifficultyMedium, ExpectedPoints: 2, TimeLimit: 60},
		{QuestionID: "f4", Text: "What is middleware in Express.js?", Difficulty: DifficultyMedium, ExpectedPoints: 2, TimeLimit: 60},
		{QuestionID: "f5", Text: "How would you optimize React rendering?", Difficulty: DifficultyHard, ExpectedPoints: 3, TimeLimit: 120},
		{QuestionID: "f6", Text: "Explain scaling WebSocket servers in Node.", Difficulty: DifficultyHard, ExpectedPoints: 3, TimeLimit: 120},
	}
}

// FallbackEvaluation accepts every answer with one point and a generic note.
func FallbackEvaluation(answers []Answer) Evaluation {
	scores := make([]Score, 0, len(answers))
	for _, a := range answers {
		scores = append(scores, Score{QuestionID: a.QuestionID, Score: 1, Feedback: fallbackFeedback})
	}
	return Evaluation{Scores: scores, TotalScore: len(answers), Summary: FallbackSummary}
}

type wireQuestion struct {
	Question   string `json:"question"`
	Difficulty string `json:"difficulty"`
	Expected   any    `json:"expected_points"`
}

// ParseQuestions decodes the model output into a full question set. Any
// structural problem is an error; callers substitute the fallback set.
func ParseQuestions(raw string, idPrefix string) ([]Question, error) {
	cleaned := sliceJSON(stripFences(raw), '[', ']')

	var decoded []wireQuestion
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, fmt.Errorf("parse question output: %w", err)
	}
	if len(decoded) != QuestionCount {
		return nil, fmt.Errorf("expected %d questions, got %d", QuestionCount, len(decoded))
	}

	out := make([]Question, 0, len(decoded))
	for idx, q := range decoded {
		difficulty := Difficulty(strings.ToLower(strings.TrimSpace(q.Difficulty)))
		if err := difficulty.Validate(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(q.Question) == "" {
			return nil, fmt.Errorf("question %d is empty", idx)
		}
		out = append(out, Question{
			QuestionID:     fmt.Sprintf("%s_%d", idPrefix, idx),
			Text:           strings.TrimSpace(q.Question),
			Difficulty:     difficulty,
			ExpectedPoints: int(coerceFloat(q.Expected)),
			TimeLimit:      advisoryTimeLimit(difficulty),
		})
	}
	return out, nil
}

type wireScore struct {
	QuestionID string `json:"questionId"`
	Score      any    `json:"score"`
	Feedback   string `json:"feedback"`
}

type wireEvaluation struct {
	Evaluations  []wireScore `json:"evaluations"`
	TotalScore   any         `json:"totalScore"`
	FinalSummary string      `json:"finalSummary"`
}

var summaryPattern = regexp.MustCompile(`"finalSummary"\s*:\s*"([^"]+)"`)

// ParseEvaluation decodes grading output. It accepts either the documented
// object shape or a bare score array with the summary salvaged from the raw
// text. Any structural problem is an error; callers fall back.
func ParseEvaluation(raw string) (Evaluation, error) {
	cleaned := stripFences(raw)

	var decoded wireEvaluation
	if err := json.Unmarshal([]byte(sliceJSON(cleaned, '{', '}')), &decoded); err != nil || len(decoded.Evaluations) == 0 {
		var scores []wireScore
		if arrErr := json.Unmarshal([]byte(sliceJSON(cleaned, '[', ']')), &scores); arrErr != nil || len(scores) == 0 {
			return Evaluation{}, fmt.Errorf("parse evaluation output: %w", arrErr)
		}
		decoded = wireEvaluation{Evaluations: scores}
		if m := summaryPattern.FindStringSubmatch(raw); m != nil {
			decoded.FinalSummary = m[1]
		}
	}

	evaluation := Evaluation{Summary: strings.TrimSpace(decoded.FinalSummary)}
	sum := 0
	for _, s := range decoded.Evaluations {
		score := clampScore(int(coerceFloat(s.Score)))
		sum += score
		evaluation.Scores = append(evaluation.Scores, Score{
			QuestionID: s.QuestionID,
			Score:      score,
			Feedback:   strings.TrimSpace(s.Feedback),
		})
	}
	evaluation.TotalScore = int(coerceFloat(decoded.TotalScore))
	if evaluation.TotalScore <= 0 {
		evaluation.TotalScore = sum
	}
	return evaluation, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(strings.Trim(raw, "`"))
}

// sliceJSON cuts the first balanced-looking region between open and close so
// that prose around a JSON payload does not break decoding.
func sliceJSON(raw string, open, close byte) string {
	first := strings.IndexByte(raw, open)
	last := strings.LastIndexByte(raw, close)
	if first == -1 || last == -1 || last <= first {
		return raw
	}
	return raw[first : last+1]
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
