package dto

type GenerateInput struct {
	Role    string
	Context string
}

type QuestionOutput struct {
	QuestionID string
	Text       string
	Difficulty string
	TimeLimit  int
}

type GenerateOutput struct {
	Questions []QuestionOutput
	Fallback  bool
}

type AnswerInput struct {
	QuestionID string
	Answer     string
}

type EvaluateInput struct {
	Answers []AnswerInput
	Context string
}

type ScoreOutput struct {
	QuestionID string
	Score      int
	Feedback   string
}

type EvaluateOutput struct {
	Scores     []ScoreOutput
	TotalScore int
	Summary    string
	Fallback   bool
}
