package dto

type ActivateInput struct {
	CandidateID string
}

type SubmitInput struct {
	Text string
}

type TickInput struct {
	Index int
}

// StateOutput is the full presentation view of the interview session after
// an operation.
type StateOutput struct {
	CandidateID      string
	CandidateName    string
	Phase            string
	AwaitingField    string
	QuestionIndex    int
	QuestionCount    int
	QuestionID       string
	QuestionText     string
	Difficulty       string
	RemainingSeconds int
	TotalScore       int
	Summary          string
	NeedsEvaluation  bool
	Notice           string
}
