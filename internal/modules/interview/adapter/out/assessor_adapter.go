package out

import (
	"context"

	assessordto "intervue/internal/modules/assessor/dto"
	assessorin "intervue/internal/modules/assessor/port/in"
	"intervue/internal/modules/interview/domain"
)

// AssessorAdapter bridges question generation and grading onto the assessor
// module. Upstream time limits are dropped; the session derives its own from
// difficulty.
type AssessorAdapter struct {
	assessor assessorin.Usecase
}

func NewAssessorAdapter(assessor assessorin.Usecase) *AssessorAdapter {
	return &AssessorAdapter{assessor: assessor}
}

func (a *AssessorAdapter) GenerateQuestions(ctx context.Context, role, candidateContext string) ([]domain.Question, bool, error) {
	output, err := a.assessor.GenerateQuestions(ctx, assessordto.GenerateInput{Role: role, Context: candidateContext})
	if err != nil {
		return nil, false, err
	}
	queue := make([]domain.Question, 0, len(output.Questions))
	for _, q := range output.Questions {
		queue = append(queue, domain.Question{
			ID:         q.QuestionID,
			Text:       q.Text,
			Difficulty: domain.Difficulty(q.Difficulty),
		})
	}
	return queue, output.Fallback, nil
}

func (a *AssessorAdapter) Evaluate(ctx context.Context, answers []domain.Answer, candidateContext string) (domain.Result, bool, error) {
	input := assessordto.EvaluateInput{Context: candidateContext}
	for _, answer := range answers {
		input.Answers = append(input.Answers, assessordto.AnswerInput{QuestionID: answer.QuestionID, Answer: answer.Answer})
	}

	output, err := a.assessor.Evaluate(ctx, input)
	if err != nil {
		return domain.Result{}, false, err
	}

	result := domain.Result{TotalScore: output.TotalScore, Summary: output.Summary}
	for _, score := range output.Scores {
		result.Scores = append(result.Scores, domain.AnswerScore{
			QuestionID: score.QuestionID,
			Score:      score.Score,
			Feedback:   score.Feedback,
		})
	}
	return result, output.Fallback, nil
}
