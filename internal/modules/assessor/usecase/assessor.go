package usecase

import (
	"context"

	"intervue/internal/modules/assessor/domain"
	"intervue/internal/modules/assessor/dto"
	"intervue/internal/modules/assessor/service"
)

type Interactor struct {
	assessor *service.AssessorService
}

func NewInteractor(assessor *service.AssessorService) *Interactor {
	return &Interactor{assessor: assessor}
}

func (i *Interactor) GenerateQuestions(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error) {
	questions, fallback, err := i.assessor.GenerateQuestions(ctx, input.Role, input.Context)
	if err != nil {
		return dto.GenerateOutput{}, err
	}

	out := dto.GenerateOutput{Fallback: fallback}
	for _, q := range questions {
		out.Questions = append(out.Questions, dto.QuestionOutput{
			QuestionID: q.QuestionID,
			Text:       q.Text,
			Difficulty: string(q.Difficulty),
			TimeLimit:  q.TimeLimit,
		})
	}
	return out, nil
}

func (i *Interactor) Evaluate(ctx context.Context, input dto.EvaluateInput) (dto.EvaluateOutput, error) {
	answers := make([]domain.Answer, 0, len(input.Answers))
	for _, a := range input.Answers {
		answers = append(answers, domain.Answer{QuestionID: a.QuestionID, Answer: a.Answer})
	}

	evaluation, fallback, err := i.assessor.Evaluate(ctx, answers, input.Context)
	if err != nil {
		return dto.EvaluateOutput{}, err
	}

	out := dto.EvaluateOutput{
		TotalScore: evaluation.TotalScore,
		Summary:    evaluation.Summary,
		Fallback:   fallback,
	}
	for _, s := range evaluation.Scores {
		out.Scores = append(out.Scores, dto.ScoreOutput{QuestionID: s.QuestionID, Score: s.Score, Feedback: s.Feedback})
	}
	return out, nil
}
