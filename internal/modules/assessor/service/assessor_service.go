package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"intervue/internal/modules/assessor/domain"
	"intervue/internal/modules/assessor/port/out"
	"intervue/internal/platform/clock"
	"intervue/internal/platform/logging"
)

// AssessorService turns model output into validated question sets and
// evaluations. Unusable output is absorbed with deterministic fallbacks;
// transport failures propagate so the caller can retry.
type AssessorService struct {
	clock     clock.Clock
	generator out.ContentGenerator
	logger    *zap.Logger
}

func NewAssessorService(c clock.Clock, generator out.ContentGenerator, logger *zap.Logger) *AssessorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessorService{clock: c, generator: generator, logger: logger}
}

func (s *AssessorService) GenerateQuestions(ctx context.Context, role, candidateContext string) ([]domain.Question, bool, error) {
	prompt := domain.QuestionPrompt(role, candidateContext)
	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, false, fmt.Errorf("generate questions: %w", err)
	}
	s.logger.Debug("question generation output", zap.String("raw", logging.TruncateForLog(raw, 400)))

	prefix := fmt.Sprintf("q_%d", s.clock.Now().Unix())
	questions, err := domain.ParseQuestions(raw, prefix)
	if err != nil {
		s.logger.Warn("question output unusable, using fallback set", zap.Error(err))
		return domain.FallbackQuestions(), true, nil
	}
	return questions, false, nil
}

func (s *AssessorService) Evaluate(ctx context.Context, answers []domain.Answer, candidateContext string) (domain.Evaluation, bool, error) {
	prompt := domain.EvaluationPrompt(answers, candidateContext)
	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return domain.Evaluation{}, false, fmt.Errorf("evaluate answers: %w", err)
	}
	s.logger.Debug("evaluation output", zap.String("raw", logging.TruncateForLog(raw, 400)))

	evaluation, err := domain.ParseEvaluation(raw)
	if err != nil {
		s.logger.Warn("evaluation output unusable, using fallback grading", zap.Error(err))
		return domain.FallbackEvaluation(answers), true, nil
	}
	return evaluation, false, nil
}
