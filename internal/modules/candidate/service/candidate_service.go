package service

import (
	"context"
	"fmt"
	"strings"

	"intervue/internal/modules/candidate/domain"
	candidateout "intervue/internal/modules/candidate/port/out"
	"intervue/internal/platform/clock"
	apperrors "intervue/internal/platform/errors"
	"intervue/internal/platform/id"
)

type CandidateService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     candidateout.CandidateStore
	projector candidateout.CandidateIndexProjector
}

func NewCandidateService(clock clock.Clock, idGen id.Generator, store candidateout.CandidateStore, projector candidateout.CandidateIndexProjector) *CandidateService {
	return &CandidateService{clock: clock, idGen: idGen, store: store, projector: projector}
}

func (s *CandidateService) Create(ctx context.Context, name, email, phone, resumeFile string) (domain.Candidate, error) {
	candidate := domain.Candidate{
		ID:         s.idGen.New(),
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		Phone:      strings.TrimSpace(phone),
		ResumeFile: resumeFile,
		CreatedAt:  s.clock.Now(),
		Chat:       []domain.ChatMessage{},
	}
	if err := candidate.Validate(); err != nil {
		return domain.Candidate{}, err
	}
	if err := s.persist(ctx, candidate); err != nil {
		return domain.Candidate{}, err
	}
	return candidate, nil
}

func (s *CandidateService) Get(ctx context.Context, candidateID string) (domain.Candidate, error) {
	return s.store.FindByID(ctx, candidateID)
}

func (s *CandidateService) List(ctx context.Context) ([]domain.Candidate, error) {
	return s.projector.ListRanked(ctx)
}

func (s *CandidateService) AppendMessage(ctx context.Context, candidateID string, role domain.Role, text string, score *int) (domain.ChatMessage, error) {
	if err := role.Validate(); err != nil {
		return domain.ChatMessage{}, err
	}
	candidate, err := s.store.FindByID(ctx, candidateID)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	if candidate.TestCompleted && role.Conversational() {
		return domain.ChatMessage{}, apperrors.ErrTestCompleted
	}
	msg := domain.ChatMessage{
		ID:        s.idGen.New(),
		Role:      role,
		Text:      text,
		Timestamp: s.clock.Now(),
		Score:     score,
	}
	candidate.Chat = append(candidate.Chat, msg)
	if err := s.persist(ctx, candidate); err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

func (s *CandidateService) UpdateProfile(ctx context.Context, candidateID, field, value string) (domain.Candidate, error) {
	candidate, err := s.store.FindByID(ctx, candidateID)
	if err != nil {
		return domain.Candidate{}, err
	}
	value = strings.TrimSpace(value)
	switch field {
	case "name":
		candidate.Name = value
	case "email":
		candidate.Email = value
	case "phone":
		candidate.Phone = value
	default:
		return domain.Candidate{}, fmt.Errorf("unknown profile field %q: %w", field, apperrors.ErrInvalidInput)
	}
	if err := s.persist(ctx, candidate); err != nil {
		return domain.Candidate{}, err
	}
	return candidate, nil
}

func (s *CandidateService) SetResult(ctx context.Context, candidateID string, score int, summary string) (domain.Candidate, error) {
	candidate, err := s.store.FindByID(ctx, candidateID)
	if err != nil {
		return domain.Candidate{}, err
	}
	candidate.Score = score
	candidate.Summary = summary
	candidate.TestCompleted = true
	if err := s.persist(ctx, candidate); err != nil {
		return domain.Candidate{}, err
	}
	return candidate, nil
}

func (s *CandidateService) Delete(ctx context.Context, candidateID string) error {
	if err := s.store.Delete(ctx, candidateID); err != nil {
		return err
	}
	return s.projector.Remove(ctx, candidateID)
}

// Reindex rebuilds the dashboard projection from the durable records.
func (s *CandidateService) Reindex(ctx context.Context) error {
	candidates, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, candidate := range candidates {
		if err := s.projector.Upsert(ctx, candidate); err != nil {
			return err
		}
	}
	return nil
}

func (s *CandidateService) persist(ctx context.Context, candidate domain.Candidate) error {
	if err := s.store.Save(ctx, candidate); err != nil {
		return err
	}
	return s.projector.Upsert(ctx, candidate)
}
