package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"intervue/internal/modules/intake/domain"
	intakeout "intervue/internal/modules/intake/port/out"
	apperrors "intervue/internal/platform/errors"
)

type IntakeService struct {
	pdfReader  intakeout.ResumeReader
	docxReader intakeout.ResumeReader
}

func NewIntakeService(pdfReader, docxReader intakeout.ResumeReader) *IntakeService {
	return &IntakeService{pdfReader: pdfReader, docxReader: docxReader}
}

// ParseResume reads the file and extracts a best-effort profile. Only .pdf
// and .docx are accepted; anything else is rejected before any candidate is
// created.
func (s *IntakeService) ParseResume(ctx context.Context, path string) (domain.Profile, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Profile{}, fmt.Errorf("resume path is required: %w", apperrors.ErrInvalidInput)
	}

	var reader intakeout.ResumeReader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		reader = s.pdfReader
	case ".docx":
		reader = s.docxReader
	default:
		return domain.Profile{}, fmt.Errorf("unsupported resume format %q: %w", filepath.Ext(path), apperrors.ErrInvalidInput)
	}
	if reader == nil {
		return domain.Profile{}, fmt.Errorf("no reader configured for %s", filepath.Ext(path))
	}

	text, err := reader.ReadText(ctx, path)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.ExtractProfile(text), nil
}
