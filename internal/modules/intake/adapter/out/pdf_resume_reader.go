package out

import (
	"context"
	"fmt"
	"strings"

	intakeout "intervue/internal/modules/intake/port/out"
	"rsc.io/pdf"
)

type PDFResumeReader struct{}

func NewPDFResumeReader() intakeout.ResumeReader {
	return &PDFResumeReader{}
}

func (r *PDFResumeReader) ReadText(_ context.Context, path string) (string, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for page := 1; page <= doc.NumPage(); page++ {
		p := doc.Page(page)
		if p.V.IsNull() {
			continue
		}
		content := p.Content()
		// Preserve rough line structure so the name heuristic can rely on
		// the header block ordering.
		lastY := -1.0
		for _, text := range content.Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			if lastY >= 0 && text.Y != lastY {
				sb.WriteString("\n")
			} else if sb.Len() > 0 && lastY >= 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(text.S)
			lastY = text.Y
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
