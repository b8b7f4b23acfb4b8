package out

import (
	"context"
	"fmt"

	"code.sajari.com/docconv"

	intakeout "intervue/internal/modules/intake/port/out"
)

type DocxResumeReader struct{}

func NewDocxResumeReader() intakeout.ResumeReader {
	return &DocxResumeReader{}
}

func (r *DocxResumeReader) ReadText(_ context.Context, path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("convert docx: %w", err)
	}
	return res.Body, nil
}
