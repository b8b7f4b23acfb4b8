package out

import "context"

// ResumeReader extracts plain text from one resume file format.
type ResumeReader interface {
	ReadText(ctx context.Context, path string) (string, error)
}

// CandidateRegistry creates the durable candidate record for a parsed resume.
type CandidateRegistry interface {
	Create(ctx context.Context, name, email, phone, resumeFile string) (string, error)
}
