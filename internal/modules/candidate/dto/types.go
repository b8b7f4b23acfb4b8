package dto

import "time"

type CreateInput struct {
	Name       string
	Email      string
	Phone      string
	ResumeFile string
}

type CandidateOutput struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	ResumeFile    string
	CreatedAt     time.Time
	Score         int
	Summary       string
	TestCompleted bool
}

type MessageOutput struct {
	ID        string
	Role      string
	Text      string
	Timestamp time.Time
	Score     *int
}

type CandidateDetailOutput struct {
	CandidateOutput
	Chat []MessageOutput
}

type AppendMessageInput struct {
	CandidateID string
	Role        string
	Text        string
	Score       *int
}

type UpdateProfileInput struct {
	CandidateID string
	Field       string
	Value       string
}

type SetResultInput struct {
	CandidateID string
	Score       int
	Summary     string
}
