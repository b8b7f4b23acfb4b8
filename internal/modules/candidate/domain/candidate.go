package domain

import (
	"fmt"
	"strings"
	"time"
)

const SchemaVersion = 1

type Role string

const (
	RoleAI          Role = "ai"
	RoleCandidate   Role = "candidate"
	RoleSystem      Role = "system"
	RoleInterviewer Role = "interviewer"
	RoleInterviewee Role = "interviewee"
)

func (r Role) Validate() error {
	switch r {
	case RoleAI, RoleCandidate, RoleSystem, RoleInterviewer, RoleInterviewee:
		return nil
	default:
		return fmt.Errorf("unsupported chat role %q", string(r))
	}
}

// Conversational reports whether the role carries interview question/answer
// traffic, which is frozen once the test is completed.
func (r Role) Conversational() bool {
	return r == RoleAI || r == RoleCandidate
}

// ChatMessage is immutable after creation. The chat log is append-only and
// never reordered.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Score     *int      `json:"score,omitempty"`
}

type Candidate struct {
	ID            string        `json:"id"`
	Name          string        `json:"name,omitempty"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	ResumeFile    string        `json:"resume_file,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	Chat          []ChatMessage `json:"chat"`
	Score         int           `json:"score"`
	Summary       string        `json:"summary,omitempty"`
	TestCompleted bool          `json:"test_completed"`
}

func (c Candidate) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if c.CreatedAt.IsZero() {
		return fmt.Errorf("created at is required")
	}
	for _, msg := range c.Chat {
		if err := msg.Role.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProfileComplete reports whether all interview-required profile fields are
// filled.
func (c Candidate) ProfileComplete() bool {
	return c.Name != "" && c.Email != "" && c.Phone != ""
}
