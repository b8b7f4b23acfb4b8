package domain

import "time"

const SchemaVersion = 1

type QuestionSnapshot struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Difficulty string `json:"difficulty"`
	Answer     string `json:"answer,omitempty"`
	Answered   bool   `json:"answered,omitempty"`
}

// Snapshot is the durable form of an in-progress interview. One snapshot
// exists at a time; completion or deletion clears it.
type Snapshot struct {
	SchemaVersion    int                `json:"schema_version"`
	CandidateID      string             `json:"candidate_id"`
	Phase            string             `json:"phase"`
	MissingFields    []string           `json:"missing_fields,omitempty"`
	Queue            []QuestionSnapshot `json:"queue,omitempty"`
	Index            int                `json:"index"`
	RemainingSeconds int                `json:"remaining_seconds"`
	TotalScore       int                `json:"total_score"`
	SavedAt          time.Time          `json:"saved_at"`
}

func (s Session) Snapshot(now time.Time) Snapshot {
	snap := Snapshot{
		SchemaVersion:    SchemaVersion,
		CandidateID:      s.CandidateID,
		Phase:            string(s.Phase),
		MissingFields:    append([]string(nil), s.MissingFields...),
		Index:            s.Index,
		RemainingSeconds: s.Remaining,
		TotalScore:       s.TotalScore,
		SavedAt:          now,
	}
	for _, q := range s.Queue {
		snap.Queue = append(snap.Queue, QuestionSnapshot{
			ID:         q.ID,
			Text:       q.Text,
			Difficulty: string(q.Difficulty),
			Answer:     q.Answer,
			Answered:   q.Answered,
		})
	}
	return snap
}

// SessionFromSnapshot rebuilds the session. A session persisted mid-test or
// mid-evaluation always comes back paused; the candidate chooses when the
// clock starts again.
func SessionFromSnapshot(snap Snapshot) Session {
	session := Session{
		CandidateID:   snap.CandidateID,
		Phase:         Phase(snap.Phase),
		MissingFields: append([]string(nil), snap.MissingFields...),
		Index:         snap.Index,
		Remaining:     snap.RemainingSeconds,
		TotalScore:    snap.TotalScore,
	}
	for _, q := range snap.Queue {
		session.Queue = append(session.Queue, Question{
			ID:         q.ID,
			Text:       q.Text,
			Difficulty: Difficulty(q.Difficulty),
			Answer:     q.Answer,
			Answered:   q.Answered,
		})
	}
	if session.Phase == PhaseRunning || session.Phase == PhaseEvaluating {
		session.Phase = PhasePaused
	}
	return session
}
