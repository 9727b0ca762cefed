package domain

import (
	"time"

	"github.com/google/uuid"
)

// InterviewStatus is the lifecycle state of an InterviewSession.
type InterviewStatus string

const (
	InterviewActive    InterviewStatus = "active"
	InterviewCompleted InterviewStatus = "completed"
)

// InterviewSession representa o registro cronometrado e pontuado de uma entrevista.
// Events grow append-only while active; IntegrityScore is computed exactly once
// at completion and is immutable afterwards.
type InterviewSession struct {
	ID             uuid.UUID        `json:"interviewId"`
	CandidateName  string           `json:"candidateName"`
	StartTime      time.Time        `json:"startTime"`
	EndTime        *time.Time       `json:"endTime,omitempty"`
	Status         InterviewStatus  `json:"status"`
	Events         []DetectionEvent `json:"events,omitempty"`
	IntegrityScore *int             `json:"integrityScore,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Completed reports whether the interview has been finalized.
func (s *InterviewSession) Completed() bool {
	return s.Status == InterviewCompleted
}

// Duration returns the elapsed interview time, up to now for active sessions.
func (s *InterviewSession) Duration() time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}
