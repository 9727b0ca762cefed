package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoomStatus is the lifecycle state of a RoomSession.
// Transitions are one-directional: waiting -> active -> completed.
type RoomStatus string

const (
	RoomWaiting   RoomStatus = "waiting"
	RoomActive    RoomStatus = "active"
	RoomCompleted RoomStatus = "completed"
)

// RoomSession representa o pareamento candidato/entrevistador de um agendamento.
// It owns at most one InterviewSession, by reference.
type RoomSession struct {
	RoomID          string     `json:"roomId"`
	CandidateName   string     `json:"candidateName"`
	InterviewerName string     `json:"interviewerName"`
	Status          RoomStatus `json:"status"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	InterviewID     *uuid.UUID `json:"interviewId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Ended reports whether the room reached its terminal state.
func (r *RoomSession) Ended() bool {
	return r.Status == RoomCompleted
}
