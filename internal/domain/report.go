package domain

import "time"

// Recommendation is the verdict derived from the integrity score.
type Recommendation string

const (
	RecommendationPass   Recommendation = "PASS"
	RecommendationReview Recommendation = "REVIEW"
	RecommendationFail   Recommendation = "FAIL"
)

// SuspiciousEvents aggregates object-detection counts for the report.
type SuspiciousEvents struct {
	PhoneDetected   int `json:"phoneDetected"`
	BooksDetected   int `json:"booksDetected"`
	DevicesDetected int `json:"devicesDetected"`
}

// Report é o resumo de integridade de uma entrevista finalizada.
type Report struct {
	CandidateName          string           `json:"candidateName"`
	InterviewDuration      int              `json:"interviewDuration"` // minutes
	StartTime              time.Time        `json:"startTime"`
	EndTime                time.Time        `json:"endTime"`
	FocusLostCount         int              `json:"focusLostCount"`
	TotalFocusLostDuration int              `json:"totalFocusLostDuration"` // seconds
	FaceAbsentCount        int              `json:"faceAbsentCount"`
	MultipleFacesCount     int              `json:"multipleFacesCount"`
	SuspiciousEvents       SuspiciousEvents `json:"suspiciousEvents"`
	IntegrityScore         int              `json:"integrityScore"`
	Events                 []DetectionEvent `json:"events"`
	Summary                string           `json:"summary"`
	Recommendation         Recommendation   `json:"recommendation"`
}
