// Package scoring computes interview integrity scores from detection events.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// MaxScore is the starting score of a clean interview.
const MaxScore = 100

// Fixed penalty per event type. Unknown types cost nothing.
var penalties = map[domain.EventType]int{
	domain.EventFocusLost:      5,
	domain.EventFaceAbsent:     10,
	domain.EventMultipleFaces:  15,
	domain.EventBookDetected:   15,
	domain.EventPhoneDetected:  20,
	domain.EventDeviceDetected: 20,
}

// Score maps an event sequence to an integrity score in [0,100].
// The running total is clamped at 0 after every subtraction: once the score
// reaches the floor it stays there no matter how many events follow. Because
// every penalty is a fixed subtraction, the final value does not depend on
// event order.
func Score(events []domain.DetectionEvent) int {
	score := MaxScore
	for _, e := range events {
		score -= penalties[e.EventType]
		if score <= 0 {
			return 0
		}
	}
	return score
}

// Penalty returns the fixed deduction for an event type.
func Penalty(t domain.EventType) int {
	return penalties[t]
}

// Recommend derives the verdict from a score.
func Recommend(score int) domain.Recommendation {
	switch {
	case score >= 80:
		return domain.RecommendationPass
	case score >= 60:
		return domain.RecommendationReview
	default:
		return domain.RecommendationFail
	}
}

// Summarize produces the human-readable report summary line.
func Summarize(events []domain.DetectionEvent, score int) string {
	total := len(events)
	if total == 0 {
		return "No suspicious activities detected. Excellent interview conduct."
	}

	switch {
	case score >= 80:
		return fmt.Sprintf("Minor issues detected (%d events). Overall good interview conduct.", total)
	case score >= 60:
		return fmt.Sprintf("Moderate concerns identified (%d events). Requires review.", total)
	default:
		return fmt.Sprintf("Significant violations detected (%d events). Interview integrity compromised.", total)
	}
}

// BuildReport aggregates an interview into its integrity report. The stored
// score is reused when the interview was already finalized; recomputation
// yields the same value either way since Score is pure.
func BuildReport(interview *domain.InterviewSession) domain.Report {
	events := interview.Events

	var focusLost, faceAbsent, multipleFaces int
	var suspicious domain.SuspiciousEvents
	var focusLostSeconds int

	for _, e := range events {
		switch e.EventType {
		case domain.EventFocusLost:
			focusLost++
			focusLostSeconds += e.Duration
		case domain.EventFaceAbsent:
			faceAbsent++
		case domain.EventMultipleFaces:
			multipleFaces++
		case domain.EventPhoneDetected:
			suspicious.PhoneDetected++
		case domain.EventBookDetected:
			suspicious.BooksDetected++
		case domain.EventDeviceDetected:
			suspicious.DevicesDetected++
		}
	}

	score := Score(events)
	if interview.IntegrityScore != nil {
		score = *interview.IntegrityScore
	}

	endTime := time.Now()
	if interview.EndTime != nil {
		endTime = *interview.EndTime
	}

	return domain.Report{
		CandidateName:          interview.CandidateName,
		InterviewDuration:      int(math.Round(endTime.Sub(interview.StartTime).Minutes())),
		StartTime:              interview.StartTime,
		EndTime:                endTime,
		FocusLostCount:         focusLost,
		TotalFocusLostDuration: focusLostSeconds,
		FaceAbsentCount:        faceAbsent,
		MultipleFacesCount:     multipleFaces,
		SuspiciousEvents:       suspicious,
		IntegrityScore:         score,
		Events:                 events,
		Summary:                Summarize(events, score),
		Recommendation:         Recommend(score),
	}
}
