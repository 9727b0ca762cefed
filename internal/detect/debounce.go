package detect

import (
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// SustainedSignal folds a noisy per-tick boolean into events that only fire
// after the condition held continuously for longer than the threshold. After
// firing, the timer re-arms, so a condition that never clears fires again
// once per full threshold.
type SustainedSignal struct {
	eventType  domain.EventType
	threshold  time.Duration
	confidence float64

	startedAt time.Time
}

func NewSustainedSignal(eventType domain.EventType, threshold time.Duration, confidence float64) *SustainedSignal {
	return &SustainedSignal{
		eventType:  eventType,
		threshold:  threshold,
		confidence: confidence,
	}
}

// Observe folds one tick of the raw signal at the given instant. Any
// negative tick clears the running timer unconditionally; a run shorter than
// the threshold never produces an event.
func (s *SustainedSignal) Observe(active bool, now time.Time) *domain.DetectionEvent {
	if !active {
		s.startedAt = time.Time{}
		return nil
	}

	if s.startedAt.IsZero() {
		s.startedAt = now
		return nil
	}

	elapsed := now.Sub(s.startedAt)
	if elapsed <= s.threshold {
		return nil
	}

	s.startedAt = time.Time{}

	return &domain.DetectionEvent{
		EventType:  s.eventType,
		Timestamp:  now,
		Confidence: s.confidence,
		Duration:   int(elapsed.Seconds()),
	}
}

// Reset descarta o estado acumulado
func (s *SustainedSignal) Reset() {
	s.startedAt = time.Time{}
}
