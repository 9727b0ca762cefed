package domain

import (
	"fmt"
	"time"
)

// EventType identifica a categoria de violação detectada
type EventType string

const (
	EventFocusLost      EventType = "FOCUS_LOST"
	EventFaceAbsent     EventType = "FACE_ABSENT"
	EventMultipleFaces  EventType = "MULTIPLE_FACES"
	EventPhoneDetected  EventType = "PHONE_DETECTED"
	EventBookDetected   EventType = "BOOK_DETECTED"
	EventDeviceDetected EventType = "DEVICE_DETECTED"
)

var validEventTypes = map[EventType]bool{
	EventFocusLost:      true,
	EventFaceAbsent:     true,
	EventMultipleFaces:  true,
	EventPhoneDetected:  true,
	EventBookDetected:   true,
	EventDeviceDetected: true,
}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	return validEventTypes[t]
}

// BoundingBox is the detected object area within a frame, in pixel coordinates.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EventMetadata carries optional detector context for object events.
type EventMetadata struct {
	ObjectType  string       `json:"objectType,omitempty"`
	BoundingBox *BoundingBox `json:"boundingBox,omitempty"`
}

// DetectionEvent é um fato imutável: uma observação de integridade com timestamp.
// Face/focus events carry Duration (elapsed anomaly seconds); object events do not.
type DetectionEvent struct {
	EventType  EventType      `json:"eventType"`
	Timestamp  time.Time      `json:"timestamp"`
	Confidence float64        `json:"confidence"`
	Duration   int            `json:"duration,omitempty"`
	Metadata   *EventMetadata `json:"metadata,omitempty"`
}

// DedupKey returns the refractory-window key for the event: the event type
// plus the detected object class, or "default" when there is none. Distinct
// object classes of the same event type never suppress each other.
func (e DetectionEvent) DedupKey() string {
	objectType := "default"
	if e.Metadata != nil && e.Metadata.ObjectType != "" {
		objectType = e.Metadata.ObjectType
	}
	return string(e.EventType) + ":" + objectType
}

// Validate checks the event against the data model contract.
func (e DetectionEvent) Validate() error {
	if !e.EventType.Valid() {
		return fmt.Errorf("unknown event type %q", e.EventType)
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("event %s: timestamp is required", e.EventType)
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("event %s: confidence %f outside [0,1]", e.EventType, e.Confidence)
	}
	if e.Duration < 0 {
		return fmt.Errorf("event %s: negative duration %d", e.EventType, e.Duration)
	}
	return nil
}
