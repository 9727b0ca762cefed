package relay

import (
	"time"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

type MessageType string

// Inbound message types
const (
	MessageJoinRoom       MessageType = "join-room"
	MessageDetectionEvent MessageType = "detection-event"
	MessageEndInterview   MessageType = "end-interview"
)

// Outbound message types
const (
	MessageUserJoined     MessageType = "user-joined"
	MessageCandidateAlert MessageType = "candidate-alert"
	MessageInterviewEnded MessageType = "interview-ended"
	MessageError          MessageType = "error"
)

// Envelope is the wire format of inbound messages.
type Envelope struct {
	Type   MessageType            `json:"type"`
	RoomID string                 `json:"roomId,omitempty"`
	Name   string                 `json:"name,omitempty"`
	Role   domain.Role            `json:"role,omitempty"`
	Event  *domain.DetectionEvent `json:"event,omitempty"`
}

// Outbound is the wire format of relayed messages.
type Outbound struct {
	Type      MessageType `json:"type"`
	RoomID    string      `json:"roomId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// JoinedPayload announces a participant entering the room.
type JoinedPayload struct {
	Name string              `json:"name"`
	Role domain.Role         `json:"role"`
	Room *domain.RoomSession `json:"room"`
}

// AlertPayload carries one detection event to the interviewer side.
type AlertPayload struct {
	Event   domain.DetectionEvent `json:"event"`
	Message string                `json:"message"`
}

var alertMessages = map[domain.EventType]string{
	domain.EventFocusLost:      "Candidate looking away from screen",
	domain.EventFaceAbsent:     "No face detected in frame",
	domain.EventMultipleFaces:  "Multiple faces detected",
	domain.EventPhoneDetected:  "Mobile phone detected",
	domain.EventBookDetected:   "Books/notes detected",
	domain.EventDeviceDetected: "Electronic device detected",
}

// AlertMessage returns the human-readable alert line for an event type.
func AlertMessage(t domain.EventType) string {
	if msg, ok := alertMessages[t]; ok {
		return msg
	}
	return "Suspicious activity detected"
}

// RoleTopic is the per-role topic of a room. Candidate alerts go only
// there, never to the room-wide topic the candidate also hears.
func RoleTopic(roomID string, role domain.Role) string {
	return roomID + ":" + string(role)
}
