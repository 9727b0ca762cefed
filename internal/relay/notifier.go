package relay

import (
	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// Notifier publishes alerts on behalf of callers that hold no socket of
// their own, like the REST event endpoint. It shapes the same envelopes the
// socket path emits, so interviewers see one alert stream regardless of how
// an event arrived.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

// Detection fans one detection event out to the interviewer side of the
// room. Fire and forget, like every relay delivery.
func (n *Notifier) Detection(roomID string, event domain.DetectionEvent) {
	n.hub.Publish(RoleTopic(roomID, domain.RoleInterviewer), Outbound{
		Type:   MessageCandidateAlert,
		RoomID: roomID,
		Data: AlertPayload{
			Event:   event,
			Message: AlertMessage(event.EventType),
		},
	})
}
