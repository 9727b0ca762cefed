package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// Service is the slice of the session layer the relay depends on.
type Service interface {
	JoinRoom(ctx context.Context, roomID, userName string, role domain.Role) (*domain.RoomSession, error)
	GetRoom(ctx context.Context, roomID string) (*domain.RoomSession, error)
	LogEvent(ctx context.Context, interviewID uuid.UUID, event domain.DetectionEvent) error
	EndInterview(ctx context.Context, roomID string) (*domain.InterviewSession, error)
}

func Handler(hub *Hub, svc Service, logger *slog.Logger) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		client := &Client{
			hub:    hub,
			conn:   c,
			send:   make(chan []byte, 256),
			topics: make(map[string]bool),
		}

		hub.register <- client

		sess := &session{hub: hub, svc: svc, logger: logger, client: client}

		go client.WritePump()
		client.ReadPump(sess.handle)
	})
}

func UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// session dispatches the inbound messages of one connection.
type session struct {
	hub    *Hub
	svc    Service
	logger *slog.Logger
	client *Client
}

func (s *session) handle(raw []byte) {
	var msg Envelope
	if err := json.Unmarshal(raw, &msg); err != nil {
		s.sendError("malformed message")
		return
	}

	ctx := context.Background()

	switch msg.Type {
	case MessageJoinRoom:
		s.handleJoin(ctx, msg)
	case MessageDetectionEvent:
		s.handleDetectionEvent(ctx, msg)
	case MessageEndInterview:
		s.handleEndInterview(ctx, msg)
	default:
		s.sendError(fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (s *session) handleJoin(ctx context.Context, msg Envelope) {
	room, err := s.svc.JoinRoom(ctx, msg.RoomID, msg.Name, msg.Role)
	if err != nil {
		s.sendError(errorMessage(err))
		return
	}

	s.client.roomID = room.RoomID
	s.client.name = msg.Name
	s.client.role = msg.Role

	s.hub.Subscribe(s.client, room.RoomID)
	s.hub.Subscribe(s.client, RoleTopic(room.RoomID, msg.Role))

	s.logger.Info("participant joined room",
		"room_id", room.RoomID,
		"role", msg.Role,
	)

	// os outros participantes são avisados; quem entrou não se ouve
	s.hub.PublishExcept(room.RoomID, Outbound{
		Type:   MessageUserJoined,
		RoomID: room.RoomID,
		Data: JoinedPayload{
			Name: msg.Name,
			Role: msg.Role,
			Room: room,
		},
	}, s.client)
}

// handleDetectionEvent persists the event and alerts the interviewer side
// only. The candidate must never learn which behaviors trip the detector.
func (s *session) handleDetectionEvent(ctx context.Context, msg Envelope) {
	if msg.Event == nil {
		s.sendError("detection-event requires an event body")
		return
	}

	room, err := s.svc.GetRoom(ctx, msg.RoomID)
	if err != nil {
		s.sendError(errorMessage(err))
		return
	}
	if room.InterviewID == nil {
		s.sendError("interview has not started")
		return
	}

	if err := s.svc.LogEvent(ctx, *room.InterviewID, *msg.Event); err != nil {
		s.sendError(errorMessage(err))
		return
	}

	s.hub.Publish(RoleTopic(msg.RoomID, domain.RoleInterviewer), Outbound{
		Type:   MessageCandidateAlert,
		RoomID: msg.RoomID,
		Data: AlertPayload{
			Event:   *msg.Event,
			Message: AlertMessage(msg.Event.EventType),
		},
	})
}

func (s *session) handleEndInterview(ctx context.Context, msg Envelope) {
	interview, err := s.svc.EndInterview(ctx, msg.RoomID)
	if err != nil {
		s.sendError(errorMessage(err))
		return
	}

	// Somente o candidato precisa saber que a sessao acabou.
	s.hub.Publish(RoleTopic(msg.RoomID, domain.RoleCandidate), Outbound{
		Type:   MessageInterviewEnded,
		RoomID: msg.RoomID,
		Data:   interview,
	})
}

// sendError reports a failure to this client only, never to the room.
func (s *session) sendError(text string) {
	payload, err := json.Marshal(Outbound{Type: MessageError, Message: text, Timestamp: time.Now()})
	if err != nil {
		return
	}

	select {
	case s.client.send <- payload:
	default:
	}
}

func errorMessage(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal error"
}
