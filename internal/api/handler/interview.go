package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// InterviewService interface for the session service
type InterviewService interface {
	GetInterview(ctx context.Context, interviewID uuid.UUID) (*domain.InterviewSession, error)
	LogEvent(ctx context.Context, interviewID uuid.UUID, event domain.DetectionEvent) error
	RoomForInterview(ctx context.Context, interviewID uuid.UUID) (*domain.RoomSession, error)
	GetReport(ctx context.Context, interviewID uuid.UUID) (*domain.Report, error)
}

// AlertPublisher pushes a logged event to the interviewer's live alert
// stream. Nil disables fan-out.
type AlertPublisher interface {
	Detection(roomID string, event domain.DetectionEvent)
}

// InterviewHandler handles interview timeline and report requests
type InterviewHandler struct {
	service InterviewService
	alerts  AlertPublisher
	logger  *slog.Logger
}

// NewInterviewHandler creates a new InterviewHandler instance
func NewInterviewHandler(service InterviewService, alerts AlertPublisher, logger *slog.Logger) *InterviewHandler {
	return &InterviewHandler{
		service: service,
		alerts:  alerts,
		logger:  logger,
	}
}

// LogEventResponse response for the event-logging endpoint
type LogEventResponse struct {
	Logged    bool             `json:"logged"`
	EventType domain.EventType `json:"eventType"`
}

func parseInterviewID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.ErrValidationFailed.WithError(errors.New("interview id must be a valid UUID"))
	}
	return id, nil
}

// Get GET /v1/interviews/:id - fetch interview with its event timeline
func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	id, err := parseInterviewID(c)
	if err != nil {
		return err
	}

	interview, err := h.service.GetInterview(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(interview)
}

// LogEvent POST /v1/interviews/:id/events - append a detection event
func (h *InterviewHandler) LogEvent(c *fiber.Ctx) error {
	id, err := parseInterviewID(c)
	if err != nil {
		return err
	}

	var event domain.DetectionEvent
	if err := c.BodyParser(&event); err != nil {
		return domain.ErrInvalidEvent.WithError(err)
	}

	if err := h.service.LogEvent(c.Context(), id, event); err != nil {
		return err
	}

	h.publishAlert(c, id, event)

	h.logger.Debug("event logged",
		"interview_id", id,
		"event_type", event.EventType,
		"confidence", event.Confidence,
	)

	return c.Status(fiber.StatusCreated).JSON(LogEventResponse{
		Logged:    true,
		EventType: event.EventType,
	})
}

// publishAlert mirrors a persisted event onto the interviewer's alert
// topic. Delivery failures never fail the request; the event is already
// stored.
func (h *InterviewHandler) publishAlert(c *fiber.Ctx, interviewID uuid.UUID, event domain.DetectionEvent) {
	if h.alerts == nil {
		return
	}

	room, err := h.service.RoomForInterview(c.Context(), interviewID)
	if err != nil {
		h.logger.Debug("alert fan-out skipped, no room for interview",
			"interview_id", interviewID,
			"error", err,
		)
		return
	}

	h.alerts.Detection(room.RoomID, event)
}

// Report GET /v1/interviews/:id/report - integrity report for a finalized interview
func (h *InterviewHandler) Report(c *fiber.Ctx) error {
	id, err := parseInterviewID(c)
	if err != nil {
		return err
	}

	report, err := h.service.GetReport(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(report)
}
