package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// RoomService interface for the session service
type RoomService interface {
	CreateRoom(ctx context.Context, candidateName, interviewerName string) (*domain.RoomSession, error)
	GetRoom(ctx context.Context, roomID string) (*domain.RoomSession, error)
	JoinRoom(ctx context.Context, roomID, userName string, role domain.Role) (*domain.RoomSession, error)
	EndInterview(ctx context.Context, roomID string) (*domain.InterviewSession, error)
}

// RoomHandler handles room lifecycle requests
type RoomHandler struct {
	service RoomService
	logger  *slog.Logger
}

// NewRoomHandler creates a new RoomHandler instance
func NewRoomHandler(service RoomService, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		logger:  logger,
	}
}

// CreateRoomRequest request body for room creation
type CreateRoomRequest struct {
	CandidateName   string `json:"candidateName"`
	InterviewerName string `json:"interviewerName"`
}

// JoinRoomRequest request body for joining a room
type JoinRoomRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// EndInterviewResponse response for the end endpoint
type EndInterviewResponse struct {
	Room      *domain.RoomSession      `json:"room"`
	Interview *domain.InterviewSession `json:"interview,omitempty"`
}

// Create POST /v1/rooms - create a room for a scheduled interview
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	// 1. Parse and validate body
	var req CreateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}
	if strings.TrimSpace(req.CandidateName) == "" {
		return domain.ErrValidationFailed.WithError(errors.New("candidateName is required"))
	}
	if strings.TrimSpace(req.InterviewerName) == "" {
		return domain.ErrValidationFailed.WithError(errors.New("interviewerName is required"))
	}

	// 2. Create the room
	room, err := h.service.CreateRoom(c.Context(), req.CandidateName, req.InterviewerName)
	if err != nil {
		return err
	}

	h.logger.Info("room created",
		"room_id", room.RoomID,
		"candidate", room.CandidateName,
		"interviewer", room.InterviewerName,
	)

	return c.Status(fiber.StatusCreated).JSON(room)
}

// Get GET /v1/rooms/:roomId - fetch room state
func (h *RoomHandler) Get(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	if roomID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("roomId is required"))
	}

	room, err := h.service.GetRoom(c.Context(), roomID)
	if err != nil {
		return err
	}

	return c.JSON(room)
}

// Join POST /v1/rooms/:roomId/join - enter a room as candidate or interviewer
func (h *RoomHandler) Join(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	if roomID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("roomId is required"))
	}

	var req JoinRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrValidationFailed.WithError(err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return domain.ErrValidationFailed.WithError(errors.New("name is required"))
	}

	room, err := h.service.JoinRoom(c.Context(), roomID, req.Name, domain.Role(req.Role))
	if err != nil {
		return err
	}

	h.logger.Info("user joined room",
		"room_id", room.RoomID,
		"name", req.Name,
		"role", req.Role,
		"status", room.Status,
	)

	return c.JSON(room)
}

// End POST /v1/rooms/:roomId/end - finalize the interview and close the room
func (h *RoomHandler) End(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	if roomID == "" {
		return domain.ErrValidationFailed.WithError(errors.New("roomId is required"))
	}

	interview, err := h.service.EndInterview(c.Context(), roomID)
	if err != nil {
		return err
	}

	room, err := h.service.GetRoom(c.Context(), roomID)
	if err != nil {
		return err
	}

	h.logger.Info("room ended",
		"room_id", roomID,
		"had_interview", interview != nil,
	)

	return c.JSON(EndInterviewResponse{
		Room:      room,
		Interview: interview,
	})
}
