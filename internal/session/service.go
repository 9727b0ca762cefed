package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
	"github.com/saturnino-fabrica-de-software/vigia/internal/repository"
	"github.com/saturnino-fabrica-de-software/vigia/internal/scoring"
)

const (
	roomIDLength   = 4
	roomIDAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789" // no 0/O, 1/I/L

	// createRetries bounds room id collision retries. The id space holds
	// ~920k combinations, so hitting this limit means something else broke.
	createRetries = 5
)

// Service owns the room and interview lifecycles. All state transitions of
// one room go through its registry lock, making join and end idempotent
// under concurrency.
type Service struct {
	rooms      repository.RoomRepositoryInterface
	interviews repository.InterviewRepositoryInterface
	registry   *Registry
	logger     *slog.Logger
}

func NewService(rooms repository.RoomRepositoryInterface, interviews repository.InterviewRepositoryInterface, logger *slog.Logger) *Service {
	return &Service{
		rooms:      rooms,
		interviews: interviews,
		registry:   NewRegistry(),
		logger:     logger,
	}
}

// CreateRoom registers a waiting room for a candidate/interviewer pair and
// hands back its shareable 4-char id. Both names are fixed at creation.
func (s *Service) CreateRoom(ctx context.Context, candidateName, interviewerName string) (*domain.RoomSession, error) {
	candidateName = strings.TrimSpace(candidateName)
	interviewerName = strings.TrimSpace(interviewerName)
	if candidateName == "" {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("candidateName is required"))
	}
	if interviewerName == "" {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("interviewerName is required"))
	}

	for attempt := 0; attempt < createRetries; attempt++ {
		roomID, err := generateRoomID()
		if err != nil {
			return nil, fmt.Errorf("generate room id: %w", err)
		}

		room := &domain.RoomSession{
			RoomID:          roomID,
			CandidateName:   candidateName,
			InterviewerName: interviewerName,
			Status:          domain.RoomWaiting,
		}

		err = s.rooms.Create(ctx, room)
		if err == nil {
			s.logger.Info("room created", "room_id", room.RoomID)
			return room, nil
		}
		if !errors.Is(err, domain.ErrRoomExists) {
			return nil, err
		}
		// collision, try a fresh id
	}

	return nil, domain.ErrInternal.WithError(fmt.Errorf("room id space exhausted after %d attempts", createRetries))
}

func (s *Service) GetRoom(ctx context.Context, roomID string) (*domain.RoomSession, error) {
	return s.rooms.GetByID(ctx, roomID)
}

// JoinRoom lets a participant enter the room. The first join of a waiting
// room, from either side, activates it and opens the interview; every join
// after that is idempotent and sees the same interview.
func (s *Service) JoinRoom(ctx context.Context, roomID, userName string, role domain.Role) (*domain.RoomSession, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	unlock := s.registry.Lock(roomID)
	defer unlock()

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Ended() {
		return nil, domain.ErrRoomEnded
	}

	if room.Status == domain.RoomActive {
		return room, nil
	}

	now := time.Now().UTC()
	interview := &domain.InterviewSession{
		ID:            uuid.New(),
		CandidateName: room.CandidateName,
		StartTime:     now,
		Status:        domain.InterviewActive,
	}

	if err := s.rooms.Activate(ctx, room, interview); err != nil {
		// lost a cross-process race; whatever state won, report it fresh
		if errors.Is(err, domain.ErrRoomEnded) {
			return s.rooms.GetByID(ctx, roomID)
		}
		return nil, err
	}

	room.Status = domain.RoomActive
	room.StartTime = &interview.StartTime
	room.InterviewID = &interview.ID

	s.logger.Info("interview started",
		"room_id", room.RoomID,
		"interview_id", interview.ID,
		"joined_as", role,
		"participant", userName,
	)

	return room, nil
}

// RoomForInterview resolves the room that owns an interview. The REST event
// path uses it to find the alert topic for interviewer fan-out.
func (s *Service) RoomForInterview(ctx context.Context, interviewID uuid.UUID) (*domain.RoomSession, error) {
	return s.rooms.GetByInterviewID(ctx, interviewID)
}

// LogEvent validates and appends one detection event to an active interview.
func (s *Service) LogEvent(ctx context.Context, interviewID uuid.UUID, event domain.DetectionEvent) error {
	if err := event.Validate(); err != nil {
		return domain.ErrInvalidEvent.WithError(err)
	}

	return s.interviews.AppendEvent(ctx, interviewID, event)
}

// EndInterview completes the room and finalizes its interview, computing the
// integrity score exactly once. Repeat calls return the already finalized
// interview. Rooms that never left waiting complete without an interview.
func (s *Service) EndInterview(ctx context.Context, roomID string) (*domain.InterviewSession, error) {
	unlock := s.registry.Lock(roomID)
	defer unlock()

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.Ended() {
		// repeat end: hand back the finalized interview, if any
		if room.InterviewID == nil {
			return nil, nil
		}
		return s.interviews.GetByID(ctx, *room.InterviewID)
	}

	now := time.Now().UTC()

	var interview *domain.InterviewSession
	if room.InterviewID != nil {
		interview, err = s.interviews.GetByID(ctx, *room.InterviewID)
		if err != nil {
			return nil, err
		}

		if !interview.Completed() {
			score := scoring.Score(interview.Events)
			err = s.interviews.Finalize(ctx, interview.ID, now, score)
			if err != nil && !errors.Is(err, domain.ErrInterviewCompleted) {
				return nil, err
			}
			if errors.Is(err, domain.ErrInterviewCompleted) {
				// another process finalized first; its score stands
				interview, err = s.interviews.GetByID(ctx, interview.ID)
				if err != nil {
					return nil, err
				}
			} else {
				interview.Status = domain.InterviewCompleted
				interview.EndTime = &now
				interview.IntegrityScore = &score
			}
		}
	}

	if err := s.rooms.Complete(ctx, roomID, now); err != nil && !errors.Is(err, domain.ErrRoomEnded) {
		return nil, err
	}

	s.registry.Forget(roomID)

	if interview != nil {
		s.logger.Info("interview ended",
			"room_id", roomID,
			"interview_id", interview.ID,
			"integrity_score", *interview.IntegrityScore,
		)
	} else {
		s.logger.Info("room ended before interview started", "room_id", roomID)
	}

	return interview, nil
}

func (s *Service) GetInterview(ctx context.Context, interviewID uuid.UUID) (*domain.InterviewSession, error) {
	return s.interviews.GetByID(ctx, interviewID)
}

// GetReport builds the integrity report of a finalized interview.
func (s *Service) GetReport(ctx context.Context, interviewID uuid.UUID) (*domain.Report, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	if !interview.Completed() {
		return nil, domain.ErrReportNotReady
	}

	report := scoring.BuildReport(interview)
	return &report, nil
}

func generateRoomID() (string, error) {
	id := make([]byte, roomIDLength)
	max := big.NewInt(int64(len(roomIDAlphabet)))
	for i := range id {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		id[i] = roomIDAlphabet[n.Int64()]
	}
	return string(id), nil
}
