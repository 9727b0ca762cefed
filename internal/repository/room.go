package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

type RoomRepository struct {
	pool PgxPool
}

func NewRoomRepository(pool PgxPool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.RoomSession) error {
	query := `
		INSERT INTO rooms (room_id, candidate_name, interviewer_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		room.RoomID,
		room.CandidateName,
		room.InterviewerName,
		room.Status,
	).Scan(&room.CreatedAt, &room.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoomExists
		}
		return fmt.Errorf("create room: %w", err)
	}

	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, roomID string) (*domain.RoomSession, error) {
	query := `
		SELECT room_id, candidate_name, COALESCE(interviewer_name, ''), status,
		       start_time, end_time, interview_id, created_at, updated_at
		FROM rooms
		WHERE room_id = $1
	`

	var room domain.RoomSession
	err := r.pool.QueryRow(ctx, query, roomID).Scan(
		&room.RoomID,
		&room.CandidateName,
		&room.InterviewerName,
		&room.Status,
		&room.StartTime,
		&room.EndTime,
		&room.InterviewID,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room by id: %w", err)
	}

	return &room, nil
}

// GetByInterviewID finds the room that owns the given interview.
func (r *RoomRepository) GetByInterviewID(ctx context.Context, interviewID uuid.UUID) (*domain.RoomSession, error) {
	query := `
		SELECT room_id, candidate_name, COALESCE(interviewer_name, ''), status,
		       start_time, end_time, interview_id, created_at, updated_at
		FROM rooms
		WHERE interview_id = $1
	`

	var room domain.RoomSession
	err := r.pool.QueryRow(ctx, query, interviewID).Scan(
		&room.RoomID,
		&room.CandidateName,
		&room.InterviewerName,
		&room.Status,
		&room.StartTime,
		&room.EndTime,
		&room.InterviewID,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room by interview id: %w", err)
	}

	return &room, nil
}

// Activate moves a waiting room to active and creates its interview record
// in the same transaction, so a crash never leaves an active room without an
// interview. The conditional UPDATE makes the transition race-safe: a
// concurrent activation sees zero affected rows and rolls back.
func (r *RoomRepository) Activate(ctx context.Context, room *domain.RoomSession, interview *domain.InterviewSession) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin activate room: %w", err)
	}
	defer tx.Rollback(ctx)

	insertInterview := `
		INSERT INTO interviews (id, candidate_name, start_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, insertInterview,
		interview.ID,
		interview.CandidateName,
		interview.StartTime,
		interview.Status,
	).Scan(&interview.CreatedAt, &interview.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create interview: %w", err)
	}

	updateRoom := `
		UPDATE rooms
		SET status = $2, interview_id = $3, start_time = $4, updated_at = NOW()
		WHERE room_id = $1 AND status = 'waiting'
	`
	result, err := tx.Exec(ctx, updateRoom,
		room.RoomID,
		domain.RoomActive,
		interview.ID,
		interview.StartTime,
	)
	if err != nil {
		return fmt.Errorf("activate room: %w", err)
	}
	if result.RowsAffected() == 0 {
		// someone else transitioned the room first; the rollback discards
		// the interview insert and the caller re-reads the room
		return domain.ErrRoomEnded
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit activate room: %w", err)
	}

	return nil
}

func (r *RoomRepository) Complete(ctx context.Context, roomID string, endTime time.Time) error {
	// a waiting room can also be ended: the candidate gave up before the
	// interviewer joined
	query := `
		UPDATE rooms
		SET status = $2, end_time = $3, updated_at = NOW()
		WHERE room_id = $1 AND status <> 'completed'
	`

	result, err := r.pool.Exec(ctx, query, roomID, domain.RoomCompleted, endTime)
	if err != nil {
		return fmt.Errorf("complete room: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRoomEnded
	}

	return nil
}
