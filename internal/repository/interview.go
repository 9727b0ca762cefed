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

type InterviewRepository struct {
	pool PgxPool
}

func NewInterviewRepository(pool PgxPool) *InterviewRepository {
	return &InterviewRepository{pool: pool}
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, error) {
	query := `
		SELECT id, candidate_name, start_time, end_time, status, integrity_score, created_at, updated_at
		FROM interviews
		WHERE id = $1
	`

	var interview domain.InterviewSession
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&interview.ID,
		&interview.CandidateName,
		&interview.StartTime,
		&interview.EndTime,
		&interview.Status,
		&interview.IntegrityScore,
		&interview.CreatedAt,
		&interview.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInterviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get interview by id: %w", err)
	}

	events, err := r.listEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	interview.Events = events

	return &interview, nil
}

// listEvents returns the interview timeline in insertion order. The seq
// column, not the event timestamp, defines the order: client clocks drift.
func (r *InterviewRepository) listEvents(ctx context.Context, interviewID uuid.UUID) ([]domain.DetectionEvent, error) {
	query := `
		SELECT event_type, occurred_at, confidence, duration, metadata
		FROM detection_events
		WHERE interview_id = $1
		ORDER BY seq
	`

	rows, err := r.pool.Query(ctx, query, interviewID)
	if err != nil {
		return nil, fmt.Errorf("list detection events: %w", err)
	}
	defer rows.Close()

	var events []domain.DetectionEvent
	for rows.Next() {
		var event domain.DetectionEvent
		if err := rows.Scan(
			&event.EventType,
			&event.Timestamp,
			&event.Confidence,
			&event.Duration,
			&event.Metadata,
		); err != nil {
			return nil, fmt.Errorf("scan detection event: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate detection events: %w", err)
	}

	return events, nil
}

// AppendEvent persists one event onto an active interview. The guarded
// INSERT rejects writes after finalization even if the caller's view of the
// interview is stale.
func (r *InterviewRepository) AppendEvent(ctx context.Context, interviewID uuid.UUID, event domain.DetectionEvent) error {
	query := `
		INSERT INTO detection_events (interview_id, event_type, occurred_at, confidence, duration, metadata)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE EXISTS (SELECT 1 FROM interviews WHERE id = $1 AND status = 'active')
	`

	result, err := r.pool.Exec(ctx, query,
		interviewID,
		event.EventType,
		event.Timestamp,
		event.Confidence,
		event.Duration,
		event.Metadata,
	)
	if err != nil {
		return fmt.Errorf("append detection event: %w", err)
	}

	if result.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, interviewID); err != nil {
			return err
		}
		return domain.ErrInterviewCompleted
	}

	return nil
}

// Finalize completes an interview with its score. The conditional UPDATE
// makes finalization happen exactly once; repeat calls see zero affected
// rows and report the already-completed state.
func (r *InterviewRepository) Finalize(ctx context.Context, id uuid.UUID, endTime time.Time, score int) error {
	query := `
		UPDATE interviews
		SET status = $2, end_time = $3, integrity_score = $4, updated_at = NOW()
		WHERE id = $1 AND status = 'active'
	`

	result, err := r.pool.Exec(ctx, query, id, domain.InterviewCompleted, endTime, score)
	if err != nil {
		return fmt.Errorf("finalize interview: %w", err)
	}

	if result.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInterviewCompleted
	}

	return nil
}
