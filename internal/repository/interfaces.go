package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

// PgxPool is the subset of *pgxpool.Pool the repositories depend on.
// pgxmock satisfies it in unit tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RoomRepositoryInterface defines operations for room session data access
type RoomRepositoryInterface interface {
	Create(ctx context.Context, room *domain.RoomSession) error
	GetByID(ctx context.Context, roomID string) (*domain.RoomSession, error)
	GetByInterviewID(ctx context.Context, interviewID uuid.UUID) (*domain.RoomSession, error)
	Activate(ctx context.Context, room *domain.RoomSession, interview *domain.InterviewSession) error
	Complete(ctx context.Context, roomID string, endTime time.Time) error
}

// InterviewRepositoryInterface defines operations for interview data access
type InterviewRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, error)
	AppendEvent(ctx context.Context, interviewID uuid.UUID, event domain.DetectionEvent) error
	Finalize(ctx context.Context, id uuid.UUID, endTime time.Time, score int) error
}
