package repository

import (
	"context"
	"time"

	"patroltrack-service/internal/domain/entity"
)

// SessionCompletion carries the terminal fields written when a patrol ends.
type SessionCompletion struct {
	EndedAt              time.Time
	EndLatitude          *float64
	EndLongitude         *float64
	TotalDurationMinutes *int
}

// PatrolSessionRepository defines the interface for patrol session
// operations. Finders return (nil, nil) when no row matches.
type PatrolSessionRepository interface {
	Create(ctx context.Context, session *entity.PatrolSession) error
	// FindByWorkerAndStatus looks up a session by id, owner and status.
	FindByWorkerAndStatus(ctx context.Context, sessionID, workerID uint, status entity.SessionStatus) (*entity.PatrolSession, error)
	// FindInProgress matches a session against all three identifying ids.
	FindInProgress(ctx context.Context, sessionID, assignmentID, workerID uint) (*entity.PatrolSession, error)
	MarkAbandoned(ctx context.Context, sessionID uint) error
	// Restart resets progress to zero and moves the session back to
	// in_progress with a fresh start timestamp.
	Restart(ctx context.Context, sessionID uint, startedAt time.Time) (*entity.PatrolSession, error)
	Complete(ctx context.Context, sessionID uint, completion SessionCompletion) (*entity.PatrolSession, error)
}
