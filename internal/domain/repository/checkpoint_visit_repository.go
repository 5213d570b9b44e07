package repository

import (
	"context"
	"time"

	"patroltrack-service/internal/domain/entity"
)

// CheckpointVisitRepository defines the interface for checkpoint visit
// operations.
type CheckpointVisitRepository interface {
	Create(ctx context.Context, visit *entity.CheckpointVisit) error
	// FindArrived returns the most recent visit still in arrived state for
	// the (session, assignment location, checkpoint) tuple, or (nil, nil).
	FindArrived(ctx context.Context, sessionID, assignmentLocationID, checkpointID uint) (*entity.CheckpointVisit, error)
	Complete(ctx context.Context, visitID uint, departedAt time.Time, durationMinutes int) (*entity.CheckpointVisit, error)
}
