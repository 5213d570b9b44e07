package repository

import (
	"context"
	"time"

	"patroltrack-service/internal/domain/entity"
)

// AssignmentRepository defines the interface for patrol assignment operations.
// Finders return (nil, nil) when no row matches.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	CreateLocation(ctx context.Context, location *entity.AssignmentLocation, checkpointIDs []uint) error
	FindByID(ctx context.Context, id uint) (*entity.Assignment, error)
	// FindActiveByWorker returns the worker's active assignment excluding the
	// given assignment id. This backs the single-active-patrol rule.
	FindActiveByWorker(ctx context.Context, workerID, excludeAssignmentID uint) (*entity.Assignment, error)
	UpdateStatus(ctx context.Context, id uint, status entity.AssignmentStatus) error
	// Complete sets the status to completed and stamps the end date.
	Complete(ctx context.Context, id uint, endDate time.Time) error
	// ListByWorker returns non-deleted assignments with location and
	// checkpoint detail, newest start date first.
	ListByWorker(ctx context.Context, workerID uint) ([]entity.Assignment, error)
	// ListByWorkerAndStatus additionally preloads sessions and their visits.
	ListByWorkerAndStatus(ctx context.Context, workerID uint, status entity.AssignmentStatus) ([]entity.Assignment, error)
	FindCheckpoints(ctx context.Context, ids []uint) ([]entity.Checkpoint, error)
}
