package repository

import (
	"context"
	"time"

	"patroltrack-service/internal/domain/entity"
)

// AvailabilityRepository defines the interface for the availability ledger.
// Overlap checks use inclusive bounds: [a,b] and [c,d] conflict iff
// a <= d and c <= b.
type AvailabilityRepository interface {
	Create(ctx context.Context, window *entity.AvailabilityWindow) error
	HasWorkerOverlap(ctx context.Context, workerID uint, start, end time.Time) (bool, error)
	HasLocationOverlap(ctx context.Context, locationID uint, start, end time.Time) (bool, error)
}
