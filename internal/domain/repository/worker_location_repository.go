package repository

import (
	"context"

	"patroltrack-service/internal/domain/entity"
)

// WorkerLocationRepository defines the interface for the last-known-position
// cache.
type WorkerLocationRepository interface {
	Upsert(ctx context.Context, location *entity.WorkerLocation) error
	FindByWorker(ctx context.Context, workerID uint) (*entity.WorkerLocation, error)
}
