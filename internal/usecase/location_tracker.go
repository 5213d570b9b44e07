package usecase

import (
	"context"
	"math"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/domain/repository"
	"patroltrack-service/pkg/apperr"
	"patroltrack-service/pkg/logger"
)

// LocationTracker upserts the last-known position of a worker. Positions are
// decoupled from session state and keep no history.
type LocationTracker struct {
	locationRepo repository.WorkerLocationRepository
	logger       logger.Logger
}

// NewLocationTracker creates a new location tracker
func NewLocationTracker(locationRepo repository.WorkerLocationRepository, logger logger.Logger) *LocationTracker {
	return &LocationTracker{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// UpdateLocation validates and stores the worker's current coordinates,
// returning the stored record.
func (lt *LocationTracker) UpdateLocation(ctx context.Context, workerID uint, latitude, longitude float64) (*entity.WorkerLocation, error) {
	if workerID == 0 {
		return nil, apperr.Validation("worker id is required")
	}
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) || latitude < -90 || latitude > 90 {
		return nil, apperr.Validation("latitude out of range")
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) || longitude < -180 || longitude > 180 {
		return nil, apperr.Validation("longitude out of range")
	}

	location := &entity.WorkerLocation{
		WorkerID:  workerID,
		Latitude:  latitude,
		Longitude: longitude,
	}
	if err := lt.locationRepo.Upsert(ctx, location); err != nil {
		return nil, apperr.Internal("failed to update location", err)
	}

	stored, err := lt.locationRepo.FindByWorker(ctx, workerID)
	if err != nil {
		return nil, apperr.Internal("failed to load location", err)
	}
	if stored == nil {
		return location, nil
	}
	return stored, nil
}
