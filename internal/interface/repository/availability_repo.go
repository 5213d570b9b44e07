package repository

import (
	"context"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAvailabilityRepository implements the AvailabilityRepository interface
type GormAvailabilityRepository struct {
	db *gorm.DB
}

// NewGormAvailabilityRepository creates a new GORM availability repository
func NewGormAvailabilityRepository(db *gorm.DB) repository.AvailabilityRepository {
	return &GormAvailabilityRepository{
		db: db,
	}
}

// WorkerAvailability GORM model for database mapping
type WorkerAvailability struct {
	ID          uint      `gorm:"primaryKey"`
	WorkerID    uint      `gorm:"column:worker_id;index"`
	LocationID  uint      `gorm:"column:location_id;index"`
	StartTime   time.Time `gorm:"column:start_time"`
	EndTime     time.Time `gorm:"column:end_time"`
	IsAvailable bool      `gorm:"column:is_available"`
	CreatedAt   time.Time
}

// TableName overrides the default table name
func (WorkerAvailability) TableName() string {
	return "worker_availability"
}

// Create inserts a new availability window
func (r *GormAvailabilityRepository) Create(ctx context.Context, window *entity.AvailabilityWindow) error {
	model := WorkerAvailability{
		WorkerID:    window.WorkerID,
		LocationID:  window.LocationID,
		StartTime:   window.StartTime,
		EndTime:     window.EndTime,
		IsAvailable: window.IsAvailable,
	}

	if err := dbFrom(ctx, r.db).Create(&model).Error; err != nil {
		return err
	}

	window.ID = model.ID
	window.CreatedAt = model.CreatedAt
	return nil
}

// HasWorkerOverlap reports whether any occupied window for the worker
// overlaps [start, end] with inclusive bounds
func (r *GormAvailabilityRepository) HasWorkerOverlap(ctx context.Context, workerID uint, start, end time.Time) (bool, error) {
	var count int64
	result := dbFrom(ctx, r.db).Model(&WorkerAvailability{}).
		Where("worker_id = ? AND is_available = ? AND start_time <= ? AND end_time >= ?", workerID, false, end, start).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// HasLocationOverlap reports whether any occupied window for the location
// overlaps [start, end] with inclusive bounds
func (r *GormAvailabilityRepository) HasLocationOverlap(ctx context.Context, locationID uint, start, end time.Time) (bool, error) {
	var count int64
	result := dbFrom(ctx, r.db).Model(&WorkerAvailability{}).
		Where("location_id = ? AND is_available = ? AND start_time <= ? AND end_time >= ?", locationID, false, end, start).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
