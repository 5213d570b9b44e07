package repository

import (
	"context"
	"errors"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormCheckpointVisitRepository implements the CheckpointVisitRepository interface
type GormCheckpointVisitRepository struct {
	db *gorm.DB
}

// NewGormCheckpointVisitRepository creates a new GORM checkpoint visit repository
func NewGormCheckpointVisitRepository(db *gorm.DB) repository.CheckpointVisitRepository {
	return &GormCheckpointVisitRepository{
		db: db,
	}
}

// CheckpointVisits GORM model for database mapping
type CheckpointVisits struct {
	ID                   uint       `gorm:"primaryKey"`
	SessionID            uint       `gorm:"column:session_id;index"`
	AssignmentLocationID uint       `gorm:"column:assignment_location_id;index"`
	CheckpointID         uint       `gorm:"column:checkpoint_id;index"`
	ArrivedAt            time.Time  `gorm:"column:arrived_at"`
	DepartedAt           *time.Time `gorm:"column:departed_at"`
	Status               string     `gorm:"column:status;index"`
	GeofenceStatus       string     `gorm:"column:geofence_status"`
	DurationMinutes      *int       `gorm:"column:duration_minutes"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Checkpoint Checkpoints `gorm:"foreignKey:CheckpointID"`
}

// TableName overrides the default table name
func (CheckpointVisits) TableName() string {
	return "checkpoint_visits"
}

// Create inserts a new checkpoint visit
func (r *GormCheckpointVisitRepository) Create(ctx context.Context, visit *entity.CheckpointVisit) error {
	model := CheckpointVisits{
		SessionID:            visit.SessionID,
		AssignmentLocationID: visit.AssignmentLocationID,
		CheckpointID:         visit.CheckpointID,
		ArrivedAt:            visit.ArrivedAt,
		Status:               string(visit.Status),
		GeofenceStatus:       string(visit.GeofenceStatus),
	}

	if err := dbFrom(ctx, r.db).Omit("Checkpoint").Create(&model).Error; err != nil {
		return err
	}

	visit.ID = model.ID
	visit.CreatedAt = model.CreatedAt
	visit.UpdatedAt = model.UpdatedAt
	return nil
}

// FindArrived returns the most recent visit still in arrived state for the
// (session, assignment location, checkpoint) tuple, or nil
func (r *GormCheckpointVisitRepository) FindArrived(ctx context.Context, sessionID, assignmentLocationID, checkpointID uint) (*entity.CheckpointVisit, error) {
	var model CheckpointVisits
	result := dbFrom(ctx, r.db).
		Where("session_id = ? AND assignment_location_id = ? AND checkpoint_id = ? AND status = ?",
			sessionID, assignmentLocationID, checkpointID, string(entity.VisitArrived)).
		Order("arrived_at DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	visit := model.toEntity()
	return &visit, nil
}

// Complete marks the visit as departed and records its duration
func (r *GormCheckpointVisitRepository) Complete(ctx context.Context, visitID uint, departedAt time.Time, durationMinutes int) (*entity.CheckpointVisit, error) {
	db := dbFrom(ctx, r.db)

	result := db.Model(&CheckpointVisits{}).
		Where("id = ?", visitID).
		Updates(map[string]interface{}{
			"status":           string(entity.VisitCompleted),
			"geofence_status":  string(entity.GeofenceOutside),
			"departed_at":      departedAt,
			"duration_minutes": durationMinutes,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	var model CheckpointVisits
	if err := db.Where("id = ?", visitID).First(&model).Error; err != nil {
		return nil, err
	}

	visit := model.toEntity()
	return &visit, nil
}

// Convert GORM model to domain entity
func (m CheckpointVisits) toEntity() entity.CheckpointVisit {
	visit := entity.CheckpointVisit{
		ID:                   m.ID,
		SessionID:            m.SessionID,
		AssignmentLocationID: m.AssignmentLocationID,
		CheckpointID:         m.CheckpointID,
		ArrivedAt:            m.ArrivedAt,
		DepartedAt:           m.DepartedAt,
		Status:               entity.VisitStatus(m.Status),
		GeofenceStatus:       entity.GeofenceStatus(m.GeofenceStatus),
		DurationMinutes:      m.DurationMinutes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}

	if m.Checkpoint.ID != 0 {
		checkpoint := m.Checkpoint.toEntity()
		visit.Checkpoint = &checkpoint
	}
	return visit
}
