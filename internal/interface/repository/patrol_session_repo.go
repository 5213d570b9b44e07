package repository

import (
	"context"
	"errors"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormPatrolSessionRepository implements the PatrolSessionRepository interface
type GormPatrolSessionRepository struct {
	db *gorm.DB
}

// NewGormPatrolSessionRepository creates a new GORM patrol session repository
func NewGormPatrolSessionRepository(db *gorm.DB) repository.PatrolSessionRepository {
	return &GormPatrolSessionRepository{
		db: db,
	}
}

// PatrolSessions GORM model for database mapping
type PatrolSessions struct {
	ID                        uint       `gorm:"primaryKey"`
	AssignmentID              uint       `gorm:"column:assignment_id;index"`
	WorkerID                  uint       `gorm:"column:worker_id;index"`
	SessionDate               time.Time  `gorm:"column:session_date"`
	StartedAt                 time.Time  `gorm:"column:started_at"`
	EndedAt                   *time.Time `gorm:"column:ended_at"`
	Status                    string     `gorm:"column:status;index"`
	ProgressPercentage        int        `gorm:"column:progress_percentage"`
	CompletedCheckpointsCount int        `gorm:"column:completed_checkpoints_count"`
	EndLatitude               *float64   `gorm:"column:end_latitude"`
	EndLongitude              *float64   `gorm:"column:end_longitude"`
	TotalDurationMinutes      *int       `gorm:"column:total_duration_minutes"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time

	Visits []CheckpointVisits `gorm:"foreignKey:SessionID"`
}

// TableName overrides the default table name
func (PatrolSessions) TableName() string {
	return "patrol_sessions"
}

// Create inserts a new patrol session
func (r *GormPatrolSessionRepository) Create(ctx context.Context, session *entity.PatrolSession) error {
	model := PatrolSessions{
		AssignmentID:              session.AssignmentID,
		WorkerID:                  session.WorkerID,
		SessionDate:               session.SessionDate,
		StartedAt:                 session.StartedAt,
		Status:                    string(session.Status),
		ProgressPercentage:        session.ProgressPercentage,
		CompletedCheckpointsCount: session.CompletedCheckpointsCount,
	}

	if err := dbFrom(ctx, r.db).Create(&model).Error; err != nil {
		return err
	}

	session.ID = model.ID
	session.CreatedAt = model.CreatedAt
	session.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByWorkerAndStatus looks up a session by id, owner and status
func (r *GormPatrolSessionRepository) FindByWorkerAndStatus(ctx context.Context, sessionID, workerID uint, status entity.SessionStatus) (*entity.PatrolSession, error) {
	var model PatrolSessions
	result := dbFrom(ctx, r.db).
		Where("id = ? AND worker_id = ? AND status = ?", sessionID, workerID, string(status)).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	session := model.toEntity()
	return &session, nil
}

// FindInProgress matches an in-progress session against all three ids
func (r *GormPatrolSessionRepository) FindInProgress(ctx context.Context, sessionID, assignmentID, workerID uint) (*entity.PatrolSession, error) {
	var model PatrolSessions
	result := dbFrom(ctx, r.db).
		Where("id = ? AND assignment_id = ? AND worker_id = ? AND status = ?",
			sessionID, assignmentID, workerID, string(entity.SessionInProgress)).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	session := model.toEntity()
	return &session, nil
}

// MarkAbandoned moves a session to the abandoned state
func (r *GormPatrolSessionRepository) MarkAbandoned(ctx context.Context, sessionID uint) error {
	result := dbFrom(ctx, r.db).Model(&PatrolSessions{}).
		Where("id = ?", sessionID).
		Update("status", string(entity.SessionAbandoned))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Restart resets progress and moves the session back to in_progress
func (r *GormPatrolSessionRepository) Restart(ctx context.Context, sessionID uint, startedAt time.Time) (*entity.PatrolSession, error) {
	db := dbFrom(ctx, r.db)

	result := db.Model(&PatrolSessions{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":              string(entity.SessionInProgress),
			"progress_percentage": 0,
			"started_at":          startedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	var model PatrolSessions
	if err := db.Where("id = ?", sessionID).First(&model).Error; err != nil {
		return nil, err
	}

	session := model.toEntity()
	return &session, nil
}

// Complete moves the session to completed with its terminal fields
func (r *GormPatrolSessionRepository) Complete(ctx context.Context, sessionID uint, completion repository.SessionCompletion) (*entity.PatrolSession, error) {
	db := dbFrom(ctx, r.db)

	result := db.Model(&PatrolSessions{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"status":                 string(entity.SessionCompleted),
			"ended_at":               completion.EndedAt,
			"end_latitude":           completion.EndLatitude,
			"end_longitude":          completion.EndLongitude,
			"total_duration_minutes": completion.TotalDurationMinutes,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	var model PatrolSessions
	if err := db.Where("id = ?", sessionID).First(&model).Error; err != nil {
		return nil, err
	}

	session := model.toEntity()
	return &session, nil
}

// Convert GORM model to domain entity
func (m PatrolSessions) toEntity() entity.PatrolSession {
	session := entity.PatrolSession{
		ID:                        m.ID,
		AssignmentID:              m.AssignmentID,
		WorkerID:                  m.WorkerID,
		SessionDate:               m.SessionDate,
		StartedAt:                 m.StartedAt,
		EndedAt:                   m.EndedAt,
		Status:                    entity.SessionStatus(m.Status),
		ProgressPercentage:        m.ProgressPercentage,
		CompletedCheckpointsCount: m.CompletedCheckpointsCount,
		EndLatitude:               m.EndLatitude,
		EndLongitude:              m.EndLongitude,
		TotalDurationMinutes:      m.TotalDurationMinutes,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}

	for _, visit := range m.Visits {
		session.Visits = append(session.Visits, visit.toEntity())
	}
	return session
}
