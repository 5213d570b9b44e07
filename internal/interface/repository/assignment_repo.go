package repository

import (
	"context"
	"errors"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements the AssignmentRepository interface
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository
func NewGormAssignmentRepository(db *gorm.DB) repository.AssignmentRepository {
	return &GormAssignmentRepository{
		db: db,
	}
}

// PatrolAssignments GORM model for database mapping
type PatrolAssignments struct {
	ID                       uint      `gorm:"primaryKey"`
	WorkerID                 uint      `gorm:"column:worker_id;index"`
	AssignedBy               uint      `gorm:"column:assigned_by"`
	ShiftName                string    `gorm:"column:shift_name"`
	StartDate                time.Time `gorm:"column:start_date;index"`
	EndDate                  time.Time `gorm:"column:end_date"`
	ExpectedStartTime        time.Time `gorm:"column:expected_start_time"`
	ExpectedEndTime          time.Time `gorm:"column:expected_end_time"`
	EstimatedDurationMinutes int       `gorm:"column:estimated_duration_minutes"`
	Priority                 string    `gorm:"column:priority"`
	Status                   string    `gorm:"column:status;index"`
	Instructions             string    `gorm:"column:instructions"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
	DeletedAt                gorm.DeletedAt `gorm:"index"`

	Locations []AssignmentLocations `gorm:"foreignKey:AssignmentID"`
	Sessions  []PatrolSessions      `gorm:"foreignKey:AssignmentID"`
}

// TableName overrides the default table name
func (PatrolAssignments) TableName() string {
	return "patrol_assignments"
}

// AssignmentLocations GORM model for database mapping
type AssignmentLocations struct {
	ID                      uint   `gorm:"primaryKey"`
	AssignmentID            uint   `gorm:"column:assignment_id;index"`
	LocationID              uint   `gorm:"column:location_id;index"`
	IsMandatory             bool   `gorm:"column:is_mandatory"`
	ExpectedDurationMinutes int    `gorm:"column:expected_duration_minutes"`
	SpecialInstructions     string `gorm:"column:special_instructions"`

	Location    Locations     `gorm:"foreignKey:LocationID"`
	Checkpoints []Checkpoints `gorm:"many2many:assignment_location_checkpoints"`
}

// TableName overrides the default table name
func (AssignmentLocations) TableName() string {
	return "assignment_locations"
}

// Create inserts a new patrol assignment
func (r *GormAssignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) error {
	model := PatrolAssignments{
		WorkerID:                 assignment.WorkerID,
		AssignedBy:               assignment.AssignedBy,
		ShiftName:                assignment.ShiftName,
		StartDate:                assignment.StartDate,
		EndDate:                  assignment.EndDate,
		ExpectedStartTime:        assignment.ExpectedStartTime,
		ExpectedEndTime:          assignment.ExpectedEndTime,
		EstimatedDurationMinutes: assignment.EstimatedDurationMinutes,
		Priority:                 string(assignment.Priority),
		Status:                   string(assignment.Status),
		Instructions:             assignment.Instructions,
	}

	if err := dbFrom(ctx, r.db).Create(&model).Error; err != nil {
		return err
	}

	assignment.ID = model.ID
	assignment.CreatedAt = model.CreatedAt
	assignment.UpdatedAt = model.UpdatedAt
	return nil
}

// CreateLocation inserts an assignment location and links pre-existing
// checkpoints to it
func (r *GormAssignmentRepository) CreateLocation(ctx context.Context, location *entity.AssignmentLocation, checkpointIDs []uint) error {
	db := dbFrom(ctx, r.db)

	model := AssignmentLocations{
		AssignmentID:            location.AssignmentID,
		LocationID:              location.LocationID,
		IsMandatory:             location.IsMandatory,
		ExpectedDurationMinutes: location.ExpectedDurationMinutes,
		SpecialInstructions:     location.SpecialInstructions,
	}

	if err := db.Omit("Checkpoints", "Location").Create(&model).Error; err != nil {
		return err
	}

	if len(checkpointIDs) > 0 {
		var checkpoints []Checkpoints
		if err := db.Where("id IN ?", checkpointIDs).Find(&checkpoints).Error; err != nil {
			return err
		}
		if err := db.Model(&model).Association("Checkpoints").Append(checkpoints); err != nil {
			return err
		}
	}

	location.ID = model.ID
	return nil
}

// FindByID finds an assignment by id
func (r *GormAssignmentRepository) FindByID(ctx context.Context, id uint) (*entity.Assignment, error) {
	var model PatrolAssignments
	result := dbFrom(ctx, r.db).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	assignment := model.toEntity()
	return &assignment, nil
}

// FindActiveByWorker returns the worker's active assignment excluding the
// given assignment id, or nil when none exists
func (r *GormAssignmentRepository) FindActiveByWorker(ctx context.Context, workerID, excludeAssignmentID uint) (*entity.Assignment, error) {
	var model PatrolAssignments
	result := dbFrom(ctx, r.db).
		Where("worker_id = ? AND status = ? AND id <> ?", workerID, string(entity.AssignmentActive), excludeAssignmentID).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	assignment := model.toEntity()
	return &assignment, nil
}

// UpdateStatus sets the assignment status
func (r *GormAssignmentRepository) UpdateStatus(ctx context.Context, id uint, status entity.AssignmentStatus) error {
	result := dbFrom(ctx, r.db).Model(&PatrolAssignments{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Complete sets the status to completed and stamps the end date
func (r *GormAssignmentRepository) Complete(ctx context.Context, id uint, endDate time.Time) error {
	result := dbFrom(ctx, r.db).Model(&PatrolAssignments{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   string(entity.AssignmentCompleted),
			"end_date": endDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByWorker returns the worker's non-deleted assignments with location
// and checkpoint detail, newest start date first
func (r *GormAssignmentRepository) ListByWorker(ctx context.Context, workerID uint) ([]entity.Assignment, error) {
	var models []PatrolAssignments
	result := dbFrom(ctx, r.db).
		Where("worker_id = ?", workerID).
		Order("start_date DESC").
		Preload("Locations.Location").
		Preload("Locations.Checkpoints").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return toAssignmentEntities(models), nil
}

// ListByWorkerAndStatus returns status-filtered assignments with sessions
// and checkpoint visits preloaded, newest start date first. Sessions are
// ordered latest first.
func (r *GormAssignmentRepository) ListByWorkerAndStatus(ctx context.Context, workerID uint, status entity.AssignmentStatus) ([]entity.Assignment, error) {
	var models []PatrolAssignments
	result := dbFrom(ctx, r.db).
		Where("worker_id = ? AND status = ?", workerID, string(status)).
		Order("start_date DESC").
		Preload("Locations.Location").
		Preload("Locations.Checkpoints").
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Sessions.Visits.Checkpoint").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	return toAssignmentEntities(models), nil
}

// FindCheckpoints loads catalog checkpoints by id
func (r *GormAssignmentRepository) FindCheckpoints(ctx context.Context, ids []uint) ([]entity.Checkpoint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []Checkpoints
	result := dbFrom(ctx, r.db).Where("id IN ?", ids).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	checkpoints := make([]entity.Checkpoint, 0, len(models))
	for _, m := range models {
		checkpoints = append(checkpoints, m.toEntity())
	}
	return checkpoints, nil
}

// Convert GORM model to domain entity
func (m PatrolAssignments) toEntity() entity.Assignment {
	assignment := entity.Assignment{
		ID:                       m.ID,
		WorkerID:                 m.WorkerID,
		AssignedBy:               m.AssignedBy,
		ShiftName:                m.ShiftName,
		StartDate:                m.StartDate,
		EndDate:                  m.EndDate,
		ExpectedStartTime:        m.ExpectedStartTime,
		ExpectedEndTime:          m.ExpectedEndTime,
		EstimatedDurationMinutes: m.EstimatedDurationMinutes,
		Priority:                 entity.Priority(m.Priority),
		Status:                   entity.AssignmentStatus(m.Status),
		Instructions:             m.Instructions,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}

	for _, loc := range m.Locations {
		assignment.Locations = append(assignment.Locations, loc.toEntity())
	}
	for _, session := range m.Sessions {
		assignment.Sessions = append(assignment.Sessions, session.toEntity())
	}
	return assignment
}

func (m AssignmentLocations) toEntity() entity.AssignmentLocation {
	location := entity.AssignmentLocation{
		ID:                      m.ID,
		AssignmentID:            m.AssignmentID,
		LocationID:              m.LocationID,
		IsMandatory:             m.IsMandatory,
		ExpectedDurationMinutes: m.ExpectedDurationMinutes,
		SpecialInstructions:     m.SpecialInstructions,
	}

	if m.Location.ID != 0 {
		loc := m.Location.toEntity()
		location.Location = &loc
	}
	for _, cp := range m.Checkpoints {
		location.Checkpoints = append(location.Checkpoints, cp.toEntity())
	}
	return location
}

func toAssignmentEntities(models []PatrolAssignments) []entity.Assignment {
	assignments := make([]entity.Assignment, 0, len(models))
	for _, m := range models {
		assignments = append(assignments, m.toEntity())
	}
	return assignments
}
