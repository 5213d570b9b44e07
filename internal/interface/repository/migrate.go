package repository

import (
	"gorm.io/gorm"
)

// Migrate creates the patrol schema and its supporting indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Locations{},
		&Checkpoints{},
		&PatrolAssignments{},
		&AssignmentLocations{},
		&WorkerAvailability{},
		&PatrolSessions{},
		&CheckpointVisits{},
	); err != nil {
		return err
	}

	// At most one active assignment per worker. The application checks this
	// precondition inside its transactions; the partial index makes the
	// check race-proof across concurrent committers.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_worker_single_active_patrol
		ON patrol_assignments (worker_id)
		WHERE status = 'active' AND deleted_at IS NULL`).Error
}
