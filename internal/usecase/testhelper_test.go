package usecase

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"patroltrack-service/internal/domain/entity"
	patrolRepo "patroltrack-service/internal/interface/repository"
	"patroltrack-service/pkg/logger"
	"patroltrack-service/pkg/metrics"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testCounter int64

// openTestDB opens a private in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testCounter, 1)
	dsn := fmt.Sprintf("file:usecase_test_%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, patrolRepo.Migrate(db))

	return db
}

// testMetrics returns a collector set with a unique namespace so repeated
// registrations across tests do not collide.
func testMetrics() *metrics.Metrics {
	n := atomic.AddInt64(&testCounter, 1)
	return metrics.NewMetrics(fmt.Sprintf("test%d", n))
}

type fixture struct {
	db       *gorm.DB
	registry *AssignmentRegistry
	engine   *PatrolEngine
	tracker  *CheckpointTracker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := openTestDB(t)
	log := logger.NewNop()
	m := testMetrics()

	assignmentRepo := patrolRepo.NewGormAssignmentRepository(db)
	availabilityRepo := patrolRepo.NewGormAvailabilityRepository(db)
	sessionRepo := patrolRepo.NewGormPatrolSessionRepository(db)
	visitRepo := patrolRepo.NewGormCheckpointVisitRepository(db)
	transactor := patrolRepo.NewGormTransactor(db)

	return &fixture{
		db:       db,
		registry: NewAssignmentRegistry(assignmentRepo, availabilityRepo, transactor, m, log, 330*time.Minute),
		engine:   NewPatrolEngine(assignmentRepo, sessionRepo, transactor, m, log),
		tracker:  NewCheckpointTracker(visitRepo, transactor, m, log),
	}
}

// seedCatalog inserts one location with two checkpoints and returns their ids.
func (f *fixture) seedCatalog(t *testing.T) (uint, []uint) {
	t.Helper()

	location := patrolRepo.Locations{Name: "North Gate", Latitude: 12.97, Longitude: 77.59}
	require.NoError(t, f.db.Create(&location).Error)

	checkpoints := []patrolRepo.Checkpoints{
		{LocationID: location.ID, Name: "Main Entrance", Latitude: 12.971, Longitude: 77.591},
		{LocationID: location.ID, Name: "Loading Dock", Latitude: 12.972, Longitude: 77.592},
	}
	require.NoError(t, f.db.Create(&checkpoints).Error)

	ids := make([]uint, 0, len(checkpoints))
	for _, cp := range checkpoints {
		ids = append(ids, cp.ID)
	}
	return location.ID, ids
}

// window returns a non-overlapping assignment window offset by the given
// number of days.
func window(days int) entity.TimeWindow {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	end := start.Add(4 * time.Hour)
	return entity.TimeWindow{StartTime: start, EndTime: end, StartDate: start, EndDate: end}
}

// createAssignment runs the full assignment flow and returns the created
// assignment.
func (f *fixture) createAssignment(t *testing.T, workerID, locationID uint, checkpointIDs []uint, days int) *entity.Assignment {
	t.Helper()

	pkg, err := f.registry.AssignLocation(t.Context(), AssignLocationInput{
		WorkerID:      workerID,
		AssignedBy:    1,
		LocationID:    locationID,
		Window:        window(days),
		CheckpointIDs: checkpointIDs,
	})
	require.NoError(t, err)
	return pkg.Assignment
}

func (f *fixture) assignmentStatus(t *testing.T, id uint) entity.AssignmentStatus {
	t.Helper()

	var model patrolRepo.PatrolAssignments
	require.NoError(t, f.db.Where("id = ?", id).First(&model).Error)
	return entity.AssignmentStatus(model.Status)
}

func firstAssignmentLocationID(t *testing.T, f *fixture, assignmentID uint) uint {
	t.Helper()

	var model patrolRepo.AssignmentLocations
	require.NoError(t, f.db.Where("assignment_id = ?", assignmentID).First(&model).Error)
	return model.ID
}

func (f *fixture) sessionByAssignment(t *testing.T, assignmentID uint) patrolRepo.PatrolSessions {
	t.Helper()

	var model patrolRepo.PatrolSessions
	require.NoError(t, f.db.Where("assignment_id = ?", assignmentID).Order("id DESC").First(&model).Error)
	return model
}
