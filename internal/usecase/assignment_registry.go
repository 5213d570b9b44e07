package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/domain/repository"
	"patroltrack-service/pkg/apperr"
	"patroltrack-service/pkg/logger"
	"patroltrack-service/pkg/metrics"
)

// AssignmentRegistry creates and queries patrol assignments. Incoming time
// windows are interpreted in a fixed civil-time offset before any comparison
// or storage; timestamps are stored already shifted and never shifted again
// on read.
type AssignmentRegistry struct {
	assignmentRepo   repository.AssignmentRepository
	availabilityRepo repository.AvailabilityRepository
	transactor       repository.Transactor
	metrics          *metrics.Metrics
	logger           logger.Logger
	scheduleOffset   time.Duration
}

// NewAssignmentRegistry creates a new assignment registry
func NewAssignmentRegistry(
	assignmentRepo repository.AssignmentRepository,
	availabilityRepo repository.AvailabilityRepository,
	transactor repository.Transactor,
	m *metrics.Metrics,
	logger logger.Logger,
	scheduleOffset time.Duration,
) *AssignmentRegistry {
	return &AssignmentRegistry{
		assignmentRepo:   assignmentRepo,
		availabilityRepo: availabilityRepo,
		transactor:       transactor,
		metrics:          m,
		logger:           logger,
		scheduleOffset:   scheduleOffset,
	}
}

// AvailabilityResult reports the outcome of an availability check.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// AssignLocationInput carries everything needed to create an assignment.
type AssignLocationInput struct {
	WorkerID      uint
	AssignedBy    uint
	LocationID    uint
	Window        entity.TimeWindow
	CheckpointIDs []uint
}

// AssignmentPackage bundles the records created by AssignLocation.
type AssignmentPackage struct {
	Availability        *entity.AvailabilityWindow `json:"availabilityWindow"`
	Assignment          *entity.Assignment         `json:"assignment"`
	AssignmentLocation  *entity.AssignmentLocation `json:"assignmentLocation"`
	AssignedCheckpoints []entity.Checkpoint        `json:"assignedCheckpoints"`
}

// CheckAvailability verifies that neither the location nor the worker has an
// occupied window overlapping the requested one. Overlap uses inclusive
// bounds: [a,b] and [c,d] conflict iff a <= d and c <= b.
func (ar *AssignmentRegistry) CheckAvailability(ctx context.Context, workerID, locationID uint, window entity.TimeWindow) (*AvailabilityResult, error) {
	ar.logger.Info("Checking availability", "workerId", workerID, "locationId", locationID)

	start, end, err := ar.normalizeWindow(window)
	if err != nil {
		return nil, err
	}

	locationBusy, err := ar.availabilityRepo.HasLocationOverlap(ctx, locationID, start, end)
	if err != nil {
		return nil, apperr.Internal("failed to check location availability", err)
	}
	if locationBusy {
		return nil, apperr.Conflict("location time occupied")
	}

	workerBusy, err := ar.availabilityRepo.HasWorkerOverlap(ctx, workerID, start, end)
	if err != nil {
		return nil, apperr.Internal("failed to check worker availability", err)
	}
	if workerBusy {
		return nil, apperr.Conflict("worker time occupied")
	}

	return &AvailabilityResult{
		Available: true,
		Message:   "worker and location are available for the specified time",
	}, nil
}

// AssignLocation creates the availability window, the pending assignment and
// the assignment location in a single transaction.
func (ar *AssignmentRegistry) AssignLocation(ctx context.Context, input AssignLocationInput) (*AssignmentPackage, error) {
	ar.logger.Info("Assigning location",
		"workerId", input.WorkerID,
		"locationId", input.LocationID,
		"checkpoints", len(input.CheckpointIDs))

	if input.WorkerID == 0 || input.LocationID == 0 {
		return nil, apperr.Validation("worker id and location id are required")
	}

	start, end, err := ar.normalizeWindow(input.Window)
	if err != nil {
		return nil, err
	}

	durationMinutes := int(math.Round(end.Sub(start).Minutes()))
	if durationMinutes <= 0 {
		return nil, apperr.Validation("duration must be positive")
	}

	specialInstructions := "Standard patrol duties"
	if len(input.CheckpointIDs) > 0 {
		specialInstructions = "Visit all assigned checkpoints"
	}

	result := &AssignmentPackage{}

	err = ar.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		window := &entity.AvailabilityWindow{
			WorkerID:    input.WorkerID,
			LocationID:  input.LocationID,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: false,
		}
		if err := ar.availabilityRepo.Create(ctx, window); err != nil {
			return err
		}

		assignment := &entity.Assignment{
			WorkerID:                 input.WorkerID,
			AssignedBy:               input.AssignedBy,
			ShiftName:                fmt.Sprintf("Shift-%d-%d", input.WorkerID, input.LocationID),
			StartDate:                start,
			EndDate:                  end,
			ExpectedStartTime:        start,
			ExpectedEndTime:          end,
			EstimatedDurationMinutes: durationMinutes,
			Priority:                 entity.PriorityMedium,
			Status:                   entity.AssignmentPending,
			Instructions:             "Complete your patrolling before the estimated time",
		}
		if err := ar.assignmentRepo.Create(ctx, assignment); err != nil {
			return err
		}

		location := &entity.AssignmentLocation{
			AssignmentID:            assignment.ID,
			LocationID:              input.LocationID,
			IsMandatory:             true,
			ExpectedDurationMinutes: durationMinutes,
			SpecialInstructions:     specialInstructions,
		}
		if err := ar.assignmentRepo.CreateLocation(ctx, location, input.CheckpointIDs); err != nil {
			return err
		}

		checkpoints, err := ar.assignmentRepo.FindCheckpoints(ctx, input.CheckpointIDs)
		if err != nil {
			return err
		}

		result.Availability = window
		result.Assignment = assignment
		result.AssignmentLocation = location
		result.AssignedCheckpoints = checkpoints
		return nil
	})
	if err != nil {
		ar.metrics.ErrorsCount.WithLabelValues("assign_location").Inc()
		return nil, classify(err, "failed to assign location")
	}

	ar.metrics.AssignmentsCreated.Inc()
	return result, nil
}

// GetAssignments returns the worker's non-deleted assignments, newest start
// date first, with nested location and checkpoint detail.
func (ar *AssignmentRegistry) GetAssignments(ctx context.Context, workerID uint) ([]entity.AssignmentView, error) {
	assignments, err := ar.assignmentRepo.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch assignments", err)
	}

	views := make([]entity.AssignmentView, 0, len(assignments))
	for _, assignment := range assignments {
		views = append(views, buildAssignmentView(assignment))
	}
	return views, nil
}

// normalizeWindow validates the incoming window and shifts it into the
// configured civil-time offset.
func (ar *AssignmentRegistry) normalizeWindow(window entity.TimeWindow) (time.Time, time.Time, error) {
	if window.StartTime.IsZero() {
		return time.Time{}, time.Time{}, apperr.Validation("invalid start time format")
	}
	if window.EndTime.IsZero() {
		return time.Time{}, time.Time{}, apperr.Validation("invalid end time format")
	}

	start := window.StartTime.Add(ar.scheduleOffset)
	end := window.EndTime.Add(ar.scheduleOffset)

	if !start.Before(end) {
		return time.Time{}, time.Time{}, apperr.Validation("end time must be after start time")
	}
	return start, end, nil
}
