package usecase

import (
	"context"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/domain/repository"
	"patroltrack-service/pkg/apperr"
	"patroltrack-service/pkg/logger"
	"patroltrack-service/pkg/metrics"
)

// PatrolEngine drives assignment and session status transitions. Every
// mutation runs inside a single transaction so a crash can never leave the
// assignment and its session in contradictory states, and the
// single-active-patrol precondition is re-checked inside that transaction.
type PatrolEngine struct {
	assignmentRepo repository.AssignmentRepository
	sessionRepo    repository.PatrolSessionRepository
	transactor     repository.Transactor
	metrics        *metrics.Metrics
	logger         logger.Logger
}

// NewPatrolEngine creates a new patrol engine
func NewPatrolEngine(
	assignmentRepo repository.AssignmentRepository,
	sessionRepo repository.PatrolSessionRepository,
	transactor repository.Transactor,
	m *metrics.Metrics,
	logger logger.Logger,
) *PatrolEngine {
	return &PatrolEngine{
		assignmentRepo: assignmentRepo,
		sessionRepo:    sessionRepo,
		transactor:     transactor,
		metrics:        m,
		logger:         logger,
	}
}

// EndPatrolInput identifies the session being completed and carries the
// caller-reported end coordinates.
type EndPatrolInput struct {
	AssignmentID uint
	WorkerID     uint
	SessionID    uint
	Latitude     *float64
	Longitude    *float64
}

// RestartResult bundles the records touched by RestartPatrol.
type RestartResult struct {
	Session    *entity.PatrolSession `json:"session"`
	Assignment *entity.Assignment    `json:"assignment"`
}

// StartPatrol activates the assignment and opens a new in-progress session.
// A worker may hold at most one active assignment; the check excludes the
// assignment being started so that retrying a start is not self-conflicting.
func (pe *PatrolEngine) StartPatrol(ctx context.Context, locationID, assignmentID, workerID uint) (*entity.Assignment, error) {
	pe.logger.Info("Starting patrol",
		"locationId", locationID,
		"assignmentId", assignmentID,
		"workerId", workerID)

	if assignmentID == 0 || workerID == 0 {
		return nil, apperr.Validation("assignment id and worker id are required")
	}

	var started *entity.Assignment

	err := pe.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		active, err := pe.assignmentRepo.FindActiveByWorker(ctx, workerID, assignmentID)
		if err != nil {
			return err
		}
		if active != nil {
			return apperr.Conflict("you already have an active patrol, cancel or complete it before starting a new one")
		}

		if err := pe.assignmentRepo.UpdateStatus(ctx, assignmentID, entity.AssignmentActive); err != nil {
			return err
		}

		now := time.Now()
		session := &entity.PatrolSession{
			AssignmentID:       assignmentID,
			WorkerID:           workerID,
			SessionDate:        now,
			StartedAt:          now,
			Status:             entity.SessionInProgress,
			ProgressPercentage: 0,
		}
		if err := pe.sessionRepo.Create(ctx, session); err != nil {
			return err
		}

		started, err = pe.assignmentRepo.FindByID(ctx, assignmentID)
		return err
	})
	if err != nil {
		pe.metrics.ErrorsCount.WithLabelValues("start_patrol").Inc()
		return nil, classify(err, "assignment not found")
	}

	pe.metrics.PatrolsStarted.Inc()
	return started, nil
}

// CancelPatrol abandons an in-progress session and cancels its assignment.
func (pe *PatrolEngine) CancelPatrol(ctx context.Context, patrolID, workerID uint) error {
	pe.logger.Info("Cancelling patrol", "patrolId", patrolID, "workerId", workerID)

	err := pe.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := pe.sessionRepo.FindByWorkerAndStatus(ctx, patrolID, workerID, entity.SessionInProgress)
		if err != nil {
			return err
		}
		if session == nil {
			return apperr.NotFound("patrol session not found or does not belong to you")
		}

		if err := pe.sessionRepo.MarkAbandoned(ctx, session.ID); err != nil {
			return err
		}
		return pe.assignmentRepo.UpdateStatus(ctx, session.AssignmentID, entity.AssignmentCancelled)
	})
	if err != nil {
		pe.metrics.ErrorsCount.WithLabelValues("cancel_patrol").Inc()
		return classify(err, "failed to cancel patrol")
	}

	pe.metrics.PatrolsCancelled.Inc()
	return nil
}

// RestartPatrol brings an abandoned session back to in_progress with its
// progress reset, under the same single-active-patrol rule as StartPatrol.
func (pe *PatrolEngine) RestartPatrol(ctx context.Context, patrolID, workerID uint) (*RestartResult, error) {
	pe.logger.Info("Restarting patrol", "patrolId", patrolID, "workerId", workerID)

	result := &RestartResult{}

	err := pe.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := pe.sessionRepo.FindByWorkerAndStatus(ctx, patrolID, workerID, entity.SessionAbandoned)
		if err != nil {
			return err
		}
		if session == nil {
			return apperr.NotFound("patrol session not found, does not belong to you, or is not abandoned")
		}

		active, err := pe.assignmentRepo.FindActiveByWorker(ctx, workerID, session.AssignmentID)
		if err != nil {
			return err
		}
		if active != nil {
			return apperr.Conflict("you already have an active patrol, cancel or complete it before restarting this one")
		}

		restarted, err := pe.sessionRepo.Restart(ctx, session.ID, time.Now())
		if err != nil {
			return err
		}

		if err := pe.assignmentRepo.UpdateStatus(ctx, session.AssignmentID, entity.AssignmentActive); err != nil {
			return err
		}

		assignment, err := pe.assignmentRepo.FindByID(ctx, session.AssignmentID)
		if err != nil {
			return err
		}

		result.Session = restarted
		result.Assignment = assignment
		return nil
	})
	if err != nil {
		pe.metrics.ErrorsCount.WithLabelValues("restart_patrol").Inc()
		return nil, classify(err, "failed to restart patrol")
	}

	pe.metrics.PatrolsRestarted.Inc()
	return result, nil
}

// EndPatrol completes the session and its assignment, recording the end
// coordinates and the total duration in whole minutes.
func (pe *PatrolEngine) EndPatrol(ctx context.Context, input EndPatrolInput) (*entity.PatrolSession, error) {
	pe.logger.Info("Ending patrol",
		"assignmentId", input.AssignmentID,
		"sessionId", input.SessionID,
		"workerId", input.WorkerID)

	var completed *entity.PatrolSession

	err := pe.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := pe.sessionRepo.FindInProgress(ctx, input.SessionID, input.AssignmentID, input.WorkerID)
		if err != nil {
			return err
		}
		if session == nil {
			return apperr.NotFound("no active patrol session found")
		}

		now := time.Now()

		var totalDuration *int
		if !session.StartedAt.IsZero() {
			minutes := int(now.Sub(session.StartedAt).Minutes())
			totalDuration = &minutes
		}

		completed, err = pe.sessionRepo.Complete(ctx, session.ID, repository.SessionCompletion{
			EndedAt:              now,
			EndLatitude:          input.Latitude,
			EndLongitude:         input.Longitude,
			TotalDurationMinutes: totalDuration,
		})
		if err != nil {
			return err
		}

		return pe.assignmentRepo.Complete(ctx, input.AssignmentID, now)
	})
	if err != nil {
		pe.metrics.ErrorsCount.WithLabelValues("end_patrol").Inc()
		return nil, classify(err, "failed to end patrol")
	}

	pe.metrics.PatrolsCompleted.Inc()
	if completed.TotalDurationMinutes != nil {
		pe.metrics.PatrolDuration.Observe(float64(*completed.TotalDurationMinutes))
	}
	return completed, nil
}

// GetActivePatrols returns the worker's active assignments with their latest
// session and checkpoint visits, newest start date first.
func (pe *PatrolEngine) GetActivePatrols(ctx context.Context, workerID uint) ([]entity.PatrolView, error) {
	return pe.listPatrols(ctx, workerID, entity.AssignmentActive)
}

// GetCancelledPatrols returns the worker's cancelled assignments with their
// latest session and checkpoint visits, newest start date first.
func (pe *PatrolEngine) GetCancelledPatrols(ctx context.Context, workerID uint) ([]entity.PatrolView, error) {
	return pe.listPatrols(ctx, workerID, entity.AssignmentCancelled)
}

func (pe *PatrolEngine) listPatrols(ctx context.Context, workerID uint, status entity.AssignmentStatus) ([]entity.PatrolView, error) {
	assignments, err := pe.assignmentRepo.ListByWorkerAndStatus(ctx, workerID, status)
	if err != nil {
		return nil, apperr.Internal("failed to fetch patrols", err)
	}

	views := make([]entity.PatrolView, 0, len(assignments))
	for _, assignment := range assignments {
		views = append(views, buildPatrolView(assignment))
	}
	return views, nil
}
