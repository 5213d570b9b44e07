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

// CheckpointTracker records arrival and departure events per checkpoint
// within a session. Each visit is a 2-state machine keyed by its own row:
// arrived -> completed. Revisiting a checkpoint produces a new row, but at
// most one visit per (session, assignment location, checkpoint) may be in
// the arrived state at a time.
type CheckpointTracker struct {
	visitRepo  repository.CheckpointVisitRepository
	transactor repository.Transactor
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewCheckpointTracker creates a new checkpoint tracker
func NewCheckpointTracker(
	visitRepo repository.CheckpointVisitRepository,
	transactor repository.Transactor,
	m *metrics.Metrics,
	logger logger.Logger,
) *CheckpointTracker {
	return &CheckpointTracker{
		visitRepo:  visitRepo,
		transactor: transactor,
		metrics:    m,
		logger:     logger,
	}
}

// MarkCheckpointInput identifies one checkpoint event within a session.
type MarkCheckpointInput struct {
	AssignmentID         uint
	WorkerID             uint
	SessionID            uint
	AssignmentLocationID uint
	CheckpointID         uint
	Status               string
}

// MarkCheckpoint records an arrival or a departure. Status "arrived" opens a
// new visit; any other status completes the open visit for the tuple.
func (ct *CheckpointTracker) MarkCheckpoint(ctx context.Context, input MarkCheckpointInput) (*entity.CheckpointVisit, error) {
	ct.logger.Info("Marking checkpoint",
		"sessionId", input.SessionID,
		"checkpointId", input.CheckpointID,
		"status", input.Status)

	if input.SessionID == 0 || input.AssignmentLocationID == 0 || input.CheckpointID == 0 {
		return nil, apperr.Validation("session, assignment location and checkpoint ids are required")
	}

	if input.Status == string(entity.VisitArrived) {
		return ct.markArrived(ctx, input)
	}
	return ct.markCompleted(ctx, input)
}

func (ct *CheckpointTracker) markArrived(ctx context.Context, input MarkCheckpointInput) (*entity.CheckpointVisit, error) {
	visit := &entity.CheckpointVisit{
		SessionID:            input.SessionID,
		AssignmentLocationID: input.AssignmentLocationID,
		CheckpointID:         input.CheckpointID,
		ArrivedAt:            time.Now(),
		Status:               entity.VisitArrived,
		GeofenceStatus:       entity.GeofenceInside,
	}

	err := ct.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		open, err := ct.visitRepo.FindArrived(ctx, input.SessionID, input.AssignmentLocationID, input.CheckpointID)
		if err != nil {
			return err
		}
		if open != nil {
			return apperr.Conflict("checkpoint visit already in progress")
		}
		return ct.visitRepo.Create(ctx, visit)
	})
	if err != nil {
		ct.metrics.ErrorsCount.WithLabelValues("mark_checkpoint").Inc()
		return nil, classify(err, "failed to mark checkpoint")
	}

	ct.metrics.CheckpointEvents.WithLabelValues("arrived").Inc()
	return visit, nil
}

func (ct *CheckpointTracker) markCompleted(ctx context.Context, input MarkCheckpointInput) (*entity.CheckpointVisit, error) {
	var completed *entity.CheckpointVisit

	err := ct.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		open, err := ct.visitRepo.FindArrived(ctx, input.SessionID, input.AssignmentLocationID, input.CheckpointID)
		if err != nil {
			return err
		}
		if open == nil {
			return apperr.NotFound("no active visit found for this session, location, and checkpoint")
		}

		now := time.Now()
		durationMinutes := int(now.Sub(open.ArrivedAt).Minutes())

		completed, err = ct.visitRepo.Complete(ctx, open.ID, now, durationMinutes)
		return err
	})
	if err != nil {
		ct.metrics.ErrorsCount.WithLabelValues("mark_checkpoint").Inc()
		return nil, classify(err, "failed to mark checkpoint")
	}

	ct.metrics.CheckpointEvents.WithLabelValues("completed").Inc()
	return completed, nil
}
