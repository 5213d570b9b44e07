package usecase

import (
	"testing"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartPatrolActivatesAssignmentAndOpensSession(t *testing.T) {
	f := newFixture(t)
	locationID, checkpointIDs := f.seedCatalog(t)
	assignment := f.createAssignment(t, 7, locationID, checkpointIDs, 0)

	started, err := f.engine.StartPatrol(t.Context(), locationID, assignment.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, entity.AssignmentActive, started.Status)

	session := f.sessionByAssignment(t, assignment.ID)
	assert.Equal(t, string(entity.SessionInProgress), session.Status)
	assert.Equal(t, 0, session.ProgressPercentage)
	assert.False(t, session.StartedAt.IsZero())
}

func TestStartPatrolRejectsSecondActivePatrol(t *testing.T) {
	f := newFixture(t)
	locationID, _ := f.seedCatalog(t)
	first := f.createAssignment(t, 7, locationID, nil, 0)
	second := f.createAssignment(t, 7, locationID, nil, 2)

	_, err := f.engine.StartPatrol(t.Context(), locationID, first.ID, 7)
	require.NoError(t, err)

	_, err = f.engine.StartPatrol(t.Context(), locationID, second.ID, 7)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// The losing call must leave the second assignment untouched.
	assert.Equal(t, entity.AssignmentPending, f.assignmentStatus(t, second.ID))
}

func TestStartPatrolUnknownAssignment(t *testing.T) {
	f := newFixture(t)
	f.seedCatalog(t)

	_, err := f.engine.StartPatrol(t.Context(), 1, 9999, 7)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCancelPatrolAbandonsSessionAndCancelsAssignment(t *testing.T) {
	f := newFixture(t)
	locationID, _ := f.seedCatalog(t)
	assignment := f.createAssignment(t, 7, locationID, nil, 0)

	_, err := f.engine.StartPatrol(t.Context(), locationID, assignment.ID, 7)
	require.NoError(t, err)
	session := f.sessionByAssignment(t, assignment.ID)

	require.NoError(t, f.engine.CancelPatrol(t.Context(), session.ID, 7))

	assert.Equal(t, entity.AssignmentCancelled, f.assignmentStatus(t, assignment.ID))
	assert.Equal(t, string(entity.SessionAbandoned), f.sessionByAssignment(t, assignment.ID).Status)
}

func TestCancelPatrolWrongStateOrOwner(t *testing.T) {
	f := newFixture(t)
	locationID, _ := f.seedCatalog(t)
	assignment := f.createAssignment(t, 7, locationID, nil, 0)

	_, err := f.engine.StartPatrol(t.Context(), locationID, assignment.ID, 7)
	require.NoError(t, err)
	session := f.sessionByAssignment(t, assignment.ID)

	// Wrong owner.
	err = f.engine.CancelPatrol(t.Context(), session.ID, 8)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	// Cancelling twice: the second call finds no in-progress session.
	require.NoError(t, f.engine.CancelPatrol(t.Context(), session.ID, 7))
	err = f.engine.CancelPatrol(t.Context(), session.ID, 7)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRestartPatrolReusesSessionAndResetsProgress(t *testing.T) {
	f := newFixture(t)
	locationID, _ := f.seedCatalog(t)
	assignment := f.createAssignment(t, 7, locationID, nil, 0)

	_, err := f.engine.StartPatrol(t.Context(), locationID, assignment.ID, 7)
	require.NoError(t, err)
	session := f.sessionByAssignment(t, assignment.ID)

	// Simulate mid-patrol progress before abandoning.
	require.NoError(t, f.db.Model(&session).Update("progress_percentage", 40).Error)
	require.NoError(t, f.engine.CancelPatrol(t.Context(), session.ID, 7))

	result, err := f.engine.RestartPatrol(t.Context(), session.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, session.ID, result.Session.ID)
	assert.Equal(t, entity.SessionInProgress, result.Session.Status)
	assert.Equal(t, 0, result.Session.ProgressPercentage)
	assert.Equal(t, entity.AssignmentActive, result.Assignment.Status)
}

func TestRestartPatrolRequiresAbandonedSession(t *testing.T) {
	f := newFixture(t)
	locationID, _ := f.seedCatalog(t)
	assignment := f.createAssignment(t, 7, locationID, nil, 0)

	_, err := f.engine.StartPatrol(t.Context(), locationID, assignment.ID, 7)
	require.NoError(t, err)
	session := f.sessionByAssignment(t, assignment.ID)

	// Still in progress.
	_, err = f.engine.RestartPatrol(t.Context(), session.ID, 7)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRestartPatrolRejectsWhenAnotherPatrolActive(t *testing.T) {
	f := newFixture(t)
	locationID, _ := f.seedCatalog(t)
	first := f.createAssignment(t, 7, locationID, nil, 0)
	second := f.createAssignment(t, 7, locationID, nil, 2)

	_, err := f.engine.StartPatrol(t.Context(), locationID, first.ID, 7)
	require.NoError(t, err)
	firstSession := f.sessionByAssignment(t, first.ID)
	require.NoError(t, f.engine.CancelPatrol(t.Context(), firstSession.ID, 7))

	_, err = f.engine.StartPatrol(t.Context(), locationID, second.ID, 7)
	require.NoError(t, err)

	_, err = f.engine.RestartPatrol(t.Context(), firstSession.ID, 7)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestEndPatrolCompletesSessionAndAssignment(t *testing.T) {
	f := newFixture(t)
	locationID, _ := f.seedCatalog(t)
	assignment := f.createAssignment(t, 7, locationID, nil, 0)

	_, err := f.engine.StartPatrol(t.Context(), locationID, assignment.ID, 7)
	require.NoError(t, err)
	session := f.sessionByAssignment(t, assignment.ID)

	lat, lng := 12.9716, 77.5946
	completed, err := f.engine.EndPatrol(t.Context(), EndPatrolInput{
		AssignmentID: assignment.ID,
		WorkerID:     7,
		SessionID:    session.ID,
		Latitude:     &lat,
		Longitude:    &lng,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SessionCompleted, completed.Status)
	require.NotNil(t, completed.EndedAt)
	require.NotNil(t, completed.TotalDurationMinutes)
	assert.Equal(t, 0, *completed.TotalDurationMinutes)
	require.NotNil(t, completed.EndLatitude)
	assert.InDelta(t, lat, *completed.EndLatitude, 1e-9)

	assert.Equal(t, entity.AssignmentCompleted, f.assignmentStatus(t, assignment.ID))
}

func TestEndPatrolWithoutMatchingSession(t *testing.T) {
	f := newFixture(t)
	locationID, _ := f.seedCatalog(t)
	assignment := f.createAssignment(t, 7, locationID, nil, 0)

	_, err := f.engine.StartPatrol(t.Context(), locationID, assignment.ID, 7)
	require.NoError(t, err)
	session := f.sessionByAssignment(t, assignment.ID)

	// Wrong assignment id.
	_, err = f.engine.EndPatrol(t.Context(), EndPatrolInput{
		AssignmentID: assignment.ID + 100,
		WorkerID:     7,
		SessionID:    session.ID,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestPatrolLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	locationID, checkpointIDs := f.seedCatalog(t)
	a := f.createAssignment(t, 42, locationID, checkpointIDs, 0)
	b := f.createAssignment(t, 42, locationID, checkpointIDs, 2)

	_, err := f.engine.StartPatrol(t.Context(), locationID, a.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, entity.AssignmentActive, f.assignmentStatus(t, a.ID))
	session := f.sessionByAssignment(t, a.ID)
	assert.Equal(t, string(entity.SessionInProgress), session.Status)

	_, err = f.engine.StartPatrol(t.Context(), locationID, b.ID, 42)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	require.NoError(t, f.engine.CancelPatrol(t.Context(), session.ID, 42))
	assert.Equal(t, entity.AssignmentCancelled, f.assignmentStatus(t, a.ID))
	assert.Equal(t, string(entity.SessionAbandoned), f.sessionByAssignment(t, a.ID).Status)

	restarted, err := f.engine.RestartPatrol(t.Context(), session.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, session.ID, restarted.Session.ID)
	assert.Equal(t, entity.AssignmentActive, f.assignmentStatus(t, a.ID))

	completed, err := f.engine.EndPatrol(t.Context(), EndPatrolInput{
		AssignmentID: a.ID,
		WorkerID:     42,
		SessionID:    session.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionCompleted, completed.Status)
	require.NotNil(t, completed.TotalDurationMinutes)
	assert.Equal(t, entity.AssignmentCompleted, f.assignmentStatus(t, a.ID))
}

func TestGetActivePatrolsProjection(t *testing.T) {
	f := newFixture(t)
	locationID, checkpointIDs := f.seedCatalog(t)
	assignment := f.createAssignment(t, 7, locationID, checkpointIDs, 0)

	_, err := f.engine.StartPatrol(t.Context(), locationID, assignment.ID, 7)
	require.NoError(t, err)
	session := f.sessionByAssignment(t, assignment.ID)

	_, err = f.tracker.MarkCheckpoint(t.Context(), MarkCheckpointInput{
		SessionID:            session.ID,
		AssignmentLocationID: firstAssignmentLocationID(t, f, assignment.ID),
		CheckpointID:         checkpointIDs[0],
		Status:               "arrived",
	})
	require.NoError(t, err)

	views, err := f.engine.GetActivePatrols(t.Context(), 7)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, assignment.ID, view.AssignmentID)
	assert.Equal(t, entity.AssignmentActive, view.Status)
	require.NotNil(t, view.SessionID)
	assert.Equal(t, session.ID, *view.SessionID)
	require.Len(t, view.CheckpointVisits, 1)
	assert.Equal(t, checkpointIDs[0], view.CheckpointVisits[0].CheckpointID)
	assert.Equal(t, "Main Entrance", view.CheckpointVisits[0].Name)
	require.Len(t, view.Locations, 1)
	assert.Equal(t, "North Gate", view.Locations[0].Name)
	assert.Len(t, view.Locations[0].Checkpoints, 2)

	// Nothing cancelled yet.
	cancelled, err := f.engine.GetCancelledPatrols(t.Context(), 7)
	require.NoError(t, err)
	assert.Empty(t, cancelled)
}
