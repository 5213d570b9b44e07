package usecase

import (
	"context"
	"math"
	"testing"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/pkg/apperr"
	"patroltrack-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLocationRepo is an in-memory stand-in for the Mongo-backed cache.
type fakeLocationRepo struct {
	byWorker map[uint]*entity.WorkerLocation
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byWorker: make(map[uint]*entity.WorkerLocation)}
}

func (r *fakeLocationRepo) Upsert(_ context.Context, location *entity.WorkerLocation) error {
	location.UpdatedAt = time.Now()
	if existing, ok := r.byWorker[location.WorkerID]; ok {
		existing.Latitude = location.Latitude
		existing.Longitude = location.Longitude
		existing.UpdatedAt = location.UpdatedAt
		return nil
	}
	stored := *location
	stored.ID = "fake-id"
	r.byWorker[location.WorkerID] = &stored
	return nil
}

func (r *fakeLocationRepo) FindByWorker(_ context.Context, workerID uint) (*entity.WorkerLocation, error) {
	location, ok := r.byWorker[workerID]
	if !ok {
		return nil, nil
	}
	copied := *location
	return &copied, nil
}

func TestUpdateLocationUpserts(t *testing.T) {
	repo := newFakeLocationRepo()
	tracker := NewLocationTracker(repo, logger.NewNop())

	first, err := tracker.UpdateLocation(t.Context(), 7, 12.9716, 77.5946)
	require.NoError(t, err)
	assert.Equal(t, uint(7), first.WorkerID)
	assert.InDelta(t, 12.9716, first.Latitude, 1e-9)
	assert.False(t, first.UpdatedAt.IsZero())

	second, err := tracker.UpdateLocation(t.Context(), 7, 13.0, 77.6)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 13.0, second.Latitude, 1e-9)

	// Still a single record per worker.
	assert.Len(t, repo.byWorker, 1)
}

func TestUpdateLocationValidatesCoordinates(t *testing.T) {
	tracker := NewLocationTracker(newFakeLocationRepo(), logger.NewNop())

	cases := []struct {
		name     string
		lat, lng float64
	}{
		{"nan latitude", math.NaN(), 77.0},
		{"inf longitude", 13.0, math.Inf(1)},
		{"latitude too high", 91, 77.0},
		{"latitude too low", -91, 77.0},
		{"longitude too high", 13.0, 181},
		{"longitude too low", 13.0, -181},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tracker.UpdateLocation(t.Context(), 7, tc.lat, tc.lng)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}

func TestUpdateLocationRequiresWorker(t *testing.T) {
	tracker := NewLocationTracker(newFakeLocationRepo(), logger.NewNop())

	_, err := tracker.UpdateLocation(t.Context(), 0, 13.0, 77.0)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
