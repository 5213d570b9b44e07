package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/usecase"
	"patroltrack-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLocationRepo struct {
	stored *entity.WorkerLocation
}

func (r *stubLocationRepo) Upsert(_ context.Context, location *entity.WorkerLocation) error {
	location.UpdatedAt = time.Now()
	stored := *location
	stored.ID = "stub-id"
	r.stored = &stored
	return nil
}

func (r *stubLocationRepo) FindByWorker(_ context.Context, workerID uint) (*entity.WorkerLocation, error) {
	if r.stored == nil || r.stored.WorkerID != workerID {
		return nil, nil
	}
	return r.stored, nil
}

func newTestMux() *http.ServeMux {
	log := logger.NewNop()
	locations := usecase.NewLocationTracker(&stubLocationRepo{}, log)
	handler := NewHandler(nil, nil, nil, locations, log)

	mux := http.NewServeMux()
	handler.Register(mux)
	return mux
}

func TestUpdateLocationSuccessEnvelope(t *testing.T) {
	mux := newTestMux()

	body := `{"workerId": 7, "latitude": 12.9716, "longitude": 77.5946}`
	req := httptest.NewRequest(http.MethodPost, "/api/workers/location", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status string                `json:"status"`
		Data   entity.WorkerLocation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, uint(7), resp.Data.WorkerID)
	assert.Equal(t, "stub-id", resp.Data.ID)
}

func TestUpdateLocationErrorEnvelope(t *testing.T) {
	mux := newTestMux()

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"workerId":`},
		{"latitude out of range", `{"workerId": 7, "latitude": 95, "longitude": 77}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/workers/location", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Status string `json:"status"`
				Error  struct {
					Kind    string `json:"kind"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, "validation_error", resp.Error.Kind)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestPathParameterValidation(t *testing.T) {
	mux := newTestMux()

	req := httptest.NewRequest(http.MethodPost, "/api/workers/patrols/abc/cancel", strings.NewReader(`{"workerId": 7}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
