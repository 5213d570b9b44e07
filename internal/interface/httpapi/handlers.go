package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"patroltrack-service/internal/domain/entity"
	"patroltrack-service/internal/usecase"
	"patroltrack-service/pkg/apperr"
	"patroltrack-service/pkg/logger"

	"github.com/google/uuid"
)

// Handler exposes the patrol operations over JSON. Authentication and role
// checks live in an upstream gateway; worker ids arrive with the request.
type Handler struct {
	registry  *usecase.AssignmentRegistry
	engine    *usecase.PatrolEngine
	tracker   *usecase.CheckpointTracker
	locations *usecase.LocationTracker
	logger    logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	registry *usecase.AssignmentRegistry,
	engine *usecase.PatrolEngine,
	tracker *usecase.CheckpointTracker,
	locations *usecase.LocationTracker,
	logger logger.Logger,
) *Handler {
	return &Handler{
		registry:  registry,
		engine:    engine,
		tracker:   tracker,
		locations: locations,
		logger:    logger,
	}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/assignments/check-availability", h.checkAvailability)
	mux.HandleFunc("POST /api/admin/assignments", h.assignLocation)
	mux.HandleFunc("GET /api/workers/{workerId}/assignments", h.getAssignments)
	mux.HandleFunc("POST /api/workers/patrols/start", h.startPatrol)
	mux.HandleFunc("GET /api/workers/{workerId}/patrols/active", h.getActivePatrols)
	mux.HandleFunc("GET /api/workers/{workerId}/patrols/cancelled", h.getCancelledPatrols)
	mux.HandleFunc("POST /api/workers/patrols/{patrolId}/cancel", h.cancelPatrol)
	mux.HandleFunc("POST /api/workers/patrols/{patrolId}/restart", h.restartPatrol)
	mux.HandleFunc("POST /api/workers/patrols/end", h.endPatrol)
	mux.HandleFunc("POST /api/workers/checkpoints/mark", h.markCheckpoint)
	mux.HandleFunc("POST /api/workers/location", h.updateLocation)
}

type availabilityRequest struct {
	WorkerID   uint      `json:"workerId"`
	LocationID uint      `json:"locationId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
}

type assignLocationRequest struct {
	availabilityRequest
	AssignedBy  uint `json:"assignedBy"`
	Checkpoints []struct {
		ID uint `json:"id"`
	} `json:"checkpoints"`
}

type workerRequest struct {
	WorkerID uint `json:"workerId"`
}

type startPatrolRequest struct {
	LocationID   uint `json:"locationId"`
	AssignmentID uint `json:"assignmentId"`
	WorkerID     uint `json:"workerId"`
}

type endPatrolRequest struct {
	AssignmentID uint     `json:"assignmentId"`
	WorkerID     uint     `json:"workerId"`
	SessionID    uint     `json:"sessionId"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

type markCheckpointRequest struct {
	AssignmentID         uint   `json:"assignmentId"`
	WorkerID             uint   `json:"workerId"`
	SessionID            uint   `json:"sessionId"`
	AssignmentLocationID uint   `json:"assignmentLocationId"`
	CheckpointID         uint   `json:"checkpointId"`
	Status               string `json:"status"`
}

type updateLocationRequest struct {
	WorkerID  uint    `json:"workerId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *Handler) checkAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req availabilityRequest
	if err := decode(r, &req); err != nil {
		h.respondError(w, requestID, "check_availability", err)
		return
	}

	result, err := h.registry.CheckAvailability(r.Context(), req.WorkerID, req.LocationID, entity.TimeWindow{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.respondError(w, requestID, "check_availability", err)
		return
	}
	respondData(w, result)
}

func (h *Handler) assignLocation(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req assignLocationRequest
	if err := decode(r, &req); err != nil {
		h.respondError(w, requestID, "assign_location", err)
		return
	}

	checkpointIDs := make([]uint, 0, len(req.Checkpoints))
	for _, cp := range req.Checkpoints {
		checkpointIDs = append(checkpointIDs, cp.ID)
	}

	result, err := h.registry.AssignLocation(r.Context(), usecase.AssignLocationInput{
		WorkerID:   req.WorkerID,
		AssignedBy: req.AssignedBy,
		LocationID: req.LocationID,
		Window: entity.TimeWindow{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		},
		CheckpointIDs: checkpointIDs,
	})
	if err != nil {
		h.respondError(w, requestID, "assign_location", err)
		return
	}
	respondData(w, result)
}

func (h *Handler) getAssignments(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	workerID, err := pathID(r, "workerId")
	if err != nil {
		h.respondError(w, requestID, "get_assignments", err)
		return
	}

	views, err := h.registry.GetAssignments(r.Context(), workerID)
	if err != nil {
		h.respondError(w, requestID, "get_assignments", err)
		return
	}
	respondData(w, views)
}

func (h *Handler) startPatrol(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req startPatrolRequest
	if err := decode(r, &req); err != nil {
		h.respondError(w, requestID, "start_patrol", err)
		return
	}

	assignment, err := h.engine.StartPatrol(r.Context(), req.LocationID, req.AssignmentID, req.WorkerID)
	if err != nil {
		h.respondError(w, requestID, "start_patrol", err)
		return
	}
	respondData(w, assignment)
}

func (h *Handler) getActivePatrols(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	workerID, err := pathID(r, "workerId")
	if err != nil {
		h.respondError(w, requestID, "get_active_patrols", err)
		return
	}

	views, err := h.engine.GetActivePatrols(r.Context(), workerID)
	if err != nil {
		h.respondError(w, requestID, "get_active_patrols", err)
		return
	}
	respondData(w, views)
}

func (h *Handler) getCancelledPatrols(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	workerID, err := pathID(r, "workerId")
	if err != nil {
		h.respondError(w, requestID, "get_cancelled_patrols", err)
		return
	}

	views, err := h.engine.GetCancelledPatrols(r.Context(), workerID)
	if err != nil {
		h.respondError(w, requestID, "get_cancelled_patrols", err)
		return
	}
	respondData(w, views)
}

func (h *Handler) cancelPatrol(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	patrolID, err := pathID(r, "patrolId")
	if err != nil {
		h.respondError(w, requestID, "cancel_patrol", err)
		return
	}

	var req workerRequest
	if err := decode(r, &req); err != nil {
		h.respondError(w, requestID, "cancel_patrol", err)
		return
	}

	if err := h.engine.CancelPatrol(r.Context(), patrolID, req.WorkerID); err != nil {
		h.respondError(w, requestID, "cancel_patrol", err)
		return
	}
	respondData(w, map[string]string{"message": "patrol cancelled successfully"})
}

func (h *Handler) restartPatrol(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	patrolID, err := pathID(r, "patrolId")
	if err != nil {
		h.respondError(w, requestID, "restart_patrol", err)
		return
	}

	var req workerRequest
	if err := decode(r, &req); err != nil {
		h.respondError(w, requestID, "restart_patrol", err)
		return
	}

	result, err := h.engine.RestartPatrol(r.Context(), patrolID, req.WorkerID)
	if err != nil {
		h.respondError(w, requestID, "restart_patrol", err)
		return
	}
	respondData(w, result)
}

func (h *Handler) endPatrol(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req endPatrolRequest
	if err := decode(r, &req); err != nil {
		h.respondError(w, requestID, "end_patrol", err)
		return
	}

	session, err := h.engine.EndPatrol(r.Context(), usecase.EndPatrolInput{
		AssignmentID: req.AssignmentID,
		WorkerID:     req.WorkerID,
		SessionID:    req.SessionID,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	})
	if err != nil {
		h.respondError(w, requestID, "end_patrol", err)
		return
	}
	respondData(w, session)
}

func (h *Handler) markCheckpoint(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req markCheckpointRequest
	if err := decode(r, &req); err != nil {
		h.respondError(w, requestID, "mark_checkpoint", err)
		return
	}

	visit, err := h.tracker.MarkCheckpoint(r.Context(), usecase.MarkCheckpointInput{
		AssignmentID:         req.AssignmentID,
		WorkerID:             req.WorkerID,
		SessionID:            req.SessionID,
		AssignmentLocationID: req.AssignmentLocationID,
		CheckpointID:         req.CheckpointID,
		Status:               req.Status,
	})
	if err != nil {
		h.respondError(w, requestID, "mark_checkpoint", err)
		return
	}
	respondData(w, visit)
}

func (h *Handler) updateLocation(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req updateLocationRequest
	if err := decode(r, &req); err != nil {
		h.respondError(w, requestID, "update_location", err)
		return
	}

	location, err := h.locations.UpdateLocation(r.Context(), req.WorkerID, req.Latitude, req.Longitude)
	if err != nil {
		h.respondError(w, requestID, "update_location", err)
		return
	}
	respondData(w, location)
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return uint(id), nil
}
