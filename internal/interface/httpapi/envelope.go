package httpapi

import (
	"encoding/json"
	"net/http"

	"patroltrack-service/pkg/apperr"
)

// envelope is the wire shape of every response: data on success, a
// machine-checkable error kind plus message on failure.
type envelope struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Status: "success", Data: data})
}

func (h *Handler) respondError(w http.ResponseWriter, requestID, operation string, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		h.logger.Error("Request failed", "requestId", requestID, "operation", operation, "error", err)
	} else {
		h.logger.Warn("Request rejected", "requestId", requestID, "operation", operation, "kind", kind.String(), "error", err)
	}

	writeJSON(w, apperr.HTTPStatus(kind), envelope{
		Status: "error",
		Error: &errorBody{
			Kind:    kind.String(),
			Message: apperr.MessageOf(err),
		},
	})
}
