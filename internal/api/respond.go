package api

import (
	"encoding/json"
	"net/http"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// respondWithError maps the error taxonomy to HTTP status codes. Internal
// causes are logged and replaced with a generic message.
func respondWithError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case apperr.IsNotFound(err):
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case apperr.IsConflict(err):
		respondWithJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
