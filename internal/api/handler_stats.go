package api

import (
	"net/http"
	"time"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
)

// handleGetStats serves precomputed stats for a period ("2025" or
// "2025-06"). Defaults to the current year.
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	period := r.URL.Query().Get("period")
	if period == "" {
		period = time.Now().UTC().Format("2006")
	}
	if len(period) != 4 && len(period) != 7 {
		respondWithError(w, apperr.Validation("period must look like 2025 or 2025-06"))
		return
	}

	stats, err := s.statsSvc.Get(r.Context(), claims.TenantID, period)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
