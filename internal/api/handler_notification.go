package api

import (
	"net/http"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	page, pageSize := pagination(r)

	notes, total, err := s.noteSvc.List(r.Context(), claims.TenantID, claims.UserID, page, pageSize)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagedResponse{Items: notes, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid notification id"))
		return
	}

	if err := s.noteSvc.MarkAsRead(r.Context(), claims.TenantID, claims.UserID, id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}
