package api

import (
	"net/http"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
)

func (s *Server) handleInvoice(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid booking id"))
		return
	}

	doc, err := s.documentSvc.AssembleInvoice(r.Context(), claims.TenantID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, doc)
}

func (s *Server) handleAgreement(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid booking id"))
		return
	}

	doc, err := s.documentSvc.AssembleAgreement(r.Context(), claims.TenantID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, doc)
}
