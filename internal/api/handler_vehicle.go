package api

import (
	"net/http"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
)

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var vehicle domain.Vehicle
	if !decodeJSON(w, r, &vehicle) {
		return
	}
	vehicle.ID = 0
	vehicle.TenantID = claims.TenantID

	created, err := s.vehicleSvc.Create(r.Context(), &vehicle)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid vehicle id"))
		return
	}

	vehicle, err := s.vehicleSvc.Get(r.Context(), claims.TenantID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, vehicle)
}

func (s *Server) handleUpdateVehicle(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid vehicle id"))
		return
	}

	var vehicle domain.Vehicle
	if !decodeJSON(w, r, &vehicle) {
		return
	}
	vehicle.ID = id
	vehicle.TenantID = claims.TenantID

	updated, err := s.vehicleSvc.Update(r.Context(), &vehicle)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid vehicle id"))
		return
	}

	if err := s.vehicleSvc.Delete(r.Context(), claims.TenantID, id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	vehicles, err := s.vehicleSvc.List(r.Context(), claims.TenantID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, vehicles)
}
