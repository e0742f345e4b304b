package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
)

func (s *Server) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	tenant, err := s.tenantSvc.Get(r.Context(), claims.TenantID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tenant)
}

func (s *Server) handleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var tenant domain.Tenant
	if !decodeJSON(w, r, &tenant) {
		return
	}
	tenant.ID = claims.TenantID

	updated, err := s.tenantSvc.UpdateSettings(r.Context(), &tenant)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

type storefrontResponse struct {
	Tenant   *domain.Tenant   `json:"tenant"`
	Vehicles []domain.Vehicle `json:"vehicles"`
}

// handleStorefront is the public catalog endpoint. No token involved; only
// the tenant profile and available vehicles are exposed.
func (s *Server) handleStorefront(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	tenant, vehicles, err := s.tenantSvc.Storefront(r.Context(), code)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, storefrontResponse{Tenant: tenant, Vehicles: vehicles})
}
