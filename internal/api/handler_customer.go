package api

import (
	"net/http"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
)

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var customer domain.Customer
	if !decodeJSON(w, r, &customer) {
		return
	}
	customer.ID = 0
	customer.TenantID = claims.TenantID

	created, err := s.customerSvc.Create(r.Context(), &customer)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid customer id"))
		return
	}

	customer, err := s.customerSvc.Get(r.Context(), claims.TenantID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, customer)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid customer id"))
		return
	}

	var customer domain.Customer
	if !decodeJSON(w, r, &customer) {
		return
	}
	customer.ID = id
	customer.TenantID = claims.TenantID

	updated, err := s.customerSvc.Update(r.Context(), &customer)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid customer id"))
		return
	}

	if err := s.customerSvc.Delete(r.Context(), claims.TenantID, id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	customers, err := s.customerSvc.List(r.Context(), claims.TenantID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, customers)
}
