package api

import (
	"net/http"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

type signupRequest struct {
	TenantName string `json:"tenant_name"`
	TenantCode string `json:"tenant_code"`
	Currency   string `json:"currency"`
	UserName   string `json:"user_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type authResponse struct {
	Token  string         `json:"token"`
	User   *domain.User   `json:"user"`
	Tenant *domain.Tenant `json:"tenant,omitempty"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tenant, user, token, err := s.authSvc.SignupTenant(r.Context(), service.SignupInput{
		TenantName: req.TenantName,
		TenantCode: req.TenantCode,
		Currency:   req.Currency,
		UserName:   req.UserName,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, authResponse{Token: token, User: user, Tenant: tenant})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
