package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

type createBookingRequest struct {
	VehicleID           int64                  `json:"vehicle_id"`
	StartDate           time.Time              `json:"start_date"`
	EndDate             time.Time              `json:"end_date"`
	Drivers             []domain.BookingDriver `json:"drivers"`
	ExtrasTotal         decimal.Decimal        `json:"extras_total"`
	PickupFee           decimal.Decimal        `json:"pickup_fee"`
	ReturnFee           decimal.Decimal        `json:"return_fee"`
	AdditionalDriverFee decimal.Decimal        `json:"additional_driver_fee"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)

	var req createBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := s.bookingSvc.Create(r.Context(), claims.TenantID, claims.UserID, service.CreateBookingInput{
		VehicleID:           req.VehicleID,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		Drivers:             req.Drivers,
		ExtrasTotal:         req.ExtrasTotal,
		PickupFee:           req.PickupFee,
		ReturnFee:           req.ReturnFee,
		AdditionalDriverFee: req.AdditionalDriverFee,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid booking id"))
		return
	}

	booking, err := s.bookingSvc.Get(r.Context(), claims.TenantID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	page, pageSize := pagination(r)
	status := r.URL.Query().Get("status")

	bookings, total, err := s.bookingSvc.List(r.Context(), claims.TenantID, status, page, pageSize)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagedResponse{Items: bookings, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleTransition(w http.ResponseWriter, r *http.Request,
	apply func(tenantID, actorID, id int64) (*domain.Booking, error)) {

	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid booking id"))
		return
	}

	booking, err := apply(claims.TenantID, claims.UserID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, booking)
}

func (s *Server) handleConfirmBooking(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, func(tenantID, actorID, id int64) (*domain.Booking, error) {
		return s.bookingSvc.Confirm(r.Context(), tenantID, actorID, id)
	})
}

func (s *Server) handleDeclineBooking(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, func(tenantID, actorID, id int64) (*domain.Booking, error) {
		return s.bookingSvc.Decline(r.Context(), tenantID, actorID, id)
	})
}

func (s *Server) handleStartBooking(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, func(tenantID, actorID, id int64) (*domain.Booking, error) {
		return s.bookingSvc.Start(r.Context(), tenantID, actorID, id)
	})
}

func (s *Server) handleCompleteBooking(w http.ResponseWriter, r *http.Request) {
	s.handleTransition(w, r, func(tenantID, actorID, id int64) (*domain.Booking, error) {
		return s.bookingSvc.Complete(r.Context(), tenantID, actorID, id)
	})
}

type cancelBookingResponse struct {
	Booking         *domain.Booking `json:"booking"`
	CancellationFee decimal.Decimal `json:"cancellation_fee"`
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid booking id"))
		return
	}

	booking, fee, err := s.bookingSvc.Cancel(r.Context(), claims.TenantID, claims.UserID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cancelBookingResponse{Booking: booking, CancellationFee: fee})
}
