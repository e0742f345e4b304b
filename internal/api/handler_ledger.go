package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

type paymentRequest struct {
	BookingID  *int64          `json:"booking_id"`
	CustomerID *int64          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	PaidOn     time.Time       `json:"paid_on"`
	Notes      string          `json:"notes"`
}

func (r paymentRequest) input() service.PaymentInput {
	return service.PaymentInput{
		BookingID:  r.BookingID,
		CustomerID: r.CustomerID,
		Amount:     r.Amount,
		Method:     r.Method,
		PaidOn:     r.PaidOn,
		Notes:      r.Notes,
	}
}

// entryResponse pairs a ledger entry with its mirrored transaction on
// creation, so clients see both halves of the write.
type entryResponse struct {
	Entry       any                 `json:"entry"`
	Transaction *domain.Transaction `json:"transaction"`
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	var req paymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, txn, err := s.ledgerSvc.CreatePayment(r.Context(), claims.TenantID, req.input())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, entryResponse{Entry: payment, Transaction: txn})
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid payment id"))
		return
	}

	payment, err := s.ledgerSvc.GetPayment(r.Context(), claims.TenantID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, payment)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid payment id"))
		return
	}
	var req paymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payment, err := s.ledgerSvc.UpdatePayment(r.Context(), claims.TenantID, id, req.input())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, payment)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid payment id"))
		return
	}

	if err := s.ledgerSvc.DeletePayment(r.Context(), claims.TenantID, id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	page, pageSize := pagination(r)

	payments, total, err := s.ledgerSvc.ListPayments(r.Context(), claims.TenantID, page, pageSize)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagedResponse{Items: payments, Total: total, Page: page, PageSize: pageSize})
}

type refundRequest struct {
	BookingID  *int64          `json:"booking_id"`
	CustomerID *int64          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	RefundedOn time.Time       `json:"refunded_on"`
}

func (r refundRequest) input() service.RefundInput {
	return service.RefundInput{
		BookingID:  r.BookingID,
		CustomerID: r.CustomerID,
		Amount:     r.Amount,
		Reason:     r.Reason,
		RefundedOn: r.RefundedOn,
	}
}

func (s *Server) handleCreateRefund(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	var req refundRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	refund, txn, err := s.ledgerSvc.CreateRefund(r.Context(), claims.TenantID, req.input())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, entryResponse{Entry: refund, Transaction: txn})
}

func (s *Server) handleGetRefund(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid refund id"))
		return
	}

	refund, err := s.ledgerSvc.GetRefund(r.Context(), claims.TenantID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, refund)
}

func (s *Server) handleUpdateRefund(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid refund id"))
		return
	}
	var req refundRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	refund, err := s.ledgerSvc.UpdateRefund(r.Context(), claims.TenantID, id, req.input())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, refund)
}

func (s *Server) handleDeleteRefund(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid refund id"))
		return
	}

	if err := s.ledgerSvc.DeleteRefund(r.Context(), claims.TenantID, id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListRefunds(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	page, pageSize := pagination(r)

	refunds, total, err := s.ledgerSvc.ListRefunds(r.Context(), claims.TenantID, page, pageSize)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagedResponse{Items: refunds, Total: total, Page: page, PageSize: pageSize})
}

type expenseRequest struct {
	BookingID  *int64          `json:"booking_id"`
	VehicleID  *int64          `json:"vehicle_id"`
	Vendor     string          `json:"vendor"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	IncurredOn time.Time       `json:"incurred_on"`
}

func (r expenseRequest) input() service.ExpenseInput {
	return service.ExpenseInput{
		BookingID:  r.BookingID,
		VehicleID:  r.VehicleID,
		Vendor:     r.Vendor,
		Category:   r.Category,
		Amount:     r.Amount,
		IncurredOn: r.IncurredOn,
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, txn, err := s.ledgerSvc.CreateExpense(r.Context(), claims.TenantID, req.input())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, entryResponse{Entry: expense, Transaction: txn})
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid expense id"))
		return
	}

	expense, err := s.ledgerSvc.GetExpense(r.Context(), claims.TenantID, id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid expense id"))
		return
	}
	var req expenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := s.ledgerSvc.UpdateExpense(r.Context(), claims.TenantID, id, req.input())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, apperr.Validation("invalid expense id"))
		return
	}

	if err := s.ledgerSvc.DeleteExpense(r.Context(), claims.TenantID, id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	page, pageSize := pagination(r)

	expenses, total, err := s.ledgerSvc.ListExpenses(r.Context(), claims.TenantID, page, pageSize)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagedResponse{Items: expenses, Total: total, Page: page, PageSize: pageSize})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	page, pageSize := pagination(r)

	txns, total, err := s.ledgerSvc.ListTransactions(r.Context(), claims.TenantID, page, pageSize)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagedResponse{Items: txns, Total: total, Page: page, PageSize: pageSize})
}
