package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetnexa/fleetnexa-server/internal/security"
)

// NewRouter builds the full route table. Everything under /api/v1 except
// auth and the storefront requires a bearer token.
func NewRouter(s *Server, tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public surface
	api.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/storefront/{code}", s.handleStorefront).Methods(http.MethodGet)

	// Tenant-scoped surface
	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(tokens))

	authed.HandleFunc("/tenant", s.handleGetTenant).Methods(http.MethodGet)
	authed.HandleFunc("/tenant", s.handleUpdateTenant).Methods(http.MethodPut)

	authed.HandleFunc("/vehicles", s.handleCreateVehicle).Methods(http.MethodPost)
	authed.HandleFunc("/vehicles", s.handleListVehicles).Methods(http.MethodGet)
	authed.HandleFunc("/vehicles/{id}", s.handleGetVehicle).Methods(http.MethodGet)
	authed.HandleFunc("/vehicles/{id}", s.handleUpdateVehicle).Methods(http.MethodPut)
	authed.HandleFunc("/vehicles/{id}", s.handleDeleteVehicle).Methods(http.MethodDelete)

	authed.HandleFunc("/customers", s.handleCreateCustomer).Methods(http.MethodPost)
	authed.HandleFunc("/customers", s.handleListCustomers).Methods(http.MethodGet)
	authed.HandleFunc("/customers/{id}", s.handleGetCustomer).Methods(http.MethodGet)
	authed.HandleFunc("/customers/{id}", s.handleUpdateCustomer).Methods(http.MethodPut)
	authed.HandleFunc("/customers/{id}", s.handleDeleteCustomer).Methods(http.MethodDelete)

	authed.HandleFunc("/bookings", s.handleCreateBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings", s.handleListBookings).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}", s.handleGetBooking).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}/confirm", s.handleConfirmBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/decline", s.handleDeclineBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/cancel", s.handleCancelBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/start", s.handleStartBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/complete", s.handleCompleteBooking).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/invoice", s.handleInvoice).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/{id}/agreement", s.handleAgreement).Methods(http.MethodGet)

	authed.HandleFunc("/payments", s.handleCreatePayment).Methods(http.MethodPost)
	authed.HandleFunc("/payments", s.handleListPayments).Methods(http.MethodGet)
	authed.HandleFunc("/payments/{id}", s.handleGetPayment).Methods(http.MethodGet)
	authed.HandleFunc("/payments/{id}", s.handleUpdatePayment).Methods(http.MethodPut)
	authed.HandleFunc("/payments/{id}", s.handleDeletePayment).Methods(http.MethodDelete)

	authed.HandleFunc("/refunds", s.handleCreateRefund).Methods(http.MethodPost)
	authed.HandleFunc("/refunds", s.handleListRefunds).Methods(http.MethodGet)
	authed.HandleFunc("/refunds/{id}", s.handleGetRefund).Methods(http.MethodGet)
	authed.HandleFunc("/refunds/{id}", s.handleUpdateRefund).Methods(http.MethodPut)
	authed.HandleFunc("/refunds/{id}", s.handleDeleteRefund).Methods(http.MethodDelete)

	authed.HandleFunc("/expenses", s.handleCreateExpense).Methods(http.MethodPost)
	authed.HandleFunc("/expenses", s.handleListExpenses).Methods(http.MethodGet)
	authed.HandleFunc("/expenses/{id}", s.handleGetExpense).Methods(http.MethodGet)
	authed.HandleFunc("/expenses/{id}", s.handleUpdateExpense).Methods(http.MethodPut)
	authed.HandleFunc("/expenses/{id}", s.handleDeleteExpense).Methods(http.MethodDelete)

	authed.HandleFunc("/transactions", s.handleListTransactions).Methods(http.MethodGet)

	authed.HandleFunc("/stats", s.handleGetStats).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", s.handleListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", s.handleMarkNotificationRead).Methods(http.MethodPost)

	return r
}
