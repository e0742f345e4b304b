package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

// Server bundles the services behind the REST surface.
type Server struct {
	authSvc     service.AuthService
	tenantSvc   service.TenantService
	vehicleSvc  service.VehicleService
	customerSvc service.CustomerService
	bookingSvc  service.BookingService
	ledgerSvc   service.LedgerService
	statsSvc    service.StatsService
	documentSvc service.DocumentService
	noteSvc     service.NotificationService
}

func NewServer(
	authSvc service.AuthService,
	tenantSvc service.TenantService,
	vehicleSvc service.VehicleService,
	customerSvc service.CustomerService,
	bookingSvc service.BookingService,
	ledgerSvc service.LedgerService,
	statsSvc service.StatsService,
	documentSvc service.DocumentService,
	noteSvc service.NotificationService,
) *Server {
	return &Server{
		authSvc:     authSvc,
		tenantSvc:   tenantSvc,
		vehicleSvc:  vehicleSvc,
		customerSvc: customerSvc,
		bookingSvc:  bookingSvc,
		ledgerSvc:   ledgerSvc,
		statsSvc:    statsSvc,
		documentSvc: documentSvc,
		noteSvc:     noteSvc,
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}

func queryInt64(r *http.Request, name string, fallback int64) int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func pagination(r *http.Request) (page, pageSize int64) {
	page = queryInt64(r, "page", 1)
	pageSize = queryInt64(r, "page_size", 20)
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

type pagedResponse struct {
	Items    any   `json:"items"`
	Total    int64 `json:"total"`
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
}
