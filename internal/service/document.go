package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
	"github.com/fleetnexa/fleetnexa-server/internal/storage"
)

const (
	DocumentKindInvoice   = "INVOICE"
	DocumentKindAgreement = "AGREEMENT"
)

type documentService struct {
	bookingRepo  repository.BookingRepository
	tenantRepo   repository.TenantRepository
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
	ledgerRepo   repository.LedgerRepository
	store        storage.Storage
}

func NewDocumentService(
	bookingRepo repository.BookingRepository,
	tenantRepo repository.TenantRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	ledgerRepo repository.LedgerRepository,
	store storage.Storage,
) DocumentService {
	return &documentService{
		bookingRepo:  bookingRepo,
		tenantRepo:   tenantRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		ledgerRepo:   ledgerRepo,
		store:        store,
	}
}

func (s *documentService) AssembleInvoice(ctx context.Context, tenantID, bookingID int64) (*DocumentData, error) {
	return s.assemble(ctx, tenantID, bookingID, DocumentKindInvoice)
}

func (s *documentService) AssembleAgreement(ctx context.Context, tenantID, bookingID int64) (*DocumentData, error) {
	return s.assemble(ctx, tenantID, bookingID, DocumentKindAgreement)
}

func (s *documentService) assemble(ctx context.Context, tenantID, bookingID int64, kind string) (*DocumentData, error) {
	booking, err := s.bookingRepo.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		return nil, mapRepoErr(err, "booking")
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, mapRepoErr(err, "tenant")
	}

	primaryID := booking.PrimaryDriver()
	if primaryID == 0 {
		return nil, apperr.Internal(fmt.Errorf("booking %d has no primary driver", bookingID))
	}
	customer, err := s.customerRepo.GetByID(ctx, tenantID, primaryID)
	if err != nil {
		return nil, mapRepoErr(err, "customer")
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, booking.VehicleID)
	if err != nil {
		return nil, mapRepoErr(err, "vehicle")
	}

	docNumber, err := s.documentNumber(ctx, tenant, booking, kind)
	if err != nil {
		return nil, err
	}

	paid, err := s.ledgerRepo.SumPaymentsForBooking(ctx, tenantID, bookingID)
	if err != nil {
		return nil, mapRepoErr(err, "payments")
	}

	doc := &DocumentData{
		DocumentNumber:     docNumber,
		Kind:               kind,
		TenantName:         tenant.Name,
		TenantAddress:      formatAddress(tenant.Address),
		Currency:           tenant.Currency,
		CustomerName:       customer.FullName(),
		CustomerAddress:    formatAddress(customer.Address),
		LicenseNumber:      customer.LicenseNumber,
		VehicleDescription: fmt.Sprintf("%d %s %s (%s)", vehicle.Year, vehicle.Make, vehicle.Model, vehicle.LicensePlate),
		BillingUnit:        tenant.BillingUnit,
		UnitCount:          UnitCount(tenant.BillingUnit, booking.StartDate, booking.EndDate),
		StartDate:          booking.StartDate.Format("2006-01-02"),
		EndDate:            booking.EndDate.Format("2006-01-02"),
		LineItems:          lineItems(booking.Values, tenant.Currency),
		NetTotal:           booking.Values.NetTotal,
		NetTotalFormatted:  FormatAmount(tenant.Currency, booking.Values.NetTotal),
		AmountPaid:         paid,
		BalanceDue:         booking.Values.NetTotal.Sub(paid),
	}

	s.snapshot(ctx, tenant, doc)
	return doc, nil
}

// documentNumber returns the persisted number for the booking, minting and
// storing one on first use. Numbers are stable: re-assembling a document
// never changes it.
func (s *documentService) documentNumber(ctx context.Context, tenant *domain.Tenant, booking *domain.Booking, kind string) (string, error) {
	existing := booking.InvoiceNumber
	prefix := "INV"
	if kind == DocumentKindAgreement {
		existing = booking.AgreementNumber
		prefix = "AGR"
	}
	if existing != nil && *existing != "" {
		return *existing, nil
	}

	number := fmt.Sprintf("%s-%s-%d", prefix, strings.ToUpper(tenant.Code), booking.SequenceNo)
	if kind == DocumentKindAgreement {
		booking.AgreementNumber = &number
	} else {
		booking.InvoiceNumber = &number
	}
	if err := s.bookingRepo.SetDocumentNumbers(ctx, tenant.ID, booking.ID, booking.InvoiceNumber, booking.AgreementNumber); err != nil {
		return "", mapRepoErr(err, "booking")
	}
	return number, nil
}

// lineItems flattens the booking values into renderable rows. Only non-zero
// amounts appear, discount and deposit carry negative signs, and the rows
// always sum to NetTotal.
func lineItems(v domain.BookingValues, currency string) []LineItem {
	candidates := []LineItem{
		{Description: "Rental charge", Amount: v.BasePrice},
		{Description: "Discount", Amount: v.Discount.Neg()},
		{Description: "Extras", Amount: v.ExtrasTotal},
		{Description: "Pickup fee", Amount: v.PickupFee},
		{Description: "Return fee", Amount: v.ReturnFee},
		{Description: "Additional driver fee", Amount: v.AdditionalDriverFee},
		{Description: "Security deposit", Amount: v.Deposit.Neg()},
	}

	items := make([]LineItem, 0, len(candidates))
	for _, item := range candidates {
		if item.Amount.Equal(decimal.Zero) {
			continue
		}
		item.Formatted = FormatAmount(currency, item.Amount)
		items = append(items, item)
	}
	return items
}

// snapshot uploads the assembled data as JSON. Best effort: assembly never
// fails because storage is down.
func (s *documentService) snapshot(ctx context.Context, tenant *domain.Tenant, doc *DocumentData) {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.Error("failed to marshal document snapshot", "tenant_id", tenant.ID, "document", doc.DocumentNumber, "error", err)
		return
	}
	key := fmt.Sprintf("documents/%s/%s.json", tenant.Code, doc.DocumentNumber)
	url, err := s.store.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Error("failed to upload document snapshot", "tenant_id", tenant.ID, "document", doc.DocumentNumber, "error", err)
		return
	}
	doc.SnapshotURL = url
}

func formatAddress(a domain.Address) string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.City, a.State, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
