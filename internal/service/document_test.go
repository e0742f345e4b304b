package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

type documentFixture struct {
	bookingRepo  *MockBookingRepo
	tenantRepo   *MockTenantRepo
	customerRepo *MockCustomerRepo
	vehicleRepo  *MockVehicleRepo
	ledgerRepo   *MockLedgerRepo
	store        *MockStorage
	svc          service.DocumentService
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		bookingRepo:  new(MockBookingRepo),
		tenantRepo:   new(MockTenantRepo),
		customerRepo: new(MockCustomerRepo),
		vehicleRepo:  new(MockVehicleRepo),
		ledgerRepo:   new(MockLedgerRepo),
		store:        new(MockStorage),
	}
	f.svc = service.NewDocumentService(f.bookingRepo, f.tenantRepo, f.customerRepo,
		f.vehicleRepo, f.ledgerRepo, f.store)
	return f
}

func pricedBooking() *domain.Booking {
	b := testBooking(domain.BookingStatusConfirmed)
	b.Values = domain.BookingValues{
		BasePrice:   decimal.NewFromInt(250),
		Discount:    decimal.NewFromInt(25),
		ExtrasTotal: decimal.NewFromInt(30),
		PickupFee:   decimal.NewFromInt(15),
		Deposit:     decimal.NewFromInt(100),
		NetTotal:    decimal.NewFromInt(170),
	}
	return b
}

func TestDocumentService_AssembleInvoice(t *testing.T) {
	ctx := context.Background()

	setup := func(f *documentFixture, b *domain.Booking) {
		f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(b, nil).Once()
		f.tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil).Once()
		f.customerRepo.On("GetByID", ctx, int64(1), int64(9)).Return(&domain.Customer{
			ID: 9, FirstName: "Jo", LastName: "Doe", LicenseNumber: "D1234",
		}, nil).Once()
		f.vehicleRepo.On("GetByID", ctx, int64(1), int64(7)).Return(&domain.Vehicle{
			ID: 7, Year: 2023, Make: "Toyota", Model: "Corolla", LicensePlate: "AB-123",
		}, nil).Once()
		f.ledgerRepo.On("SumPaymentsForBooking", ctx, int64(1), int64(42)).
			Return(decimal.NewFromInt(100), nil).Once()
		f.store.On("Upload", ctx, mock.Anything, "application/json", mock.Anything).
			Return("http://files.test/doc.json", nil).Once()
	}

	t.Run("LineItemsSumToNetTotal", func(t *testing.T) {
		f := newDocumentFixture()
		b := pricedBooking()
		setup(f, b)
		f.bookingRepo.On("SetDocumentNumbers", ctx, int64(1), int64(42), mock.Anything, mock.Anything).Return(nil).Once()

		doc, err := f.svc.AssembleInvoice(ctx, 1, 42)
		assert.NoError(t, err)

		sum := decimal.Zero
		for _, item := range doc.LineItems {
			assert.False(t, item.Amount.IsZero(), "zero line item %q rendered", item.Description)
			sum = sum.Add(item.Amount)
		}
		assert.True(t, sum.Equal(doc.NetTotal), "items sum to %s, net total is %s", sum, doc.NetTotal)
		assert.True(t, doc.BalanceDue.Equal(decimal.NewFromInt(70)))
		assert.Equal(t, "USD 170.00", doc.NetTotalFormatted)
		assert.Equal(t, "http://files.test/doc.json", doc.SnapshotURL)
	})

	t.Run("MintsInvoiceNumberOnce", func(t *testing.T) {
		f := newDocumentFixture()
		b := pricedBooking()
		setup(f, b)
		f.bookingRepo.On("SetDocumentNumbers", ctx, int64(1), int64(42),
			mock.MatchedBy(func(inv *string) bool { return inv != nil && *inv == "INV-ACME-3" }),
			mock.Anything).Return(nil).Once()

		doc, err := f.svc.AssembleInvoice(ctx, 1, 42)
		assert.NoError(t, err)
		assert.Equal(t, "INV-ACME-3", doc.DocumentNumber)
		f.bookingRepo.AssertExpectations(t)
	})

	t.Run("ReusesPersistedNumber", func(t *testing.T) {
		f := newDocumentFixture()
		b := pricedBooking()
		existing := "INV-ACME-3"
		b.InvoiceNumber = &existing
		setup(f, b)

		doc, err := f.svc.AssembleInvoice(ctx, 1, 42)
		assert.NoError(t, err)
		assert.Equal(t, existing, doc.DocumentNumber)
		f.bookingRepo.AssertNotCalled(t, "SetDocumentNumbers", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("StorageFailureIsNotFatal", func(t *testing.T) {
		f := newDocumentFixture()
		b := pricedBooking()
		f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(b, nil).Once()
		f.tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil).Once()
		f.customerRepo.On("GetByID", ctx, int64(1), int64(9)).Return(&domain.Customer{ID: 9, FirstName: "Jo", LastName: "Doe"}, nil).Once()
		f.vehicleRepo.On("GetByID", ctx, int64(1), int64(7)).Return(&domain.Vehicle{ID: 7, Make: "Toyota", Model: "Corolla"}, nil).Once()
		f.ledgerRepo.On("SumPaymentsForBooking", ctx, int64(1), int64(42)).Return(decimal.Zero, nil).Once()
		f.bookingRepo.On("SetDocumentNumbers", ctx, int64(1), int64(42), mock.Anything, mock.Anything).Return(nil).Once()
		f.store.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("", assert.AnError).Once()

		doc, err := f.svc.AssembleInvoice(ctx, 1, 42)
		assert.NoError(t, err)
		assert.Empty(t, doc.SnapshotURL)
	})
}

func TestDocumentService_AssembleAgreement(t *testing.T) {
	ctx := context.Background()
	f := newDocumentFixture()
	b := pricedBooking()

	f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(b, nil).Once()
	f.tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil).Once()
	f.customerRepo.On("GetByID", ctx, int64(1), int64(9)).Return(&domain.Customer{ID: 9, FirstName: "Jo", LastName: "Doe"}, nil).Once()
	f.vehicleRepo.On("GetByID", ctx, int64(1), int64(7)).Return(&domain.Vehicle{ID: 7, Make: "Toyota", Model: "Corolla"}, nil).Once()
	f.ledgerRepo.On("SumPaymentsForBooking", ctx, int64(1), int64(42)).Return(decimal.Zero, nil).Once()
	f.bookingRepo.On("SetDocumentNumbers", ctx, int64(1), int64(42),
		mock.Anything,
		mock.MatchedBy(func(agr *string) bool { return agr != nil && *agr == "AGR-ACME-3" })).Return(nil).Once()
	f.store.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("http://files.test/doc.json", nil).Once()

	doc, err := f.svc.AssembleAgreement(ctx, 1, 42)
	assert.NoError(t, err)
	assert.Equal(t, "AGR-ACME-3", doc.DocumentNumber)
	assert.Equal(t, service.DocumentKindAgreement, doc.Kind)
	assert.Equal(t, int64(5), doc.UnitCount)
	assert.Equal(t, "2025-06-01", doc.StartDate)

}
