package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

type bookingFixture struct {
	bookingRepo  *MockBookingRepo
	vehicleRepo  *MockVehicleRepo
	customerRepo *MockCustomerRepo
	tenantRepo   *MockTenantRepo
	noteRepo     *MockNotificationRepo
	emailSvc     *MockEmailService
	svc          service.BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookingRepo:  new(MockBookingRepo),
		vehicleRepo:  new(MockVehicleRepo),
		customerRepo: new(MockCustomerRepo),
		tenantRepo:   new(MockTenantRepo),
		noteRepo:     new(MockNotificationRepo),
		emailSvc:     new(MockEmailService),
	}
	f.svc = service.NewBookingService(f.bookingRepo, f.vehicleRepo, f.customerRepo,
		f.tenantRepo, f.noteRepo, f.emailSvc)
	return f
}

func testTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:          1,
		Code:        "acme",
		Name:        "Acme Rentals",
		Currency:    "USD",
		BillingUnit: domain.BillingUnitDay,
		CancellationPolicy: domain.CancellationPolicy{
			Type:  domain.CancellationPolicyPercent,
			Value: decimal.NewFromInt(25),
		},
	}
}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:       7,
		TenantID: 1,
		Make:     "Toyota",
		Model:    "Corolla",
		Status:   domain.VehicleStatusAvailable,
		DayPrice: decimal.NewFromInt(50),
	}
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         42,
		TenantID:   1,
		SequenceNo: 3,
		VehicleID:  7,
		Status:     status,
		StartDate:  date(2025, time.June, 1),
		EndDate:    date(2025, time.June, 6),
		Drivers:    []domain.BookingDriver{{CustomerID: 9, IsPrimary: true}},
		Values:     domain.BookingValues{NetTotal: decimal.NewFromInt(250)},
	}
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	input := service.CreateBookingInput{
		VehicleID: 7,
		StartDate: date(2025, time.June, 1),
		EndDate:   date(2025, time.June, 6),
		Drivers:   []domain.BookingDriver{{CustomerID: 9, IsPrimary: true}},
	}

	t.Run("Success", func(t *testing.T) {
		f := newBookingFixture()
		f.tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil).Once()
		f.vehicleRepo.On("GetByID", ctx, int64(1), int64(7)).Return(testVehicle(), nil).Once()
		f.customerRepo.On("GetByID", ctx, int64(1), int64(9)).Return(&domain.Customer{ID: 9}, nil).Once()
		f.bookingRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Status == domain.BookingStatusPending &&
				b.Values.NetTotal.Equal(decimal.NewFromInt(250))
		})).Run(func(args mock.Arguments) {
			b := args.Get(1).(*domain.Booking)
			b.ID = 42
			b.SequenceNo = 3
		}).Return(nil).Once()
		f.noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		booking, err := f.svc.Create(ctx, 1, 5, input)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), booking.ID)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		f.bookingRepo.AssertExpectations(t)
	})

	t.Run("NoPrimaryDriver", func(t *testing.T) {
		f := newBookingFixture()
		bad := input
		bad.Drivers = []domain.BookingDriver{{CustomerID: 9, IsPrimary: false}}

		_, err := f.svc.Create(ctx, 1, 5, bad)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("TwoPrimaryDrivers", func(t *testing.T) {
		f := newBookingFixture()
		bad := input
		bad.Drivers = []domain.BookingDriver{
			{CustomerID: 9, IsPrimary: true},
			{CustomerID: 10, IsPrimary: true},
		}

		_, err := f.svc.Create(ctx, 1, 5, bad)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		f := newBookingFixture()
		bad := input
		bad.EndDate = bad.StartDate.AddDate(0, 0, -1)

		_, err := f.svc.Create(ctx, 1, 5, bad)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("VehicleFromAnotherTenant", func(t *testing.T) {
		f := newBookingFixture()
		f.tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil).Once()
		f.vehicleRepo.On("GetByID", ctx, int64(1), int64(7)).Return(nil, repository.ErrNotFound).Once()

		_, err := f.svc.Create(ctx, 1, 5, input)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestBookingService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("ConfirmPending", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(testBooking(domain.BookingStatusPending), nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, int64(1), int64(42),
			domain.BookingStatusPending, domain.BookingStatusConfirmed).Return(true, nil).Once()
		f.noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil).Once()
		f.customerRepo.On("GetByID", ctx, int64(1), int64(9)).Return(&domain.Customer{ID: 9, FirstName: "Jo", LastName: "Doe", Email: "jo@test.com"}, nil).Once()
		f.vehicleRepo.On("GetByID", ctx, int64(1), int64(7)).Return(testVehicle(), nil).Once()
		f.emailSvc.On("SendBookingConfirmation", ctx, "jo@test.com", "Jo Doe", "Toyota Corolla", mock.Anything, "USD").Return(nil).Once()

		booking, err := f.svc.Confirm(ctx, 1, 5, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
		f.bookingRepo.AssertExpectations(t)
		f.emailSvc.AssertExpectations(t)
	})

	t.Run("ConfirmActiveConflicts", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(testBooking(domain.BookingStatusActive), nil).Once()

		_, err := f.svc.Confirm(ctx, 1, 5, 42)
		assert.True(t, apperr.IsConflict(err))
		f.bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("LostRaceConflicts", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(testBooking(domain.BookingStatusPending), nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, int64(1), int64(42),
			domain.BookingStatusPending, domain.BookingStatusConfirmed).Return(false, nil).Once()

		_, err := f.svc.Confirm(ctx, 1, 5, 42)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("StartMarksVehicleRented", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(testBooking(domain.BookingStatusConfirmed), nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, int64(1), int64(42),
			domain.BookingStatusConfirmed, domain.BookingStatusActive).Return(true, nil).Once()
		f.vehicleRepo.On("GetByID", ctx, int64(1), int64(7)).Return(testVehicle(), nil).Once()
		f.vehicleRepo.On("Update", ctx, mock.MatchedBy(func(v *domain.Vehicle) bool {
			return v.Status == domain.VehicleStatusRented
		})).Return(nil).Once()
		f.noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		booking, err := f.svc.Start(ctx, 1, 5, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusActive, booking.Status)
		f.vehicleRepo.AssertExpectations(t)
	})

	t.Run("CompleteReleasesVehicle", func(t *testing.T) {
		f := newBookingFixture()
		rented := testVehicle()
		rented.Status = domain.VehicleStatusRented

		f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(testBooking(domain.BookingStatusActive), nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, int64(1), int64(42),
			domain.BookingStatusActive, domain.BookingStatusCompleted).Return(true, nil).Once()
		f.vehicleRepo.On("GetByID", ctx, int64(1), int64(7)).Return(rented, nil)
		f.vehicleRepo.On("Update", ctx, mock.MatchedBy(func(v *domain.Vehicle) bool {
			return v.Status == domain.VehicleStatusAvailable
		})).Return(nil).Once()
		f.noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil).Once()
		f.customerRepo.On("GetByID", ctx, int64(1), int64(9)).Return(&domain.Customer{ID: 9, FirstName: "Jo", LastName: "Doe", Email: "jo@test.com"}, nil).Once()
		f.emailSvc.On("SendBookingCompletion", ctx, "jo@test.com", "Jo Doe", mock.Anything, mock.Anything, "USD").Return(nil).Once()

		booking, err := f.svc.Complete(ctx, 1, 5, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, booking.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, int64(1), int64(999)).Return(nil, repository.ErrNotFound).Once()

		_, err := f.svc.Confirm(ctx, 1, 5, 999)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("FeeFromPercentPolicy", func(t *testing.T) {
		f := newBookingFixture()
		f.tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil)
		f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(testBooking(domain.BookingStatusConfirmed), nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, int64(1), int64(42),
			domain.BookingStatusConfirmed, domain.BookingStatusCanceled).Return(true, nil).Once()
		f.noteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.customerRepo.On("GetByID", ctx, int64(1), int64(9)).Return(&domain.Customer{ID: 9, FirstName: "Jo", LastName: "Doe", Email: "jo@test.com"}, nil).Once()
		f.vehicleRepo.On("GetByID", ctx, int64(1), int64(7)).Return(testVehicle(), nil).Once()
		f.emailSvc.On("SendBookingCancellation", ctx, "jo@test.com", "Jo Doe", "Toyota Corolla", mock.Anything, "USD").Return(nil).Once()

		booking, fee, err := f.svc.Cancel(ctx, 1, 5, 42)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCanceled, booking.Status)
		// 25% of 250
		assert.True(t, fee.Equal(decimal.NewFromFloat(62.5)), "fee was %s", fee)
	})

	t.Run("CancelCompletedConflicts", func(t *testing.T) {
		f := newBookingFixture()
		f.tenantRepo.On("GetByID", ctx, int64(1)).Return(testTenant(), nil)
		f.bookingRepo.On("GetByID", ctx, int64(1), int64(42)).Return(testBooking(domain.BookingStatusCompleted), nil).Once()

		_, _, err := f.svc.Cancel(ctx, 1, 5, 42)
		assert.True(t, apperr.IsConflict(err))
	})
}
