package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	customerRepo repository.CustomerRepository
	tenantRepo   repository.TenantRepository
	noteRepo     repository.NotificationRepository
	emailSvc     EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	customerRepo repository.CustomerRepository,
	tenantRepo repository.TenantRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
		tenantRepo:   tenantRepo,
		noteRepo:     noteRepo,
		emailSvc:     emailSvc,
	}
}

func (s *bookingService) Create(ctx context.Context, tenantID, actorID int64, in CreateBookingInput) (*domain.Booking, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, apperr.Validation("end date must be after start date")
	}
	if len(in.Drivers) == 0 {
		return nil, apperr.Validation("booking requires at least one driver")
	}
	primary := 0
	for _, d := range in.Drivers {
		if d.IsPrimary {
			primary++
		}
	}
	if primary != 1 {
		return nil, apperr.Validation("booking requires exactly one primary driver")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, mapRepoErr(err, "tenant")
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, in.VehicleID)
	if err != nil {
		return nil, mapRepoErr(err, "vehicle")
	}
	for _, d := range in.Drivers {
		if _, err := s.customerRepo.GetByID(ctx, tenantID, d.CustomerID); err != nil {
			return nil, mapRepoErr(err, "customer")
		}
	}

	booking := &domain.Booking{
		TenantID:  tenantID,
		VehicleID: vehicle.ID,
		Status:    domain.BookingStatusPending,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Drivers:   in.Drivers,
		Values: ComputeValues(tenant, vehicle, in.StartDate, in.EndDate,
			in.ExtrasTotal, in.PickupFee, in.ReturnFee, in.AdditionalDriverFee),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, mapRepoErr(err, "booking")
	}

	s.notify(ctx, tenantID, actorID, "Booking Created",
		fmt.Sprintf("Booking #%d created for vehicle %s %s", booking.SequenceNo, vehicle.Make, vehicle.Model),
		booking.ID)

	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "booking")
	}
	return b, nil
}

func (s *bookingService) List(ctx context.Context, tenantID int64, status string, page, pageSize int64) ([]domain.Booking, int64, error) {
	bookings, total, err := s.bookingRepo.ListByTenant(ctx, tenantID, status, page, pageSize)
	if err != nil {
		return nil, 0, mapRepoErr(err, "bookings")
	}
	return bookings, total, nil
}

func (s *bookingService) Confirm(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, error) {
	b, err := s.transition(ctx, tenantID, id, domain.BookingStatusConfirmed,
		domain.BookingStatusPending)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, tenantID, actorID, b, "Booking Confirmed")
	s.sendStatusMail(ctx, tenantID, b, mailConfirmation)
	return b, nil
}

func (s *bookingService) Decline(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, error) {
	b, err := s.transition(ctx, tenantID, id, domain.BookingStatusDeclined,
		domain.BookingStatusPending, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	s.notifyStatus(ctx, tenantID, actorID, b, "Booking Declined")
	return b, nil
}

func (s *bookingService) Cancel(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, decimal.Decimal, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, decimal.Zero, mapRepoErr(err, "tenant")
	}

	b, err := s.transition(ctx, tenantID, id, domain.BookingStatusCanceled,
		domain.BookingStatusPending, domain.BookingStatusConfirmed)
	if err != nil {
		return nil, decimal.Zero, err
	}

	// The fee is computed against the policy but never posted to the
	// ledger here; a refund has to be recorded explicitly.
	fee := CancellationFee(tenant.CancellationPolicy, b.Values.NetTotal)

	s.notifyStatus(ctx, tenantID, actorID, b, "Booking Canceled")
	s.sendCancellationMail(ctx, tenant, b, fee)
	return b, fee, nil
}

func (s *bookingService) Start(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, error) {
	b, err := s.transition(ctx, tenantID, id, domain.BookingStatusActive,
		domain.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}

	s.setVehicleStatus(ctx, tenantID, b.VehicleID, domain.VehicleStatusRented)
	s.notifyStatus(ctx, tenantID, actorID, b, "Rental Started")
	return b, nil
}

func (s *bookingService) Complete(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, error) {
	b, err := s.transition(ctx, tenantID, id, domain.BookingStatusCompleted,
		domain.BookingStatusActive)
	if err != nil {
		return nil, err
	}

	s.setVehicleStatus(ctx, tenantID, b.VehicleID, domain.VehicleStatusAvailable)
	s.notifyStatus(ctx, tenantID, actorID, b, "Rental Completed")
	s.sendStatusMail(ctx, tenantID, b, mailCompletion)
	return b, nil
}

// transition re-reads the booking inside the operation, validates the
// current status against the allowed sources and applies a compare-and-swap.
// A CAS miss after a successful read means a concurrent writer won; the
// caller sees Conflict, never a silent overwrite.
func (s *bookingService) transition(ctx context.Context, tenantID, id int64,
	to domain.BookingStatus, from ...domain.BookingStatus) (*domain.Booking, error) {

	b, err := s.bookingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "booking")
	}

	allowed := false
	for _, f := range from {
		if b.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperr.Conflict("booking cannot move from %s to %s", b.Status, to)
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, tenantID, id, b.Status, to)
	if err != nil {
		return nil, mapRepoErr(err, "booking")
	}
	if !updated {
		return nil, apperr.Conflict("booking was modified concurrently")
	}

	b.Status = to
	return b, nil
}

func (s *bookingService) setVehicleStatus(ctx context.Context, tenantID, vehicleID int64, status domain.VehicleStatus) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, vehicleID)
	if err != nil {
		logger.Error("failed to load vehicle for status update", "tenant_id", tenantID, "vehicle_id", vehicleID, "error", err)
		return
	}
	vehicle.Status = status
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		logger.Error("failed to update vehicle status", "tenant_id", tenantID, "vehicle_id", vehicleID, "error", err)
	}
}

func (s *bookingService) notifyStatus(ctx context.Context, tenantID, actorID int64, b *domain.Booking, title string) {
	s.notify(ctx, tenantID, actorID, title,
		fmt.Sprintf("Booking #%d is now %s", b.SequenceNo, b.Status), b.ID)
}

func (s *bookingService) notify(ctx context.Context, tenantID, actorID int64, title, message string, bookingID int64) {
	note := &domain.Notification{
		TenantID: tenantID,
		UserID:   actorID,
		Title:    title,
		Message:  message,
		Attrs: map[string]string{
			"booking_id": fmt.Sprintf("%d", bookingID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to create notification", "tenant_id", tenantID, "booking_id", bookingID, "error", err)
	}
}

type mailKind int

const (
	mailConfirmation mailKind = iota
	mailCompletion
)

// sendStatusMail emails the primary driver. Failures are logged only; the
// status transition has already committed.
func (s *bookingService) sendStatusMail(ctx context.Context, tenantID int64, b *domain.Booking, kind mailKind) {
	tenant, customer, vehicle, ok := s.mailParties(ctx, tenantID, b)
	if !ok {
		return
	}

	desc := fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model)
	var err error
	switch kind {
	case mailConfirmation:
		err = s.emailSvc.SendBookingConfirmation(ctx, customer.Email, customer.FullName(), desc, b.Values.NetTotal, tenant.Currency)
	case mailCompletion:
		err = s.emailSvc.SendBookingCompletion(ctx, customer.Email, customer.FullName(), desc, b.Values.NetTotal, tenant.Currency)
	}
	if err != nil {
		logger.Error("failed to send booking email", "tenant_id", tenantID, "booking_id", b.ID, "error", err)
	}
}

func (s *bookingService) sendCancellationMail(ctx context.Context, tenant *domain.Tenant, b *domain.Booking, fee decimal.Decimal) {
	_, customer, vehicle, ok := s.mailParties(ctx, tenant.ID, b)
	if !ok {
		return
	}
	desc := fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model)
	if err := s.emailSvc.SendBookingCancellation(ctx, customer.Email, customer.FullName(), desc, fee, tenant.Currency); err != nil {
		logger.Error("failed to send cancellation email", "tenant_id", tenant.ID, "booking_id", b.ID, "error", err)
	}
}

func (s *bookingService) mailParties(ctx context.Context, tenantID int64, b *domain.Booking) (*domain.Tenant, *domain.Customer, *domain.Vehicle, bool) {
	primaryID := b.PrimaryDriver()
	if primaryID == 0 {
		logger.Warn("booking has no primary driver", "tenant_id", tenantID, "booking_id", b.ID)
		return nil, nil, nil, false
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, nil, nil, false
	}
	customer, err := s.customerRepo.GetByID(ctx, tenantID, primaryID)
	if err != nil {
		return nil, nil, nil, false
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, b.VehicleID)
	if err != nil {
		return nil, nil, nil, false
	}
	return tenant, customer, vehicle, true
}
