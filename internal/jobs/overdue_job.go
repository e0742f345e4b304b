package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

// OverdueRentalsJob finds ACTIVE bookings past their end date, emails the
// primary driver and raises a notification for every admin of the tenant.
// Failures on one booking never stop the sweep.
type OverdueRentalsJob struct {
	bookingRepo  repository.BookingRepository
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
	userRepo     repository.UserRepository
	noteRepo     repository.NotificationRepository
	emailSvc     service.EmailService
}

func NewOverdueRentalsJob(
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc service.EmailService,
) *OverdueRentalsJob {
	return &OverdueRentalsJob{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		noteRepo:     noteRepo,
		emailSvc:     emailSvc,
	}
}

func (j *OverdueRentalsJob) Name() string { return "overdue-rentals" }

func (j *OverdueRentalsJob) Run(ctx context.Context) error {
	overdue, err := j.bookingRepo.ListActivePastEnd(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to list overdue bookings: %w", err)
	}

	for i := range overdue {
		j.process(ctx, &overdue[i])
	}

	logger.Info("overdue sweep done", "count", len(overdue))
	return nil
}

func (j *OverdueRentalsJob) process(ctx context.Context, b *domain.Booking) {
	vehicle, err := j.vehicleRepo.GetByID(ctx, b.TenantID, b.VehicleID)
	if err != nil {
		logger.Error("failed to load vehicle for overdue booking", "tenant_id", b.TenantID, "booking_id", b.ID, "error", err)
		return
	}
	desc := fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model)

	if primaryID := b.PrimaryDriver(); primaryID != 0 {
		customer, err := j.customerRepo.GetByID(ctx, b.TenantID, primaryID)
		if err != nil {
			logger.Error("failed to load customer for overdue booking", "tenant_id", b.TenantID, "booking_id", b.ID, "error", err)
		} else if customer.Email != "" {
			if err := j.emailSvc.SendOverdueNotice(ctx, customer.Email, customer.FullName(), desc, b.EndDate); err != nil {
				logger.Error("failed to send overdue notice", "tenant_id", b.TenantID, "booking_id", b.ID, "error", err)
			}
		}
	}

	users, err := j.userRepo.ListByTenant(ctx, b.TenantID)
	if err != nil {
		logger.Error("failed to list users for overdue notification", "tenant_id", b.TenantID, "error", err)
		return
	}
	for _, u := range users {
		if u.Role != domain.UserRoleAdmin {
			continue
		}
		note := &domain.Notification{
			TenantID: b.TenantID,
			UserID:   u.ID,
			Title:    "Rental Overdue",
			Message:  fmt.Sprintf("Booking #%d (%s) was due back on %s", b.SequenceNo, desc, b.EndDate.Format("2006-01-02")),
			Attrs: map[string]string{
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		}
		if err := j.noteRepo.Create(ctx, note); err != nil {
			logger.Error("failed to create overdue notification", "tenant_id", b.TenantID, "booking_id", b.ID, "error", err)
		}
	}
}
