package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/apperr"
	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type ledgerService struct {
	ledgerRepo   repository.LedgerRepository
	bookingRepo  repository.BookingRepository
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
}

func NewLedgerService(
	ledgerRepo repository.LedgerRepository,
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
) LedgerService {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
	}
}

func (s *ledgerService) validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperr.Validation("amount must be greater than zero")
	}
	return nil
}

// validateRefs checks that any referenced booking or customer belongs to the
// tenant. Ledger rows never point across tenant boundaries.
func (s *ledgerService) validateRefs(ctx context.Context, tenantID int64, bookingID, customerID, vehicleID *int64) error {
	if bookingID != nil {
		if _, err := s.bookingRepo.GetByID(ctx, tenantID, *bookingID); err != nil {
			return mapRepoErr(err, "booking")
		}
	}
	if customerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, tenantID, *customerID); err != nil {
			return mapRepoErr(err, "customer")
		}
	}
	if vehicleID != nil {
		if _, err := s.vehicleRepo.GetByID(ctx, tenantID, *vehicleID); err != nil {
			return mapRepoErr(err, "vehicle")
		}
	}
	return nil
}

func (s *ledgerService) CreatePayment(ctx context.Context, tenantID int64, in PaymentInput) (*domain.Payment, *domain.Transaction, error) {
	if err := s.validateAmount(in.Amount); err != nil {
		return nil, nil, err
	}
	if err := s.validateRefs(ctx, tenantID, in.BookingID, in.CustomerID, nil); err != nil {
		return nil, nil, err
	}

	p := &domain.Payment{
		TenantID:   tenantID,
		BookingID:  in.BookingID,
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Method:     in.Method,
		PaidOn:     in.PaidOn,
		Notes:      in.Notes,
	}
	txn, err := s.ledgerRepo.CreatePayment(ctx, p)
	if err != nil {
		return nil, nil, mapRepoErr(err, "payment")
	}
	return p, txn, nil
}

func (s *ledgerService) UpdatePayment(ctx context.Context, tenantID, id int64, in PaymentInput) (*domain.Payment, error) {
	if err := s.validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := s.validateRefs(ctx, tenantID, in.BookingID, in.CustomerID, nil); err != nil {
		return nil, err
	}

	p, err := s.ledgerRepo.GetPaymentByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "payment")
	}
	p.BookingID = in.BookingID
	p.CustomerID = in.CustomerID
	p.Amount = in.Amount
	p.Method = in.Method
	p.PaidOn = in.PaidOn
	p.Notes = in.Notes

	if err := s.ledgerRepo.UpdatePayment(ctx, p); err != nil {
		return nil, mapRepoErr(err, "payment")
	}
	return p, nil
}

func (s *ledgerService) DeletePayment(ctx context.Context, tenantID, id int64) error {
	return mapRepoErr(s.ledgerRepo.DeletePayment(ctx, tenantID, id), "payment")
}

func (s *ledgerService) GetPayment(ctx context.Context, tenantID, id int64) (*domain.Payment, error) {
	p, err := s.ledgerRepo.GetPaymentByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "payment")
	}
	return p, nil
}

func (s *ledgerService) ListPayments(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Payment, int64, error) {
	payments, total, err := s.ledgerRepo.ListPayments(ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, 0, mapRepoErr(err, "payments")
	}
	return payments, total, nil
}

func (s *ledgerService) CreateRefund(ctx context.Context, tenantID int64, in RefundInput) (*domain.Refund, *domain.Transaction, error) {
	if err := s.validateAmount(in.Amount); err != nil {
		return nil, nil, err
	}

	var booking *domain.Booking
	if in.BookingID != nil {
		var err error
		booking, err = s.bookingRepo.GetByID(ctx, tenantID, *in.BookingID)
		if err != nil {
			return nil, nil, mapRepoErr(err, "booking")
		}
	}
	if err := s.validateRefs(ctx, tenantID, nil, in.CustomerID, nil); err != nil {
		return nil, nil, err
	}

	r := &domain.Refund{
		TenantID:   tenantID,
		BookingID:  in.BookingID,
		CustomerID: in.CustomerID,
		Amount:     in.Amount,
		Reason:     in.Reason,
		RefundedOn: in.RefundedOn,
	}
	txn, err := s.ledgerRepo.CreateRefund(ctx, r)
	if err != nil {
		return nil, nil, mapRepoErr(err, "refund")
	}

	// A refund against a settled booking flips it to REFUNDED. This is the
	// only path into that status. A lost race just means someone else already
	// moved the booking; the refund itself stands.
	if booking != nil && booking.Status.IsSettled() {
		moved, err := s.bookingRepo.UpdateStatus(ctx, tenantID, booking.ID, booking.Status, domain.BookingStatusRefunded)
		if err != nil || !moved {
			logger.Warn("refund recorded but booking status not updated",
				"tenant_id", tenantID, "booking_id", booking.ID, "error", err)
		}
	}

	return r, txn, nil
}

func (s *ledgerService) UpdateRefund(ctx context.Context, tenantID, id int64, in RefundInput) (*domain.Refund, error) {
	if err := s.validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := s.validateRefs(ctx, tenantID, in.BookingID, in.CustomerID, nil); err != nil {
		return nil, err
	}

	r, err := s.ledgerRepo.GetRefundByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "refund")
	}
	r.BookingID = in.BookingID
	r.CustomerID = in.CustomerID
	r.Amount = in.Amount
	r.Reason = in.Reason
	r.RefundedOn = in.RefundedOn

	if err := s.ledgerRepo.UpdateRefund(ctx, r); err != nil {
		return nil, mapRepoErr(err, "refund")
	}
	return r, nil
}

func (s *ledgerService) DeleteRefund(ctx context.Context, tenantID, id int64) error {
	return mapRepoErr(s.ledgerRepo.DeleteRefund(ctx, tenantID, id), "refund")
}

func (s *ledgerService) GetRefund(ctx context.Context, tenantID, id int64) (*domain.Refund, error) {
	r, err := s.ledgerRepo.GetRefundByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "refund")
	}
	return r, nil
}

func (s *ledgerService) ListRefunds(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Refund, int64, error) {
	refunds, total, err := s.ledgerRepo.ListRefunds(ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, 0, mapRepoErr(err, "refunds")
	}
	return refunds, total, nil
}

func (s *ledgerService) CreateExpense(ctx context.Context, tenantID int64, in ExpenseInput) (*domain.Expense, *domain.Transaction, error) {
	if err := s.validateAmount(in.Amount); err != nil {
		return nil, nil, err
	}
	if err := s.validateRefs(ctx, tenantID, in.BookingID, nil, in.VehicleID); err != nil {
		return nil, nil, err
	}

	e := &domain.Expense{
		TenantID:   tenantID,
		BookingID:  in.BookingID,
		VehicleID:  in.VehicleID,
		Vendor:     in.Vendor,
		Category:   in.Category,
		Amount:     in.Amount,
		IncurredOn: in.IncurredOn,
	}
	txn, err := s.ledgerRepo.CreateExpense(ctx, e)
	if err != nil {
		return nil, nil, mapRepoErr(err, "expense")
	}
	return e, txn, nil
}

func (s *ledgerService) UpdateExpense(ctx context.Context, tenantID, id int64, in ExpenseInput) (*domain.Expense, error) {
	if err := s.validateAmount(in.Amount); err != nil {
		return nil, err
	}
	if err := s.validateRefs(ctx, tenantID, in.BookingID, nil, in.VehicleID); err != nil {
		return nil, err
	}

	e, err := s.ledgerRepo.GetExpenseByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "expense")
	}
	e.BookingID = in.BookingID
	e.VehicleID = in.VehicleID
	e.Vendor = in.Vendor
	e.Category = in.Category
	e.Amount = in.Amount
	e.IncurredOn = in.IncurredOn

	if err := s.ledgerRepo.UpdateExpense(ctx, e); err != nil {
		return nil, mapRepoErr(err, "expense")
	}
	return e, nil
}

func (s *ledgerService) DeleteExpense(ctx context.Context, tenantID, id int64) error {
	return mapRepoErr(s.ledgerRepo.DeleteExpense(ctx, tenantID, id), "expense")
}

func (s *ledgerService) GetExpense(ctx context.Context, tenantID, id int64) (*domain.Expense, error) {
	e, err := s.ledgerRepo.GetExpenseByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapRepoErr(err, "expense")
	}
	return e, nil
}

func (s *ledgerService) ListExpenses(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Expense, int64, error) {
	expenses, total, err := s.ledgerRepo.ListExpenses(ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, 0, mapRepoErr(err, "expenses")
	}
	return expenses, total, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Transaction, int64, error) {
	txns, total, err := s.ledgerRepo.ListTransactions(ctx, tenantID, page, pageSize)
	if err != nil {
		return nil, 0, mapRepoErr(err, "transactions")
	}
	return txns, total, nil
}
