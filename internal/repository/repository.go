package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
)

// ErrNotFound is returned when a row does not exist or is not visible to the
// requesting tenant. Repositories never distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned on unique-constraint violations (license plates,
// user emails, tenant codes).
var ErrDuplicate = errors.New("duplicate record")

// ErrPairedTransactionMissing is returned when a ledger entry exists but its
// mirrored transaction row is gone, which indicates a corrupted pairing.
var ErrPairedTransactionMissing = errors.New("associated transaction not found")

type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	GetByCode(ctx context.Context, code string) (*domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) error
	List(ctx context.Context) ([]domain.Tenant, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.User, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	SoftDelete(ctx context.Context, tenantID, id int64) error
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.Vehicle, error)
	ListAvailableByTenant(ctx context.Context, tenantID int64) ([]domain.Vehicle, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	SoftDelete(ctx context.Context, tenantID, id int64) error
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.Customer, error)
	CountCreatedBetween(ctx context.Context, tenantID int64, from, to time.Time) (int64, error)
}

type BookingRepository interface {
	// Create persists the booking and its drivers, assigning the id and the
	// tenant-scoped sequence number.
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	// UpdateStatus applies a compare-and-swap from one status to another.
	// It reports false when no row matched (id/tenant mismatch or lost race).
	UpdateStatus(ctx context.Context, tenantID, id int64, from, to domain.BookingStatus) (bool, error)
	SetDocumentNumbers(ctx context.Context, tenantID, id int64, invoiceNo, agreementNo *string) error
	ListByTenant(ctx context.Context, tenantID int64, status string, page, pageSize int64) ([]domain.Booking, int64, error)
	ListCompletedBetween(ctx context.Context, tenantID int64, from, to time.Time) ([]domain.Booking, error)
	CountByStatus(ctx context.Context, tenantID int64, from, to time.Time) (map[domain.BookingStatus]int64, error)
	// ListActivePastEnd returns ACTIVE bookings across all tenants whose end
	// date is before asOf. Used by the overdue-notification job.
	ListActivePastEnd(ctx context.Context, asOf time.Time) ([]domain.Booking, error)
}

// LedgerRepository owns the paired entry+transaction writes. Every create,
// update and delete touches the entry row and its mirrored transaction row
// inside one database transaction.
type LedgerRepository interface {
	CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Transaction, error)
	UpdatePayment(ctx context.Context, p *domain.Payment) error
	DeletePayment(ctx context.Context, tenantID, id int64) error
	GetPaymentByID(ctx context.Context, tenantID, id int64) (*domain.Payment, error)
	ListPayments(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Payment, int64, error)

	CreateRefund(ctx context.Context, r *domain.Refund) (*domain.Transaction, error)
	UpdateRefund(ctx context.Context, r *domain.Refund) error
	DeleteRefund(ctx context.Context, tenantID, id int64) error
	GetRefundByID(ctx context.Context, tenantID, id int64) (*domain.Refund, error)
	ListRefunds(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Refund, int64, error)

	CreateExpense(ctx context.Context, e *domain.Expense) (*domain.Transaction, error)
	UpdateExpense(ctx context.Context, e *domain.Expense) error
	DeleteExpense(ctx context.Context, tenantID, id int64) error
	GetExpenseByID(ctx context.Context, tenantID, id int64) (*domain.Expense, error)
	ListExpenses(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Expense, int64, error)

	GetTransactionByEntry(ctx context.Context, tenantID int64, t domain.TransactionType, entryID int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Transaction, int64, error)
	SumTransactionsBetween(ctx context.Context, tenantID int64, from, to time.Time) (decimal.Decimal, error)
	SumPaymentsForBooking(ctx context.Context, tenantID, bookingID int64) (decimal.Decimal, error)
}

type StatsRepository interface {
	// Upsert overwrites the stat row for (tenant, period, name).
	Upsert(ctx context.Context, s *domain.TenantStat) error
	ListByTenantPeriod(ctx context.Context, tenantID int64, period string) ([]domain.TenantStat, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, tenantID, userID, page, pageSize int64) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, tenantID, userID, id int64) error
}
