package service_test

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
)

type MockTenantRepo struct{ mock.Mock }

func (m *MockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTenantRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepo) GetByCode(ctx context.Context, code string) (*domain.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTenantRepo) List(ctx context.Context) ([]domain.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) ListByTenant(ctx context.Context, tenantID int64) ([]domain.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type MockVehicleRepo struct{ mock.Mock }

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, tenantID, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepo) SoftDelete(ctx context.Context, tenantID, id int64) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockVehicleRepo) ListByTenant(ctx context.Context, tenantID int64) ([]domain.Vehicle, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) ListAvailableByTenant(ctx context.Context, tenantID int64) ([]domain.Vehicle, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

type MockCustomerRepo struct{ mock.Mock }

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, tenantID, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepo) SoftDelete(ctx context.Context, tenantID, id int64) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockCustomerRepo) ListByTenant(ctx context.Context, tenantID int64) ([]domain.Customer, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) CountCreatedBetween(ctx context.Context, tenantID int64, from, to time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, tenantID, id int64, from, to domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, tenantID, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) SetDocumentNumbers(ctx context.Context, tenantID, id int64, invoiceNo, agreementNo *string) error {
	return m.Called(ctx, tenantID, id, invoiceNo, agreementNo).Error(0)
}

func (m *MockBookingRepo) ListByTenant(ctx context.Context, tenantID int64, status string, page, pageSize int64) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, tenantID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepo) ListCompletedBetween(ctx context.Context, tenantID int64, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) CountByStatus(ctx context.Context, tenantID int64, from, to time.Time) (map[domain.BookingStatus]int64, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.BookingStatus]int64), args.Error(1)
}

func (m *MockBookingRepo) ListActivePastEnd(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockLedgerRepo struct{ mock.Mock }

func (m *MockLedgerRepo) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Transaction, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepo) UpdatePayment(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockLedgerRepo) DeletePayment(ctx context.Context, tenantID, id int64) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockLedgerRepo) GetPaymentByID(ctx context.Context, tenantID, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockLedgerRepo) ListPayments(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Payment, int64, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepo) CreateRefund(ctx context.Context, r *domain.Refund) (*domain.Transaction, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepo) UpdateRefund(ctx context.Context, r *domain.Refund) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockLedgerRepo) DeleteRefund(ctx context.Context, tenantID, id int64) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockLedgerRepo) GetRefundByID(ctx context.Context, tenantID, id int64) (*domain.Refund, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockLedgerRepo) ListRefunds(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Refund, int64, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Refund), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepo) CreateExpense(ctx context.Context, e *domain.Expense) (*domain.Transaction, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepo) UpdateExpense(ctx context.Context, e *domain.Expense) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockLedgerRepo) DeleteExpense(ctx context.Context, tenantID, id int64) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockLedgerRepo) GetExpenseByID(ctx context.Context, tenantID, id int64) (*domain.Expense, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockLedgerRepo) ListExpenses(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Expense, int64, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepo) GetTransactionByEntry(ctx context.Context, tenantID int64, t domain.TransactionType, entryID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, t, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepo) ListTransactions(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepo) SumTransactionsBetween(ctx context.Context, tenantID int64, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepo) SumPaymentsForBooking(ctx context.Context, tenantID, bookingID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, bookingID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockStatsRepo struct{ mock.Mock }

func (m *MockStatsRepo) Upsert(ctx context.Context, s *domain.TenantStat) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStatsRepo) ListByTenantPeriod(ctx context.Context, tenantID int64, period string) ([]domain.TenantStat, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TenantStat), args.Error(1)
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepo) ListByUser(ctx context.Context, tenantID, userID, page, pageSize int64) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, tenantID, userID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, tenantID, userID, id int64) error {
	return m.Called(ctx, tenantID, userID, id).Error(0)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendBookingConfirmation(ctx context.Context, to, customerName, vehicle string, netTotal decimal.Decimal, currency string) error {
	return m.Called(ctx, to, customerName, vehicle, netTotal, currency).Error(0)
}

func (m *MockEmailService) SendBookingCompletion(ctx context.Context, to, customerName, vehicle string, netTotal decimal.Decimal, currency string) error {
	return m.Called(ctx, to, customerName, vehicle, netTotal, currency).Error(0)
}

func (m *MockEmailService) SendBookingCancellation(ctx context.Context, to, customerName, vehicle string, fee decimal.Decimal, currency string) error {
	return m.Called(ctx, to, customerName, vehicle, fee, currency).Error(0)
}

func (m *MockEmailService) SendOverdueNotice(ctx context.Context, to, customerName, vehicle string, endDate time.Time) error {
	return m.Called(ctx, to, customerName, vehicle, endDate).Error(0)
}

type MockStorage struct{ mock.Mock }

func (m *MockStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, r)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorage) URL(key string) string {
	return m.Called(key).String(0)
}
