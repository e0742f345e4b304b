package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
)

type AuthService interface {
	// SignupTenant creates a tenant and its first admin user and returns an
	// access token for the new user.
	SignupTenant(ctx context.Context, in SignupInput) (*domain.Tenant, *domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

type SignupInput struct {
	TenantName string
	TenantCode string
	Currency   string
	UserName   string
	Email      string
	Password   string
}

type TenantService interface {
	Get(ctx context.Context, tenantID int64) (*domain.Tenant, error)
	UpdateSettings(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	// Storefront resolves the public catalog for a tenant code: the tenant
	// profile plus its available vehicles. No authentication involved.
	Storefront(ctx context.Context, tenantCode string) (*domain.Tenant, []domain.Vehicle, error)
}

type VehicleService interface {
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	Get(ctx context.Context, tenantID, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	Delete(ctx context.Context, tenantID, id int64) error
	List(ctx context.Context, tenantID int64) ([]domain.Vehicle, error)
}

type CustomerService interface {
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Get(ctx context.Context, tenantID, id int64) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, tenantID, id int64) error
	List(ctx context.Context, tenantID int64) ([]domain.Customer, error)
}

type CreateBookingInput struct {
	VehicleID           int64
	StartDate           time.Time
	EndDate             time.Time
	Drivers             []domain.BookingDriver
	ExtrasTotal         decimal.Decimal
	PickupFee           decimal.Decimal
	ReturnFee           decimal.Decimal
	AdditionalDriverFee decimal.Decimal
}

type BookingService interface {
	Create(ctx context.Context, tenantID, actorID int64, in CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	List(ctx context.Context, tenantID int64, status string, page, pageSize int64) ([]domain.Booking, int64, error)

	Confirm(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, error)
	Decline(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, error)
	// Cancel also returns the cancellation fee owed under the tenant policy.
	// The fee is informational only; it is not posted to the ledger unless a
	// refund is recorded separately.
	Cancel(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, decimal.Decimal, error)
	Start(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, error)
	Complete(ctx context.Context, tenantID, actorID, id int64) (*domain.Booking, error)
}

type PaymentInput struct {
	BookingID  *int64
	CustomerID *int64
	Amount     decimal.Decimal
	Method     string
	PaidOn     time.Time
	Notes      string
}

type RefundInput struct {
	BookingID  *int64
	CustomerID *int64
	Amount     decimal.Decimal
	Reason     string
	RefundedOn time.Time
}

type ExpenseInput struct {
	BookingID  *int64
	VehicleID  *int64
	Vendor     string
	Category   string
	Amount     decimal.Decimal
	IncurredOn time.Time
}

type LedgerService interface {
	CreatePayment(ctx context.Context, tenantID int64, in PaymentInput) (*domain.Payment, *domain.Transaction, error)
	UpdatePayment(ctx context.Context, tenantID, id int64, in PaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, tenantID, id int64) error
	GetPayment(ctx context.Context, tenantID, id int64) (*domain.Payment, error)
	ListPayments(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Payment, int64, error)

	// CreateRefund records the refund and, when tied to a settled booking,
	// moves that booking to REFUNDED. This is the only path to REFUNDED.
	CreateRefund(ctx context.Context, tenantID int64, in RefundInput) (*domain.Refund, *domain.Transaction, error)
	UpdateRefund(ctx context.Context, tenantID, id int64, in RefundInput) (*domain.Refund, error)
	DeleteRefund(ctx context.Context, tenantID, id int64) error
	GetRefund(ctx context.Context, tenantID, id int64) (*domain.Refund, error)
	ListRefunds(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Refund, int64, error)

	CreateExpense(ctx context.Context, tenantID int64, in ExpenseInput) (*domain.Expense, *domain.Transaction, error)
	UpdateExpense(ctx context.Context, tenantID, id int64, in ExpenseInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, tenantID, id int64) error
	GetExpense(ctx context.Context, tenantID, id int64) (*domain.Expense, error)
	ListExpenses(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Expense, int64, error)

	ListTransactions(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Transaction, int64, error)
}

type StatsService interface {
	// RecomputeTenant overwrites all stat rows for the tenant: yearly stats
	// for the current and previous year, monthly stats for each month of the
	// current year. Idempotent for unchanged underlying data.
	RecomputeTenant(ctx context.Context, tenantID int64, now time.Time) error
	RecomputeAll(ctx context.Context, now time.Time) error
	Get(ctx context.Context, tenantID int64, period string) ([]domain.TenantStat, error)
}

// LineItem is a single charge rendered on an invoice or agreement.
type LineItem struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Formatted   string          `json:"formatted"`
}

// DocumentData is the flat projection handed to the external rendering
// collaborator. Line items carry only non-zero amounts and always sum to
// NetTotal.
type DocumentData struct {
	DocumentNumber     string             `json:"document_number"`
	Kind               string             `json:"kind"` // INVOICE or AGREEMENT
	TenantName         string             `json:"tenant_name"`
	TenantAddress      string             `json:"tenant_address"`
	Currency           string             `json:"currency"`
	CustomerName       string             `json:"customer_name"`
	CustomerAddress    string             `json:"customer_address"`
	LicenseNumber      string             `json:"license_number"`
	VehicleDescription string             `json:"vehicle_description"`
	BillingUnit        domain.BillingUnit `json:"billing_unit"`
	UnitCount          int64              `json:"unit_count"`
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	LineItems          []LineItem         `json:"line_items"`
	NetTotal           decimal.Decimal    `json:"net_total"`
	NetTotalFormatted  string             `json:"net_total_formatted"`
	AmountPaid         decimal.Decimal    `json:"amount_paid"`
	BalanceDue         decimal.Decimal    `json:"balance_due"`
	SnapshotURL        string             `json:"snapshot_url,omitempty"`
}

type DocumentService interface {
	AssembleInvoice(ctx context.Context, tenantID, bookingID int64) (*DocumentData, error)
	AssembleAgreement(ctx context.Context, tenantID, bookingID int64) (*DocumentData, error)
}

type NotificationService interface {
	List(ctx context.Context, tenantID, userID, page, pageSize int64) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, tenantID, userID, id int64) error
}

// EmailService sends customer-facing mail. Calls are fire-and-forget from
// the workflow services: failures are logged, never rolled back into the
// originating write.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, to, customerName, vehicle string, netTotal decimal.Decimal, currency string) error
	SendBookingCompletion(ctx context.Context, to, customerName, vehicle string, netTotal decimal.Decimal, currency string) error
	SendBookingCancellation(ctx context.Context, to, customerName, vehicle string, fee decimal.Decimal, currency string) error
	SendOverdueNotice(ctx context.Context, to, customerName, vehicle string, endDate time.Time) error
}
