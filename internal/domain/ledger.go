package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypePayment TransactionType = "PAYMENT"
	TransactionTypeRefund  TransactionType = "REFUND"
	TransactionTypeExpense TransactionType = "EXPENSE"
	TransactionTypeRental  TransactionType = "RENTAL"
)

// SignedAmount returns the signed transaction amount mirrored from a ledger
// entry of the given type. Entries store positive amounts; the sign lives on
// the transaction: payments and rental revenue are positive, refunds and
// expenses negative.
func SignedAmount(t TransactionType, amount decimal.Decimal) decimal.Decimal {
	switch t {
	case TransactionTypeRefund, TransactionTypeExpense:
		return amount.Neg()
	default:
		return amount
	}
}

// Payment records money received from a customer, usually against a booking.
type Payment struct {
	ID         int64           `json:"id"`
	TenantID   int64           `json:"tenant_id"`
	BookingID  *int64          `json:"booking_id,omitempty"`
	CustomerID *int64          `json:"customer_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	PaidOn     time.Time       `json:"paid_on"`
	Notes      string          `json:"notes"`
	IsDeleted  bool            `json:"-"`
	CreatedOn  time.Time       `json:"created_on"`
}

// Refund records money returned to a customer against a settled booking.
type Refund struct {
	ID         int64           `json:"id"`
	TenantID   int64           `json:"tenant_id"`
	BookingID  *int64          `json:"booking_id,omitempty"`
	CustomerID *int64          `json:"customer_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	RefundedOn time.Time       `json:"refunded_on"`
	IsDeleted  bool            `json:"-"`
	CreatedOn  time.Time       `json:"created_on"`
}

// Expense records money paid out by the tenant, optionally tied to a
// booking or vehicle (maintenance, vendor invoices).
type Expense struct {
	ID         int64           `json:"id"`
	TenantID   int64           `json:"tenant_id"`
	BookingID  *int64          `json:"booking_id,omitempty"`
	VehicleID  *int64          `json:"vehicle_id,omitempty"`
	Vendor     string          `json:"vendor"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	IncurredOn time.Time       `json:"incurred_on"`
	IsDeleted  bool            `json:"-"`
	CreatedOn  time.Time       `json:"created_on"`
}

// Transaction is the unified ledger row. Every non-deleted payment, refund
// and expense has exactly one non-deleted transaction carrying the signed
// amount and a back-reference (Type, EntryID) to the originating entry.
// Transactions are never written directly by a client.
type Transaction struct {
	ID        int64           `json:"id"`
	TenantID  int64           `json:"tenant_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      TransactionType `json:"type"`
	EntryID   int64           `json:"entry_id"`
	BookingID *int64          `json:"booking_id,omitempty"`
	ChargedOn time.Time       `json:"charged_on"`
	IsDeleted bool            `json:"-"`
	CreatedOn time.Time       `json:"created_on"`
}
