package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusDeclined  BookingStatus = "DECLINED"
	BookingStatusCanceled  BookingStatus = "CANCELED"
	BookingStatusRefunded  BookingStatus = "REFUNDED"
)

// IsSettled reports whether a booking has reached a state against which a
// refund may be recorded.
func (s BookingStatus) IsSettled() bool {
	return s == BookingStatusCompleted || s == BookingStatusCanceled
}

// BookingValues is the computed financial breakdown attached to a booking.
// NetTotal = BasePrice - Discount + ExtrasTotal + PickupFee + ReturnFee +
// AdditionalDriverFee - Deposit. It is a denormalized cache of what the
// invoice renders; the pricing code is the single place that computes it.
type BookingValues struct {
	BasePrice           decimal.Decimal `json:"base_price"`
	Discount            decimal.Decimal `json:"discount"`
	ExtrasTotal         decimal.Decimal `json:"extras_total"`
	PickupFee           decimal.Decimal `json:"pickup_fee"`
	ReturnFee           decimal.Decimal `json:"return_fee"`
	AdditionalDriverFee decimal.Decimal `json:"additional_driver_fee"`
	Deposit             decimal.Decimal `json:"deposit"`
	NetTotal            decimal.Decimal `json:"net_total"`
}

// BookingDriver links a customer to a booking. Exactly one driver per
// booking is primary.
type BookingDriver struct {
	CustomerID int64 `json:"customer_id"`
	IsPrimary  bool  `json:"is_primary"`
}

// Booking is a reservation of a vehicle for a date range, the central
// workflow entity. SequenceNo is a tenant-scoped running number used on
// customer-facing documents.
type Booking struct {
	ID              int64           `json:"id"`
	TenantID        int64           `json:"tenant_id"`
	SequenceNo      int64           `json:"sequence_no"`
	VehicleID       int64           `json:"vehicle_id"`
	Status          BookingStatus   `json:"status"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	Drivers         []BookingDriver `json:"drivers"`
	Values          BookingValues   `json:"values"`
	InvoiceNumber   *string         `json:"invoice_number,omitempty"`
	AgreementNumber *string         `json:"agreement_number,omitempty"`
	IsDeleted       bool            `json:"-"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
}

// PrimaryDriver returns the customer id of the primary driver, or 0 if the
// booking has none (which violates the booking invariant).
func (b *Booking) PrimaryDriver() int64 {
	for _, d := range b.Drivers {
		if d.IsPrimary {
			return d.CustomerID
		}
	}
	return 0
}

// DurationDays returns the rental length in whole days, rounding a partial
// day up, minimum 1. This matches how billing counts day units, so duration
// stats agree with what was charged.
func (b *Booking) DurationDays() int64 {
	hours := b.EndDate.Sub(b.StartDate).Hours()
	days := int64(hours / 24)
	if hours > float64(days*24) {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
