package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// rentalDays returns the rental length in whole days, rounding a partial
// day up, minimum 1.
func rentalDays(start, end time.Time) int64 {
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return 1
	}
	days := int64(hours / 24)
	if hours > float64(days*24) {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// UnitCount converts a date range into billing units. Week and month counts
// use ceiling division: any started unit is charged in full.
func UnitCount(unit domain.BillingUnit, start, end time.Time) int64 {
	days := rentalDays(start, end)
	switch unit {
	case domain.BillingUnitWeek:
		return (days + 6) / 7
	case domain.BillingUnitMonth:
		return (days + 29) / 30
	default:
		return days
	}
}

func unitPrice(unit domain.BillingUnit, v *domain.Vehicle) decimal.Decimal {
	switch unit {
	case domain.BillingUnitWeek:
		return v.WeekPrice
	case domain.BillingUnitMonth:
		return v.MonthPrice
	default:
		return v.DayPrice
	}
}

// ComputeValues builds the financial breakdown for a booking. NetTotal is
// the single source for everything rendered on invoices and agreements:
// basePrice - discount + extras + pickupFee + returnFee + additionalDriverFee - deposit.
func ComputeValues(t *domain.Tenant, v *domain.Vehicle, start, end time.Time,
	extrasTotal, pickupFee, returnFee, additionalDriverFee decimal.Decimal) domain.BookingValues {

	units := decimal.NewFromInt(UnitCount(t.BillingUnit, start, end))
	basePrice := unitPrice(t.BillingUnit, v).Mul(units).Round(2)
	discount := basePrice.Mul(v.DiscountPercent).Div(hundred).Round(2)
	deposit := t.SecurityDeposit

	netTotal := basePrice.
		Sub(discount).
		Add(extrasTotal).
		Add(pickupFee).
		Add(returnFee).
		Add(additionalDriverFee).
		Sub(deposit).
		Round(2)

	return domain.BookingValues{
		BasePrice:           basePrice,
		Discount:            discount,
		ExtrasTotal:         extrasTotal,
		PickupFee:           pickupFee,
		ReturnFee:           returnFee,
		AdditionalDriverFee: additionalDriverFee,
		Deposit:             deposit,
		NetTotal:            netTotal,
	}
}

// CancellationFee computes the fee owed when a booking is cancelled under
// the tenant policy: a percentage of the net total, or a fixed amount.
func CancellationFee(policy domain.CancellationPolicy, netTotal decimal.Decimal) decimal.Decimal {
	switch policy.Type {
	case domain.CancellationPolicyPercent:
		return netTotal.Mul(policy.Value).Div(hundred).Round(2)
	case domain.CancellationPolicyFixed:
		return policy.Value
	default:
		return decimal.Zero
	}
}

// FormatAmount renders an amount the way documents show it: currency code
// followed by the amount with two decimal places.
func FormatAmount(currency string, amount decimal.Decimal) string {
	return currency + " " + amount.StringFixed(2)
}
