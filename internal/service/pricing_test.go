package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUnitCount(t *testing.T) {
	start := date(2025, time.June, 1)

	t.Run("Days", func(t *testing.T) {
		assert.Equal(t, int64(5), service.UnitCount(domain.BillingUnitDay, start, date(2025, time.June, 6)))
		assert.Equal(t, int64(1), service.UnitCount(domain.BillingUnitDay, start, start.Add(3*time.Hour)))
	})

	t.Run("PartialDayRoundsUp", func(t *testing.T) {
		end := date(2025, time.June, 6).Add(5 * time.Hour)
		assert.Equal(t, int64(6), service.UnitCount(domain.BillingUnitDay, start, end))
	})

	t.Run("WeeksCeiling", func(t *testing.T) {
		assert.Equal(t, int64(1), service.UnitCount(domain.BillingUnitWeek, start, date(2025, time.June, 8)))
		assert.Equal(t, int64(2), service.UnitCount(domain.BillingUnitWeek, start, date(2025, time.June, 9)))
		assert.Equal(t, int64(2), service.UnitCount(domain.BillingUnitWeek, start, date(2025, time.June, 15)))
	})

	t.Run("MonthsCeiling", func(t *testing.T) {
		assert.Equal(t, int64(1), service.UnitCount(domain.BillingUnitMonth, start, date(2025, time.July, 1)))
		assert.Equal(t, int64(2), service.UnitCount(domain.BillingUnitMonth, start, date(2025, time.July, 2)))
	})
}

func TestComputeValues(t *testing.T) {
	tenant := &domain.Tenant{
		BillingUnit:     domain.BillingUnitDay,
		SecurityDeposit: decimal.Zero,
	}
	vehicle := &domain.Vehicle{
		DayPrice:        decimal.NewFromInt(50),
		DiscountPercent: decimal.Zero,
	}

	t.Run("FiveDayRental", func(t *testing.T) {
		v := service.ComputeValues(tenant, vehicle, date(2025, time.June, 1), date(2025, time.June, 6),
			decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)

		assert.True(t, v.BasePrice.Equal(decimal.NewFromInt(250)), "base price was %s", v.BasePrice)
		assert.True(t, v.NetTotal.Equal(decimal.NewFromInt(250)), "net total was %s", v.NetTotal)
	})

	t.Run("DiscountFeesAndDeposit", func(t *testing.T) {
		tenant := &domain.Tenant{
			BillingUnit:     domain.BillingUnitDay,
			SecurityDeposit: decimal.NewFromInt(100),
		}
		vehicle := &domain.Vehicle{
			DayPrice:        decimal.NewFromInt(50),
			DiscountPercent: decimal.NewFromInt(10),
		}

		v := service.ComputeValues(tenant, vehicle, date(2025, time.June, 1), date(2025, time.June, 6),
			decimal.NewFromInt(30), decimal.NewFromInt(15), decimal.NewFromInt(15), decimal.NewFromInt(20))

		// 250 - 25 + 30 + 15 + 15 + 20 - 100
		assert.True(t, v.Discount.Equal(decimal.NewFromInt(25)), "discount was %s", v.Discount)
		assert.True(t, v.NetTotal.Equal(decimal.NewFromInt(205)), "net total was %s", v.NetTotal)
	})

	t.Run("WeeklyBilling", func(t *testing.T) {
		tenant := &domain.Tenant{BillingUnit: domain.BillingUnitWeek}
		vehicle := &domain.Vehicle{WeekPrice: decimal.NewFromInt(300)}

		v := service.ComputeValues(tenant, vehicle, date(2025, time.June, 1), date(2025, time.June, 10),
			decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero)

		// 9 days bill as 2 weeks
		assert.True(t, v.BasePrice.Equal(decimal.NewFromInt(600)), "base price was %s", v.BasePrice)
	})
}

func TestCancellationFee(t *testing.T) {
	net := decimal.NewFromInt(200)

	t.Run("Percent", func(t *testing.T) {
		policy := domain.CancellationPolicy{Type: domain.CancellationPolicyPercent, Value: decimal.NewFromInt(25)}
		assert.True(t, service.CancellationFee(policy, net).Equal(decimal.NewFromInt(50)))
	})

	t.Run("Fixed", func(t *testing.T) {
		policy := domain.CancellationPolicy{Type: domain.CancellationPolicyFixed, Value: decimal.NewFromInt(35)}
		assert.True(t, service.CancellationFee(policy, net).Equal(decimal.NewFromInt(35)))
	})

	t.Run("None", func(t *testing.T) {
		policy := domain.CancellationPolicy{Type: domain.CancellationPolicyNone}
		assert.True(t, service.CancellationFee(policy, net).IsZero())
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "USD 250.00", service.FormatAmount("USD", decimal.NewFromInt(250)))
	assert.Equal(t, "EUR -40.00", service.FormatAmount("EUR", decimal.NewFromInt(-40)))
}
