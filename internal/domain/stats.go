package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stat names stored in tenant_stats. Yearly rows use period "2006", monthly
// rows "2006-01".
const (
	StatYearlyRevenue         = "YEARLY_REVENUE"
	StatYearlyRentals         = "YEARLY_RENTALS"
	StatYearlyCustomers       = "YEARLY_CUSTOMERS"
	StatMonthlyRevenue        = "MONTHLY_REVENUE"
	StatMonthlyRentals        = "MONTHLY_RENTALS"
	StatMonthlyCustomers      = "MONTHLY_CUSTOMERS"
	StatAverageRentalDuration = "AVERAGE_RENTAL_DURATION"
	StatStatusCountPrefix     = "STATUS_" // STATUS_PENDING, STATUS_COMPLETED, ...
)

// TenantStat is a denormalized aggregate keyed by (tenant, period, name).
// Rows are recomputed wholesale on each aggregation run; the invariant is
// "value equals the aggregate over the ledger for that period", never
// "value was incremented".
type TenantStat struct {
	TenantID   int64           `json:"tenant_id"`
	Period     string          `json:"period"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	ComputedOn time.Time       `json:"computed_on"`
}
