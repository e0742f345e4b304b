package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
	VehicleStatusRetired     VehicleStatus = "RETIRED"
)

// Vehicle is owned by exactly one tenant. License plates are unique within
// a tenant. Prices are per billing unit in the tenant currency.
type Vehicle struct {
	ID              int64           `json:"id"`
	TenantID        int64           `json:"tenant_id"`
	Make            string          `json:"make"`
	Model           string          `json:"model"`
	Year            int             `json:"year"`
	LicensePlate    string          `json:"license_plate"`
	Status          VehicleStatus   `json:"status"`
	DayPrice        decimal.Decimal `json:"day_price"`
	WeekPrice       decimal.Decimal `json:"week_price"`
	MonthPrice      decimal.Decimal `json:"month_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsDeleted       bool            `json:"-"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
}
