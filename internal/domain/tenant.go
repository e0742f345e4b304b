package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingUnit is the unit a tenant bills rentals in.
type BillingUnit string

const (
	BillingUnitDay   BillingUnit = "DAY"
	BillingUnitWeek  BillingUnit = "WEEK"
	BillingUnitMonth BillingUnit = "MONTH"
)

type CancellationPolicyType string

const (
	CancellationPolicyNone    CancellationPolicyType = "NONE"
	CancellationPolicyPercent CancellationPolicyType = "PERCENT"
	CancellationPolicyFixed   CancellationPolicyType = "FIXED"
)

// CancellationPolicy describes the fee a tenant charges when a booking is
// cancelled before pickup. Value is a percentage of the booking net total
// for PERCENT, or an absolute amount in the tenant currency for FIXED.
type CancellationPolicy struct {
	Type  CancellationPolicyType `json:"type"`
	Value decimal.Decimal        `json:"value"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// Tenant is a rental company, the top-level multi-tenancy boundary.
// Tenants are never hard-deleted.
type Tenant struct {
	ID                 int64              `json:"id"`
	Code               string             `json:"code"`
	Name               string             `json:"name"`
	Currency           string             `json:"currency"`
	Address            Address            `json:"address"`
	BillingUnit        BillingUnit        `json:"billing_unit"`
	CancellationPolicy CancellationPolicy `json:"cancellation_policy"`
	SecurityDeposit    decimal.Decimal    `json:"security_deposit"`
	IsDeleted          bool               `json:"-"`
	CreatedOn          time.Time          `json:"created_on"`
	UpdatedOn          time.Time          `json:"updated_on"`
}
