package domain

import "time"

// Customer is a driver registered with a tenant.
type Customer struct {
	ID            int64     `json:"id"`
	TenantID      int64     `json:"tenant_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	Address       Address   `json:"address"`
	IsDeleted     bool      `json:"-"`
	CreatedOn     time.Time `json:"created_on"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
