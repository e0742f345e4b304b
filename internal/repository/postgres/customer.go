package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, tenant_id, first_name, last_name, email, phone, license_number,
	street, city, state, country, postal_code, created_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (tenant_id, first_name, last_name, email, phone, license_number,
			street, city, state, country, postal_code, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		c.TenantID, c.FirstName, c.LastName, c.Email, c.Phone, c.LicenseNumber,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.Country, c.Address.PostalCode,
	).Scan(&c.ID, &c.CreatedOn)
	return mapError(err)
}

func (r *customerRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	return scanCustomer(r.db.QueryRowContext(ctx, query, id, tenantID))
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET first_name = $3, last_name = $4, email = $5, phone = $6,
			license_number = $7, street = $8, city = $9, state = $10, country = $11, postal_code = $12
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query,
		c.ID, c.TenantID, c.FirstName, c.LastName, c.Email, c.Phone, c.LicenseNumber,
		c.Address.Street, c.Address.City, c.Address.State, c.Address.Country, c.Address.PostalCode,
	)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *customerRepository) SoftDelete(ctx context.Context, tenantID, id int64) error {
	query := `UPDATE customers SET is_deleted = TRUE
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *customerRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE tenant_id = $1 AND is_deleted = FALSE ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func (r *customerRepository) CountCreatedBetween(ctx context.Context, tenantID int64, from, to time.Time) (int64, error) {
	query := `SELECT count(*) FROM customers
		WHERE tenant_id = $1 AND created_on >= $2 AND created_on < $3 AND is_deleted = FALSE`
	var count int64
	err := r.db.QueryRowContext(ctx, query, tenantID, from, to).Scan(&count)
	return count, mapError(err)
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.LicenseNumber,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.Country, &c.Address.PostalCode,
		&c.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}
