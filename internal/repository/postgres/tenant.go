package postgres

import (
	"context"
	"database/sql"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type tenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

const tenantColumns = `id, code, name, currency, street, city, state, country, postal_code,
	billing_unit, cancellation_type, cancellation_value, security_deposit, created_on, updated_on`

func (r *tenantRepository) Create(ctx context.Context, t *domain.Tenant) error {
	query := `INSERT INTO tenants (code, name, currency, street, city, state, country, postal_code,
			billing_unit, cancellation_type, cancellation_value, security_deposit, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		t.Code, t.Name, t.Currency,
		t.Address.Street, t.Address.City, t.Address.State, t.Address.Country, t.Address.PostalCode,
		t.BillingUnit, t.CancellationPolicy.Type, t.CancellationPolicy.Value, t.SecurityDeposit,
	).Scan(&t.ID, &t.CreatedOn, &t.UpdatedOn)
	return mapError(err)
}

func (r *tenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1 AND is_deleted = FALSE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *tenantRepository) GetByCode(ctx context.Context, code string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE code = $1 AND is_deleted = FALSE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *tenantRepository) Update(ctx context.Context, t *domain.Tenant) error {
	query := `UPDATE tenants SET name = $2, currency = $3, street = $4, city = $5, state = $6,
			country = $7, postal_code = $8, billing_unit = $9, cancellation_type = $10,
			cancellation_value = $11, security_deposit = $12, updated_on = NOW()
		WHERE id = $1 AND is_deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Currency,
		t.Address.Street, t.Address.City, t.Address.State, t.Address.Country, t.Address.PostalCode,
		t.BillingUnit, t.CancellationPolicy.Type, t.CancellationPolicy.Value, t.SecurityDeposit,
	)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *tenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE is_deleted = FALSE ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (*domain.Tenant, error) {
	var t domain.Tenant
	err := row.Scan(&t.ID, &t.Code, &t.Name, &t.Currency,
		&t.Address.Street, &t.Address.City, &t.Address.State, &t.Address.Country, &t.Address.PostalCode,
		&t.BillingUnit, &t.CancellationPolicy.Type, &t.CancellationPolicy.Value, &t.SecurityDeposit,
		&t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &t, nil
}

func (r *tenantRepository) scanOne(row *sql.Row) (*domain.Tenant, error) {
	return scanTenant(row)
}
