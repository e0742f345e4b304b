package postgres

import (
	"context"
	"database/sql"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, tenant_id, make, model, year, license_plate, status,
	day_price, week_price, month_price, discount_percent, created_on, updated_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (tenant_id, make, model, year, license_plate, status,
			day_price, week_price, month_price, discount_percent, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_on, updated_on`
	err := r.db.QueryRowContext(ctx, query,
		v.TenantID, v.Make, v.Model, v.Year, v.LicensePlate, v.Status,
		v.DayPrice, v.WeekPrice, v.MonthPrice, v.DiscountPercent,
	).Scan(&v.ID, &v.CreatedOn, &v.UpdatedOn)
	return mapError(err)
}

func (r *vehicleRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	return scanVehicle(r.db.QueryRowContext(ctx, query, id, tenantID))
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make = $3, model = $4, year = $5, license_plate = $6,
			status = $7, day_price = $8, week_price = $9, month_price = $10,
			discount_percent = $11, updated_on = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query,
		v.ID, v.TenantID, v.Make, v.Model, v.Year, v.LicensePlate,
		v.Status, v.DayPrice, v.WeekPrice, v.MonthPrice, v.DiscountPercent,
	)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *vehicleRepository) SoftDelete(ctx context.Context, tenantID, id int64) error {
	query := `UPDATE vehicles SET is_deleted = TRUE, updated_on = NOW()
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

func (r *vehicleRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE tenant_id = $1 AND is_deleted = FALSE ORDER BY id`
	return r.list(ctx, query, tenantID)
}

func (r *vehicleRepository) ListAvailableByTenant(ctx context.Context, tenantID int64) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
		WHERE tenant_id = $1 AND status = 'AVAILABLE' AND is_deleted = FALSE ORDER BY id`
	return r.list(ctx, query, tenantID)
}

func (r *vehicleRepository) list(ctx context.Context, query string, args ...any) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(&v.ID, &v.TenantID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.Status,
		&v.DayPrice, &v.WeekPrice, &v.MonthPrice, &v.DiscountPercent, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &v, nil
}
