package postgres

import (
	"context"
	"database/sql"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Upsert(ctx context.Context, s *domain.TenantStat) error {
	query := `INSERT INTO tenant_stats (tenant_id, period, name, value, computed_on)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (tenant_id, period, name)
		DO UPDATE SET value = EXCLUDED.value, computed_on = EXCLUDED.computed_on`
	_, err := r.db.ExecContext(ctx, query, s.TenantID, s.Period, s.Name, s.Value)
	return mapError(err)
}

func (r *statsRepository) ListByTenantPeriod(ctx context.Context, tenantID int64, period string) ([]domain.TenantStat, error) {
	query := `SELECT tenant_id, period, name, value, computed_on
		FROM tenant_stats WHERE tenant_id = $1 AND period = $2 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, tenantID, period)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var stats []domain.TenantStat
	for rows.Next() {
		var s domain.TenantStat
		if err := rows.Scan(&s.TenantID, &s.Period, &s.Name, &s.Value, &s.ComputedOn); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
