package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

// Store bundles all repository implementations over one connection pool.
type Store struct {
	db *sql.DB
	repository.TenantRepository
	repository.UserRepository
	repository.VehicleRepository
	repository.CustomerRepository
	repository.BookingRepository
	repository.LedgerRepository
	repository.StatsRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		TenantRepository:       NewTenantRepository(db),
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		CustomerRepository:     NewCustomerRepository(db),
		BookingRepository:      NewBookingRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		StatsRepository:        NewStatsRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}
