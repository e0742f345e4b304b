package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

func newBookingMock(t *testing.T) (*bookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &bookingRepository{db: db}, mock
}

func TestBookingRepository_Create(t *testing.T) {
	repo, mock := newBookingMock(t)
	ctx := context.Background()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	booking := &domain.Booking{
		TenantID:  1,
		VehicleID: 7,
		Status:    domain.BookingStatusPending,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 5),
		Drivers: []domain.BookingDriver{
			{CustomerID: 9, IsPrimary: true},
			{CustomerID: 10, IsPrimary: false},
		},
		Values: domain.BookingValues{NetTotal: decimal.NewFromInt(250)},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sequence_no", "created_on", "updated_on"}).
			AddRow(int64(42), int64(3), now, now))
	mock.ExpectExec(`INSERT INTO booking_drivers`).
		WithArgs(int64(42), int64(9), true).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO booking_drivers`).
		WithArgs(int64(42), int64(10), false).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.Create(ctx, booking)
	require.NoError(t, err)
	assert.Equal(t, int64(42), booking.ID)
	assert.Equal(t, int64(3), booking.SequenceNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Swapped", func(t *testing.T) {
		repo, mock := newBookingMock(t)
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(int64(42), int64(1), string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateStatus(ctx, 1, 42, domain.BookingStatusPending, domain.BookingStatusConfirmed)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LostRace", func(t *testing.T) {
		repo, mock := newBookingMock(t)
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(int64(42), int64(1), string(domain.BookingStatusPending), string(domain.BookingStatusConfirmed)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdateStatus(ctx, 1, 42, domain.BookingStatusPending, domain.BookingStatusConfirmed)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBookingRepository_SetDocumentNumbers(t *testing.T) {
	repo, mock := newBookingMock(t)
	ctx := context.Background()
	invoice := "INV-ACME-3"

	mock.ExpectExec(`UPDATE bookings SET`).
		WithArgs(int64(42), int64(1), invoice, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetDocumentNumbers(ctx, 1, 42, &invoice, nil)
	assert.NoError(t, err)

	mock.ExpectExec(`UPDATE bookings SET`).
		WithArgs(int64(99), int64(1), invoice, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SetDocumentNumbers(ctx, 1, 99, &invoice, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
