package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, tenant_id, sequence_no, vehicle_id, status, start_date, end_date,
	base_price, discount, extras_total, pickup_fee, return_fee, additional_driver_fee, deposit, net_total,
	invoice_number, agreement_number, created_on, updated_on`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The sequence number is assigned inside the insert so two concurrent
	// creates for the same tenant cannot observe the same max.
	query := `INSERT INTO bookings (tenant_id, sequence_no, vehicle_id, status, start_date, end_date,
			base_price, discount, extras_total, pickup_fee, return_fee, additional_driver_fee,
			deposit, net_total, created_on, updated_on)
		VALUES ($1,
			(SELECT COALESCE(MAX(sequence_no), 0) + 1 FROM bookings WHERE tenant_id = $1),
			$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, sequence_no, created_on, updated_on`
	err = tx.QueryRowContext(ctx, query,
		b.TenantID, b.VehicleID, b.Status, b.StartDate, b.EndDate,
		b.Values.BasePrice, b.Values.Discount, b.Values.ExtrasTotal,
		b.Values.PickupFee, b.Values.ReturnFee, b.Values.AdditionalDriverFee,
		b.Values.Deposit, b.Values.NetTotal,
	).Scan(&b.ID, &b.SequenceNo, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return mapError(err)
	}

	for _, d := range b.Drivers {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO booking_drivers (booking_id, customer_id, is_primary) VALUES ($1, $2, $3)`,
			b.ID, d.CustomerID, d.IsPrimary)
		if err != nil {
			return mapError(err)
		}
	}

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT customer_id, is_primary FROM booking_drivers WHERE booking_id = $1 ORDER BY is_primary DESC`, b.ID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var d domain.BookingDriver
		if err := rows.Scan(&d.CustomerID, &d.IsPrimary); err != nil {
			return nil, err
		}
		b.Drivers = append(b.Drivers, d)
	}
	return b, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tenantID, id int64, from, to domain.BookingStatus) (bool, error) {
	query := `UPDATE bookings SET status = $4, updated_on = NOW()
		WHERE id = $1 AND tenant_id = $2 AND status = $3 AND is_deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query, id, tenantID, from, to)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *bookingRepository) SetDocumentNumbers(ctx context.Context, tenantID, id int64, invoiceNo, agreementNo *string) error {
	query := `UPDATE bookings SET
			invoice_number = COALESCE($3, invoice_number),
			agreement_number = COALESCE($4, agreement_number),
			updated_on = NOW()
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query, id, tenantID, invoiceNo, agreementNo)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) ListByTenant(ctx context.Context, tenantID int64, status string, page, pageSize int64) ([]domain.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2) AND is_deleted = FALSE
		ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, tenantID, status, pageSize, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int64
	countQuery := `SELECT count(*) FROM bookings
		WHERE tenant_id = $1 AND ($2 = '' OR status = $2) AND is_deleted = FALSE`
	if err := r.db.QueryRowContext(ctx, countQuery, tenantID, status).Scan(&count); err != nil {
		return nil, 0, mapError(err)
	}
	return bookings, count, nil
}

func (r *bookingRepository) ListCompletedBetween(ctx context.Context, tenantID int64, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE tenant_id = $1 AND status = 'COMPLETED'
		  AND start_date >= $2 AND end_date < $3 AND is_deleted = FALSE
		ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) CountByStatus(ctx context.Context, tenantID int64, from, to time.Time) (map[domain.BookingStatus]int64, error) {
	query := `SELECT status, count(*) FROM bookings
		WHERE tenant_id = $1 AND created_on >= $2 AND created_on < $3 AND is_deleted = FALSE
		GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int64)
	for rows.Next() {
		var status domain.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *bookingRepository) ListActivePastEnd(ctx context.Context, asOf time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE status = 'ACTIVE' AND end_date < $1 AND is_deleted = FALSE
		ORDER BY tenant_id, end_date`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.TenantID, &b.SequenceNo, &b.VehicleID, &b.Status, &b.StartDate, &b.EndDate,
		&b.Values.BasePrice, &b.Values.Discount, &b.Values.ExtrasTotal,
		&b.Values.PickupFee, &b.Values.ReturnFee, &b.Values.AdditionalDriverFee,
		&b.Values.Deposit, &b.Values.NetTotal,
		&b.InvoiceNumber, &b.AgreementNumber, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &b, nil
}
