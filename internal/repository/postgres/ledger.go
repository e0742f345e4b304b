package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

// ledgerRepository pairs every payment/refund/expense row with exactly one
// transaction row. All three writes (create, update, delete) run the entry
// statement and the mirror statement inside a single database transaction:
// a failed mirror write rolls the entry back.
type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// insertMirror creates the transaction row for a new ledger entry.
func insertMirror(ctx context.Context, tx *sql.Tx, tenantID int64, t domain.TransactionType,
	entryID int64, bookingID *int64, amount decimal.Decimal, chargedOn time.Time) (*domain.Transaction, error) {

	m := &domain.Transaction{
		TenantID:  tenantID,
		Amount:    domain.SignedAmount(t, amount),
		Type:      t,
		EntryID:   entryID,
		BookingID: bookingID,
		ChargedOn: chargedOn,
	}
	query := `INSERT INTO transactions (tenant_id, amount, type, entry_id, booking_id, charged_on, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_on`
	err := tx.QueryRowContext(ctx, query,
		m.TenantID, m.Amount, m.Type, m.EntryID, m.BookingID, m.ChargedOn,
	).Scan(&m.ID, &m.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

// updateMirror updates the paired transaction row in lockstep with its
// entry. Zero rows affected means the pairing is broken.
func updateMirror(ctx context.Context, tx *sql.Tx, tenantID int64, t domain.TransactionType,
	entryID int64, bookingID *int64, amount decimal.Decimal, chargedOn time.Time) error {

	query := `UPDATE transactions SET amount = $4, booking_id = $5, charged_on = $6
		WHERE tenant_id = $1 AND type = $2 AND entry_id = $3 AND is_deleted = FALSE`
	res, err := tx.ExecContext(ctx, query, tenantID, t, entryID, domain.SignedAmount(t, amount), bookingID, chargedOn)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrPairedTransactionMissing
	}
	return nil
}

// deleteMirror soft-deletes the paired transaction row.
func deleteMirror(ctx context.Context, tx *sql.Tx, tenantID int64, t domain.TransactionType, entryID int64) error {
	query := `UPDATE transactions SET is_deleted = TRUE
		WHERE tenant_id = $1 AND type = $2 AND entry_id = $3 AND is_deleted = FALSE`
	res, err := tx.ExecContext(ctx, query, tenantID, t, entryID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrPairedTransactionMissing
	}
	return nil
}

// --- payments ---

func (r *ledgerRepository) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `INSERT INTO payments (tenant_id, booking_id, customer_id, amount, method, paid_on, notes, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query,
		p.TenantID, p.BookingID, p.CustomerID, p.Amount, p.Method, p.PaidOn, p.Notes,
	).Scan(&p.ID, &p.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}

	mirror, err := insertMirror(ctx, tx, p.TenantID, domain.TransactionTypePayment, p.ID, p.BookingID, p.Amount, p.PaidOn)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return mirror, nil
}

func (r *ledgerRepository) UpdatePayment(ctx context.Context, p *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE payments SET booking_id = $3, customer_id = $4, amount = $5, method = $6, paid_on = $7, notes = $8
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	res, err := tx.ExecContext(ctx, query, p.ID, p.TenantID, p.BookingID, p.CustomerID, p.Amount, p.Method, p.PaidOn, p.Notes)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if err := updateMirror(ctx, tx, p.TenantID, domain.TransactionTypePayment, p.ID, p.BookingID, p.Amount, p.PaidOn); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) DeletePayment(ctx context.Context, tenantID, id int64) error {
	return r.deleteEntry(ctx, "payments", domain.TransactionTypePayment, tenantID, id)
}

func (r *ledgerRepository) GetPaymentByID(ctx context.Context, tenantID, id int64) (*domain.Payment, error) {
	query := `SELECT id, tenant_id, booking_id, customer_id, amount, method, paid_on, notes, created_on
		FROM payments WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	var p domain.Payment
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&p.ID, &p.TenantID, &p.BookingID, &p.CustomerID, &p.Amount, &p.Method, &p.PaidOn, &p.Notes, &p.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *ledgerRepository) ListPayments(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Payment, int64, error) {
	offset, limit := pageBounds(page, pageSize)
	query := `SELECT id, tenant_id, booking_id, customer_id, amount, method, paid_on, notes, created_on
		FROM payments WHERE tenant_id = $1 AND is_deleted = FALSE
		ORDER BY paid_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.TenantID, &p.BookingID, &p.CustomerID, &p.Amount, &p.Method, &p.PaidOn, &p.Notes, &p.CreatedOn); err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	count, err := r.countEntries(ctx, "payments", tenantID)
	return payments, count, err
}

// --- refunds ---

func (r *ledgerRepository) CreateRefund(ctx context.Context, rf *domain.Refund) (*domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `INSERT INTO refunds (tenant_id, booking_id, customer_id, amount, reason, refunded_on, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query,
		rf.TenantID, rf.BookingID, rf.CustomerID, rf.Amount, rf.Reason, rf.RefundedOn,
	).Scan(&rf.ID, &rf.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}

	mirror, err := insertMirror(ctx, tx, rf.TenantID, domain.TransactionTypeRefund, rf.ID, rf.BookingID, rf.Amount, rf.RefundedOn)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return mirror, nil
}

func (r *ledgerRepository) UpdateRefund(ctx context.Context, rf *domain.Refund) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE refunds SET booking_id = $3, customer_id = $4, amount = $5, reason = $6, refunded_on = $7
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	res, err := tx.ExecContext(ctx, query, rf.ID, rf.TenantID, rf.BookingID, rf.CustomerID, rf.Amount, rf.Reason, rf.RefundedOn)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if err := updateMirror(ctx, tx, rf.TenantID, domain.TransactionTypeRefund, rf.ID, rf.BookingID, rf.Amount, rf.RefundedOn); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) DeleteRefund(ctx context.Context, tenantID, id int64) error {
	return r.deleteEntry(ctx, "refunds", domain.TransactionTypeRefund, tenantID, id)
}

func (r *ledgerRepository) GetRefundByID(ctx context.Context, tenantID, id int64) (*domain.Refund, error) {
	query := `SELECT id, tenant_id, booking_id, customer_id, amount, reason, refunded_on, created_on
		FROM refunds WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	var rf domain.Refund
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&rf.ID, &rf.TenantID, &rf.BookingID, &rf.CustomerID, &rf.Amount, &rf.Reason, &rf.RefundedOn, &rf.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &rf, nil
}

func (r *ledgerRepository) ListRefunds(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Refund, int64, error) {
	offset, limit := pageBounds(page, pageSize)
	query := `SELECT id, tenant_id, booking_id, customer_id, amount, reason, refunded_on, created_on
		FROM refunds WHERE tenant_id = $1 AND is_deleted = FALSE
		ORDER BY refunded_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		var rf domain.Refund
		if err := rows.Scan(&rf.ID, &rf.TenantID, &rf.BookingID, &rf.CustomerID, &rf.Amount, &rf.Reason, &rf.RefundedOn, &rf.CreatedOn); err != nil {
			return nil, 0, err
		}
		refunds = append(refunds, rf)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	count, err := r.countEntries(ctx, "refunds", tenantID)
	return refunds, count, err
}

// --- expenses ---

func (r *ledgerRepository) CreateExpense(ctx context.Context, e *domain.Expense) (*domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `INSERT INTO expenses (tenant_id, booking_id, vehicle_id, vendor, category, amount, incurred_on, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_on`
	err = tx.QueryRowContext(ctx, query,
		e.TenantID, e.BookingID, e.VehicleID, e.Vendor, e.Category, e.Amount, e.IncurredOn,
	).Scan(&e.ID, &e.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}

	mirror, err := insertMirror(ctx, tx, e.TenantID, domain.TransactionTypeExpense, e.ID, e.BookingID, e.Amount, e.IncurredOn)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return mirror, nil
}

func (r *ledgerRepository) UpdateExpense(ctx context.Context, e *domain.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE expenses SET booking_id = $3, vehicle_id = $4, vendor = $5, category = $6, amount = $7, incurred_on = $8
		WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	res, err := tx.ExecContext(ctx, query, e.ID, e.TenantID, e.BookingID, e.VehicleID, e.Vendor, e.Category, e.Amount, e.IncurredOn)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if err := updateMirror(ctx, tx, e.TenantID, domain.TransactionTypeExpense, e.ID, e.BookingID, e.Amount, e.IncurredOn); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) DeleteExpense(ctx context.Context, tenantID, id int64) error {
	return r.deleteEntry(ctx, "expenses", domain.TransactionTypeExpense, tenantID, id)
}

func (r *ledgerRepository) GetExpenseByID(ctx context.Context, tenantID, id int64) (*domain.Expense, error) {
	query := `SELECT id, tenant_id, booking_id, vehicle_id, vendor, category, amount, incurred_on, created_on
		FROM expenses WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`
	var e domain.Expense
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&e.ID, &e.TenantID, &e.BookingID, &e.VehicleID, &e.Vendor, &e.Category, &e.Amount, &e.IncurredOn, &e.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &e, nil
}

func (r *ledgerRepository) ListExpenses(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Expense, int64, error) {
	offset, limit := pageBounds(page, pageSize)
	query := `SELECT id, tenant_id, booking_id, vehicle_id, vendor, category, amount, incurred_on, created_on
		FROM expenses WHERE tenant_id = $1 AND is_deleted = FALSE
		ORDER BY incurred_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.TenantID, &e.BookingID, &e.VehicleID, &e.Vendor, &e.Category, &e.Amount, &e.IncurredOn, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	count, err := r.countEntries(ctx, "expenses", tenantID)
	return expenses, count, err
}

// --- transactions ---

func (r *ledgerRepository) GetTransactionByEntry(ctx context.Context, tenantID int64, t domain.TransactionType, entryID int64) (*domain.Transaction, error) {
	query := `SELECT id, tenant_id, amount, type, entry_id, booking_id, charged_on, is_deleted, created_on
		FROM transactions WHERE tenant_id = $1 AND type = $2 AND entry_id = $3 AND is_deleted = FALSE`
	var m domain.Transaction
	err := r.db.QueryRowContext(ctx, query, tenantID, t, entryID).Scan(
		&m.ID, &m.TenantID, &m.Amount, &m.Type, &m.EntryID, &m.BookingID, &m.ChargedOn, &m.IsDeleted, &m.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, tenantID, page, pageSize int64) ([]domain.Transaction, int64, error) {
	offset, limit := pageBounds(page, pageSize)
	query := `SELECT id, tenant_id, amount, type, entry_id, booking_id, charged_on, is_deleted, created_on
		FROM transactions WHERE tenant_id = $1 AND is_deleted = FALSE
		ORDER BY charged_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var m domain.Transaction
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Amount, &m.Type, &m.EntryID, &m.BookingID, &m.ChargedOn, &m.IsDeleted, &m.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	count, err := r.countEntries(ctx, "transactions", tenantID)
	return txs, count, err
}

func (r *ledgerRepository) SumTransactionsBetween(ctx context.Context, tenantID int64, from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE tenant_id = $1 AND charged_on >= $2 AND charged_on < $3 AND is_deleted = FALSE`
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, tenantID, from, to).Scan(&sum)
	return sum, mapError(err)
}

func (r *ledgerRepository) SumPaymentsForBooking(ctx context.Context, tenantID, bookingID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE tenant_id = $1 AND booking_id = $2 AND is_deleted = FALSE`
	var sum decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, tenantID, bookingID).Scan(&sum)
	return sum, mapError(err)
}

// --- shared helpers ---

func (r *ledgerRepository) deleteEntry(ctx context.Context, table string, t domain.TransactionType, tenantID, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE `+table+` SET is_deleted = TRUE WHERE id = $1 AND tenant_id = $2 AND is_deleted = FALSE`,
		id, tenantID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}

	if err := deleteMirror(ctx, tx, tenantID, t, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) countEntries(ctx context.Context, table string, tenantID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM `+table+` WHERE tenant_id = $1 AND is_deleted = FALSE`, tenantID).Scan(&count)
	return count, mapError(err)
}

func pageBounds(page, pageSize int64) (offset, limit int64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return (page - 1) * pageSize, pageSize
}
