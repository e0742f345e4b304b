package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	attrs, err := json.Marshal(n.Attrs)
	if err != nil {
		return err
	}
	query := `INSERT INTO notifications (tenant_id, user_id, title, message, attrs, created_on)
		VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	err = r.db.QueryRowContext(ctx, query, n.TenantID, n.UserID, n.Title, n.Message, attrs).
		Scan(&n.ID, &n.CreatedOn)
	return mapError(err)
}

func (r *notificationRepository) ListByUser(ctx context.Context, tenantID, userID, page, pageSize int64) ([]domain.Notification, int64, error) {
	offset, limit := pageBounds(page, pageSize)
	query := `SELECT id, tenant_id, user_id, title, message, attrs, is_read, created_on
		FROM notifications WHERE tenant_id = $1 AND user_id = $2
		ORDER BY created_on DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, query, tenantID, userID, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var notes []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var attrs []byte
		if err := rows.Scan(&n.ID, &n.TenantID, &n.UserID, &n.Title, &n.Message, &attrs, &n.IsRead, &n.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &n.Attrs); err != nil {
				return nil, 0, err
			}
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int64
	err = r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM notifications WHERE tenant_id = $1 AND user_id = $2`, tenantID, userID).Scan(&count)
	return notes, count, mapError(err)
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, tenantID, userID, id int64) error {
	query := `UPDATE notifications SET is_read = TRUE
		WHERE id = $1 AND tenant_id = $2 AND user_id = $3`
	res, err := r.db.ExecContext(ctx, query, id, tenantID, userID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
