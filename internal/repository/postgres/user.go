package postgres

import (
	"context"
	"database/sql"

	"github.com/fleetnexa/fleetnexa-server/internal/domain"
	"github.com/fleetnexa/fleetnexa-server/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (tenant_id, name, email, password_hash, role, created_on)
		VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, u.TenantID, u.Name, u.Email, u.PasswordHash, u.Role).
		Scan(&u.ID, &u.CreatedOn)
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, tenant_id, name, email, password_hash, role, created_on
		FROM users WHERE id = $1 AND is_deleted = FALSE`
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, tenant_id, name, email, password_hash, role, created_on
		FROM users WHERE email = $1 AND is_deleted = FALSE`
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *userRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.User, error) {
	query := `SELECT id, tenant_id, name, email, password_hash, role, created_on
		FROM users WHERE tenant_id = $1 AND is_deleted = FALSE ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedOn); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
