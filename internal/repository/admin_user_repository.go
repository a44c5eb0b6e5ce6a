package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pharmacy-service/internal/domain"
)

// AdminUserRepository defines persistence access for admin users.
type AdminUserRepository interface {
	Create(ctx context.Context, user *domain.AdminUser) error
	GetByID(ctx context.Context, id string) (*domain.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	List(ctx context.Context, filter ListFilter) ([]domain.AdminUser, error)
	Update(ctx context.Context, id string, user *domain.AdminUser) error
	Delete(ctx context.Context, id string) error
}

type adminUserRepository struct {
	pool *pgxpool.Pool
}

// NewAdminUserRepository returns a Postgres-backed implementation.
func NewAdminUserRepository(pool *pgxpool.Pool) AdminUserRepository {
	return &adminUserRepository{pool: pool}
}

func (r *adminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	const query = `
        INSERT INTO admin_users (id, username, email, password_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	user.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return translateError(err, "admin user")
}

func (r *adminUserRepository) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	const query = `
        SELECT id, username, email, password_hash, created_at, updated_at
        FROM admin_users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *adminUserRepository) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	const query = `
        SELECT id, username, email, password_hash, created_at, updated_at
        FROM admin_users WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *adminUserRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.AdminUser, error) {
	var user domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, translateError(err, "admin user")
	}
	return &user, nil
}

func (r *adminUserRepository) List(ctx context.Context, filter ListFilter) ([]domain.AdminUser, error) {
	const query = `
        SELECT id, username, email, password_hash, created_at, updated_at
        FROM admin_users ORDER BY username LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, translateError(err, "admin user")
	}
	defer rows.Close()

	users := []domain.AdminUser{}
	for rows.Next() {
		var user domain.AdminUser
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *adminUserRepository) Update(ctx context.Context, id string, user *domain.AdminUser) error {
	const query = `
        UPDATE admin_users SET username=$1, email=$2, password_hash=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		id,
	).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return translateError(err, "admin user")
	}
	user.ID = id
	return nil
}

func (r *adminUserRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM admin_users WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "admin user")
	}
	if cmd.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "admin user")
	}
	return nil
}
