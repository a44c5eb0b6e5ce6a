package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pharmacy-service/internal/domain"
)

// DoctorUserRepository defines persistence access for doctor users.
type DoctorUserRepository interface {
	Create(ctx context.Context, user *domain.DoctorUser) error
	GetByID(ctx context.Context, id string) (*domain.DoctorUser, error)
	GetByUsername(ctx context.Context, username string) (*domain.DoctorUser, error)
	List(ctx context.Context, filter ListFilter) ([]domain.DoctorUser, error)
	Update(ctx context.Context, id string, user *domain.DoctorUser) error
	Delete(ctx context.Context, id string) error
}

type doctorUserRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorUserRepository returns a Postgres-backed implementation.
func NewDoctorUserRepository(pool *pgxpool.Pool) DoctorUserRepository {
	return &doctorUserRepository{pool: pool}
}

func (r *doctorUserRepository) Create(ctx context.Context, user *domain.DoctorUser) error {
	const query = `
        INSERT INTO doctor_users (id, username, email, license_number, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	user.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.LicenseNumber,
		user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return translateError(err, "doctor user")
}

func (r *doctorUserRepository) GetByID(ctx context.Context, id string) (*domain.DoctorUser, error) {
	const query = `
        SELECT id, username, email, license_number, password_hash, created_at, updated_at
        FROM doctor_users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *doctorUserRepository) GetByUsername(ctx context.Context, username string) (*domain.DoctorUser, error) {
	const query = `
        SELECT id, username, email, license_number, password_hash, created_at, updated_at
        FROM doctor_users WHERE username=$1`
	return r.fetchSingle(ctx, query, username)
}

func (r *doctorUserRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.DoctorUser, error) {
	var user domain.DoctorUser
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.LicenseNumber,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, translateError(err, "doctor user")
	}
	return &user, nil
}

func (r *doctorUserRepository) List(ctx context.Context, filter ListFilter) ([]domain.DoctorUser, error) {
	const query = `
        SELECT id, username, email, license_number, password_hash, created_at, updated_at
        FROM doctor_users ORDER BY username LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, translateError(err, "doctor user")
	}
	defer rows.Close()

	users := []domain.DoctorUser{}
	for rows.Next() {
		var user domain.DoctorUser
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.LicenseNumber,
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

func (r *doctorUserRepository) Update(ctx context.Context, id string, user *domain.DoctorUser) error {
	const query = `
        UPDATE doctor_users SET username=$1, email=$2, license_number=$3, password_hash=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.LicenseNumber,
		user.PasswordHash,
		id,
	).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return translateError(err, "doctor user")
	}
	user.ID = id
	return nil
}

func (r *doctorUserRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM doctor_users WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "doctor user")
	}
	if cmd.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "doctor user")
	}
	return nil
}
