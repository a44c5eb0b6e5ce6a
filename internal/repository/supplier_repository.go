package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pharmacy-service/internal/domain"
)

// SupplierRepository defines persistence access for suppliers.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id string) (*domain.Supplier, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Supplier, error)
	Update(ctx context.Context, id string, supplier *domain.Supplier) error
	Delete(ctx context.Context, id string) error
}

type supplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository returns a Postgres-backed implementation.
func NewSupplierRepository(pool *pgxpool.Pool) SupplierRepository {
	return &supplierRepository{pool: pool}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	const query = `
        INSERT INTO suppliers (id, name, email, phone, address)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	supplier.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx, query,
		supplier.ID,
		supplier.Name,
		supplier.Email,
		supplier.Phone,
		supplier.Address,
	).Scan(&supplier.CreatedAt, &supplier.UpdatedAt)
	return translateError(err, "supplier")
}

func (r *supplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	const query = `
        SELECT id, name, email, phone, address, created_at, updated_at
        FROM suppliers WHERE id=$1`

	var supplier domain.Supplier
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&supplier.ID,
		&supplier.Name,
		&supplier.Email,
		&supplier.Phone,
		&supplier.Address,
		&supplier.CreatedAt,
		&supplier.UpdatedAt,
	); err != nil {
		return nil, translateError(err, "supplier")
	}
	return &supplier, nil
}

func (r *supplierRepository) List(ctx context.Context, filter ListFilter) ([]domain.Supplier, error) {
	const query = `
        SELECT id, name, email, phone, address, created_at, updated_at
        FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, translateError(err, "supplier")
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		var supplier domain.Supplier
		if err := rows.Scan(
			&supplier.ID,
			&supplier.Name,
			&supplier.Email,
			&supplier.Phone,
			&supplier.Address,
			&supplier.CreatedAt,
			&supplier.UpdatedAt,
		); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, supplier)
	}
	return suppliers, rows.Err()
}

func (r *supplierRepository) Update(ctx context.Context, id string, supplier *domain.Supplier) error {
	const query = `
        UPDATE suppliers SET name=$1, email=$2, phone=$3, address=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		supplier.Name,
		supplier.Email,
		supplier.Phone,
		supplier.Address,
		id,
	).Scan(&supplier.CreatedAt, &supplier.UpdatedAt); err != nil {
		return translateError(err, "supplier")
	}
	supplier.ID = id
	return nil
}

func (r *supplierRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM suppliers WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "supplier")
	}
	if cmd.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "supplier")
	}
	return nil
}
