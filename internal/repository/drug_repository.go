package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pharmacy-service/internal/domain"
)

// DrugFilter captures catalog search parameters.
type DrugFilter struct {
	Name       *string
	SupplierID *string
	Limit      int
	Offset     int
}

// DrugRepository defines persistence access for drugs.
type DrugRepository interface {
	Create(ctx context.Context, drug *domain.Drug) error
	GetByID(ctx context.Context, id string) (*domain.Drug, error)
	List(ctx context.Context, filter DrugFilter) ([]domain.Drug, error)
	Update(ctx context.Context, id string, drug *domain.Drug) error
	Delete(ctx context.Context, id string) error
}

type drugRepository struct {
	pool *pgxpool.Pool
}

// NewDrugRepository returns a Postgres-backed implementation.
func NewDrugRepository(pool *pgxpool.Pool) DrugRepository {
	return &drugRepository{pool: pool}
}

func (r *drugRepository) Create(ctx context.Context, drug *domain.Drug) error {
	const query = `
        INSERT INTO drugs (id, name, description, price, stock, supplier_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	drug.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx, query,
		drug.ID,
		drug.Name,
		drug.Description,
		drug.Price,
		drug.Stock,
		drug.SupplierID,
	).Scan(&drug.CreatedAt, &drug.UpdatedAt)
	return translateError(err, "drug")
}

func (r *drugRepository) GetByID(ctx context.Context, id string) (*domain.Drug, error) {
	const query = `
        SELECT id, name, description, price, stock, supplier_id, created_at, updated_at
        FROM drugs WHERE id=$1`

	var drug domain.Drug
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&drug.ID,
		&drug.Name,
		&drug.Description,
		&drug.Price,
		&drug.Stock,
		&drug.SupplierID,
		&drug.CreatedAt,
		&drug.UpdatedAt,
	); err != nil {
		return nil, translateError(err, "drug")
	}
	return &drug, nil
}

func (r *drugRepository) List(ctx context.Context, filter DrugFilter) ([]domain.Drug, error) {
	base := `SELECT id, name, description, price, stock, supplier_id, created_at, updated_at
             FROM drugs`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Name != nil && *filter.Name != "" {
		args = append(args, "%"+*filter.Name+"%")
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.SupplierID != nil && *filter.SupplierID != "" {
		args = append(args, *filter.SupplierID)
		clauses = append(clauses, fmt.Sprintf("supplier_id=$%d", len(args)))
	}

	args = append(args, clampLimit(filter.Limit))
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf("%s WHERE %s ORDER BY name LIMIT $%d OFFSET $%d",
		base, strings.Join(clauses, " AND "), limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "drug")
	}
	defer rows.Close()

	drugs := []domain.Drug{}
	for rows.Next() {
		var drug domain.Drug
		if err := rows.Scan(
			&drug.ID,
			&drug.Name,
			&drug.Description,
			&drug.Price,
			&drug.Stock,
			&drug.SupplierID,
			&drug.CreatedAt,
			&drug.UpdatedAt,
		); err != nil {
			return nil, err
		}
		drugs = append(drugs, drug)
	}
	return drugs, rows.Err()
}

func (r *drugRepository) Update(ctx context.Context, id string, drug *domain.Drug) error {
	const query = `
        UPDATE drugs SET name=$1, description=$2, price=$3, stock=$4, supplier_id=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING created_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		drug.Name,
		drug.Description,
		drug.Price,
		drug.Stock,
		drug.SupplierID,
		id,
	).Scan(&drug.CreatedAt, &drug.UpdatedAt); err != nil {
		return translateError(err, "drug")
	}
	drug.ID = id
	return nil
}

func (r *drugRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM drugs WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "drug")
	}
	if cmd.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "drug")
	}
	return nil
}
