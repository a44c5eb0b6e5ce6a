package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pharmacy-service/internal/domain"
	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

// OrderFilter captures order search parameters.
type OrderFilter struct {
	DoctorID *string
	DrugID   *string
	Limit    int
	Offset   int
}

// OrderRepository defines persistence access for orders. Create, Update and
// Delete adjust the referenced drug's stock in the same transaction, so each
// call either fully applies or leaves the store unchanged.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	Update(ctx context.Context, id string, order *domain.Order) error
	Delete(ctx context.Context, id string) error
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := reserveStock(ctx, tx, order.DrugID, order.Quantity); err != nil {
		return err
	}

	const query = `
        INSERT INTO orders (id, drug_id, doctor_id, quantity, unit_price, total_price)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING placed_at, updated_at`

	order.ID = uuid.NewString()
	order.TotalPrice = float64(order.Quantity) * order.UnitPrice
	if err := tx.QueryRow(ctx, query,
		order.ID,
		order.DrugID,
		order.DoctorID,
		order.Quantity,
		order.UnitPrice,
		order.TotalPrice,
	).Scan(&order.PlacedAt, &order.UpdatedAt); err != nil {
		return translateError(err, "order")
	}

	return tx.Commit(ctx)
}

// reserveStock decrements drug stock inside tx, distinguishing a missing drug
// from insufficient stock.
func reserveStock(ctx context.Context, tx pgx.Tx, drugID string, quantity int) error {
	const query = `UPDATE drugs SET stock = stock - $1, updated_at=NOW() WHERE id=$2 AND stock >= $1`

	cmd, err := tx.Exec(ctx, query, quantity, drugID)
	if err != nil {
		return translateError(err, "drug")
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	var stock int
	if err := tx.QueryRow(ctx, `SELECT stock FROM drugs WHERE id=$1`, drugID).Scan(&stock); err != nil {
		return translateError(err, "drug")
	}
	return apperrors.NewConflict("insufficient stock", map[string]any{
		"drug_id":   drugID,
		"available": stock,
		"requested": quantity,
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, drug_id, doctor_id, quantity, unit_price, total_price, placed_at, updated_at
        FROM orders WHERE id=$1`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.DrugID,
		&order.DoctorID,
		&order.Quantity,
		&order.UnitPrice,
		&order.TotalPrice,
		&order.PlacedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, translateError(err, "order")
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	base := `SELECT id, drug_id, doctor_id, quantity, unit_price, total_price, placed_at, updated_at
             FROM orders`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.DoctorID != nil && *filter.DoctorID != "" {
		args = append(args, *filter.DoctorID)
		clauses = append(clauses, fmt.Sprintf("doctor_id=$%d", len(args)))
	}
	if filter.DrugID != nil && *filter.DrugID != "" {
		args = append(args, *filter.DrugID)
		clauses = append(clauses, fmt.Sprintf("drug_id=$%d", len(args)))
	}

	args = append(args, clampLimit(filter.Limit))
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf("%s WHERE %s ORDER BY placed_at DESC LIMIT $%d OFFSET $%d",
		base, strings.Join(clauses, " AND "), limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "order")
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.DrugID,
			&order.DoctorID,
			&order.Quantity,
			&order.UnitPrice,
			&order.TotalPrice,
			&order.PlacedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) Update(ctx context.Context, id string, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var existing domain.Order
	if err := tx.QueryRow(ctx,
		`SELECT drug_id, quantity FROM orders WHERE id=$1 FOR UPDATE`, id,
	).Scan(&existing.DrugID, &existing.Quantity); err != nil {
		return translateError(err, "order")
	}
	if existing.DrugID != order.DrugID {
		return apperrors.NewConflict("order drug cannot change", map[string]any{"order_id": id})
	}

	// Return the old reservation before taking the new one so a smaller
	// quantity always succeeds.
	if _, err := tx.Exec(ctx,
		`UPDATE drugs SET stock = stock + $1, updated_at=NOW() WHERE id=$2`,
		existing.Quantity, existing.DrugID,
	); err != nil {
		return translateError(err, "drug")
	}
	if err := reserveStock(ctx, tx, order.DrugID, order.Quantity); err != nil {
		return err
	}

	order.TotalPrice = float64(order.Quantity) * order.UnitPrice
	if err := tx.QueryRow(ctx, `
        UPDATE orders SET doctor_id=$1, quantity=$2, unit_price=$3, total_price=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING placed_at, updated_at`,
		order.DoctorID,
		order.Quantity,
		order.UnitPrice,
		order.TotalPrice,
		id,
	).Scan(&order.PlacedAt, &order.UpdatedAt); err != nil {
		return translateError(err, "order")
	}
	order.ID = id

	return tx.Commit(ctx)
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var drugID string
	var quantity int
	if err := tx.QueryRow(ctx,
		`SELECT drug_id, quantity FROM orders WHERE id=$1 FOR UPDATE`, id,
	).Scan(&drugID, &quantity); err != nil {
		return translateError(err, "order")
	}

	if _, err := tx.Exec(ctx,
		`UPDATE drugs SET stock = stock + $1, updated_at=NOW() WHERE id=$2`,
		quantity, drugID,
	); err != nil {
		return translateError(err, "drug")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id); err != nil {
		return translateError(err, "order")
	}

	return tx.Commit(ctx)
}
