package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pharmacy-service/internal/domain"
)

// SalesReportRepository defines persistence access for sales reports.
type SalesReportRepository interface {
	Create(ctx context.Context, report *domain.SalesReport) error
	GetByID(ctx context.Context, id string) (*domain.SalesReport, error)
	List(ctx context.Context, filter ListFilter) ([]domain.SalesReport, error)
	Update(ctx context.Context, id string, report *domain.SalesReport) error
	Delete(ctx context.Context, id string) error
}

type salesReportRepository struct {
	pool *pgxpool.Pool
}

// NewSalesReportRepository returns a Postgres-backed implementation.
func NewSalesReportRepository(pool *pgxpool.Pool) SalesReportRepository {
	return &salesReportRepository{pool: pool}
}

func (r *salesReportRepository) Create(ctx context.Context, report *domain.SalesReport) error {
	const query = `
        INSERT INTO sales_reports (id, period_start, period_end, total_orders, total_revenue)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING generated_at, updated_at`

	report.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx, query,
		report.ID,
		report.PeriodStart,
		report.PeriodEnd,
		report.TotalOrders,
		report.TotalRevenue,
	).Scan(&report.GeneratedAt, &report.UpdatedAt)
	return translateError(err, "sales report")
}

func (r *salesReportRepository) GetByID(ctx context.Context, id string) (*domain.SalesReport, error) {
	const query = `
        SELECT id, period_start, period_end, total_orders, total_revenue, generated_at, updated_at
        FROM sales_reports WHERE id=$1`

	var report domain.SalesReport
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.PeriodStart,
		&report.PeriodEnd,
		&report.TotalOrders,
		&report.TotalRevenue,
		&report.GeneratedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, translateError(err, "sales report")
	}
	return &report, nil
}

func (r *salesReportRepository) List(ctx context.Context, filter ListFilter) ([]domain.SalesReport, error) {
	const query = `
        SELECT id, period_start, period_end, total_orders, total_revenue, generated_at, updated_at
        FROM sales_reports ORDER BY period_start DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, translateError(err, "sales report")
	}
	defer rows.Close()

	reports := []domain.SalesReport{}
	for rows.Next() {
		var report domain.SalesReport
		if err := rows.Scan(
			&report.ID,
			&report.PeriodStart,
			&report.PeriodEnd,
			&report.TotalOrders,
			&report.TotalRevenue,
			&report.GeneratedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *salesReportRepository) Update(ctx context.Context, id string, report *domain.SalesReport) error {
	const query = `
        UPDATE sales_reports SET period_start=$1, period_end=$2, total_orders=$3, total_revenue=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING generated_at, updated_at`

	if err := r.pool.QueryRow(ctx, query,
		report.PeriodStart,
		report.PeriodEnd,
		report.TotalOrders,
		report.TotalRevenue,
		id,
	).Scan(&report.GeneratedAt, &report.UpdatedAt); err != nil {
		return translateError(err, "sales report")
	}
	report.ID = id
	return nil
}

func (r *salesReportRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sales_reports WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return translateError(err, "sales report")
	}
	if cmd.RowsAffected() == 0 {
		return translateError(pgx.ErrNoRows, "sales report")
	}
	return nil
}
