package dto

import "time"

// OrderRequest is the input shape for placing or replacing an order. The
// total is computed server-side from quantity and unit price.
type OrderRequest struct {
	DrugID    string  `json:"drug_id"`
	DoctorID  string  `json:"doctor_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderResponse is the output shape for orders.
type OrderResponse struct {
	ID         string    `json:"id"`
	DrugID     string    `json:"drug_id"`
	DoctorID   string    `json:"doctor_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
	PlacedAt   time.Time `json:"placed_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SalesReportRequest is the input shape for creating or replacing a report.
type SalesReportRequest struct {
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	TotalOrders  int       `json:"total_orders"`
	TotalRevenue float64   `json:"total_revenue"`
}

// SalesReportResponse is the output shape for sales reports.
type SalesReportResponse struct {
	ID           string    `json:"id"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	TotalOrders  int       `json:"total_orders"`
	TotalRevenue float64   `json:"total_revenue"`
	GeneratedAt  time.Time `json:"generated_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
