package domain

import "time"

// SalesReport is an aggregated sales summary for a reporting period.
type SalesReport struct {
	ID           string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	TotalOrders  int
	TotalRevenue float64
	GeneratedAt  time.Time
	UpdatedAt    time.Time
}
