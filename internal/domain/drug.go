package domain

import "time"

// Drug is a stocked pharmaceutical product.
type Drug struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Stock       int
	SupplierID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
