package domain

import "time"

// Order records a doctor ordering a quantity of a drug. Placing an order
// decrements the referenced drug's stock in the same store operation.
type Order struct {
	ID         string
	DrugID     string
	DoctorID   string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
	PlacedAt   time.Time
	UpdatedAt  time.Time
}
