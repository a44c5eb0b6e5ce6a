package domain

import "time"

// Supplier is a drug vendor. Names are unique across the store.
type Supplier struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
