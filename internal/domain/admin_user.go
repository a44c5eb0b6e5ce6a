package domain

import "time"

// AdminUser models a pharmacy administrator account.
type AdminUser struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
