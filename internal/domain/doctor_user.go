package domain

import "time"

// DoctorUser models a prescribing doctor account.
type DoctorUser struct {
	ID            string
	Username      string
	Email         string
	LicenseNumber string
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
