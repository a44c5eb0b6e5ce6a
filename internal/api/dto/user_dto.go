package dto

import "time"

// AdminUserRequest is the input shape for creating or replacing an admin user.
type AdminUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DoctorUserRequest is the input shape for creating or replacing a doctor user.
type DoctorUserRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	LicenseNumber string `json:"license_number"`
	Password      string `json:"password"`
}

// AdminUserResponse is the output shape for admin users.
type AdminUserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DoctorUserResponse is the output shape for doctor users.
type DoctorUserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
