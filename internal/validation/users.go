package validation

import "github.com/spec-kit/pharmacy-service/internal/api/dto"

// ValidateAdminUser checks an admin user payload.
func ValidateAdminUser(req dto.AdminUserRequest) error {
	c := &checker{}
	if c.required("username", req.Username) {
		c.minLength("username", req.Username, 3)
	}
	if c.required("email", req.Email) {
		c.email("email", req.Email)
	}
	if c.required("password", req.Password) {
		c.minLength("password", req.Password, 8)
	}
	return c.result()
}

// ValidateDoctorUser checks a doctor user payload.
func ValidateDoctorUser(req dto.DoctorUserRequest) error {
	c := &checker{}
	if c.required("username", req.Username) {
		c.minLength("username", req.Username, 3)
	}
	if c.required("email", req.Email) {
		c.email("email", req.Email)
	}
	if c.required("license_number", req.LicenseNumber) {
		c.license("license_number", req.LicenseNumber)
	}
	if c.required("password", req.Password) {
		c.minLength("password", req.Password, 8)
	}
	return c.result()
}
