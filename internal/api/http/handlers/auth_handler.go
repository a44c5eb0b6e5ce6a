package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-service/internal/api/dto"
	"github.com/spec-kit/pharmacy-service/internal/service"
	"github.com/spec-kit/pharmacy-service/internal/validation"
	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

// AuthHandler exposes login and admin registration endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// AdminLogin handles POST /auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewUnauthorized("username and password required")
	}

	admin, token, exp, err := h.auth.LoginAdmin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return dataResponse(c, http.StatusOK, fiber.Map{
		"user": fiber.Map{
			"id":       admin.ID,
			"username": admin.Username,
			"email":    admin.Email,
		},
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// DoctorLogin handles POST /auth/doctor/login.
func (h *AuthHandler) DoctorLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewUnauthorized("username and password required")
	}

	doctor, token, exp, err := h.auth.LoginDoctor(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return dataResponse(c, http.StatusOK, fiber.Map{
		"user": fiber.Map{
			"id":             doctor.ID,
			"username":       doctor.Username,
			"email":          doctor.Email,
			"license_number": doctor.LicenseNumber,
		},
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// AdminRegister handles POST /auth/admin/register. Admin-only.
func (h *AuthHandler) AdminRegister(c *fiber.Ctx) error {
	var req dto.AdminUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateAdminUser(req); err != nil {
		return invalidPayload(err)
	}

	admin, err := h.auth.RegisterAdmin(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return dataResponse(c, http.StatusCreated, dto.AdminUserResponse{
		ID:        admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	})
}
