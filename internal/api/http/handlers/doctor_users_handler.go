package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-service/internal/api/dto"
	"github.com/spec-kit/pharmacy-service/internal/auth"
	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	"github.com/spec-kit/pharmacy-service/internal/validation"
)

// DoctorUsersHandler exposes CRUD for doctor user accounts.
type DoctorUsersHandler struct {
	repo       repository.DoctorUserRepository
	bcryptCost int
}

// NewDoctorUsersHandler constructs handler.
func NewDoctorUsersHandler(repo repository.DoctorUserRepository, bcryptCost int) *DoctorUsersHandler {
	return &DoctorUsersHandler{repo: repo, bcryptCost: bcryptCost}
}

// List handles GET /api/doctor-users.
func (h *DoctorUsersHandler) List(c *fiber.Ctx) error {
	users, err := h.repo.List(c.UserContext(), listFilterFromQuery(c))
	if err != nil {
		return err
	}

	out := make([]dto.DoctorUserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, doctorUserResponse(&user))
	}
	return dataResponse(c, http.StatusOK, out)
}

// Get handles GET /api/doctor-users/:id.
func (h *DoctorUsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.repo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, doctorUserResponse(user))
}

// Create handles POST /api/doctor-users.
func (h *DoctorUsersHandler) Create(c *fiber.Ctx) error {
	var req dto.DoctorUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateDoctorUser(req); err != nil {
		return invalidPayload(err)
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		return err
	}
	user := &domain.DoctorUser{
		Username:      req.Username,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		PasswordHash:  hash,
	}
	if err := h.repo.Create(c.UserContext(), user); err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, doctorUserResponse(user))
}

// Update handles PUT /api/doctor-users/:id.
func (h *DoctorUsersHandler) Update(c *fiber.Ctx) error {
	var req dto.DoctorUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateDoctorUser(req); err != nil {
		return invalidPayload(err)
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		return err
	}
	user := &domain.DoctorUser{
		Username:      req.Username,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		PasswordHash:  hash,
	}
	if err := h.repo.Update(c.UserContext(), c.Params("id"), user); err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, doctorUserResponse(user))
}

// Delete handles DELETE /api/doctor-users/:id.
func (h *DoctorUsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func doctorUserResponse(user *domain.DoctorUser) dto.DoctorUserResponse {
	return dto.DoctorUserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		LicenseNumber: user.LicenseNumber,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
