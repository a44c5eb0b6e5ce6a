package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-service/internal/api/dto"
	"github.com/spec-kit/pharmacy-service/internal/auth"
	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	"github.com/spec-kit/pharmacy-service/internal/validation"
)

// AdminUsersHandler exposes CRUD for admin user accounts.
type AdminUsersHandler struct {
	repo       repository.AdminUserRepository
	bcryptCost int
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(repo repository.AdminUserRepository, bcryptCost int) *AdminUsersHandler {
	return &AdminUsersHandler{repo: repo, bcryptCost: bcryptCost}
}

// List handles GET /api/admin-users.
func (h *AdminUsersHandler) List(c *fiber.Ctx) error {
	users, err := h.repo.List(c.UserContext(), listFilterFromQuery(c))
	if err != nil {
		return err
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, adminUserResponse(&user))
	}
	return dataResponse(c, http.StatusOK, out)
}

// Get handles GET /api/admin-users/:id.
func (h *AdminUsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.repo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, adminUserResponse(user))
}

// Create handles POST /api/admin-users.
func (h *AdminUsersHandler) Create(c *fiber.Ctx) error {
	var req dto.AdminUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateAdminUser(req); err != nil {
		return invalidPayload(err)
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		return err
	}
	user := &domain.AdminUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.repo.Create(c.UserContext(), user); err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, adminUserResponse(user))
}

// Update handles PUT /api/admin-users/:id.
func (h *AdminUsersHandler) Update(c *fiber.Ctx) error {
	var req dto.AdminUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateAdminUser(req); err != nil {
		return invalidPayload(err)
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		return err
	}
	user := &domain.AdminUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.repo.Update(c.UserContext(), c.Params("id"), user); err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, adminUserResponse(user))
}

// Delete handles DELETE /api/admin-users/:id.
func (h *AdminUsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func adminUserResponse(user *domain.AdminUser) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func listFilterFromQuery(c *fiber.Ctx) repository.ListFilter {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return repository.ListFilter{Limit: limit, Offset: offset}
}
