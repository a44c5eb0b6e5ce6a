package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-service/internal/api/dto"
	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	"github.com/spec-kit/pharmacy-service/internal/validation"
)

// SuppliersHandler exposes CRUD for suppliers.
type SuppliersHandler struct {
	repo repository.SupplierRepository
}

// NewSuppliersHandler constructs handler.
func NewSuppliersHandler(repo repository.SupplierRepository) *SuppliersHandler {
	return &SuppliersHandler{repo: repo}
}

// List handles GET /api/suppliers.
func (h *SuppliersHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.repo.List(c.UserContext(), listFilterFromQuery(c))
	if err != nil {
		return err
	}

	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, supplier := range suppliers {
		out = append(out, supplierResponse(&supplier))
	}
	return dataResponse(c, http.StatusOK, out)
}

// Get handles GET /api/suppliers/:id.
func (h *SuppliersHandler) Get(c *fiber.Ctx) error {
	supplier, err := h.repo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, supplierResponse(supplier))
}

// Create handles POST /api/suppliers.
func (h *SuppliersHandler) Create(c *fiber.Ctx) error {
	var req dto.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateSupplier(req); err != nil {
		return invalidPayload(err)
	}

	supplier := supplierFromRequest(req)
	if err := h.repo.Create(c.UserContext(), supplier); err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, supplierResponse(supplier))
}

// Update handles PUT /api/suppliers/:id.
func (h *SuppliersHandler) Update(c *fiber.Ctx) error {
	var req dto.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateSupplier(req); err != nil {
		return invalidPayload(err)
	}

	supplier := supplierFromRequest(req)
	if err := h.repo.Update(c.UserContext(), c.Params("id"), supplier); err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, supplierResponse(supplier))
}

// Delete handles DELETE /api/suppliers/:id.
func (h *SuppliersHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func supplierFromRequest(req dto.SupplierRequest) *domain.Supplier {
	return &domain.Supplier{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}

func supplierResponse(supplier *domain.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:        supplier.ID,
		Name:      supplier.Name,
		Email:     supplier.Email,
		Phone:     supplier.Phone,
		Address:   supplier.Address,
		CreatedAt: supplier.CreatedAt,
		UpdatedAt: supplier.UpdatedAt,
	}
}
