package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-service/internal/api/dto"
	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	"github.com/spec-kit/pharmacy-service/internal/service"
	"github.com/spec-kit/pharmacy-service/internal/validation"
)

// DrugsHandler exposes CRUD for the drug catalog.
type DrugsHandler struct {
	inventory *service.InventoryService
}

// NewDrugsHandler constructs handler.
func NewDrugsHandler(inventory *service.InventoryService) *DrugsHandler {
	return &DrugsHandler{inventory: inventory}
}

// List handles GET /api/drugs.
func (h *DrugsHandler) List(c *fiber.Ctx) error {
	filter := repository.DrugFilter{}
	if name := c.Query("name"); name != "" {
		filter.Name = &name
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		filter.SupplierID = &supplierID
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	drugs, err := h.inventory.ListDrugs(c.UserContext(), filter)
	if err != nil {
		return err
	}

	out := make([]dto.DrugResponse, 0, len(drugs))
	for _, drug := range drugs {
		out = append(out, drugResponse(&drug))
	}
	return dataResponse(c, http.StatusOK, out)
}

// Get handles GET /api/drugs/:id.
func (h *DrugsHandler) Get(c *fiber.Ctx) error {
	drug, err := h.inventory.GetDrug(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, drugResponse(drug))
}

// Create handles POST /api/drugs.
func (h *DrugsHandler) Create(c *fiber.Ctx) error {
	var req dto.DrugRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateDrug(req); err != nil {
		return invalidPayload(err)
	}

	drug := drugFromRequest(req)
	if err := h.inventory.CreateDrug(c.UserContext(), drug); err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, drugResponse(drug))
}

// Update handles PUT /api/drugs/:id.
func (h *DrugsHandler) Update(c *fiber.Ctx) error {
	var req dto.DrugRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateDrug(req); err != nil {
		return invalidPayload(err)
	}

	drug := drugFromRequest(req)
	if err := h.inventory.UpdateDrug(c.UserContext(), c.Params("id"), drug); err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, drugResponse(drug))
}

// Delete handles DELETE /api/drugs/:id.
func (h *DrugsHandler) Delete(c *fiber.Ctx) error {
	if err := h.inventory.DeleteDrug(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func drugFromRequest(req dto.DrugRequest) *domain.Drug {
	return &domain.Drug{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		SupplierID:  req.SupplierID,
	}
}

func drugResponse(drug *domain.Drug) dto.DrugResponse {
	return dto.DrugResponse{
		ID:          drug.ID,
		Name:        drug.Name,
		Description: drug.Description,
		Price:       drug.Price,
		Stock:       drug.Stock,
		SupplierID:  drug.SupplierID,
		CreatedAt:   drug.CreatedAt,
		UpdatedAt:   drug.UpdatedAt,
	}
}
