package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-service/internal/api/dto"
	"github.com/spec-kit/pharmacy-service/internal/auth"
	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	"github.com/spec-kit/pharmacy-service/internal/service"
	"github.com/spec-kit/pharmacy-service/internal/validation"
	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

// OrdersHandler exposes order placement and CRUD.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// List handles GET /api/orders. Doctors see their own orders only.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{}
	if doctorID := c.Query("doctor_id"); doctorID != "" {
		filter.DoctorID = &doctorID
	}
	if drugID := c.Query("drug_id"); drugID != "" {
		filter.DrugID = &drugID
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Role == domain.RoleDoctor {
		filter.DoctorID = &principal.SubjectID
	}

	orders, err := h.orders.ListOrders(c.UserContext(), filter)
	if err != nil {
		return err
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, orderResponse(&order))
	}
	return dataResponse(c, http.StatusOK, out)
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if principal, ok := auth.PrincipalFromContext(c); ok &&
		principal.Role == domain.RoleDoctor && order.DoctorID != principal.SubjectID {
		return apperrors.NewForbidden("order belongs to another doctor")
	}
	return dataResponse(c, http.StatusOK, orderResponse(order))
}

// Create handles POST /api/orders. A doctor always orders as themselves.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.Role == domain.RoleDoctor {
		req.DoctorID = principal.SubjectID
	}
	if err := validation.ValidateOrder(req); err != nil {
		return invalidPayload(err)
	}

	order := &domain.Order{
		DrugID:    req.DrugID,
		DoctorID:  req.DoctorID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	if err := h.orders.PlaceOrder(c.UserContext(), order); err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, orderResponse(order))
}

// Update handles PUT /api/orders/:id. Admin-only via routing.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	var req dto.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateOrder(req); err != nil {
		return invalidPayload(err)
	}

	order := &domain.Order{
		DrugID:    req.DrugID,
		DoctorID:  req.DoctorID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	if err := h.orders.UpdateOrder(c.UserContext(), c.Params("id"), order); err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, orderResponse(order))
}

// Delete handles DELETE /api/orders/:id. Admin-only via routing.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	if err := h.orders.DeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func orderResponse(order *domain.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:         order.ID,
		DrugID:     order.DrugID,
		DoctorID:   order.DoctorID,
		Quantity:   order.Quantity,
		UnitPrice:  order.UnitPrice,
		TotalPrice: order.TotalPrice,
		PlacedAt:   order.PlacedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
