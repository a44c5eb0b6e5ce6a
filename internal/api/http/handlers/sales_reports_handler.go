package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-service/internal/api/dto"
	"github.com/spec-kit/pharmacy-service/internal/domain"
	"github.com/spec-kit/pharmacy-service/internal/repository"
	"github.com/spec-kit/pharmacy-service/internal/validation"
)

// SalesReportsHandler exposes CRUD for sales reports.
type SalesReportsHandler struct {
	repo repository.SalesReportRepository
}

// NewSalesReportsHandler constructs handler.
func NewSalesReportsHandler(repo repository.SalesReportRepository) *SalesReportsHandler {
	return &SalesReportsHandler{repo: repo}
}

// List handles GET /api/sales-reports.
func (h *SalesReportsHandler) List(c *fiber.Ctx) error {
	reports, err := h.repo.List(c.UserContext(), listFilterFromQuery(c))
	if err != nil {
		return err
	}

	out := make([]dto.SalesReportResponse, 0, len(reports))
	for _, report := range reports {
		out = append(out, salesReportResponse(&report))
	}
	return dataResponse(c, http.StatusOK, out)
}

// Get handles GET /api/sales-reports/:id.
func (h *SalesReportsHandler) Get(c *fiber.Ctx) error {
	report, err := h.repo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, salesReportResponse(report))
}

// Create handles POST /api/sales-reports.
func (h *SalesReportsHandler) Create(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateSalesReport(req); err != nil {
		return invalidPayload(err)
	}

	report := salesReportFromRequest(req)
	if err := h.repo.Create(c.UserContext(), report); err != nil {
		return err
	}
	return dataResponse(c, http.StatusCreated, salesReportResponse(report))
}

// Update handles PUT /api/sales-reports/:id.
func (h *SalesReportsHandler) Update(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody()
	}
	if err := validation.ValidateSalesReport(req); err != nil {
		return invalidPayload(err)
	}

	report := salesReportFromRequest(req)
	if err := h.repo.Update(c.UserContext(), c.Params("id"), report); err != nil {
		return err
	}
	return dataResponse(c, http.StatusOK, salesReportResponse(report))
}

// Delete handles DELETE /api/sales-reports/:id.
func (h *SalesReportsHandler) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func salesReportFromRequest(req dto.SalesReportRequest) *domain.SalesReport {
	return &domain.SalesReport{
		PeriodStart:  req.PeriodStart,
		PeriodEnd:    req.PeriodEnd,
		TotalOrders:  req.TotalOrders,
		TotalRevenue: req.TotalRevenue,
	}
}

func salesReportResponse(report *domain.SalesReport) dto.SalesReportResponse {
	return dto.SalesReportResponse{
		ID:           report.ID,
		PeriodStart:  report.PeriodStart,
		PeriodEnd:    report.PeriodEnd,
		TotalOrders:  report.TotalOrders,
		TotalRevenue: report.TotalRevenue,
		GeneratedAt:  report.GeneratedAt,
		UpdatedAt:    report.UpdatedAt,
	}
}
