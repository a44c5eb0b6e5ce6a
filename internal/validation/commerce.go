package validation

import "github.com/spec-kit/pharmacy-service/internal/api/dto"

// ValidateOrder checks an order payload. Stock sufficiency needs a store read
// and is enforced atomically by the order repository, not here.
func ValidateOrder(req dto.OrderRequest) error {
	c := &checker{}
	c.required("drug_id", req.DrugID)
	c.required("doctor_id", req.DoctorID)
	c.atLeast("quantity", req.Quantity, 1)
	c.nonNegative("unit_price", req.UnitPrice)
	return c.result()
}

// ValidateSalesReport checks a sales report payload.
func ValidateSalesReport(req dto.SalesReportRequest) error {
	c := &checker{}
	if req.PeriodStart.IsZero() {
		c.add("period_start", RuleRequired, "period_start is required")
	}
	if req.PeriodEnd.IsZero() {
		c.add("period_end", RuleRequired, "period_end is required")
	}
	if !req.PeriodStart.IsZero() && !req.PeriodEnd.IsZero() && !req.PeriodEnd.After(req.PeriodStart) {
		c.add("period_end", RuleCrossField, "period_end must be after period_start")
	}
	c.nonNegativeInt("total_orders", req.TotalOrders)
	c.nonNegative("total_revenue", req.TotalRevenue)
	return c.result()
}
