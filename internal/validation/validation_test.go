package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/pharmacy-service/internal/api/dto"
)

func violationsOf(t *testing.T, err error) []Violation {
	t.Helper()

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	return vErr.Violations
}

func fields(violations []Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Field)
	}
	return out
}

func TestValidateAdminUserOK(t *testing.T) {
	err := ValidateAdminUser(dto.AdminUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "longenough",
	})
	assert.NoError(t, err)
}

func TestValidateAdminUserCollectsAllViolations(t *testing.T) {
	err := ValidateAdminUser(dto.AdminUserRequest{
		Username: "ab",
		Email:    "not-an-email",
		Password: "short",
	})

	violations := violationsOf(t, err)
	require.Len(t, violations, 3)
	assert.Equal(t, []string{"username", "email", "password"}, fields(violations))
	assert.Equal(t, RuleMinLength, violations[0].Rule)
	assert.Equal(t, RuleFormat, violations[1].Rule)
	assert.Equal(t, RuleMinLength, violations[2].Rule)
}

func TestValidateAdminUserMissingFieldsReportOnce(t *testing.T) {
	err := ValidateAdminUser(dto.AdminUserRequest{})

	violations := violationsOf(t, err)
	require.Len(t, violations, 3)
	for _, v := range violations {
		assert.Equal(t, RuleRequired, v.Rule)
	}
}

func TestValidateDoctorUserLicenseFormat(t *testing.T) {
	base := dto.DoctorUserRequest{
		Username: "drbob",
		Email:    "bob@example.com",
		Password: "longenough",
	}

	ok := base
	ok.LicenseNumber = "AB-12345"
	assert.NoError(t, ValidateDoctorUser(ok))

	for _, bad := range []string{"ab-12345", "ABC-1234", "AB-123", "AB_12345"} {
		req := base
		req.LicenseNumber = bad
		violations := violationsOf(t, ValidateDoctorUser(req))
		require.Len(t, violations, 1, "license %q", bad)
		assert.Equal(t, "license_number", violations[0].Field)
		assert.Equal(t, RuleFormat, violations[0].Rule)
	}
}

func TestValidateDrug(t *testing.T) {
	assert.NoError(t, ValidateDrug(dto.DrugRequest{
		Name:       "Aspirin",
		Price:      3.50,
		Stock:      20,
		SupplierID: "sup-1",
	}))

	err := ValidateDrug(dto.DrugRequest{Price: -1, Stock: -5})
	violations := violationsOf(t, err)
	require.Len(t, violations, 4)
	assert.Equal(t, []string{"name", "price", "stock", "supplier_id"}, fields(violations))
}

func TestValidateSupplierPhoneOptional(t *testing.T) {
	req := dto.SupplierRequest{Name: "Medico", Email: "sales@medico.example"}
	assert.NoError(t, ValidateSupplier(req))

	req.Phone = "+49 30 123456"
	assert.NoError(t, ValidateSupplier(req))

	req.Phone = "call me"
	violations := violationsOf(t, ValidateSupplier(req))
	require.Len(t, violations, 1)
	assert.Equal(t, "phone", violations[0].Field)
}

func TestValidateOrderQuantityRange(t *testing.T) {
	base := dto.OrderRequest{
		DrugID:    "drug-1",
		DoctorID:  "doc-1",
		Quantity:  1,
		UnitPrice: 2.0,
	}
	assert.NoError(t, ValidateOrder(base))

	bad := base
	bad.Quantity = -5
	violations := violationsOf(t, ValidateOrder(bad))
	require.Len(t, violations, 1)
	assert.Equal(t, "quantity", violations[0].Field)
	assert.Equal(t, RuleRange, violations[0].Rule)

	bad.Quantity = 0
	violations = violationsOf(t, ValidateOrder(bad))
	require.Len(t, violations, 1)
	assert.Equal(t, "quantity", violations[0].Field)
}

func TestValidateSalesReportPeriodOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	ok := dto.SalesReportRequest{
		PeriodStart:  start,
		PeriodEnd:    start.AddDate(0, 1, 0),
		TotalOrders:  10,
		TotalRevenue: 125.50,
	}
	assert.NoError(t, ValidateSalesReport(ok))

	inverted := ok
	inverted.PeriodEnd = start.AddDate(0, -1, 0)
	violations := violationsOf(t, ValidateSalesReport(inverted))
	require.Len(t, violations, 1)
	assert.Equal(t, "period_end", violations[0].Field)
	assert.Equal(t, RuleCrossField, violations[0].Rule)

	empty := dto.SalesReportRequest{TotalOrders: -1}
	violations = violationsOf(t, ValidateSalesReport(empty))
	assert.Equal(t, []string{"period_start", "period_end", "total_orders"}, fields(violations))
}

func TestErrorDetailsShape(t *testing.T) {
	err := ValidateAdminUser(dto.AdminUserRequest{})

	var vErr *Error
	require.ErrorAs(t, err, &vErr)
	details := vErr.Details()
	assert.Contains(t, details, "violations")
}
