package validation

import "github.com/spec-kit/pharmacy-service/internal/api/dto"

// ValidateDrug checks a drug payload. Store-level concerns (unique name,
// supplier existence) belong to the repository layer.
func ValidateDrug(req dto.DrugRequest) error {
	c := &checker{}
	c.required("name", req.Name)
	c.nonNegative("price", req.Price)
	c.nonNegativeInt("stock", req.Stock)
	c.required("supplier_id", req.SupplierID)
	return c.result()
}

// ValidateSupplier checks a supplier payload.
func ValidateSupplier(req dto.SupplierRequest) error {
	c := &checker{}
	c.required("name", req.Name)
	if c.required("email", req.Email) {
		c.email("email", req.Email)
	}
	c.phone("phone", req.Phone)
	return c.result()
}
