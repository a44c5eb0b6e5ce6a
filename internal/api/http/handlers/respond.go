package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pharmacy-service/internal/validation"
	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

// invalidPayload maps a validation failure to the error envelope, keeping the
// full violation list so a client can fix every field at once.
func invalidPayload(err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return apperrors.NewValidationError("invalid payload", verr.Details())
	}
	return err
}

// badBody is the response for an unparseable request body.
func badBody() error {
	return fiber.NewError(http.StatusBadRequest, "invalid payload")
}

func dataResponse(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
