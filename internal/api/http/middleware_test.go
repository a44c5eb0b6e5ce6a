package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/pharmacy-service/internal/observability"
	apperrors "github.com/spec-kit/pharmacy-service/pkg/util"
)

func newTestApp(timeout time.Duration) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), timeout)
	return app
}

func TestRequestTimeoutReachesHandlers(t *testing.T) {
	app := newTestApp(5 * time.Second)

	var hasDeadline bool
	app.Get("/work", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/work", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, hasDeadline, "handler context should carry the request deadline")
}

func TestNoDeadlineWhenTimeoutDisabled(t *testing.T) {
	app := newTestApp(0)

	var hasDeadline bool
	app.Get("/work", func(c *fiber.Ctx) error {
		_, hasDeadline = c.UserContext().Deadline()
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/work", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, hasDeadline)
}

func TestErrorEnvelopeForDomainErrors(t *testing.T) {
	app := newTestApp(time.Second)

	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("drug", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "NOT_FOUND", payload.Error.Code)
	assert.Equal(t, "drug not found", payload.Error.Message)
}
