package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
)

// respondErrorVia pasa el error por una ruta real y devuelve status y cuerpo.
func respondErrorVia(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error { return respondError(c, err) })
	resp, rerr := app.Test(httptest.NewRequest("GET", "/x", nil), -1)
	require.NoError(t, rerr)
	defer resp.Body.Close()
	body, rerr := io.ReadAll(resp.Body)
	require.NoError(t, rerr)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestRespondError_StockInsuficiente(t *testing.T) {
	// La venta es procesable pero el inventario no alcanza: 422, no 409.
	status, out := respondErrorVia(t, domain.ErrInsufficientStock)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}

func TestRespondError_InternoEnDesarrollo(t *testing.T) {
	ConfigureErrorMode("development")
	t.Cleanup(func() { ConfigureErrorMode("development") })

	status, out := respondErrorVia(t, errors.New("pq: conexión rechazada"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Contains(t, out.Message, "conexión rechazada")
}

func TestRespondError_InternoEnProduccion(t *testing.T) {
	// En producción el detalle va al log, no al cliente.
	ConfigureErrorMode("production")
	t.Cleanup(func() { ConfigureErrorMode("development") })

	status, out := respondErrorVia(t, errors.New("pq: conexión rechazada"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", out.Code)
	assert.Equal(t, "error interno del servidor", out.Message)
	assert.NotContains(t, out.Message, "conexión rechazada")
}
