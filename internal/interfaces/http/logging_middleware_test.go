package http_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpiface "github.com/tu-usuario/gestion-pro/internal/interfaces/http"
)

func TestRequestLogger_RegistraMetodoRutaYStatus(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(httpiface.RequestLogger(zerolog.New(&buf)))
	app.Get("/api/products", func(c *fiber.Ctx) error {
		c.Locals(httpiface.LocalCompanyID, testCompanyID)
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	line := buf.String()
	assert.Contains(t, line, `"level":"info"`)
	assert.Contains(t, line, `"method":"GET"`)
	assert.Contains(t, line, `"path":"/api/products"`)
	assert.Contains(t, line, `"status":200`)
	assert.Contains(t, line, `"company_id":"`+testCompanyID+`"`)
	assert.Contains(t, line, `"duration"`)
}

func TestRequestLogger_ErroresDelClienteSalenComoWarn(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(httpiface.RequestLogger(zerolog.New(&buf)))
	app.Get("/no-existe-handler", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/no-existe-handler", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"status":404`)
}

func TestRequestLogger_ErroresDelServidorSalenComoError(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(httpiface.RequestLogger(zerolog.New(&buf)))
	app.Get("/explota", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/explota", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"status":500`)
}
