package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger registra cada petición con método, ruta, status, duración y,
// si el auth ya resolvió tenant, el company_id. Los errores de handler se
// loguean aquí una sola vez; respondError ya escribió la respuesta.
func RequestLogger(zl zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		ev := zl.Info()
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			ev = zl.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = zl.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start))
		if companyID := GetCompanyID(c); companyID != "" {
			ev.Str("company_id", companyID)
		}
		ev.Msg("request")
		return err
	}
}
