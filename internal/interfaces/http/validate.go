package http

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
)

// validate instancia compartida: las reglas viven en los tags de los DTOs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateBody parsea y valida el cuerpo. Devuelve la respuesta de error ya
// escrita, o nil si todo bien.
func validateBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			msg := fmt.Sprintf("campo %s inválido (regla %s)", strings.ToLower(fe.Field()), fe.Tag())
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	return nil
}

// pageFromQuery lee limit/offset con los topes de siempre.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return dto.PageRequest{Limit: limit, Offset: offset}
}

// rangeFromQuery lee from/to en RFC3339 (o YYYY-MM-DD); vacío = por defecto.
func rangeFromQuery(c *fiber.Ctx) (dto.ReportRangeRequest, error) {
	var rng dto.ReportRangeRequest
	var err error
	if raw := c.Query("from"); raw != "" {
		if rng.From, err = parseDate(raw); err != nil {
			return rng, err
		}
	}
	if raw := c.Query("to"); raw != "" {
		if rng.To, err = parseDate(raw); err != nil {
			return rng, err
		}
	}
	return rng, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// echoErrorDetail controla si los 500 devuelven el texto del error al cliente.
// En producción el detalle va solo al log; el cliente recibe un mensaje genérico.
var echoErrorDetail = true

// ConfigureErrorMode fija el modo de detalle según el entorno de la app.
// El router lo invoca al arrancar con cfg.App.Env.
func ConfigureErrorMode(env string) {
	echoErrorDetail = env != "production"
}

// respondError mapea errores de dominio a HTTP. Los handlers lo usan como
// rama final después de sus chequeos específicos.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrReturnExceedsSale):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RETURN_EXCEEDS_SALE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrCompanySuspended):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "COMPANY_SUSPENDED", Message: err.Error()})
	case errors.Is(err, domain.ErrCompanyNotActive):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_ACTIVE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
		msg := "error interno del servidor"
		if echoErrorDetail {
			msg = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
	}
}
