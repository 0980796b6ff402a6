package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
)

// AIHandler insights de negocio asistidos por IA (protegido).
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// BusinessInsight godoc
// @Summary      Análisis de negocio con IA
// @Description  Resume los últimos 30 días (ventas, top productos, gastos,
//               stock bajo) y pide al modelo un diagnóstico con sugerencias.
//               Si el modelo no responde a tiempo cae a un análisis heurístico
//               local; el campo source indica cuál de los dos respondió.
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InsightResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/ai/insights [get]
func (h *AIHandler) BusinessInsight(c *fiber.Ctx) error {
	out, err := h.uc.BusinessInsight(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondAIError(c, err)
	}
	return c.JSON(out)
}

// Chat godoc
// @Summary      Chat de negocio
// @Description  Responde una pregunta libre del dueño con las cifras de los
//               últimos 30 días. Si el modelo no está disponible responde con
//               las mismas heurísticas del insight (campo source).
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Pregunta"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Chat(c.Context(), GetCompanyID(c), in.Message)
	if err != nil {
		return respondAIError(c, err)
	}
	return c.JSON(out)
}

func respondAIError(c *fiber.Ctx, err error) error {
	if strings.Contains(err.Error(), "deadline exceeded") || strings.Contains(err.Error(), "timeout") {
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "el análisis tardó demasiado; intenta de nuevo"})
	}
	return respondError(c, err)
}
