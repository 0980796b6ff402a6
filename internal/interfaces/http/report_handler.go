package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
)

// ReportHandler reportes y dashboard del tenant (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) parseRange(c *fiber.Ctx) (dto.ReportRangeRequest, bool) {
	rng, err := rangeFromQuery(c)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339 o YYYY-MM-DD"})
		return rng, false
	}
	return rng, true
}

// SalesSummary godoc
// @Summary      Resumen de ventas del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (defecto: hace 30 días)"
// @Param        to    query  string  false  "Fecha final exclusiva"
// @Success      200   {object}  dto.SalesSummaryResponse
// @Router       /api/reports/sales-summary [get]
func (h *ReportHandler) SalesSummary(c *fiber.Ctx) error {
	rng, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.SalesSummary(c.Context(), GetCompanyID(c), rng)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesByDay godoc
// @Summary      Ventas agrupadas por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial"
// @Param        to    query  string  false  "Fecha final exclusiva"
// @Success      200   {array}  dto.DailySalesResponse
// @Router       /api/reports/sales-by-day [get]
func (h *ReportHandler) SalesByDay(c *fiber.Ctx) error {
	rng, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.SalesByDay(c.Context(), GetCompanyID(c), rng)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Fecha inicial"
// @Param        to     query  string  false  "Fecha final exclusiva"
// @Param        limit  query  int     false  "Cuántos productos"  default(10)
// @Success      200    {array}  dto.TopProductResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	rng, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	limit := c.QueryInt("limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	out, err := h.uc.TopProducts(c.Context(), GetCompanyID(c), rng, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExpensesByCategory godoc
// @Summary      Gastos agrupados por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial"
// @Param        to    query  string  false  "Fecha final exclusiva"
// @Success      200   {array}  dto.ExpenseByCategoryResponse
// @Router       /api/reports/expenses-by-category [get]
func (h *ReportHandler) ExpensesByCategory(c *fiber.Ctx) error {
	rng, ok := h.parseRange(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ExpensesByCategory(c.Context(), GetCompanyID(c), rng)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Indicadores del día y del mes en una sola llamada
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
