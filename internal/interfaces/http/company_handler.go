package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
)

// CompanyHandler perfil de la empresa del caller, su auditoría y los
// comunicados de plataforma visibles (protegido).
type CompanyHandler struct {
	uc             *usecase.CompanyUseCase
	auditUC        *usecase.AuditUseCase
	announcementUC *usecase.AnnouncementUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, auditUC *usecase.AuditUseCase, announcementUC *usecase.AnnouncementUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, auditUC: auditUC, announcementUC: announcementUC}
}

// Get godoc
// @Summary      Perfil de la empresa del usuario autenticado
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar perfil de la empresa
// @Description  Solo datos de contacto y de negocio. El tax_id y el estado
//               nunca se editan por esta vía.
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAudit godoc
// @Summary      Auditoría de la empresa (solo lectura)
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.AuditLogListResponse
// @Router       /api/company/audit [get]
func (h *CompanyHandler) ListAudit(c *fiber.Ctx) error {
	out, err := h.auditUC.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAnnouncements godoc
// @Summary      Comunicados de plataforma activos y vigentes
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AnnouncementListResponse
// @Router       /api/announcements [get]
func (h *CompanyHandler) ListAnnouncements(c *fiber.Ctx) error {
	out, err := h.announcementUC.ListActive()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
