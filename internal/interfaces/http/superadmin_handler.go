package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/superadmin"
	"github.com/tu-usuario/gestion-pro/internal/domain"
)

// SuperAdminHandler consola de plataforma: ciclo de vida de empresas,
// comunicados, soporte y auditoría global. Vive detrás del middleware
// super-admin, nunca del de tenant.
type SuperAdminHandler struct {
	uc *superadmin.SuperAdminUseCase
}

// NewSuperAdminHandler construye el handler.
func NewSuperAdminHandler(uc *superadmin.SuperAdminUseCase) *SuperAdminHandler {
	return &SuperAdminHandler{uc: uc}
}

// Login godoc
// @Summary      Login de operador de plataforma
// @Description  Emite un token firmado con secreto e issuer propios; no es
//               intercambiable con los tokens de tenant.
// @Tags         superadmin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SuperAdminLoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.SuperAdminLoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/superadmin/login [post]
func (h *SuperAdminHandler) Login(c *fiber.Ctx) error {
	var in dto.SuperAdminLoginRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "email o contraseña incorrectos"})
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCompanies godoc
// @Summary      Listar empresas de la plataforma
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.CompanyListResponse
// @Router       /api/superadmin/companies [get]
func (h *SuperAdminHandler) ListCompanies(c *fiber.Ctx) error {
	out, err := h.uc.ListCompanies(c.Query("status"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetCompany godoc
// @Summary      Obtener empresa por ID
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id} [get]
func (h *SuperAdminHandler) GetCompany(c *fiber.Ctx) error {
	out, err := h.uc.GetCompany(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	return c.JSON(out)
}

// ApproveCompany godoc
// @Summary      Aprobar empresa pendiente
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id}/approve [post]
func (h *SuperAdminHandler) ApproveCompany(c *fiber.Ctx) error {
	out, err := h.uc.ApproveCompany(c.Context(), GetAdminID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RejectCompany godoc
// @Summary      Rechazar empresa pendiente
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.RejectCompanyRequest  true  "Motivo"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id}/reject [post]
func (h *SuperAdminHandler) RejectCompany(c *fiber.Ctx) error {
	var in dto.RejectCompanyRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RejectCompany(c.Context(), GetAdminID(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SuspendCompany godoc
// @Summary      Suspender empresa (con fecha de fin opcional)
// @Description  Si until viene informado, la suspensión vence sola: el primer
//               login posterior a esa fecha reactiva la empresa.
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.SuspendCompanyRequest  true  "Fin de la suspensión y motivo"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id}/suspend [post]
func (h *SuperAdminHandler) SuspendCompany(c *fiber.Ctx) error {
	var in dto.SuspendCompanyRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SuspendCompany(c.Context(), GetAdminID(c), c.Params("id"), in.Until, in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReactivateCompany godoc
// @Summary      Reactivar empresa suspendida o bloqueada
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id}/reactivate [post]
func (h *SuperAdminHandler) ReactivateCompany(c *fiber.Ctx) error {
	out, err := h.uc.ReactivateCompany(c.Context(), GetAdminID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BlockCompany godoc
// @Summary      Bloquear empresa
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.RejectCompanyRequest  true  "Motivo"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id}/block [post]
func (h *SuperAdminHandler) BlockCompany(c *fiber.Ctx) error {
	var in dto.RejectCompanyRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.BlockCompany(c.Context(), GetAdminID(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BanCompany godoc
// @Summary      Banear empresa (terminal, no reversible)
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la empresa"
// @Param        body  body  dto.RejectCompanyRequest  true  "Motivo"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id}/ban [post]
func (h *SuperAdminHandler) BanCompany(c *fiber.Ctx) error {
	var in dto.RejectCompanyRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.BanCompany(c.Context(), GetAdminID(c), c.Params("id"), in.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCompany godoc
// @Summary      Eliminar empresa y todos sus datos
// @Tags         superadmin
// @Security     Bearer
// @Param        id  path  string  true  "ID de la empresa"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/companies/{id} [delete]
func (h *SuperAdminHandler) DeleteCompany(c *fiber.Ctx) error {
	if err := h.uc.DeleteCompany(c.Context(), GetAdminID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PlatformStats godoc
// @Summary      Estadísticas globales de la plataforma
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PlatformStatsResponse
// @Router       /api/superadmin/stats [get]
func (h *SuperAdminHandler) PlatformStats(c *fiber.Ctx) error {
	out, err := h.uc.PlatformStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateAnnouncement godoc
// @Summary      Publicar comunicado de plataforma
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAnnouncementRequest  true  "Comunicado"
// @Success      201   {object}  dto.AnnouncementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/superadmin/announcements [post]
func (h *SuperAdminHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var in dto.CreateAnnouncementRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateAnnouncement(GetAdminID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAnnouncements godoc
// @Summary      Listar todos los comunicados (activos o no)
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.AnnouncementListResponse
// @Router       /api/superadmin/announcements [get]
func (h *SuperAdminHandler) ListAnnouncements(c *fiber.Ctx) error {
	out, err := h.uc.ListAnnouncements(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateAnnouncement godoc
// @Summary      Editar comunicado
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del comunicado"
// @Param        body  body  dto.UpdateAnnouncementRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.AnnouncementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/superadmin/announcements/{id} [put]
func (h *SuperAdminHandler) UpdateAnnouncement(c *fiber.Ctx) error {
	var in dto.UpdateAnnouncementRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateAnnouncement(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "comunicado no encontrado"})
	}
	return c.JSON(out)
}

// DeleteAnnouncement godoc
// @Summary      Eliminar comunicado
// @Tags         superadmin
// @Security     Bearer
// @Param        id  path  string  true  "ID del comunicado"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/announcements/{id} [delete]
func (h *SuperAdminHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	if err := h.uc.DeleteAnnouncement(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTickets godoc
// @Summary      Listar tickets de todas las empresas
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.TicketListResponse
// @Router       /api/superadmin/tickets [get]
func (h *SuperAdminHandler) ListTickets(c *fiber.Ctx) error {
	out, err := h.uc.ListTickets(c.Query("status"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetTicket godoc
// @Summary      Obtener ticket de cualquier empresa con su hilo
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/superadmin/tickets/{id} [get]
func (h *SuperAdminHandler) GetTicket(c *fiber.Ctx) error {
	out, err := h.uc.GetTicket(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ticket no encontrado"})
	}
	return c.JSON(out)
}

// ReplyTicket godoc
// @Summary      Responder un ticket como soporte
// @Description  Si el ticket estaba abierto pasa a in_progress y se notifica
//               al usuario que lo abrió.
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ticket"
// @Param        body  body  dto.TicketReplyRequest  true  "Mensaje"
// @Success      200   {object}  dto.TicketResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/superadmin/tickets/{id}/reply [post]
func (h *SuperAdminHandler) ReplyTicket(c *fiber.Ctx) error {
	var in dto.TicketReplyRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ReplyTicket(GetAdminID(c), c.Params("id"), in.Body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateTicketStatus godoc
// @Summary      Cambiar estado de un ticket
// @Tags         superadmin
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del ticket"
// @Param        body  body  dto.UpdateTicketStatusRequest  true  "Nuevo estado"
// @Success      204   "Sin contenido"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/superadmin/tickets/{id}/status [patch]
func (h *SuperAdminHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	var in dto.UpdateTicketStatusRequest
	if err := validateBody(c, &in); err != nil {
		return err
	}
	if err := h.uc.UpdateTicketStatus(c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAuditLogs godoc
// @Summary      Auditoría global de la plataforma
// @Tags         superadmin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.AuditLogListResponse
// @Router       /api/superadmin/audit [get]
func (h *SuperAdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	out, err := h.uc.ListAuditLogs(pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
