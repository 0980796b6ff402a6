package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// SupportTicketRepository puerto de persistencia para tickets de soporte (DIP).
// Los métodos *All son el camino super-admin: cruzan tenants por diseño y solo
// se alcanzan detrás de SuperAdminMiddleware.
type SupportTicketRepository interface {
	Create(ticket *entity.SupportTicket, first *entity.TicketMessage) error
	GetByID(companyID, id string) (*entity.SupportTicket, error)
	GetByIDAll(id string) (*entity.SupportTicket, error)
	ListByCompany(companyID, status string, limit, offset int) ([]*entity.SupportTicket, error)
	ListAll(status string, limit, offset int) ([]*entity.SupportTicket, error)
	AddMessage(message *entity.TicketMessage) error
	ListMessages(ticketID string) ([]*entity.TicketMessage, error)
	UpdateStatus(companyID, id, status string) error
	UpdateStatusAll(id, status string) error
}
