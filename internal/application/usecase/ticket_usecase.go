package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// TicketUseCase tickets de soporte del lado tenant. La cola global y las
// respuestas de soporte viven en el caso de uso de la consola super-admin.
type TicketUseCase struct {
	repo repository.SupportTicketRepository
}

// NewTicketUseCase construye el caso de uso.
func NewTicketUseCase(repo repository.SupportTicketRepository) *TicketUseCase {
	return &TicketUseCase{repo: repo}
}

// Create abre un ticket con su primer mensaje.
func (uc *TicketUseCase) Create(companyID, userID string, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	now := time.Now().UTC()
	priority := in.Priority
	if priority == "" {
		priority = "normal"
	}
	ticket := &entity.SupportTicket{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		Subject:   in.Subject,
		Status:    entity.TicketOpen,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	first := &entity.TicketMessage{
		ID:         uuid.New().String(),
		TicketID:   ticket.ID,
		AuthorType: entity.ActorUser,
		AuthorID:   userID,
		Body:       in.Body,
		CreatedAt:  now,
	}
	if err := uc.repo.Create(ticket, first); err != nil {
		return nil, err
	}
	resp := dto.ToTicketResponse(ticket, []*entity.TicketMessage{first})
	return &resp, nil
}

// GetByID detalle de un ticket propio con su hilo.
func (uc *TicketUseCase) GetByID(companyID, id string) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, nil
	}
	messages, err := uc.repo.ListMessages(ticket.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToTicketResponse(ticket, messages)
	return &resp, nil
}

// List lista los tickets de la empresa.
func (uc *TicketUseCase) List(companyID, status string, page dto.PageRequest) (*dto.TicketListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.TicketListResponse{
		Items: make([]dto.TicketResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, t := range list {
		resp.Items = append(resp.Items, dto.ToTicketResponse(t, nil))
	}
	return resp, nil
}

// Reply agrega un mensaje del usuario al hilo. Un ticket cerrado no acepta
// mensajes nuevos.
func (uc *TicketUseCase) Reply(companyID, userID, ticketID string, in dto.TicketReplyRequest) (*dto.TicketResponse, error) {
	ticket, err := uc.repo.GetByID(companyID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	if ticket.Status == entity.TicketClosed {
		return nil, domain.ErrConflict
	}
	msg := &entity.TicketMessage{
		ID:         uuid.New().String(),
		TicketID:   ticket.ID,
		AuthorType: entity.ActorUser,
		AuthorID:   userID,
		Body:       in.Body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.repo.AddMessage(msg); err != nil {
		return nil, err
	}
	return uc.GetByID(companyID, ticketID)
}

// Close cierra un ticket propio.
func (uc *TicketUseCase) Close(companyID, id string) error {
	return uc.repo.UpdateStatus(companyID, id, entity.TicketClosed)
}
