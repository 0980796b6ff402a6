package dto

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// CreateTicketRequest apertura de un ticket de soporte.
type CreateTicketRequest struct {
	Subject  string `json:"subject" validate:"required,min=3,max=200"`
	Body     string `json:"body" validate:"required,max=5000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low normal high"`
}

// TicketReplyRequest mensaje nuevo en el hilo del ticket.
type TicketReplyRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

// UpdateTicketStatusRequest cambio de estado del ticket.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved closed"`
}

// TicketMessageResponse mensaje del hilo del ticket.
type TicketMessageResponse struct {
	ID         string    `json:"id"`
	AuthorType string    `json:"author_type"`
	AuthorID   string    `json:"author_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// TicketResponse salida de un ticket, con su hilo si se pidió el detalle.
type TicketResponse struct {
	ID        string                  `json:"id"`
	CompanyID string                  `json:"company_id"`
	UserID    string                  `json:"user_id"`
	Subject   string                  `json:"subject"`
	Status    string                  `json:"status"`
	Priority  string                  `json:"priority"`
	Messages  []TicketMessageResponse `json:"messages,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// TicketListResponse lista paginada de tickets.
type TicketListResponse struct {
	Items []TicketResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ToTicketResponse proyecta el ticket y su hilo a la respuesta HTTP.
func ToTicketResponse(t *entity.SupportTicket, messages []*entity.TicketMessage) TicketResponse {
	resp := TicketResponse{
		ID:        t.ID,
		CompanyID: t.CompanyID,
		UserID:    t.UserID,
		Subject:   t.Subject,
		Status:    t.Status,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, TicketMessageResponse{
			ID:         m.ID,
			AuthorType: m.AuthorType,
			AuthorID:   m.AuthorID,
			Body:       m.Body,
			CreatedAt:  m.CreatedAt,
		})
	}
	return resp
}
