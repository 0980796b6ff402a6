package dto

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// CreateAnnouncementRequest redacción de un comunicado de plataforma (super-admin).
type CreateAnnouncementRequest struct {
	Title    string     `json:"title" validate:"required,min=1,max=200"`
	Body     string     `json:"body" validate:"required,max=5000"`
	Active   bool       `json:"active"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// UpdateAnnouncementRequest edición de un comunicado existente.
type UpdateAnnouncementRequest struct {
	Title    *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Body     *string    `json:"body" validate:"omitempty,max=5000"`
	Active   *bool      `json:"active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// AnnouncementResponse salida de un comunicado.
type AnnouncementResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Active    bool       `json:"active"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// AnnouncementListResponse lista de comunicados.
type AnnouncementListResponse struct {
	Items []AnnouncementResponse `json:"items"`
}

// ToAnnouncementResponse proyecta la entidad a la respuesta HTTP.
func ToAnnouncementResponse(a *entity.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		Title:     a.Title,
		Body:      a.Body,
		Active:    a.Active,
		StartsAt:  a.StartsAt,
		EndsAt:    a.EndsAt,
		CreatedAt: a.CreatedAt,
	}
}
