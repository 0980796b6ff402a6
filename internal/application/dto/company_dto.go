package dto

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// UpdateCompanyRequest edición del perfil de la propia empresa.
// El estado no se toca por aquí: lo gobierna el super-admin.
type UpdateCompanyRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=200"`
	Industry *string `json:"industry" validate:"omitempty,max=100"`
	Address  *string `json:"address" validate:"omitempty,max=300"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	TaxID          string     `json:"tax_id"`
	Industry       string     `json:"industry"`
	Address        string     `json:"address"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	Status         string     `json:"status"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
	SuspendReason  string     `json:"suspend_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas (consola super-admin).
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToCompanyResponse proyecta la entidad a la respuesta HTTP.
func ToCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		TaxID:          c.TaxID,
		Industry:       c.Industry,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		Status:         c.Status,
		SuspendedUntil: c.SuspendedUntil,
		SuspendReason:  c.SuspendReason,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
