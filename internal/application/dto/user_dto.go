package dto

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// CreateUserRequest alta de un usuario dentro de la empresa.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin manager sales"`
}

// UpdateUserRequest cambio de nombre, rol o estado de un usuario.
type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=200"`
	Role   *string `json:"role" validate:"omitempty,oneof=admin manager sales"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// UserResponse salida de un usuario. Nunca incluye el hash de contraseña.
type UserResponse struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	IsCompanyAdmin bool      `json:"is_company_admin"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserListResponse lista de usuarios de la empresa.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
}

// ToUserResponse proyecta la entidad a la respuesta HTTP.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		CompanyID:      u.CompanyID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		IsCompanyAdmin: u.IsCompanyAdmin,
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
