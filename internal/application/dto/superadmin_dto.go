package dto

import "time"

// SuperAdminLoginRequest credenciales de un operador de plataforma.
type SuperAdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SuperAdminLoginResponse token de plataforma. Firmado con secreto e issuer
// propios: nunca es intercambiable con un token de tenant.
type SuperAdminLoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SuspendCompanyRequest suspensión de una empresa, opcionalmente con vencimiento.
type SuspendCompanyRequest struct {
	Until  *time.Time `json:"until"`
	Reason string     `json:"reason" validate:"required,max=500"`
}

// RejectCompanyRequest rechazo de una solicitud de registro.
type RejectCompanyRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// AuditLogResponse entrada del registro de auditoría.
type AuditLogResponse struct {
	ID        string    `json:"id"`
	ActorType string    `json:"actor_type"`
	ActorID   string    `json:"actor_id"`
	CompanyID string    `json:"company_id,omitempty"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entity_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditLogListResponse lista paginada de auditoría.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
