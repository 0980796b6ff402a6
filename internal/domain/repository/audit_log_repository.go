package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// AuditLogRepository puerto del registro de auditoría append-only (DIP).
// ListAll es exclusivo del camino super-admin.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error)
	ListAll(limit, offset int) ([]*entity.AuditLog, error)
}

// SuperAdminRepository puerto de persistencia para SuperAdmin (tabla propia,
// credenciales propias; nunca se mezcla con users).
type SuperAdminRepository interface {
	GetByID(id string) (*entity.SuperAdmin, error)
	GetByEmail(email string) (*entity.SuperAdmin, error)
	UpdateLastLogin(id string) error
}
