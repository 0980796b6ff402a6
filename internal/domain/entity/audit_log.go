package entity

import "time"

// Tipos de actor de un registro de auditoría.
const (
	ActorUser       = "user"
	ActorSuperAdmin = "superadmin"
)

// AuditLog registro append-only de acciones sensibles.
// CompanyID vacío = acción de plataforma (ej. login del super-admin); con valor,
// la entrada pertenece al tenant y solo ese tenant (o el super-admin) puede leerla.
type AuditLog struct {
	ID        string
	ActorType string
	ActorID   string
	CompanyID string
	Action    string // ej. "company.suspend", "sale.create", "user.delete"
	Entity    string
	EntityID  string
	Detail    string
	CreatedAt time.Time
}
