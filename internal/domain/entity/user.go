package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSales   = "sales"
)

// Estados de cuenta de usuario.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// User representa un usuario del sistema (pertenece a exactamente una Company).
// Role y Status se releen de la DB en cada petición: nunca se confía en los del token.
type User struct {
	ID             string
	CompanyID      string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Name           string
	Role           string // admin, manager, sales
	IsCompanyAdmin bool   // el primer usuario de la empresa; implica todas las capacidades
	Status         string // active, inactive, suspended
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleSales
}
