// Package policy define la tabla declarativa de capacidades por rol.
// Un único gate HTTP (RequirePermission) la consulta; los handlers nunca
// comparan roles a mano.
package policy

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// Permission capacidad concreta sobre un recurso del tenant.
type Permission string

const (
	ProductsRead  Permission = "products:read"
	ProductsWrite Permission = "products:write"

	CustomersRead  Permission = "customers:read"
	CustomersWrite Permission = "customers:write"

	SalesRead  Permission = "sales:read"
	SalesWrite Permission = "sales:write"

	ReturnsRead  Permission = "returns:read"
	ReturnsWrite Permission = "returns:write"

	InvoicesRead  Permission = "invoices:read"
	InvoicesWrite Permission = "invoices:write"

	ExpensesRead  Permission = "expenses:read"
	ExpensesWrite Permission = "expenses:write"

	UsersManage   Permission = "users:manage"
	CompanyManage Permission = "company:manage"
	ReportsRead   Permission = "reports:read"
	AuditRead     Permission = "audit:read"
	TicketsWrite  Permission = "tickets:write"
)

// capabilities tabla rol → permisos. Es la única fuente de verdad de autorización
// dentro del tenant; agregar una ruta nueva significa agregar una fila aquí.
var capabilities = map[Permission][]string{
	ProductsRead:  {entity.RoleAdmin, entity.RoleManager, entity.RoleSales},
	ProductsWrite: {entity.RoleAdmin, entity.RoleManager},

	CustomersRead:  {entity.RoleAdmin, entity.RoleManager, entity.RoleSales},
	CustomersWrite: {entity.RoleAdmin, entity.RoleManager, entity.RoleSales},

	SalesRead:  {entity.RoleAdmin, entity.RoleManager, entity.RoleSales},
	SalesWrite: {entity.RoleAdmin, entity.RoleManager, entity.RoleSales},

	ReturnsRead:  {entity.RoleAdmin, entity.RoleManager, entity.RoleSales},
	ReturnsWrite: {entity.RoleAdmin, entity.RoleManager},

	InvoicesRead:  {entity.RoleAdmin, entity.RoleManager, entity.RoleSales},
	InvoicesWrite: {entity.RoleAdmin, entity.RoleManager},

	ExpensesRead:  {entity.RoleAdmin, entity.RoleManager},
	ExpensesWrite: {entity.RoleAdmin, entity.RoleManager},

	UsersManage:   {entity.RoleAdmin},
	CompanyManage: {entity.RoleAdmin},
	ReportsRead:   {entity.RoleAdmin, entity.RoleManager},
	AuditRead:     {entity.RoleAdmin},
	TicketsWrite:  {entity.RoleAdmin, entity.RoleManager, entity.RoleSales},
}

// Allows indica si un rol (o el company admin, que lo puede todo dentro de su
// empresa) tiene la capacidad pedida.
func Allows(role string, companyAdmin bool, perm Permission) bool {
	if companyAdmin {
		_, known := capabilities[perm]
		return known
	}
	for _, r := range capabilities[perm] {
		if r == role {
			return true
		}
	}
	return false
}
