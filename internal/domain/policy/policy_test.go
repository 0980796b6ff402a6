package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/policy"
)

func TestAllows_PorRol(t *testing.T) {
	cases := []struct {
		role string
		perm policy.Permission
		want bool
	}{
		// sales vende y atiende clientes pero no toca catálogo ni gastos
		{entity.RoleSales, policy.SalesWrite, true},
		{entity.RoleSales, policy.CustomersWrite, true},
		{entity.RoleSales, policy.ProductsRead, true},
		{entity.RoleSales, policy.ProductsWrite, false},
		{entity.RoleSales, policy.ReturnsWrite, false},
		{entity.RoleSales, policy.InvoicesWrite, false},
		{entity.RoleSales, policy.ExpensesRead, false},
		{entity.RoleSales, policy.ReportsRead, false},
		{entity.RoleSales, policy.UsersManage, false},
		// manager opera todo menos administración de usuarios/empresa
		{entity.RoleManager, policy.ProductsWrite, true},
		{entity.RoleManager, policy.ReturnsWrite, true},
		{entity.RoleManager, policy.ExpensesWrite, true},
		{entity.RoleManager, policy.ReportsRead, true},
		{entity.RoleManager, policy.UsersManage, false},
		{entity.RoleManager, policy.CompanyManage, false},
		{entity.RoleManager, policy.AuditRead, false},
		// admin lo tiene todo
		{entity.RoleAdmin, policy.UsersManage, true},
		{entity.RoleAdmin, policy.CompanyManage, true},
		{entity.RoleAdmin, policy.AuditRead, true},
		// rol desconocido no pasa nada
		{"intern", policy.ProductsRead, false},
		{"", policy.SalesRead, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.Allows(tc.role, false, tc.perm),
			"rol %q permiso %q", tc.role, tc.perm)
	}
}

func TestAllows_CompanyAdmin(t *testing.T) {
	// El admin fundador pasa cualquier permiso conocido sin importar su rol.
	assert.True(t, policy.Allows(entity.RoleSales, true, policy.UsersManage))
	assert.True(t, policy.Allows("", true, policy.AuditRead))

	// Pero un permiso inexistente sigue cerrado incluso para él.
	assert.False(t, policy.Allows(entity.RoleAdmin, true, policy.Permission("platform:god")))
}
