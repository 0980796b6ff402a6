package http_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/policy"
	httpiface "github.com/tu-usuario/gestion-pro/internal/interfaces/http"
	"github.com/tu-usuario/gestion-pro/pkg/jwt"
)

const (
	testJWTSecret  = "secreto-tenant-para-tests"
	testJWTIssuer  = "gestion-pro"
	testSASecret   = "secreto-consola-para-tests"
	testSAIssuer   = "gestion-pro-superadmin"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testCompanyID  = "00000000-0000-0000-0000-0000000000c1"
	testAdminID    = "00000000-0000-0000-0000-0000000000a1"
	otherCompanyID = "00000000-0000-0000-0000-0000000000c2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeUserRepo devuelve siempre el mismo usuario, mutable entre peticiones
// para simular cambios de rol/estado posteriores a la emisión del token.
type fakeUserRepo struct {
	user *entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByCompanyAndID(companyID, id string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByCompanyAndEmail(companyID, email string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { return nil }
func (f *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Delete(companyID, id string) error { return nil }

type fakeSuperAdminRepo struct {
	admin *entity.SuperAdmin
}

func (f *fakeSuperAdminRepo) GetByID(id string) (*entity.SuperAdmin, error) {
	if f.admin != nil && f.admin.ID == id {
		return f.admin, nil
	}
	return nil, nil
}
func (f *fakeSuperAdminRepo) GetByEmail(email string) (*entity.SuperAdmin, error) {
	return nil, nil
}
func (f *fakeSuperAdminRepo) UpdateLastLogin(id string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

func activeUser(role string, companyAdmin bool) *entity.User {
	return &entity.User{
		ID:             testUserID,
		CompanyID:      testCompanyID,
		Email:          "usuario@empresa.co",
		Name:           "Usuario de Prueba",
		Role:           role,
		IsCompanyAdmin: companyAdmin,
		Status:         entity.UserActive,
	}
}

// buildTestApp arma una app con una ruta protegida por permiso de escritura de
// catálogo, otra solo-lectura y una de descarga que acepta ?token=, contra el
// repo de usuarios dado.
func buildTestApp(users *fakeUserRepo) *fiber.App {
	app := fiber.New()
	app.Get("/api/download",
		httpiface.DownloadAuthMiddleware(testJWTSecret, testJWTIssuer, users),
		httpiface.RequireTenant(),
		func(c *fiber.Ctx) error {
			return c.SendString("pdf")
		},
	)
	protected := app.Group("/api",
		httpiface.AuthMiddleware(testJWTSecret, testJWTIssuer, users),
		httpiface.RequireTenant(),
	)
	protected.Get("/products", httpiface.RequirePermission(policy.ProductsRead), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"company_id": httpiface.GetCompanyID(c), "role": httpiface.GetRole(c)})
	})
	protected.Post("/products", httpiface.RequirePermission(policy.ProductsWrite), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func tokenFor(t *testing.T, u *entity.User) string {
	t.Helper()
	token, err := jwt.Generate(testJWTSecret, u.ID, u.CompanyID, u.Role, u.IsCompanyAdmin, testJWTIssuer, 60)
	require.NoError(t, err)
	return token
}

// doRequest ejecuta la petición y devuelve status y cuerpo.
func doRequest(t *testing.T, app *fiber.App, method, path, bearer string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido_PueblaContexto(t *testing.T) {
	users := &fakeUserRepo{user: activeUser(entity.RoleSales, false)}
	app := buildTestApp(users)

	status, body := doRequest(t, app, "GET", "/api/products", tokenFor(t, users.user))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, testCompanyID)
	assert.Contains(t, body, entity.RoleSales)
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := buildTestApp(&fakeUserRepo{})
	status, body := doRequest(t, app, "GET", "/api/products", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenMalformado(t *testing.T) {
	app := buildTestApp(&fakeUserRepo{})
	status, body := doRequest(t, app, "GET", "/api/products", "esto-no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenVencido(t *testing.T) {
	users := &fakeUserRepo{user: activeUser(entity.RoleAdmin, false)}
	app := buildTestApp(users)
	vencido, err := jwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleAdmin, false, testJWTIssuer, -5)
	require.NoError(t, err)

	status, body := doRequest(t, app, "GET", "/api/products", vencido)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "TOKEN_EXPIRED")
}

func TestAuthMiddleware_UsuarioBorrado(t *testing.T) {
	// El token es válido pero el usuario ya no existe en la DB.
	user := activeUser(entity.RoleAdmin, false)
	app := buildTestApp(&fakeUserRepo{user: nil})

	status, body := doRequest(t, app, "GET", "/api/products", tokenFor(t, user))
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_UsuarioDesactivado(t *testing.T) {
	users := &fakeUserRepo{user: activeUser(entity.RoleAdmin, false)}
	app := buildTestApp(users)
	token := tokenFor(t, users.user)

	// Desactivado después de emitido el token: la cuenta existe pero está
	// suspendida, así que responde 403 y no un error de token.
	users.user.Status = entity.UserInactive
	status, body := doRequest(t, app, "GET", "/api/products", token)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "ACCOUNT_DISABLED")
}

func TestAuthMiddleware_EmpresaDelTokenNoCoincide(t *testing.T) {
	// El claim de empresa quedó viejo (usuario movido de tenant): se rechaza.
	users := &fakeUserRepo{user: activeUser(entity.RoleAdmin, false)}
	app := buildTestApp(users)
	token := tokenFor(t, users.user)

	users.user.CompanyID = otherCompanyID
	status, body := doRequest(t, app, "GET", "/api/products", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestAuthMiddleware_RolSeTomaDeLaDB(t *testing.T) {
	// El token dice manager pero la DB ya lo degradó a sales: la escritura de
	// catálogo se niega con el rol actual, no con el del claim.
	users := &fakeUserRepo{user: activeUser(entity.RoleManager, false)}
	app := buildTestApp(users)
	token := tokenFor(t, users.user)

	users.user.Role = entity.RoleSales
	status, body := doRequest(t, app, "POST", "/api/products", token)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "FORBIDDEN")

	// La lectura sí pasa: sales conserva products:read.
	status, _ = doRequest(t, app, "GET", "/api/products", token)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAuthMiddleware_AscensoAplicaDeInmediato(t *testing.T) {
	users := &fakeUserRepo{user: activeUser(entity.RoleSales, false)}
	app := buildTestApp(users)
	token := tokenFor(t, users.user)

	status, _ := doRequest(t, app, "POST", "/api/products", token)
	require.Equal(t, fiber.StatusForbidden, status)

	users.user.Role = entity.RoleManager
	status, _ = doRequest(t, app, "POST", "/api/products", token)
	assert.Equal(t, fiber.StatusCreated, status, "el ascenso en DB aplica sin re-login")
}

func TestDownloadAuthMiddleware_TokenPorQueryParam(t *testing.T) {
	// Respaldo para descargas de PDF desde el navegador, sin header: solo las
	// rutas de descarga lo aceptan.
	users := &fakeUserRepo{user: activeUser(entity.RoleSales, false)}
	app := buildTestApp(users)

	req := httptest.NewRequest("GET", "/api/download?token="+tokenFor(t, users.user), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_TokenPorQueryParamRechazado(t *testing.T) {
	// Fuera de las descargas el token viaja solo por header: un ?token= válido
	// no autoriza escrituras.
	users := &fakeUserRepo{user: activeUser(entity.RoleAdmin, true)}
	app := buildTestApp(users)

	req := httptest.NewRequest("POST", "/api/products?token="+tokenFor(t, users.user), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenDeConsolaRechazado(t *testing.T) {
	// Un token de la consola super-admin no abre rutas de tenant.
	users := &fakeUserRepo{user: activeUser(entity.RoleAdmin, true)}
	app := buildTestApp(users)
	saToken, err := jwt.GenerateSuperAdmin(testSASecret, testAdminID, testSAIssuer, 60)
	require.NoError(t, err)

	status, body := doRequest(t, app, "GET", "/api/products", saToken)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestRequirePermission_CompanyAdminPasaTodo(t *testing.T) {
	// El admin fundador escribe catálogo aunque su rol sea sales.
	users := &fakeUserRepo{user: activeUser(entity.RoleSales, true)}
	app := buildTestApp(users)

	status, _ := doRequest(t, app, "POST", "/api/products", tokenFor(t, users.user))
	assert.Equal(t, fiber.StatusCreated, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// SuperAdminMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func buildSAApp(admins *fakeSuperAdminRepo) *fiber.App {
	app := fiber.New()
	sa := app.Group("/api/superadmin", httpiface.SuperAdminMiddleware(testSASecret, testSAIssuer, admins))
	sa.Get("/companies", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"admin_id": httpiface.GetAdminID(c)})
	})
	return app
}

func TestSuperAdminMiddleware_TokenValido(t *testing.T) {
	admins := &fakeSuperAdminRepo{admin: &entity.SuperAdmin{ID: testAdminID, Email: "ops@plataforma.co"}}
	app := buildSAApp(admins)
	token, err := jwt.GenerateSuperAdmin(testSASecret, testAdminID, testSAIssuer, 60)
	require.NoError(t, err)

	status, body := doRequest(t, app, "GET", "/api/superadmin/companies", token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, testAdminID)
}

func TestSuperAdminMiddleware_TokenDeTenantRechazado(t *testing.T) {
	admins := &fakeSuperAdminRepo{admin: &entity.SuperAdmin{ID: testAdminID}}
	app := buildSAApp(admins)
	tenantToken, err := jwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleAdmin, true, testJWTIssuer, 60)
	require.NoError(t, err)

	status, body := doRequest(t, app, "GET", "/api/superadmin/companies", tenantToken)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "INVALID_TOKEN")
}

func TestSuperAdminMiddleware_OperadorBorrado(t *testing.T) {
	app := buildSAApp(&fakeSuperAdminRepo{admin: nil})
	token, err := jwt.GenerateSuperAdmin(testSASecret, testAdminID, testSAIssuer, 60)
	require.NoError(t, err)

	status, body := doRequest(t, app, "GET", "/api/superadmin/companies", token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "INVALID_TOKEN")
}
