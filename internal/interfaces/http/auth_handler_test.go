package http_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	httpiface "github.com/tu-usuario/gestion-pro/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes extra para el handler de auth
// ──────────────────────────────────────────────────────────────────────────────

// meUserRepo reusa el fake del middleware pero con el lookup por empresa activo.
type meUserRepo struct{ *fakeUserRepo }

func (f *meUserRepo) GetByCompanyAndID(companyID, id string) (*entity.User, error) {
	if f.user != nil && f.user.ID == id && f.user.CompanyID == companyID {
		return f.user, nil
	}
	return nil, nil
}

type meCompanyRepo struct {
	company *entity.Company
}

func (f *meCompanyRepo) Create(c *entity.Company) error { return nil }
func (f *meCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if f.company != nil && f.company.ID == id {
		return f.company, nil
	}
	return nil, nil
}
func (f *meCompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) { return nil, nil }
func (f *meCompanyRepo) Update(c *entity.Company) error                   { return nil }
func (f *meCompanyRepo) UpdateStatus(id, status string, suspendedUntil *time.Time, reason string) error {
	return nil
}
func (f *meCompanyRepo) List(status string, limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}
func (f *meCompanyRepo) CountByStatus() (map[string]int64, error) { return nil, nil }
func (f *meCompanyRepo) Delete(id string) error                   { return nil }

type noopTx struct{}

func (noopTx) RunRegistration(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	return nil
}

// buildMeApp monta /api/auth/me detrás del middleware de tenant, como el router.
func buildMeApp(users *meUserRepo, companies *meCompanyRepo) *fiber.App {
	uc := auth.NewAuthUseCase(users, companies, noopTx{}, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: 60,
		Issuer:     testJWTIssuer,
	})
	handler := httpiface.NewAuthHandler(uc)

	app := fiber.New()
	protected := app.Group("/api",
		httpiface.AuthMiddleware(testJWTSecret, testJWTIssuer, users),
		httpiface.RequireTenant(),
	)
	protected.Get("/auth/me", handler.Me)
	return app
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/auth/me
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_DevuelveSesionActual(t *testing.T) {
	users := &meUserRepo{&fakeUserRepo{user: activeUser(entity.RoleSales, false)}}
	companies := &meCompanyRepo{company: &entity.Company{
		ID:     testCompanyID,
		Name:   "Ferretería El Tornillo",
		Status: entity.CompanyActive,
	}}
	app := buildMeApp(users, companies)

	status, body := doRequest(t, app, "GET", "/api/auth/me", tokenFor(t, users.user))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"user"`)
	assert.Contains(t, body, `"company"`)
	assert.Contains(t, body, users.user.Email)
	assert.Contains(t, body, "Ferretería El Tornillo")
}

func TestMe_SinToken(t *testing.T) {
	users := &meUserRepo{&fakeUserRepo{user: activeUser(entity.RoleSales, false)}}
	app := buildMeApp(users, &meCompanyRepo{})

	status, body := doRequest(t, app, "GET", "/api/auth/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, body, "MISSING_TOKEN")
}

func TestMe_RefrescaDesdeLaDB(t *testing.T) {
	// El rol cambió después de emitido el token: /me devuelve el de la base.
	users := &meUserRepo{&fakeUserRepo{user: activeUser(entity.RoleManager, false)}}
	companies := &meCompanyRepo{company: &entity.Company{ID: testCompanyID, Name: "Ferretería El Tornillo"}}
	app := buildMeApp(users, companies)
	token := tokenFor(t, users.user)

	users.user.Role = entity.RoleSales
	status, body := doRequest(t, app, "GET", "/api/auth/me", token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, `"role":"`+entity.RoleSales+`"`)
}
