package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/gestion-pro/internal/application/auth"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.byEmail[u.Email] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserRepo) GetByCompanyAndID(companyID, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id && u.CompanyID == companyID {
			return u, nil
		}
	}
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

type statusChange struct {
	companyID string
	status    string
}

type fakeCompanyRepo struct {
	byID          map[string]*entity.Company
	byTaxID       map[string]*entity.Company
	statusChanges []statusChange
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error {
	f.byID[c.ID] = c
	f.byTaxID[c.TaxID] = c
	return nil
}
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error)       { return f.byID[id], nil }
func (f *fakeCompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) { return f.byTaxID[taxID], nil }
func (f *fakeCompanyRepo) Update(c *entity.Company) error                   { return nil }
func (f *fakeCompanyRepo) UpdateStatus(id, status string, suspendedUntil *time.Time, reason string) error {
	f.statusChanges = append(f.statusChanges, statusChange{companyID: id, status: status})
	if c := f.byID[id]; c != nil {
		c.Status = status
		c.SuspendedUntil = suspendedUntil
		c.SuspendReason = reason
	}
	return nil
}
func (f *fakeCompanyRepo) List(status string, limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) CountByStatus() (map[string]int64, error) { return nil, nil }
func (f *fakeCompanyRepo) Delete(id string) error                   { delete(f.byID, id); return nil }

// fakeRegistrationTx invoca el callback directo, sin transacción real.
type fakeRegistrationTx struct {
	companyRepo *fakeCompanyRepo
	userRepo    *fakeUserRepo
}

func (f *fakeRegistrationTx) RunRegistration(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	return fn(f.companyRepo, f.userRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "secreto-de-prueba-para-tests"
	testIssuer   = "gestion-pro"
	testPassword = "contraseña123"
)

func newFixture() (*auth.AuthUseCase, *fakeUserRepo, *fakeCompanyRepo) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	companies := &fakeCompanyRepo{byID: map[string]*entity.Company{}, byTaxID: map[string]*entity.Company{}}
	tx := &fakeRegistrationTx{companyRepo: companies, userRepo: users}
	uc := auth.NewAuthUseCase(users, companies, tx, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})
	return uc, users, companies
}

// seedCompanyUser crea una empresa con el estado dado y un usuario activo.
func seedCompanyUser(t *testing.T, users *fakeUserRepo, companies *fakeCompanyRepo, companyStatus string) (*entity.Company, *entity.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	company := &entity.Company{
		ID:     "00000000-0000-0000-0000-0000000000c1",
		Name:   "Ferretería El Tornillo",
		TaxID:  "900123456-7",
		Status: companyStatus,
	}
	require.NoError(t, companies.Create(company))

	user := &entity.User{
		ID:             "00000000-0000-0000-0000-0000000000u1",
		CompanyID:      company.ID,
		Email:          "admin@tornillo.co",
		PasswordHash:   string(hash),
		Name:           "Ana Admin",
		Role:           entity.RoleAdmin,
		IsCompanyAdmin: true,
		Status:         entity.UserActive,
	}
	require.NoError(t, users.Create(user))
	return company, user
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmpresaActiva_EmiteToken(t *testing.T) {
	uc, users, companies := newFixture()
	company, user := seedCompanyUser(t, users, companies, entity.CompanyActive)

	out, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	claims, err := jwt.Parse(testSecret, testIssuer, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, company.ID, claims.CompanyID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	assert.True(t, claims.CompanyAdmin)
}

func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	uc, users, companies := newFixture()
	_, user := seedCompanyUser(t, users, companies, entity.CompanyActive)

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: "otra-cosa"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@nada.co", Password: testPassword})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users, companies := newFixture()
	_, user := seedCompanyUser(t, users, companies, entity.CompanyActive)
	user.Status = entity.UserInactive

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: testPassword})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_EmpresaPendiente(t *testing.T) {
	uc, users, companies := newFixture()
	_, user := seedCompanyUser(t, users, companies, entity.CompanyPendingApproval)

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: testPassword})
	require.ErrorIs(t, err, domain.ErrCompanyNotActive)
}

func TestLogin_EmpresaSuspendidaVigente(t *testing.T) {
	uc, users, companies := newFixture()
	company, user := seedCompanyUser(t, users, companies, entity.CompanySuspended)
	until := time.Now().UTC().Add(48 * time.Hour)
	company.SuspendedUntil = &until

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: testPassword})
	require.ErrorIs(t, err, domain.ErrCompanySuspended)
	assert.Empty(t, companies.statusChanges, "una suspensión vigente no debe reactivar nada")
}

func TestLogin_SuspensionIndefinida(t *testing.T) {
	// Sin fecha de fin la suspensión no vence sola.
	uc, users, companies := newFixture()
	_, user := seedCompanyUser(t, users, companies, entity.CompanySuspended)

	_, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: testPassword})
	require.ErrorIs(t, err, domain.ErrCompanySuspended)
}

func TestLogin_SuspensionVencida_ReactivaYDejaEntrar(t *testing.T) {
	uc, users, companies := newFixture()
	company, user := seedCompanyUser(t, users, companies, entity.CompanySuspended)
	until := time.Now().UTC().Add(-time.Hour)
	company.SuspendedUntil = &until

	out, err := uc.Login(dto.LoginRequest{Email: user.Email, Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	require.Len(t, companies.statusChanges, 1)
	assert.Equal(t, entity.CompanyActive, companies.statusChanges[0].status)
	assert.Equal(t, company.ID, companies.statusChanges[0].companyID)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterCompany
// ──────────────────────────────────────────────────────────────────────────────

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		CompanyName: "Panadería La Espiga",
		TaxID:       "901987654-3",
		Email:       "contacto@laespiga.co",
		AdminName:   "Pedro Panadero",
		AdminEmail:  "pedro@laespiga.co",
		Password:    "masamadre2024",
	}
}

func TestRegisterCompany_QuedaPendienteDeAprobacion(t *testing.T) {
	uc, users, companies := newFixture()

	out, err := uc.RegisterCompany(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyPendingApproval, out.Status)

	company := companies.byID[out.CompanyID]
	require.NotNil(t, company)
	assert.Equal(t, entity.CompanyPendingApproval, company.Status)

	user := users.byEmail["pedro@laespiga.co"]
	require.NotNil(t, user)
	assert.Equal(t, out.CompanyID, user.CompanyID)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.True(t, user.IsCompanyAdmin, "el primer usuario es el admin fundador")
	// La contraseña jamás se guarda en claro.
	assert.NotEqual(t, "masamadre2024", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("masamadre2024")))
}

func TestRegisterCompany_TaxIDDuplicado(t *testing.T) {
	uc, users, companies := newFixture()
	seedCompanyUser(t, users, companies, entity.CompanyActive)

	req := registerRequest()
	req.TaxID = "900123456-7"
	_, err := uc.RegisterCompany(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterCompany_EmailDeAdminDuplicado(t *testing.T) {
	// El email de usuario es único en toda la plataforma, no por empresa.
	uc, users, companies := newFixture()
	seedCompanyUser(t, users, companies, entity.CompanyActive)

	req := registerRequest()
	req.AdminEmail = "admin@tornillo.co"
	_, err := uc.RegisterCompany(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Me
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_DevuelveUsuarioYEmpresa(t *testing.T) {
	uc, users, companies := newFixture()
	company, user := seedCompanyUser(t, users, companies, entity.CompanyActive)

	out, err := uc.Me(company.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	assert.Equal(t, user.Email, out.User.Email)
	assert.Equal(t, company.ID, out.Company.ID)
	assert.Equal(t, company.Name, out.Company.Name)
}

func TestMe_UsuarioDeOtraEmpresa(t *testing.T) {
	// El lookup va acotado por empresa: un ID válido de otro tenant no resuelve.
	uc, users, companies := newFixture()
	_, user := seedCompanyUser(t, users, companies, entity.CompanyActive)

	_, err := uc.Me("00000000-0000-0000-0000-0000000000c9", user.ID)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
