package superadmin_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/superadmin"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testAdminID   = "00000000-0000-0000-0000-0000000000a1"
	testCompanyID = "00000000-0000-0000-0000-0000000000c1"
)

type fakeAdminRepo struct {
	admin       *entity.SuperAdmin
	lastLoginID string
}

func (f *fakeAdminRepo) GetByID(id string) (*entity.SuperAdmin, error) { return f.admin, nil }
func (f *fakeAdminRepo) GetByEmail(email string) (*entity.SuperAdmin, error) {
	if f.admin != nil && f.admin.Email == email {
		return f.admin, nil
	}
	return nil, nil
}
func (f *fakeAdminRepo) UpdateLastLogin(id string) error { f.lastLoginID = id; return nil }

type fakeCompanyRepo struct {
	byID map[string]*entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error              { f.byID[c.ID] = c; return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error)  { return f.byID[id], nil }
func (f *fakeCompanyRepo) GetByTaxID(t string) (*entity.Company, error) { return nil, nil }
func (f *fakeCompanyRepo) Update(c *entity.Company) error              { return nil }
func (f *fakeCompanyRepo) UpdateStatus(id, status string, suspendedUntil *time.Time, reason string) error {
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

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error                  { return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error)      { return nil, nil }
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByCompanyAndID(companyID, id string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByCompanyAndEmail(companyID, email string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { return nil }
func (f *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	return f.users, nil
}
func (f *fakeUserRepo) Delete(companyID, id string) error { return nil }

type fakeNotificationRepo struct {
	created []*entity.Notification
}

func (f *fakeNotificationRepo) Create(n *entity.Notification) error {
	f.created = append(f.created, n)
	return nil
}
func (f *fakeNotificationRepo) ListByUser(companyID, userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) CountUnread(companyID, userID string) (int64, error) { return 0, nil }
func (f *fakeNotificationRepo) MarkRead(companyID, userID, id string) error         { return nil }
func (f *fakeNotificationRepo) MarkAllRead(companyID, userID string) error          { return nil }
func (f *fakeNotificationRepo) Delete(companyID, userID, id string) error           { return nil }

type fakeAnnouncementRepo struct {
	byID map[string]*entity.Announcement
}

func (f *fakeAnnouncementRepo) Create(a *entity.Announcement) error { f.byID[a.ID] = a; return nil }
func (f *fakeAnnouncementRepo) GetByID(id string) (*entity.Announcement, error) {
	return f.byID[id], nil
}
func (f *fakeAnnouncementRepo) Update(a *entity.Announcement) error { f.byID[a.ID] = a; return nil }
func (f *fakeAnnouncementRepo) List(limit, offset int) ([]*entity.Announcement, error) {
	return nil, nil
}
func (f *fakeAnnouncementRepo) ListActive(now time.Time) ([]*entity.Announcement, error) {
	return nil, nil
}
func (f *fakeAnnouncementRepo) Delete(id string) error { delete(f.byID, id); return nil }

type fakeTicketRepo struct{}

func (f *fakeTicketRepo) Create(t *entity.SupportTicket, first *entity.TicketMessage) error {
	return nil
}
func (f *fakeTicketRepo) GetByID(companyID, id string) (*entity.SupportTicket, error) {
	return nil, nil
}
func (f *fakeTicketRepo) GetByIDAll(id string) (*entity.SupportTicket, error) { return nil, nil }
func (f *fakeTicketRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.SupportTicket, error) {
	return nil, nil
}
func (f *fakeTicketRepo) ListAll(status string, limit, offset int) ([]*entity.SupportTicket, error) {
	return nil, nil
}
func (f *fakeTicketRepo) AddMessage(m *entity.TicketMessage) error { return nil }
func (f *fakeTicketRepo) ListMessages(ticketID string) ([]*entity.TicketMessage, error) {
	return nil, nil
}
func (f *fakeTicketRepo) UpdateStatus(companyID, id, status string) error { return nil }
func (f *fakeTicketRepo) UpdateStatusAll(id, status string) error         { return nil }

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(l *entity.AuditLog) error { f.logs = append(f.logs, l); return nil }
func (f *fakeAuditRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	return nil, nil
}
func (f *fakeAuditRepo) ListAll(limit, offset int) ([]*entity.AuditLog, error) { return nil, nil }

type fakeReportRepo struct{}

func (f *fakeReportRepo) GetSalesSummary(ctx context.Context, companyID string, from, to time.Time) (*repository.SalesSummaryResult, error) {
	return &repository.SalesSummaryResult{}, nil
}
func (f *fakeReportRepo) GetSalesByDay(ctx context.Context, companyID string, from, to time.Time) ([]repository.DailySalesResult, error) {
	return nil, nil
}
func (f *fakeReportRepo) GetTopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	return nil, nil
}
func (f *fakeReportRepo) GetExpensesByCategory(ctx context.Context, companyID string, from, to time.Time) ([]repository.ExpenseByCategoryResult, error) {
	return nil, nil
}
func (f *fakeReportRepo) GetDashboard(ctx context.Context, companyID string) (*repository.DashboardResult, error) {
	return &repository.DashboardResult{}, nil
}
func (f *fakeReportRepo) PlatformStats(ctx context.Context) (*repository.PlatformStatsResult, error) {
	return &repository.PlatformStatsResult{
		CompaniesByStatus: map[string]int64{entity.CompanyActive: 3},
		UserCount:         10,
		SaleCount:         120,
		SalesVolume:       decimal.NewFromInt(5000),
		OpenTicketCount:   2,
	}, nil
}

// fakeLifecycleTx invoca el callback directo, sin transacción real.
type fakeLifecycleTx struct {
	companyRepo *fakeCompanyRepo
	auditRepo   *fakeAuditRepo
}

func (f *fakeLifecycleTx) RunLifecycle(ctx context.Context, fn func(repository.CompanyRepository, repository.AuditLogRepository) error) error {
	return fn(f.companyRepo, f.auditRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc            *superadmin.SuperAdminUseCase
	admins        *fakeAdminRepo
	companies     *fakeCompanyRepo
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	audit         *fakeAuditRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("plataforma123"), bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{
		admins: &fakeAdminRepo{admin: &entity.SuperAdmin{
			ID:           testAdminID,
			Email:        "ops@plataforma.co",
			PasswordHash: string(hash),
			Name:         "Operadora",
		}},
		companies:     &fakeCompanyRepo{byID: map[string]*entity.Company{}},
		users:         &fakeUserRepo{},
		notifications: &fakeNotificationRepo{},
		audit:         &fakeAuditRepo{},
	}
	tx := &fakeLifecycleTx{companyRepo: f.companies, auditRepo: f.audit}
	f.uc = superadmin.NewSuperAdminUseCase(
		f.admins, f.companies, f.users, f.notifications,
		&fakeAnnouncementRepo{byID: map[string]*entity.Announcement{}},
		&fakeTicketRepo{}, f.audit, &fakeReportRepo{}, tx,
		superadmin.JWTConfig{Secret: "secreto-consola", ExpMinutes: 30, Issuer: "gestion-pro-superadmin"},
	)
	return f
}

func (f *fixture) seedCompany(status string) *entity.Company {
	c := &entity.Company{ID: testCompanyID, Name: "Ferretería El Tornillo", Status: status}
	f.companies.byID[c.ID] = c
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestSuperAdminLogin(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Login(dto.SuperAdminLoginRequest{Email: "ops@plataforma.co", Password: "plataforma123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, testAdminID, f.admins.lastLoginID, "registra el último login")

	_, err = f.uc.Login(dto.SuperAdminLoginRequest{Email: "ops@plataforma.co", Password: "mala"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Login(dto.SuperAdminLoginRequest{Email: "nadie@plataforma.co", Password: "plataforma123"})
	require.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida de empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestApproveCompany_ActivaAuditaYNotifica(t *testing.T) {
	f := newFixture(t)
	f.seedCompany(entity.CompanyPendingApproval)
	f.users.users = []*entity.User{
		{ID: "u-admin", CompanyID: testCompanyID, IsCompanyAdmin: true},
		{ID: "u-sales", CompanyID: testCompanyID, IsCompanyAdmin: false},
	}

	out, err := f.uc.ApproveCompany(context.Background(), testAdminID, testCompanyID)
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyActive, out.Status)

	// Fila de auditoría con el operador como actor
	require.Len(t, f.audit.logs, 1)
	assert.Equal(t, entity.ActorSuperAdmin, f.audit.logs[0].ActorType)
	assert.Equal(t, testAdminID, f.audit.logs[0].ActorID)
	assert.Equal(t, "company.active", f.audit.logs[0].Action)

	// Solo el admin fundador recibe el aviso
	require.Len(t, f.notifications.created, 1)
	assert.Equal(t, "u-admin", f.notifications.created[0].UserID)
	assert.Equal(t, entity.NotifCompanyApproved, f.notifications.created[0].Type)
}

func TestApproveCompany_YaActiva_TransicionInvalida(t *testing.T) {
	f := newFixture(t)
	f.seedCompany(entity.CompanyActive)

	_, err := f.uc.ApproveCompany(context.Background(), testAdminID, testCompanyID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.audit.logs, "una transición rechazada no audita nada")
}

func TestSuspendCompany_GuardaVencimientoYMotivo(t *testing.T) {
	f := newFixture(t)
	company := f.seedCompany(entity.CompanyActive)
	until := time.Now().UTC().Add(72 * time.Hour)

	out, err := f.uc.SuspendCompany(context.Background(), testAdminID, testCompanyID, &until, "impago")
	require.NoError(t, err)
	assert.Equal(t, entity.CompanySuspended, out.Status)
	require.NotNil(t, company.SuspendedUntil)
	assert.True(t, company.SuspendedUntil.Equal(until))
	assert.Equal(t, "impago", company.SuspendReason)
}

func TestBanCompany_EsTerminal(t *testing.T) {
	f := newFixture(t)
	f.seedCompany(entity.CompanyActive)

	_, err := f.uc.BanCompany(context.Background(), testAdminID, testCompanyID, "fraude")
	require.NoError(t, err)

	// Del ban no se sale: ni reactivación ni nueva sanción.
	_, err = f.uc.ReactivateCompany(context.Background(), testAdminID, testCompanyID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = f.uc.SuspendCompany(context.Background(), testAdminID, testCompanyID, nil, "x")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeleteCompany_BorraYAudita(t *testing.T) {
	f := newFixture(t)
	f.seedCompany(entity.CompanyActive)

	require.NoError(t, f.uc.DeleteCompany(context.Background(), testAdminID, testCompanyID))
	assert.Nil(t, f.companies.byID[testCompanyID])
	require.Len(t, f.audit.logs, 1)
	assert.Equal(t, "company.delete", f.audit.logs[0].Action)
	assert.Equal(t, "Ferretería El Tornillo", f.audit.logs[0].Detail,
		"el nombre queda en el detalle porque la fila de empresa desaparece")
}

func TestDeleteCompany_Inexistente(t *testing.T) {
	f := newFixture(t)
	err := f.uc.DeleteCompany(context.Background(), testAdminID, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_CompanyInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ApproveCompany(context.Background(), testAdminID, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadísticas
// ──────────────────────────────────────────────────────────────────────────────

func TestPlatformStats(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.PlatformStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.CompaniesByStatus[entity.CompanyActive])
	assert.Equal(t, int64(10), out.UserCount)
	assert.True(t, out.SalesVolume.Equal(decimal.NewFromInt(5000)))
}
