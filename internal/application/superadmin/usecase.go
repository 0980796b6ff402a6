package superadmin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración del token de plataforma. Secreto e issuer distintos
// de los tokens de tenant: un token nunca sirve en el otro camino.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LifecycleTxRunner ejecuta un cambio de estado de empresa junto con su fila
// de auditoría en la misma transacción.
type LifecycleTxRunner interface {
	RunLifecycle(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// SuperAdminUseCase consola de plataforma: login, ciclo de vida de empresas,
// estadísticas, comunicados, cola de tickets y lectura de auditoría.
type SuperAdminUseCase struct {
	adminRepo        repository.SuperAdminRepository
	companyRepo      repository.CompanyRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	announcementRepo repository.AnnouncementRepository
	ticketRepo       repository.SupportTicketRepository
	auditRepo        repository.AuditLogRepository
	reportRepo       repository.ReportRepository
	tx               LifecycleTxRunner
	jwtCfg           JWTConfig
}

// NewSuperAdminUseCase construye el caso de uso.
func NewSuperAdminUseCase(
	adminRepo repository.SuperAdminRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	announcementRepo repository.AnnouncementRepository,
	ticketRepo repository.SupportTicketRepository,
	auditRepo repository.AuditLogRepository,
	reportRepo repository.ReportRepository,
	tx LifecycleTxRunner,
	jwtCfg JWTConfig,
) *SuperAdminUseCase {
	return &SuperAdminUseCase{
		adminRepo:        adminRepo,
		companyRepo:      companyRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		announcementRepo: announcementRepo,
		ticketRepo:       ticketRepo,
		auditRepo:        auditRepo,
		reportRepo:       reportRepo,
		tx:               tx,
		jwtCfg:           jwtCfg,
	}
}

// Login autentica al operador de plataforma y emite su token.
func (uc *SuperAdminUseCase) Login(in dto.SuperAdminLoginRequest) (*dto.SuperAdminLoginResponse, error) {
	admin, err := uc.adminRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.adminRepo.UpdateLastLogin(admin.ID); err != nil {
		return nil, err
	}
	token, err := jwt.GenerateSuperAdmin(uc.jwtCfg.Secret, admin.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	_ = uc.auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		ActorType: entity.ActorSuperAdmin,
		ActorID:   admin.ID,
		Action:    "superadmin.login",
		Entity:    "super_admin",
		EntityID:  admin.ID,
		CreatedAt: time.Now().UTC(),
	})
	return &dto.SuperAdminLoginResponse{Token: token, Name: admin.Name, Email: admin.Email}, nil
}

// ListCompanies lista empresas; status vacío = todas.
func (uc *SuperAdminUseCase) ListCompanies(status string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	list, err := uc.companyRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.CompanyListResponse{
		Items: make([]dto.CompanyResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range list {
		resp.Items = append(resp.Items, dto.ToCompanyResponse(c))
	}
	return resp, nil
}

// GetCompany obtiene una empresa por id.
func (uc *SuperAdminUseCase) GetCompany(id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	resp := dto.ToCompanyResponse(company)
	return &resp, nil
}

// transition ejecuta un cambio de estado validado por la tabla del ciclo de
// vida, con su fila de auditoría en la misma transacción.
func (uc *SuperAdminUseCase) transition(ctx context.Context, adminID, companyID, to string, suspendedUntil *time.Time, reason string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(company.Status, to) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, company.Status, to)
	}

	err = uc.tx.RunLifecycle(ctx, func(companyRepo repository.CompanyRepository, auditRepo repository.AuditLogRepository) error {
		if err := companyRepo.UpdateStatus(companyID, to, suspendedUntil, reason); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			ActorType: entity.ActorSuperAdmin,
			ActorID:   adminID,
			CompanyID: companyID,
			Action:    "company." + to,
			Entity:    "company",
			EntityID:  companyID,
			Detail:    reason,
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	company.Status = to
	company.SuspendedUntil = suspendedUntil
	company.SuspendReason = reason
	resp := dto.ToCompanyResponse(company)
	return &resp, nil
}

// ApproveCompany aprueba una solicitud pendiente y notifica al admin de la empresa.
func (uc *SuperAdminUseCase) ApproveCompany(ctx context.Context, adminID, companyID string) (*dto.CompanyResponse, error) {
	resp, err := uc.transition(ctx, adminID, companyID, entity.CompanyActive, nil, "")
	if err != nil {
		return nil, err
	}
	// Aviso de cortesía; si falla no revierte la aprobación.
	if users, uErr := uc.userRepo.ListByCompany(companyID, 50, 0); uErr == nil {
		for _, u := range users {
			if !u.IsCompanyAdmin {
				continue
			}
			_ = uc.notificationRepo.Create(&entity.Notification{
				ID:        uuid.New().String(),
				CompanyID: companyID,
				UserID:    u.ID,
				Type:      entity.NotifCompanyApproved,
				Title:     "Empresa aprobada",
				Body:      "Tu empresa fue aprobada. Ya puedes iniciar sesión y operar.",
				CreatedAt: time.Now().UTC(),
			})
		}
	}
	return resp, nil
}

// RejectCompany rechaza una solicitud pendiente (estado terminal).
func (uc *SuperAdminUseCase) RejectCompany(ctx context.Context, adminID, companyID, reason string) (*dto.CompanyResponse, error) {
	return uc.transition(ctx, adminID, companyID, entity.CompanyRejected, nil, reason)
}

// SuspendCompany suspende una empresa activa, con vencimiento opcional.
// Sin vencimiento la suspensión es indefinida hasta reactivación manual.
func (uc *SuperAdminUseCase) SuspendCompany(ctx context.Context, adminID, companyID string, until *time.Time, reason string) (*dto.CompanyResponse, error) {
	return uc.transition(ctx, adminID, companyID, entity.CompanySuspended, until, reason)
}

// ReactivateCompany vuelve a activar una empresa suspendida o bloqueada.
func (uc *SuperAdminUseCase) ReactivateCompany(ctx context.Context, adminID, companyID string) (*dto.CompanyResponse, error) {
	return uc.transition(ctx, adminID, companyID, entity.CompanyActive, nil, "")
}

// BlockCompany bloquea una empresa (reversible, a diferencia del ban).
func (uc *SuperAdminUseCase) BlockCompany(ctx context.Context, adminID, companyID, reason string) (*dto.CompanyResponse, error) {
	return uc.transition(ctx, adminID, companyID, entity.CompanyBlocked, nil, reason)
}

// BanCompany expulsa definitivamente una empresa (estado terminal).
func (uc *SuperAdminUseCase) BanCompany(ctx context.Context, adminID, companyID, reason string) (*dto.CompanyResponse, error) {
	return uc.transition(ctx, adminID, companyID, entity.CompanyBanned, nil, reason)
}

// DeleteCompany elimina la empresa y todos sus datos (FK en cascada).
func (uc *SuperAdminUseCase) DeleteCompany(ctx context.Context, adminID, companyID string) error {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	if err := uc.companyRepo.Delete(companyID); err != nil {
		return err
	}
	return uc.auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		ActorType: entity.ActorSuperAdmin,
		ActorID:   adminID,
		Action:    "company.delete",
		Entity:    "company",
		EntityID:  companyID,
		Detail:    company.Name,
		CreatedAt: time.Now().UTC(),
	})
}

// PlatformStats estadísticas globales de la plataforma.
func (uc *SuperAdminUseCase) PlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	stats, err := uc.reportRepo.PlatformStats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PlatformStatsResponse{
		CompaniesByStatus: stats.CompaniesByStatus,
		UserCount:         stats.UserCount,
		SaleCount:         stats.SaleCount,
		SalesVolume:       stats.SalesVolume,
		OpenTicketCount:   stats.OpenTicketCount,
	}, nil
}

// CreateAnnouncement publica un comunicado de plataforma.
func (uc *SuperAdminUseCase) CreateAnnouncement(adminID string, in dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	now := time.Now().UTC()
	startsAt := in.StartsAt
	if startsAt.IsZero() {
		startsAt = now
	}
	a := &entity.Announcement{
		ID:        uuid.New().String(),
		AuthorID:  adminID,
		Title:     in.Title,
		Body:      in.Body,
		Active:    in.Active,
		StartsAt:  startsAt,
		EndsAt:    in.EndsAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.announcementRepo.Create(a); err != nil {
		return nil, err
	}
	resp := dto.ToAnnouncementResponse(a)
	return &resp, nil
}

// UpdateAnnouncement edita un comunicado existente.
func (uc *SuperAdminUseCase) UpdateAnnouncement(id string, in dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	a, err := uc.announcementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Body != nil {
		a.Body = *in.Body
	}
	if in.Active != nil {
		a.Active = *in.Active
	}
	if in.StartsAt != nil {
		a.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		a.EndsAt = in.EndsAt
	}
	if err := uc.announcementRepo.Update(a); err != nil {
		return nil, err
	}
	resp := dto.ToAnnouncementResponse(a)
	return &resp, nil
}

// ListAnnouncements lista todos los comunicados, vigentes o no.
func (uc *SuperAdminUseCase) ListAnnouncements(page dto.PageRequest) (*dto.AnnouncementListResponse, error) {
	page.DefaultPage()
	list, err := uc.announcementRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.AnnouncementListResponse{Items: make([]dto.AnnouncementResponse, 0, len(list))}
	for _, a := range list {
		resp.Items = append(resp.Items, dto.ToAnnouncementResponse(a))
	}
	return resp, nil
}

// DeleteAnnouncement elimina un comunicado.
func (uc *SuperAdminUseCase) DeleteAnnouncement(id string) error {
	return uc.announcementRepo.Delete(id)
}

// ListTickets cola global de soporte; status vacío = todos.
func (uc *SuperAdminUseCase) ListTickets(status string, page dto.PageRequest) (*dto.TicketListResponse, error) {
	page.DefaultPage()
	list, err := uc.ticketRepo.ListAll(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.TicketListResponse{
		Items: make([]dto.TicketResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, t := range list {
		resp.Items = append(resp.Items, dto.ToTicketResponse(t, nil))
	}
	return resp, nil
}

// GetTicket detalle de un ticket con su hilo completo (sin filtro de empresa).
func (uc *SuperAdminUseCase) GetTicket(id string) (*dto.TicketResponse, error) {
	t, err := uc.ticketRepo.GetByIDAll(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	messages, err := uc.ticketRepo.ListMessages(t.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToTicketResponse(t, messages)
	return &resp, nil
}

// ReplyTicket responde un ticket como soporte y notifica al autor.
func (uc *SuperAdminUseCase) ReplyTicket(adminID, ticketID, body string) (*dto.TicketResponse, error) {
	t, err := uc.ticketRepo.GetByIDAll(ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	msg := &entity.TicketMessage{
		ID:         uuid.New().String(),
		TicketID:   t.ID,
		AuthorType: entity.ActorSuperAdmin,
		AuthorID:   adminID,
		Body:       body,
		CreatedAt:  now,
	}
	if err := uc.ticketRepo.AddMessage(msg); err != nil {
		return nil, err
	}
	if t.Status == entity.TicketOpen {
		if err := uc.ticketRepo.UpdateStatusAll(t.ID, entity.TicketInProgress); err != nil {
			return nil, err
		}
		t.Status = entity.TicketInProgress
	}
	_ = uc.notificationRepo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		CompanyID: t.CompanyID,
		UserID:    t.UserID,
		Type:      entity.NotifTicketReplied,
		Title:     "Respuesta de soporte",
		Body:      "Tu ticket \"" + t.Subject + "\" tiene una respuesta nueva.",
		CreatedAt: now,
	})
	return uc.GetTicket(t.ID)
}

// UpdateTicketStatus cambia el estado de un ticket desde la consola.
func (uc *SuperAdminUseCase) UpdateTicketStatus(id, status string) error {
	return uc.ticketRepo.UpdateStatusAll(id, status)
}

// ListAuditLogs lectura paginada de toda la auditoría de la plataforma.
func (uc *SuperAdminUseCase) ListAuditLogs(page dto.PageRequest) (*dto.AuditLogListResponse, error) {
	page.DefaultPage()
	list, err := uc.auditRepo.ListAll(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toAuditListResponse(list, page), nil
}

func toAuditListResponse(list []*entity.AuditLog, page dto.PageRequest) *dto.AuditLogListResponse {
	resp := &dto.AuditLogListResponse{
		Items: make([]dto.AuditLogResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, l := range list {
		resp.Items = append(resp.Items, dto.AuditLogResponse{
			ID:        l.ID,
			ActorType: l.ActorType,
			ActorID:   l.ActorID,
			CompanyID: l.CompanyID,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Detail:    l.Detail,
			CreatedAt: l.CreatedAt,
		})
	}
	return resp
}
