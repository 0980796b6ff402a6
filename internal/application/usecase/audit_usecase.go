package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// AuditUseCase lectura de la auditoría del propio tenant y registro de acciones
// de usuarios. La vista de toda la plataforma es de la consola super-admin.
type AuditUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// Record registra una acción de un usuario del tenant. Mejor esfuerzo: la
// auditoría de usuarios nunca revierte la operación que documenta.
func (uc *AuditUseCase) Record(companyID, userID, action, entityName, entityID, detail string) {
	_ = uc.repo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		ActorType: entity.ActorUser,
		ActorID:   userID,
		CompanyID: companyID,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	})
}

// List lista la auditoría del tenant, más reciente primero.
func (uc *AuditUseCase) List(companyID string, page dto.PageRequest) (*dto.AuditLogListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
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
	return resp, nil
}
