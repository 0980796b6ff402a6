package usecase

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// AnnouncementUseCase lectura tenant de los comunicados de plataforma vigentes.
// La redacción y administración viven en la consola super-admin.
type AnnouncementUseCase struct {
	repo repository.AnnouncementRepository
}

// NewAnnouncementUseCase construye el caso de uso.
func NewAnnouncementUseCase(repo repository.AnnouncementRepository) *AnnouncementUseCase {
	return &AnnouncementUseCase{repo: repo}
}

// ListActive comunicados activos dentro de su ventana de vigencia.
func (uc *AnnouncementUseCase) ListActive() (*dto.AnnouncementListResponse, error) {
	list, err := uc.repo.ListActive(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	resp := &dto.AnnouncementListResponse{Items: make([]dto.AnnouncementResponse, 0, len(list))}
	for _, a := range list {
		resp.Items = append(resp.Items, dto.ToAnnouncementResponse(a))
	}
	return resp, nil
}
