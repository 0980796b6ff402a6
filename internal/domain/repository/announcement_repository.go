package repository

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// AnnouncementRepository puerto de persistencia para Announcement (DIP).
// Los comunicados son de plataforma (sin company_id): los escribe el super-admin
// y los tenants solo leen los vigentes vía ListActive.
type AnnouncementRepository interface {
	Create(announcement *entity.Announcement) error
	GetByID(id string) (*entity.Announcement, error)
	Update(announcement *entity.Announcement) error
	List(limit, offset int) ([]*entity.Announcement, error)
	ListActive(now time.Time) ([]*entity.Announcement, error)
	Delete(id string) error
}
