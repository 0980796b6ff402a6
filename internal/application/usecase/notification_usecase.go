package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// NotificationUseCase bandeja de notificaciones del usuario autenticado.
// También implementa sales.Notifier para los avisos de stock bajo.
type NotificationUseCase struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo, userRepo: userRepo}
}

// List lista las notificaciones del usuario con el contador de no leídas.
func (uc *NotificationUseCase) List(companyID, userID string, onlyUnread bool, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(companyID, userID, onlyUnread, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(companyID, userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.NotificationListResponse{
		Items:  make([]dto.NotificationResponse, 0, len(list)),
		Unread: unread,
	}
	for _, n := range list {
		resp.Items = append(resp.Items, dto.ToNotificationResponse(n))
	}
	return resp, nil
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(companyID, userID, id string) error {
	return uc.repo.MarkRead(companyID, userID, id)
}

// MarkAllRead marca todas como leídas.
func (uc *NotificationUseCase) MarkAllRead(companyID, userID string) error {
	return uc.repo.MarkAllRead(companyID, userID)
}

// Delete elimina una notificación de la bandeja.
func (uc *NotificationUseCase) Delete(companyID, userID, id string) error {
	return uc.repo.Delete(companyID, userID, id)
}

// NotifyLowStock avisa a los admins de la empresa que un producto cruzó su
// punto de reorden. Mejor esfuerzo: los errores se descartan porque una venta
// ya confirmada no puede fallar por su aviso.
func (uc *NotificationUseCase) NotifyLowStock(companyID, productID, productName string) {
	users, err := uc.userRepo.ListByCompany(companyID, 50, 0)
	if err != nil {
		return
	}
	now := time.Now().UTC()
	for _, u := range users {
		if u.Role != entity.RoleAdmin && !u.IsCompanyAdmin {
			continue
		}
		_ = uc.repo.Create(&entity.Notification{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			UserID:    u.ID,
			Type:      entity.NotifLowStock,
			Title:     "Stock bajo",
			Body:      "El producto \"" + productName + "\" alcanzó su punto de reorden.",
			CreatedAt: now,
		})
	}
}
