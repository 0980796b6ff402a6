package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// NotificationRepository puerto de persistencia para Notification (DIP).
// Doble scoping: companyID Y userID, porque las notificaciones son por usuario.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByUser(companyID, userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	CountUnread(companyID, userID string) (int64, error)
	MarkRead(companyID, userID, id string) error
	MarkAllRead(companyID, userID string) error
	Delete(companyID, userID, id string) error
}
