package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository.
// Toda consulta filtra por company_id Y user_id: las notificaciones son personales.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create inserta la notificación.
func (r *NotificationRepo) Create(n *entity.Notification) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO notifications (id, company_id, user_id, type, title, body, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.CompanyID, n.UserID, n.Type, n.Title, n.Body, n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByUser lista notificaciones del usuario; onlyUnread limita a no leídas.
func (r *NotificationRepo) ListByUser(companyID, userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, company_id, user_id, type, title, body, read, created_at
		FROM notifications
		WHERE company_id = $1 AND user_id = $2 AND ($3 = false OR read = false)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`,
		companyID, userID, onlyUnread, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CountUnread cuenta las no leídas del usuario.
func (r *NotificationRepo) CountUnread(companyID, userID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM notifications WHERE company_id = $1 AND user_id = $2 AND read = false`,
		companyID, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(companyID, userID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET read = true WHERE company_id = $1 AND user_id = $2 AND id = $3`,
		companyID, userID, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (r *NotificationRepo) MarkAllRead(companyID, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET read = true WHERE company_id = $1 AND user_id = $2 AND read = false`,
		companyID, userID)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// Delete elimina la notificación.
func (r *NotificationRepo) Delete(companyID, userID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM notifications WHERE company_id = $1 AND user_id = $2 AND id = $3`,
		companyID, userID, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
