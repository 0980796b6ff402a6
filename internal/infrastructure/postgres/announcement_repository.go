package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.AnnouncementRepository = (*AnnouncementRepo)(nil)

const announcementColumns = `id, author_id, title, body, active, starts_at, ends_at, created_at, updated_at`

// AnnouncementRepo implementación de AnnouncementRepository.
// Tabla de plataforma: sin company_id.
type AnnouncementRepo struct {
	q Querier
}

// NewAnnouncementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnnouncementRepository(q Querier) *AnnouncementRepo {
	return &AnnouncementRepo{q: q}
}

// Create inserta el comunicado.
func (r *AnnouncementRepo) Create(a *entity.Announcement) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO announcements (`+announcementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.AuthorID, a.Title, a.Body, a.Active, a.StartsAt, a.EndsAt, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

// GetByID obtiene el comunicado por id.
func (r *AnnouncementRepo) GetByID(id string) (*entity.Announcement, error) {
	var a entity.Announcement
	err := r.q.QueryRow(context.Background(),
		`SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id,
	).Scan(&a.ID, &a.AuthorID, &a.Title, &a.Body, &a.Active, &a.StartsAt, &a.EndsAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan announcement: %w", err)
	}
	return &a, nil
}

// Update actualiza los campos editables del comunicado.
func (r *AnnouncementRepo) Update(a *entity.Announcement) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE announcements
		SET title = $2, body = $3, active = $4, starts_at = $5, ends_at = $6, updated_at = $7
		WHERE id = $1`,
		a.ID, a.Title, a.Body, a.Active, a.StartsAt, a.EndsAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AnnouncementRepo) scanAll(rows pgx.Rows) ([]*entity.Announcement, error) {
	defer rows.Close()
	var list []*entity.Announcement
	for rows.Next() {
		var a entity.Announcement
		if err := rows.Scan(&a.ID, &a.AuthorID, &a.Title, &a.Body, &a.Active, &a.StartsAt, &a.EndsAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// List lista todos los comunicados (consola super-admin).
func (r *AnnouncementRepo) List(limit, offset int) ([]*entity.Announcement, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+announcementColumns+` FROM announcements ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return r.scanAll(rows)
}

// ListActive lista los comunicados vigentes en el instante now (vista tenant).
func (r *AnnouncementRepo) ListActive(now time.Time) ([]*entity.Announcement, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+announcementColumns+` FROM announcements
		WHERE active = true AND starts_at <= $1 AND (ends_at IS NULL OR ends_at > $1)
		ORDER BY starts_at DESC`, now)
	if err != nil {
		return nil, fmt.Errorf("list active announcements: %w", err)
	}
	return r.scanAll(rows)
}

// Delete elimina el comunicado.
func (r *AnnouncementRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
