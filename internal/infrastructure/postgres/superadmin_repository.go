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

var _ repository.SuperAdminRepository = (*SuperAdminRepo)(nil)

const superAdminColumns = `id, email, password_hash, name, last_login_at, created_at, updated_at`

// SuperAdminRepo implementación de SuperAdminRepository.
// Tabla separada de users: credenciales de plataforma, no de tenant.
type SuperAdminRepo struct {
	q Querier
}

// NewSuperAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSuperAdminRepository(q Querier) *SuperAdminRepo {
	return &SuperAdminRepo{q: q}
}

func scanSuperAdmin(row pgx.Row) (*entity.SuperAdmin, error) {
	var a entity.SuperAdmin
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan super admin: %w", err)
	}
	return &a, nil
}

// GetByID obtiene el super-admin por id.
func (r *SuperAdminRepo) GetByID(id string) (*entity.SuperAdmin, error) {
	return scanSuperAdmin(r.q.QueryRow(context.Background(),
		`SELECT `+superAdminColumns+` FROM super_admins WHERE id = $1`, id))
}

// GetByEmail obtiene el super-admin por email (login).
func (r *SuperAdminRepo) GetByEmail(email string) (*entity.SuperAdmin, error) {
	return scanSuperAdmin(r.q.QueryRow(context.Background(),
		`SELECT `+superAdminColumns+` FROM super_admins WHERE email = $1`, email))
}

// UpdateLastLogin registra el instante del último login exitoso.
func (r *SuperAdminRepo) UpdateLastLogin(id string) error {
	now := time.Now().UTC()
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE super_admins SET last_login_at = $2, updated_at = $2 WHERE id = $1`, id, now)
	if err != nil {
		return fmt.Errorf("update super admin last login: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
