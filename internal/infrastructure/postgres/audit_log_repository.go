package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

const auditColumns = `id, actor_type, actor_id, company_id, action, entity, entity_id, detail, created_at`

// AuditLogRepo implementación del registro de auditoría append-only.
// Sin Update ni Delete: las entradas nunca se modifican.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta la entrada de auditoría.
func (r *AuditLogRepo) Create(l *entity.AuditLog) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO audit_logs (`+auditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.ActorType, l.ActorID, nullIfEmpty(l.CompanyID), l.Action,
		l.Entity, nullIfEmpty(l.EntityID), l.Detail, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *AuditLogRepo) scanLogs(rows pgx.Rows) ([]*entity.AuditLog, error) {
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		var companyID, entityID *string
		if err := rows.Scan(&l.ID, &l.ActorType, &l.ActorID, &companyID, &l.Action,
			&l.Entity, &entityID, &l.Detail, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if companyID != nil {
			l.CompanyID = *companyID
		}
		if entityID != nil {
			l.EntityID = *entityID
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListByCompany lista la auditoría de un tenant, más reciente primero.
func (r *AuditLogRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+auditColumns+` FROM audit_logs
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return r.scanLogs(rows)
}

// ListAll lista toda la auditoría de la plataforma (super-admin).
func (r *AuditLogRepo) ListAll(limit, offset int) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+auditColumns+` FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list all audit logs: %w", err)
	}
	return r.scanLogs(rows)
}
