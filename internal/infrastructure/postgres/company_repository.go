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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, tax_id, industry, address, phone, email, status, database_type, suspended_until, suspend_reason, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa (nace en pending_approval).
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.TaxID, company.Industry, company.Address,
		company.Phone, company.Email, company.Status, company.DatabaseType,
		company.SuspendedUntil, company.SuspendReason, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) scanOne(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Industry, &c.Address, &c.Phone, &c.Email,
		&c.Status, &c.DatabaseType, &c.SuspendedUntil, &c.SuspendReason,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	return &c, nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByTaxID obtiene una empresa por identificación tributaria.
func (r *CompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE tax_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, taxID))
}

// Update actualiza el perfil de la empresa. El estado NO se toca aquí: eso es UpdateStatus.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, industry = $3, address = $4, phone = $5, email = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Industry, company.Address, company.Phone,
		company.Email, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado del ciclo de vida de la empresa.
func (r *CompanyRepo) UpdateStatus(id, status string, suspendedUntil *time.Time, reason string) error {
	query := `
		UPDATE companies SET status = $2, suspended_until = $3, suspend_reason = $4, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, status, suspendedUntil, reason)
	if err != nil {
		return fmt.Errorf("update company status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista empresas, opcionalmente filtradas por estado. Solo camino super-admin.
func (r *CompanyRepo) List(status string, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + ` FROM companies
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Industry, &c.Address, &c.Phone, &c.Email,
			&c.Status, &c.DatabaseType, &c.SuspendedUntil, &c.SuspendReason, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountByStatus cuenta empresas agrupadas por estado (estadísticas de plataforma).
func (r *CompanyRepo) CountByStatus() (map[string]int64, error) {
	rows, err := r.q.Query(context.Background(), `SELECT status, COUNT(*) FROM companies GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count companies by status: %w", err)
	}
	defer rows.Close()
	result := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan company count: %w", err)
		}
		result[status] = n
	}
	return result, rows.Err()
}

// Delete elimina la empresa; las filas hijas caen por ON DELETE CASCADE.
func (r *CompanyRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
