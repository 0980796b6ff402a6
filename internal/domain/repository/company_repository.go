package repository

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// CompanyRepository puerto de persistencia para Company (DIP).
// Company ES el tenant: aquí no aplica el parámetro companyID de los demás puertos.
// List y Delete solo se invocan desde el camino super-admin.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByTaxID(taxID string) (*entity.Company, error)
	Update(company *entity.Company) error
	// UpdateStatus cambia el estado del ciclo de vida; suspendedUntil y reason
	// solo tienen sentido para "suspended" (nil/vacío en el resto).
	UpdateStatus(id, status string, suspendedUntil *time.Time, reason string) error
	List(status string, limit, offset int) ([]*entity.Company, error)
	CountByStatus() (map[string]int64, error)
	// Delete elimina la empresa y, por FK ON DELETE CASCADE, todas sus filas hijas.
	Delete(id string) error
}
