package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// InvoiceRepository puerto de persistencia para Invoice (DIP).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	// NextNumber devuelve el siguiente consecutivo de factura de la empresa
	// bloqueando las filas existentes; usar dentro de la tx de emisión.
	NextNumber(companyID string) (int64, error)
	GetByID(companyID, id string) (*entity.Invoice, error)
	GetBySaleID(companyID, saleID string) (*entity.Invoice, error)
	List(companyID, status string, limit, offset int) ([]*entity.Invoice, error)
	UpdateStatus(companyID, id, status string) error
}
