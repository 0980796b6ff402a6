package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// SaleRepository puerto de persistencia para Sale y sus líneas (DIP).
// Create y NextNumber se usan dentro de la transacción de venta (TxRunner).
type SaleRepository interface {
	Create(sale *entity.Sale, items []*entity.SaleItem) error
	// NextNumber devuelve el siguiente consecutivo de venta de la empresa.
	// Seguro bajo concurrencia solo dentro de la tx que ya bloqueó las filas de stock.
	NextNumber(companyID string) (int64, error)
	GetByID(companyID, id string) (*entity.Sale, []*entity.SaleItem, error)
	List(companyID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error)
	UpdateStatus(companyID, id, status string) error
	// ReturnedQuantities devuelve, por producto, la cantidad ya devuelta de la venta.
	ReturnedQuantities(companyID, saleID string) (map[string]decimal.Decimal, error)
}

// SaleReturnRepository puerto de persistencia para devoluciones.
type SaleReturnRepository interface {
	Create(ret *entity.SaleReturn, items []*entity.SaleReturnItem) error
	GetByID(companyID, id string) (*entity.SaleReturn, []*entity.SaleReturnItem, error)
	List(companyID string, limit, offset int) ([]*entity.SaleReturn, error)
}

// StockMovementRepository puerto del libro de movimientos de stock.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(companyID, productID string, limit, offset int) ([]*entity.StockMovement, error)
}
