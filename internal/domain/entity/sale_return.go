package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleReturn devolución (parcial o total) de una venta existente.
// El restock de cada línea y el movimiento de auditoría ocurren en una transacción.
type SaleReturn struct {
	ID        string
	CompanyID string
	SaleID    string
	UserID    string
	Reason    string
	Total     decimal.Decimal
	CreatedAt time.Time
}

// SaleReturnItem línea devuelta. Quantity nunca puede superar lo vendido
// menos lo ya devuelto de esa misma línea.
type SaleReturnItem struct {
	ID        string
	ReturnID  string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
