package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementSale       = "SALE"
	MovementReturn     = "RETURN"
	MovementAdjustment = "ADJUSTMENT"
	MovementPurchase   = "PURCHASE"
)

// StockMovement registro de auditoría de cada cambio de stock.
// Quantity es positiva para entradas (RETURN, PURCHASE) y negativa para salidas (SALE).
// Se inserta en la misma transacción que el cambio de stock que documenta.
type StockMovement struct {
	ID          string
	CompanyID   string
	ProductID   string
	Type        string
	Quantity    decimal.Decimal
	ReferenceID string // id de la venta/devolución que originó el movimiento
	UserID      string
	CreatedAt   time.Time
}
