package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo de una empresa.
// Quantity es el stock actual; solo cambia dentro de transacciones de venta,
// devolución o ajuste (con bloqueo de fila), nunca por un UPDATE directo del CRUD.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Name         string
	Description  string
	Category     string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo unitario de compra
	TaxRate      decimal.Decimal // % de impuesto aplicado en ventas
	Quantity     decimal.Decimal // stock actual, invariante: nunca negativo
	ReorderPoint decimal.Decimal // umbral de stock bajo para reportes/notificaciones
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el stock está en o por debajo del punto de reorden.
func (p *Product) LowStock() bool {
	return p.Quantity.LessThanOrEqual(p.ReorderPoint)
}
