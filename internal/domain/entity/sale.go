package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleCompleted         = "completed"
	SalePartiallyReturned = "partially_returned"
	SaleReturned          = "returned"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentCredit   = "credit"
)

// Sale cabecera de una venta. Number es consecutivo por empresa.
// La creación de la venta, el descuento de stock de cada línea y los movimientos
// de auditoría de stock ocurren en UNA transacción (ver application/sales).
type Sale struct {
	ID            string
	CompanyID     string
	CustomerID    string // vacío = venta de mostrador sin cliente
	UserID        string // vendedor que registró la venta
	Number        int64
	Status        string
	PaymentMethod string
	Subtotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
	Notes         string
	CreatedAt     time.Time
}

// SaleItem línea de una venta. ProductName y UnitPrice se congelan al momento
// de vender: cambios posteriores del catálogo no reescriben ventas históricas.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal // qty × unit_price, sin impuesto
}

// ValidPaymentMethod indica si el método de pago es conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCredit:
		return true
	}
	return false
}
