package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceIssued = "issued"
	InvoicePaid   = "paid"
	InvoiceVoid   = "void"
)

// Invoice factura emitida a partir de una venta completada.
// Number es consecutivo por empresa; Prefix lo define la empresa (ej. "FV").
type Invoice struct {
	ID         string
	CompanyID  string
	SaleID     string
	CustomerID string
	Prefix     string
	Number     int64
	Status     string
	IssueDate  time.Time
	DueDate    *time.Time
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	Total      decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullNumber devuelve el número visible de la factura, ej. "FV-42".
func (i *Invoice) FullNumber() string {
	if i.Prefix == "" {
		return strconv.FormatInt(i.Number, 10)
	}
	return i.Prefix + "-" + strconv.FormatInt(i.Number, 10)
}
