package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías sugeridas de gasto (la columna no tiene CHECK; son orientativas para la UI).
const (
	ExpenseRent      = "rent"
	ExpensePayroll   = "payroll"
	ExpenseSupplies  = "supplies"
	ExpenseUtilities = "utilities"
	ExpenseOther     = "other"
)

// Expense gasto operativo de una empresa.
type Expense struct {
	ID          string
	CompanyID   string
	UserID      string
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	ReceiptRef  string // referencia externa del comprobante (número, URL)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
