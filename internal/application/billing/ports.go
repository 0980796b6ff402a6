package billing

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// InvoiceLineForPDF línea de factura lista para imprimir: los valores vienen
// congelados de la venta, no del catálogo actual.
type InvoiceLineForPDF struct {
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, company *entity.Company, customer *entity.Customer, lines []InvoiceLineForPDF) ([]byte, error)
}
