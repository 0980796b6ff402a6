package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// IssueInvoiceRequest emisión de factura a partir de una venta completada.
type IssueInvoiceRequest struct {
	SaleID  string     `json:"sale_id" validate:"required,uuid4"`
	Prefix  string     `json:"prefix" validate:"max=10"`
	DueDate *time.Time `json:"due_date"`
	Notes   string     `json:"notes" validate:"max=1000"`
}

// UpdateInvoiceStatusRequest cambio de estado de la factura.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid void"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	SaleID     string          `json:"sale_id"`
	CustomerID string          `json:"customer_id,omitempty"`
	FullNumber string          `json:"full_number"`
	Prefix     string          `json:"prefix"`
	Number     int64           `json:"number"`
	Status     string          `json:"status"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxTotal   decimal.Decimal `json:"tax_total"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToInvoiceResponse proyecta la entidad a la respuesta HTTP.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:         inv.ID,
		CompanyID:  inv.CompanyID,
		SaleID:     inv.SaleID,
		CustomerID: inv.CustomerID,
		FullNumber: inv.FullNumber(),
		Prefix:     inv.Prefix,
		Number:     inv.Number,
		Status:     inv.Status,
		IssueDate:  inv.IssueDate,
		DueDate:    inv.DueDate,
		Subtotal:   inv.Subtotal,
		TaxTotal:   inv.TaxTotal,
		Total:      inv.Total,
		Notes:      inv.Notes,
		CreatedAt:  inv.CreatedAt,
	}
}
