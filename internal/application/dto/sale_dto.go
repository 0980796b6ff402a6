package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// SaleItemRequest línea de una venta nueva. El precio y el nombre del producto
// no se aceptan del cliente: se leen del catálogo dentro de la transacción.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	CustomerID    string            `json:"customer_id" validate:"omitempty,uuid4"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash card transfer credit"`
	Notes         string            `json:"notes" validate:"max=1000"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse línea de venta con los valores congelados al vender.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	UserID        string             `json:"user_id"`
	Number        int64              `json:"number"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxTotal      decimal.Decimal    `json:"tax_total"`
	Total         decimal.Decimal    `json:"total"`
	Notes         string             `json:"notes,omitempty"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ToSaleResponse proyecta la venta y sus líneas a la respuesta HTTP.
func ToSaleResponse(s *entity.Sale, items []*entity.SaleItem) SaleResponse {
	resp := SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		CustomerID:    s.CustomerID,
		UserID:        s.UserID,
		Number:        s.Number,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		Subtotal:      s.Subtotal,
		TaxTotal:      s.TaxTotal,
		Total:         s.Total,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}
	return resp
}

// ReturnItemRequest línea a devolver de una venta existente.
type ReturnItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// CreateReturnRequest entrada para registrar una devolución.
type CreateReturnRequest struct {
	SaleID string              `json:"sale_id" validate:"required,uuid4"`
	Reason string              `json:"reason" validate:"max=500"`
	Items  []ReturnItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ReturnItemResponse línea devuelta.
type ReturnItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ReturnResponse salida de una devolución.
type ReturnResponse struct {
	ID        string               `json:"id"`
	SaleID    string               `json:"sale_id"`
	UserID    string               `json:"user_id"`
	Reason    string               `json:"reason,omitempty"`
	Total     decimal.Decimal      `json:"total"`
	Items     []ReturnItemResponse `json:"items,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// ReturnListResponse lista paginada de devoluciones.
type ReturnListResponse struct {
	Items []ReturnResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ToReturnResponse proyecta la devolución a la respuesta HTTP.
func ToReturnResponse(ret *entity.SaleReturn, items []*entity.SaleReturnItem) ReturnResponse {
	resp := ReturnResponse{
		ID:        ret.ID,
		SaleID:    ret.SaleID,
		UserID:    ret.UserID,
		Reason:    ret.Reason,
		Total:     ret.Total,
		CreatedAt: ret.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, ReturnItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
