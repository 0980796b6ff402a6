package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRangeRequest rango [From, To) para reportes; vacío = últimos 30 días.
type ReportRangeRequest struct {
	From time.Time `query:"from"`
	To   time.Time `query:"to"`
}

// DefaultRange aplica el rango por defecto y normaliza To exclusivo.
func (r *ReportRangeRequest) DefaultRange(now time.Time) {
	if r.To.IsZero() {
		r.To = now
	}
	if r.From.IsZero() {
		r.From = r.To.AddDate(0, 0, -30)
	}
}

// SalesSummaryResponse agregado de ventas del período.
type SalesSummaryResponse struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	SaleCount    int64           `json:"sale_count"`
	UnitsSold    decimal.Decimal `json:"units_sold"`
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	TaxCollected decimal.Decimal `json:"tax_collected"`
	AvgTicket    decimal.Decimal `json:"avg_ticket"`
}

// DailySalesResponse ventas de un día calendario.
type DailySalesResponse struct {
	Day       time.Time       `json:"day"`
	SaleCount int64           `json:"sale_count"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// TopProductResponse producto del ranking de ventas.
type TopProductResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   decimal.Decimal `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ExpenseByCategoryResponse gasto agregado por categoría.
type ExpenseByCategoryResponse struct {
	Category string          `json:"category"`
	Count    int64           `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

// DashboardResponse contadores del tablero del tenant.
type DashboardResponse struct {
	ProductCount    int64           `json:"product_count"`
	CustomerCount   int64           `json:"customer_count"`
	LowStockCount   int64           `json:"low_stock_count"`
	SalesToday      int64           `json:"sales_today"`
	RevenueToday    decimal.Decimal `json:"revenue_today"`
	RevenueMonth    decimal.Decimal `json:"revenue_month"`
	OpenTicketCount int64           `json:"open_ticket_count"`
}

// PlatformStatsResponse estadísticas globales (consola super-admin).
type PlatformStatsResponse struct {
	CompaniesByStatus map[string]int64 `json:"companies_by_status"`
	UserCount         int64            `json:"user_count"`
	SaleCount         int64            `json:"sale_count"`
	SalesVolume       decimal.Decimal  `json:"sales_volume"`
	OpenTicketCount   int64            `json:"open_ticket_count"`
}
