package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult agregado de ventas de un período.
type SalesSummaryResult struct {
	SaleCount    int64
	UnitsSold    decimal.Decimal
	GrossRevenue decimal.Decimal
	TaxCollected decimal.Decimal
	AvgTicket    decimal.Decimal
}

// DailySalesResult ventas agrupadas por día.
type DailySalesResult struct {
	Day       time.Time
	SaleCount int64
	Revenue   decimal.Decimal
}

// TopProductResult producto ordenado por unidades vendidas en el período.
type TopProductResult struct {
	ProductID   string
	ProductName string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
}

// ExpenseByCategoryResult gasto agregado por categoría.
type ExpenseByCategoryResult struct {
	Category string
	Count    int64
	Total    decimal.Decimal
}

// DashboardResult contadores del tablero del tenant.
type DashboardResult struct {
	ProductCount    int64
	CustomerCount   int64
	LowStockCount   int64
	SalesToday      int64
	RevenueToday    decimal.Decimal
	RevenueMonth    decimal.Decimal
	OpenTicketCount int64
}

// PlatformStatsResult estadísticas globales de la consola super-admin.
// Por diseño ninguna de estas consultas filtra por company_id.
type PlatformStatsResult struct {
	CompaniesByStatus map[string]int64
	UserCount         int64
	SaleCount         int64
	SalesVolume       decimal.Decimal
	OpenTicketCount   int64
}

// ReportRepository consultas de solo lectura para reportes y analítica.
// Todas las consultas de tenant exigen companyID; PlatformStats es el único
// método sin filtro y pertenece al camino super-admin.
type ReportRepository interface {
	GetSalesSummary(ctx context.Context, companyID string, from, to time.Time) (*SalesSummaryResult, error)
	GetSalesByDay(ctx context.Context, companyID string, from, to time.Time) ([]DailySalesResult, error)
	GetTopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]TopProductResult, error)
	GetExpensesByCategory(ctx context.Context, companyID string, from, to time.Time) ([]ExpenseByCategoryResult, error)
	GetDashboard(ctx context.Context, companyID string) (*DashboardResult, error)
	PlatformStats(ctx context.Context) (*PlatformStatsResult, error)
}
