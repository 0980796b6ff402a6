package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// ReportUseCase reportes y tablero del tenant. Solo lectura.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// SalesSummary agregado de ventas del período.
func (uc *ReportUseCase) SalesSummary(ctx context.Context, companyID string, rng dto.ReportRangeRequest) (*dto.SalesSummaryResponse, error) {
	rng.DefaultRange(time.Now().UTC())
	res, err := uc.repo.GetSalesSummary(ctx, companyID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{
		From:         rng.From,
		To:           rng.To,
		SaleCount:    res.SaleCount,
		UnitsSold:    res.UnitsSold,
		GrossRevenue: res.GrossRevenue,
		TaxCollected: res.TaxCollected,
		AvgTicket:    res.AvgTicket,
	}, nil
}

// SalesByDay serie diaria de ventas del período.
func (uc *ReportUseCase) SalesByDay(ctx context.Context, companyID string, rng dto.ReportRangeRequest) ([]dto.DailySalesResponse, error) {
	rng.DefaultRange(time.Now().UTC())
	res, err := uc.repo.GetSalesByDay(ctx, companyID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailySalesResponse, 0, len(res))
	for _, d := range res {
		out = append(out, dto.DailySalesResponse{Day: d.Day, SaleCount: d.SaleCount, Revenue: d.Revenue})
	}
	return out, nil
}

// TopProducts ranking de productos por unidades vendidas.
func (uc *ReportUseCase) TopProducts(ctx context.Context, companyID string, rng dto.ReportRangeRequest, limit int) ([]dto.TopProductResponse, error) {
	rng.DefaultRange(time.Now().UTC())
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	res, err := uc.repo.GetTopProducts(ctx, companyID, rng.From, rng.To, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductResponse, 0, len(res))
	for _, t := range res {
		out = append(out, dto.TopProductResponse{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			UnitsSold:   t.UnitsSold,
			Revenue:     t.Revenue,
		})
	}
	return out, nil
}

// ExpensesByCategory gasto agregado por categoría.
func (uc *ReportUseCase) ExpensesByCategory(ctx context.Context, companyID string, rng dto.ReportRangeRequest) ([]dto.ExpenseByCategoryResponse, error) {
	rng.DefaultRange(time.Now().UTC())
	res, err := uc.repo.GetExpensesByCategory(ctx, companyID, rng.From, rng.To)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseByCategoryResponse, 0, len(res))
	for _, e := range res {
		out = append(out, dto.ExpenseByCategoryResponse{Category: e.Category, Count: e.Count, Total: e.Total})
	}
	return out, nil
}

// Dashboard contadores del tablero.
func (uc *ReportUseCase) Dashboard(ctx context.Context, companyID string) (*dto.DashboardResponse, error) {
	res, err := uc.repo.GetDashboard(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		ProductCount:    res.ProductCount,
		CustomerCount:   res.CustomerCount,
		LowStockCount:   res.LowStockCount,
		SalesToday:      res.SalesToday,
		RevenueToday:    res.RevenueToday,
		RevenueMonth:    res.RevenueMonth,
		OpenTicketCount: res.OpenTicketCount,
	}, nil
}
