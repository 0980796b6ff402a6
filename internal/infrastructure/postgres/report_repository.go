package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura. A diferencia de los repos CRUD
// recibe el ctx del request: los reportes pueden ser costosos y deben poder cancelarse.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetSalesSummary agrega las ventas del período.
func (r *ReportRepo) GetSalesSummary(ctx context.Context, companyID string, from, to time.Time) (*repository.SalesSummaryResult, error) {
	var res repository.SalesSummaryResult
	err := r.q.QueryRow(ctx, `
		SELECT
			COUNT(s.id),
			COALESCE(SUM(i.units), 0),
			COALESCE(SUM(s.total), 0),
			COALESCE(SUM(s.tax_total), 0),
			COALESCE(AVG(s.total), 0)
		FROM sales s
		LEFT JOIN (
			SELECT sale_id, SUM(quantity) AS units FROM sale_items GROUP BY sale_id
		) i ON i.sale_id = s.id
		WHERE s.company_id = $1 AND s.created_at >= $2 AND s.created_at < $3`,
		companyID, from, to,
	).Scan(&res.SaleCount, &res.UnitsSold, &res.GrossRevenue, &res.TaxCollected, &res.AvgTicket)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &res, nil
}

// GetSalesByDay agrupa ventas por día calendario.
func (r *ReportRepo) GetSalesByDay(ctx context.Context, companyID string, from, to time.Time) ([]repository.DailySalesResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT date_trunc('day', created_at) AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM sales
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY day ORDER BY day`,
		companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()
	var list []repository.DailySalesResult
	for rows.Next() {
		var d repository.DailySalesResult
		if err := rows.Scan(&d.Day, &d.SaleCount, &d.Revenue); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// GetTopProducts ordena productos por unidades vendidas en el período.
// Usa el product_name congelado de la línea: productos borrados siguen apareciendo.
func (r *ReportRepo) GetTopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.product_id, MAX(i.product_name), SUM(i.quantity), SUM(i.subtotal)
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.company_id = $1 AND s.created_at >= $2 AND s.created_at < $3
		GROUP BY i.product_id
		ORDER BY SUM(i.quantity) DESC
		LIMIT $4`,
		companyID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetExpensesByCategory agrega gastos por categoría en el período.
func (r *ReportRepo) GetExpensesByCategory(ctx context.Context, companyID string, from, to time.Time) ([]repository.ExpenseByCategoryResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT category, COUNT(*), COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE company_id = $1 AND expense_date >= $2 AND expense_date < $3
		GROUP BY category ORDER BY SUM(amount) DESC`,
		companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpenseByCategoryResult
	for rows.Next() {
		var e repository.ExpenseByCategoryResult
		if err := rows.Scan(&e.Category, &e.Count, &e.Total); err != nil {
			return nil, fmt.Errorf("scan expense category: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetDashboard arma los contadores del tablero del tenant en una sola pasada.
func (r *ReportRepo) GetDashboard(ctx context.Context, companyID string) (*repository.DashboardResult, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var res repository.DashboardResult
	err := r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products  WHERE company_id = $1),
			(SELECT COUNT(*) FROM customers WHERE company_id = $1),
			(SELECT COUNT(*) FROM products  WHERE company_id = $1 AND quantity <= reorder_point),
			(SELECT COUNT(*)                FROM sales WHERE company_id = $1 AND created_at >= $2),
			(SELECT COALESCE(SUM(total), 0) FROM sales WHERE company_id = $1 AND created_at >= $2),
			(SELECT COALESCE(SUM(total), 0) FROM sales WHERE company_id = $1 AND created_at >= $3),
			(SELECT COUNT(*) FROM support_tickets WHERE company_id = $1 AND status IN ('open', 'in_progress'))`,
		companyID, dayStart, monthStart,
	).Scan(&res.ProductCount, &res.CustomerCount, &res.LowStockCount,
		&res.SalesToday, &res.RevenueToday, &res.RevenueMonth, &res.OpenTicketCount)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &res, nil
}

// PlatformStats estadísticas globales de la plataforma. Único método sin filtro
// de empresa; solo se alcanza detrás de SuperAdminMiddleware.
func (r *ReportRepo) PlatformStats(ctx context.Context) (*repository.PlatformStatsResult, error) {
	res := &repository.PlatformStatsResult{
		CompaniesByStatus: make(map[string]int64),
		SalesVolume:       decimal.Zero,
	}

	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM companies GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("platform stats companies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan company status count: %w", err)
		}
		res.CompaniesByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.q.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM sales),
			(SELECT COALESCE(SUM(total), 0) FROM sales),
			(SELECT COUNT(*) FROM support_tickets WHERE status IN ('open', 'in_progress'))`,
	).Scan(&res.UserCount, &res.SaleCount, &res.SalesVolume, &res.OpenTicketCount)
	if err != nil {
		return nil, fmt.Errorf("platform stats totals: %w", err)
	}
	return res, nil
}
