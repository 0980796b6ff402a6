package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/ports"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// AIUseCase genera el resumen de negocio del tenant. Si el modelo de lenguaje
// falla o no está configurado, cae al resumen heurístico determinista: el
// endpoint nunca depende de la disponibilidad de un servicio externo.
type AIUseCase struct {
	llm         ports.LLMService
	reportRepo  repository.ReportRepository
	companyRepo repository.CompanyRepository
}

// NewAIUseCase construye el caso de uso.
func NewAIUseCase(llm ports.LLMService, reportRepo repository.ReportRepository, companyRepo repository.CompanyRepository) *AIUseCase {
	return &AIUseCase{llm: llm, reportRepo: reportRepo, companyRepo: companyRepo}
}

// snapshot arma el agregado de los últimos 30 días que alimenta tanto el
// insight como el chat. Solo datos del tenant.
func (uc *AIUseCase) snapshot(ctx context.Context, companyID string) (ports.BusinessSnapshot, error) {
	var snapshot ports.BusinessSnapshot

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return snapshot, err
	}
	if company == nil {
		return snapshot, domain.ErrNotFound
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)

	summary, err := uc.reportRepo.GetSalesSummary(ctx, companyID, from, now)
	if err != nil {
		return snapshot, err
	}
	top, err := uc.reportRepo.GetTopProducts(ctx, companyID, from, now, 5)
	if err != nil {
		return snapshot, err
	}
	dashboard, err := uc.reportRepo.GetDashboard(ctx, companyID)
	if err != nil {
		return snapshot, err
	}
	expenses, err := uc.reportRepo.GetExpensesByCategory(ctx, companyID, from, now)
	if err != nil {
		return snapshot, err
	}

	snapshot = ports.BusinessSnapshot{
		CompanyName:   company.Name,
		SaleCount:     summary.SaleCount,
		GrossRevenue:  summary.GrossRevenue.StringFixed(2),
		AvgTicket:     summary.AvgTicket.StringFixed(2),
		LowStockCount: dashboard.LowStockCount,
	}
	for _, t := range top {
		snapshot.TopProducts = append(snapshot.TopProducts, t.ProductName)
	}
	expenseTotal := decimal.Zero
	for _, e := range expenses {
		expenseTotal = expenseTotal.Add(e.Total)
	}
	snapshot.ExpenseTotal = expenseTotal.StringFixed(2)
	return snapshot, nil
}

// BusinessInsight arma el snapshot de los últimos 30 días y pide el resumen.
// Timeout de 10 s sobre la llamada al modelo; las latencias externas no pueden
// bloquear los goroutines del servidor.
func (uc *AIUseCase) BusinessInsight(ctx context.Context, companyID string) (*dto.InsightResponse, error) {
	snapshot, err := uc.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if uc.llm != nil {
		llmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if insight, err := uc.llm.GenerateBusinessInsight(llmCtx, snapshot); err == nil {
			insight.Source = "model"
			return insight, nil
		}
	}
	return heuristicInsight(snapshot), nil
}

// Chat responde una pregunta libre sobre el negocio. Si el modelo falla o no
// está configurado responde con las mismas heurísticas del insight: el chat
// nunca depende de la disponibilidad del servicio externo.
func (uc *AIUseCase) Chat(ctx context.Context, companyID, question string) (*dto.ChatResponse, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}
	snapshot, err := uc.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if uc.llm != nil {
		llmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if answer, err := uc.llm.AnswerBusinessQuery(llmCtx, snapshot, question); err == nil {
			return &dto.ChatResponse{Answer: answer, Source: "model"}, nil
		}
	}
	return &dto.ChatResponse{Answer: heuristicAnswer(snapshot, question), Source: "heuristic"}, nil
}

// heuristicInsight resumen determinista de respaldo, sin servicio externo.
func heuristicInsight(s ports.BusinessSnapshot) *dto.InsightResponse {
	insight := &dto.InsightResponse{
		Summary: fmt.Sprintf(
			"%s registró %d ventas por $%s en los últimos 30 días (ticket promedio $%s).",
			s.CompanyName, s.SaleCount, s.GrossRevenue, s.AvgTicket,
		),
		Source: "heuristic",
	}
	if len(s.TopProducts) > 0 {
		insight.Highlights = append(insight.Highlights,
			"Producto más vendido del período: "+s.TopProducts[0])
	}
	if s.LowStockCount > 0 {
		insight.Suggestions = append(insight.Suggestions,
			fmt.Sprintf("Hay %d productos en punto de reorden; revisa el reporte de stock bajo.", s.LowStockCount))
	}
	if s.SaleCount == 0 {
		insight.Suggestions = append(insight.Suggestions,
			"Sin ventas en el período; verifica el catálogo y los precios publicados.")
	}
	return insight
}

// heuristicAnswer respuesta determinista por palabras clave sobre el snapshot.
func heuristicAnswer(s ports.BusinessSnapshot, question string) string {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "stock") || strings.Contains(q, "inventario") || strings.Contains(q, "reorden"):
		if s.LowStockCount == 0 {
			return "Ningún producto está en punto de reorden; el inventario está sano."
		}
		return fmt.Sprintf("Hay %d productos en punto de reorden. Revisa el reporte de stock bajo para reponerlos.", s.LowStockCount)
	case strings.Contains(q, "gasto"):
		return fmt.Sprintf("Los gastos de los últimos 30 días suman $%s.", s.ExpenseTotal)
	case strings.Contains(q, "producto") || strings.Contains(q, "vendido"):
		if len(s.TopProducts) == 0 {
			return "Todavía no hay ventas registradas en el período, así que no hay un producto destacado."
		}
		return "Los productos más vendidos del período son: " + strings.Join(s.TopProducts, ", ") + "."
	case strings.Contains(q, "venta") || strings.Contains(q, "ingreso") || strings.Contains(q, "factur"):
		return fmt.Sprintf("En los últimos 30 días %s registró %d ventas por $%s, con un ticket promedio de $%s.",
			s.CompanyName, s.SaleCount, s.GrossRevenue, s.AvgTicket)
	default:
		return fmt.Sprintf("Resumen de %s: %d ventas por $%s en 30 días, gastos por $%s y %d productos en punto de reorden. Pregunta por ventas, gastos, productos o stock para más detalle.",
			s.CompanyName, s.SaleCount, s.GrossRevenue, s.ExpenseTotal, s.LowStockCount)
	}
}
