package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/ports"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportRepo struct {
	summary   repository.SalesSummaryResult
	top       []repository.TopProductResult
	dashboard repository.DashboardResult
	expenses  []repository.ExpenseByCategoryResult
}

func (f *fakeReportRepo) GetSalesSummary(ctx context.Context, companyID string, from, to time.Time) (*repository.SalesSummaryResult, error) {
	out := f.summary
	return &out, nil
}
func (f *fakeReportRepo) GetSalesByDay(ctx context.Context, companyID string, from, to time.Time) ([]repository.DailySalesResult, error) {
	return nil, nil
}
func (f *fakeReportRepo) GetTopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	return f.top, nil
}
func (f *fakeReportRepo) GetExpensesByCategory(ctx context.Context, companyID string, from, to time.Time) ([]repository.ExpenseByCategoryResult, error) {
	return f.expenses, nil
}
func (f *fakeReportRepo) GetDashboard(ctx context.Context, companyID string) (*repository.DashboardResult, error) {
	out := f.dashboard
	return &out, nil
}
func (f *fakeReportRepo) PlatformStats(ctx context.Context) (*repository.PlatformStatsResult, error) {
	return nil, nil
}

type fakeCompanyRepo struct {
	company *entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if f.company != nil && f.company.ID == id {
		return f.company, nil
	}
	return nil, nil
}
func (f *fakeCompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) { return nil, nil }
func (f *fakeCompanyRepo) Update(c *entity.Company) error                   { return nil }
func (f *fakeCompanyRepo) UpdateStatus(id, status string, suspendedUntil *time.Time, reason string) error {
	return nil
}
func (f *fakeCompanyRepo) List(status string, limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) CountByStatus() (map[string]int64, error) { return nil, nil }
func (f *fakeCompanyRepo) Delete(id string) error                   { return nil }

// fakeLLM devuelve respuestas fijas o falla, según se configure.
type fakeLLM struct {
	answer  string
	insight *dto.InsightResponse
	err     error
}

func (f *fakeLLM) GenerateBusinessInsight(ctx context.Context, snapshot ports.BusinessSnapshot) (*dto.InsightResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.insight, nil
}
func (f *fakeLLM) AnswerBusinessQuery(ctx context.Context, snapshot ports.BusinessSnapshot, question string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

const aiCompanyID = "00000000-0000-0000-0000-0000000000c1"

func seededReports() *fakeReportRepo {
	return &fakeReportRepo{
		summary: repository.SalesSummaryResult{
			SaleCount:    42,
			GrossRevenue: decimal.NewFromInt(1250000),
			AvgTicket:    decimal.NewFromInt(29762),
		},
		top: []repository.TopProductResult{
			{ProductID: "p1", ProductName: "Martillo 16oz", UnitsSold: decimal.NewFromInt(30)},
			{ProductID: "p2", ProductName: "Taladro inalámbrico", UnitsSold: decimal.NewFromInt(12)},
		},
		dashboard: repository.DashboardResult{LowStockCount: 3},
		expenses: []repository.ExpenseByCategoryResult{
			{Category: "arriendo", Total: decimal.NewFromInt(800000)},
			{Category: "servicios", Total: decimal.NewFromInt(120000)},
		},
	}
}

func newAIFixture(llm ports.LLMService) *usecase.AIUseCase {
	companies := &fakeCompanyRepo{company: &entity.Company{ID: aiCompanyID, Name: "Ferretería El Tornillo"}}
	return usecase.NewAIUseCase(llm, seededReports(), companies)
}

// ──────────────────────────────────────────────────────────────────────────────
// Chat
// ──────────────────────────────────────────────────────────────────────────────

func TestChat_PreguntaVacia(t *testing.T) {
	uc := newAIFixture(&fakeLLM{answer: "hola"})
	_, err := uc.Chat(context.Background(), aiCompanyID, "   ")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChat_EmpresaInexistente(t *testing.T) {
	uc := newAIFixture(&fakeLLM{answer: "hola"})
	_, err := uc.Chat(context.Background(), "otra-empresa", "¿cómo van las ventas?")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChat_ModeloDisponible(t *testing.T) {
	uc := newAIFixture(&fakeLLM{answer: "Vas muy bien este mes."})
	out, err := uc.Chat(context.Background(), aiCompanyID, "¿cómo voy?")
	require.NoError(t, err)
	assert.Equal(t, "model", out.Source)
	assert.Equal(t, "Vas muy bien este mes.", out.Answer)
}

func TestChat_ModeloFalla_CaeALaHeuristica(t *testing.T) {
	uc := newAIFixture(&fakeLLM{err: errors.New("api caída")})
	out, err := uc.Chat(context.Background(), aiCompanyID, "¿cómo van las ventas?")
	require.NoError(t, err, "la caída del modelo no puede tumbar el endpoint")
	assert.Equal(t, "heuristic", out.Source)
	assert.NotEmpty(t, out.Answer)
}

func TestChat_HeuristicaPorPalabraClave(t *testing.T) {
	uc := newAIFixture(nil)

	cases := []struct {
		nombre   string
		pregunta string
		espera   string
	}{
		{"stock", "¿qué hay en punto de reorden?", "3 productos en punto de reorden"},
		{"gastos", "¿cuánto llevo en gastos?", "920000.00"},
		{"productos", "¿cuál es el producto más vendido?", "Martillo 16oz"},
		{"ventas", "¿cuántas ventas hice?", "42 ventas"},
		{"generica", "cuéntame algo", "Pregunta por ventas, gastos, productos o stock"},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			out, err := uc.Chat(context.Background(), aiCompanyID, tc.pregunta)
			require.NoError(t, err)
			assert.Equal(t, "heuristic", out.Source)
			assert.Contains(t, out.Answer, tc.espera)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// BusinessInsight
// ──────────────────────────────────────────────────────────────────────────────

func TestBusinessInsight_SinModelo_UsaHeuristica(t *testing.T) {
	uc := newAIFixture(nil)
	out, err := uc.BusinessInsight(context.Background(), aiCompanyID)
	require.NoError(t, err)
	assert.Equal(t, "heuristic", out.Source)
	assert.Contains(t, out.Summary, "Ferretería El Tornillo")
	assert.Contains(t, out.Summary, "42 ventas")
}

func TestBusinessInsight_ModeloDisponible(t *testing.T) {
	uc := newAIFixture(&fakeLLM{insight: &dto.InsightResponse{Summary: "Resumen del modelo."}})
	out, err := uc.BusinessInsight(context.Background(), aiCompanyID)
	require.NoError(t, err)
	assert.Equal(t, "model", out.Source)
	assert.Equal(t, "Resumen del modelo.", out.Summary)
}
