package ports

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
)

// BusinessSnapshot datos agregados del negocio que se entregan al modelo
// de lenguaje para redactar el resumen. Nunca incluye datos de otro tenant.
type BusinessSnapshot struct {
	CompanyName   string
	SaleCount     int64
	GrossRevenue  string
	AvgTicket     string
	TopProducts   []string
	LowStockCount int64
	ExpenseTotal  string
}

// LLMService puerto de salida hacia el modelo de lenguaje. Cualquier adaptador
// (Anthropic, mock de tests) implementa este contrato; la aplicación solo
// conoce la interfaz (DIP).
type LLMService interface {
	// GenerateBusinessInsight redacta un resumen del período con sugerencias.
	// El contexto debe llevar timeout: la llamada sale de la red local.
	GenerateBusinessInsight(ctx context.Context, snapshot BusinessSnapshot) (*dto.InsightResponse, error)

	// AnswerBusinessQuery responde una pregunta libre del dueño usando solo los
	// datos del snapshot. Mismas reglas de timeout que el insight.
	AnswerBusinessQuery(ctx context.Context, snapshot BusinessSnapshot, question string) (string, error)
}
