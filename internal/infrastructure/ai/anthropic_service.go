package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	anthropicSystemPrompt = `Eres un analista de negocio para pymes de Latinoamérica.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código` + " ```json" + `) con esta estructura exacta:
{
  "summary": "<resumen ejecutivo del período en español, máximo 400 caracteres>",
  "highlights": ["<hecho destacado>", "..."],
  "suggestions": ["<acción concreta recomendada>", "..."]
}

Reglas:
- summary: tono profesional y directo, sin inventar cifras que no estén en los datos.
- highlights: máximo 4 entradas, cada una de una sola frase.
- suggestions: máximo 3 acciones accionables para el dueño del negocio.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`

	anthropicChatPrompt = `Eres un asistente de negocio para pymes de Latinoamérica.
Responde la pregunta del dueño en español, en máximo 3 frases, usando ÚNICAMENTE
las cifras del contexto que se te entrega. Si la pregunta no puede responderse
con esos datos, dilo y sugiere qué reporte consultar. Texto plano, sin markdown.`
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type llmInsightPayload struct {
	Summary     string   `json:"summary"`
	Highlights  []string `json:"highlights"`
	Suggestions []string `json:"suggestions"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo
// envuelva en markdown. Captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// complete hace la llamada a la Messages API y devuelve el texto del primer
// bloque de contenido. Los dos métodos del puerto comparten este camino.
func (s *AnthropicService) complete(ctx context.Context, system, userContent string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    system,
		Messages: []anthropicMessage{
			{Role: "user", Content: userContent},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(anthResp.Content) == 0 {
		return "", fmt.Errorf("AI: respuesta vacía del modelo")
	}
	return anthResp.Content[0].Text, nil
}

// snapshotContext presenta el snapshot como el bloque de datos del mensaje.
func snapshotContext(snapshot ports.BusinessSnapshot) string {
	return fmt.Sprintf(
		"Empresa: %s\nVentas últimos 30 días: %d por $%s (ticket promedio $%s)\nProductos más vendidos: %s\nProductos en punto de reorden: %d\nGastos del período: $%s",
		snapshot.CompanyName,
		snapshot.SaleCount,
		snapshot.GrossRevenue,
		snapshot.AvgTicket,
		strings.Join(snapshot.TopProducts, ", "),
		snapshot.LowStockCount,
		snapshot.ExpenseTotal,
	)
}

// GenerateBusinessInsight envía el snapshot del negocio a Claude y devuelve
// el resumen redactado.
func (s *AnthropicService) GenerateBusinessInsight(ctx context.Context, snapshot ports.BusinessSnapshot) (*dto.InsightResponse, error) {
	rawText, err := s.complete(ctx, anthropicSystemPrompt, snapshotContext(snapshot))
	if err != nil {
		return nil, err
	}

	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}

	var insight llmInsightPayload
	if err := json.Unmarshal([]byte(cleanJSON), &insight); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON del resumen: %w (JSON extraído: %s)", err, cleanJSON)
	}
	if insight.Summary == "" {
		return nil, fmt.Errorf("AI: el modelo no devolvió summary")
	}

	return &dto.InsightResponse{
		Summary:     insight.Summary,
		Highlights:  insight.Highlights,
		Suggestions: insight.Suggestions,
	}, nil
}

// AnswerBusinessQuery responde una pregunta libre sobre el snapshot del negocio.
func (s *AnthropicService) AnswerBusinessQuery(ctx context.Context, snapshot ports.BusinessSnapshot, question string) (string, error) {
	userContent := snapshotContext(snapshot) + "\n\nPregunta del dueño: " + question
	answer, err := s.complete(ctx, anthropicChatPrompt, userContent)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("AI: respuesta vacía del modelo")
	}
	return answer, nil
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		text = text[idx+3:]
		if nl := strings.Index(text, "\n"); nl != -1 {
			text = text[nl+1:]
		}
		if end := strings.Index(text, "```"); end != -1 {
			text = text[:end]
		}
	}
	return jsonBlockRe.FindString(text)
}
