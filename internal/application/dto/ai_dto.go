package dto

// InsightResponse resumen de negocio generado para el tenant.
// Source indica el origen: "model" si lo redactó el modelo de lenguaje,
// "heuristic" si se usó el resumen determinista de respaldo.
type InsightResponse struct {
	Summary     string   `json:"summary"`
	Highlights  []string `json:"highlights,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Source      string   `json:"source"`
}

// ChatRequest pregunta libre del dueño del negocio para el asistente.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=2,max=1000"`
}

// ChatResponse respuesta del asistente. Source sigue la misma convención que
// InsightResponse: "model" o "heuristic".
type ChatResponse struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
}
