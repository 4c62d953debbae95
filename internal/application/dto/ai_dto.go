package dto

// AnalyzeTextRequest body para POST /api/ai/analyze-text.
type AnalyzeTextRequest struct {
	Text string `json:"texto"`
}

// SuggestedOrderDTO pre-carga de OT sugerida por el asistente. Los campos
// vacíos quedan a completar por el operador; nada se persiste en este paso.
type SuggestedOrderDTO struct {
	Description string `json:"descripcion"`
	Part        string `json:"repuesto,omitempty"`
	Quantity    int64  `json:"cantidad,omitempty"`
	Vehicle     string `json:"movil,omitempty"`
}
