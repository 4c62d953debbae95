package ports

import (
	"context"

	"github.com/transportechiro/flota-api/internal/application/dto"
)

// LLMService define el puerto de salida para el asistente de pre-carga de OTs.
// Cualquier adaptador (Gemini, OpenAI, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// AnalyzeText interpreta un parte de novedades en texto libre y devuelve
	// las OTs sugeridas. El contexto debe llevar timeout: es una llamada
	// externa y la creación manual sigue disponible si falla.
	AnalyzeText(ctx context.Context, text string) ([]dto.SuggestedOrderDTO, error)

	// AnalyzeImage interpreta la foto de un remito o pedido manuscrito.
	AnalyzeImage(ctx context.Context, image []byte, mimeType string) ([]dto.SuggestedOrderDTO, error)
}
